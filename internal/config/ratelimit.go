package config

import (
	"os"
	"strconv"
	"time"
)

// RateLimitConfig configures the Redis token bucket.  Auth endpoints get a
// separate, smaller bucket (see Auth) so credential guessing is throttled
// harder than ordinary API traffic.
type RateLimitConfig struct {
	Enabled        bool
	Capacity       int
	RefillTokens   int
	RefillInterval time.Duration
	TTL            time.Duration
	KeyStrategy    string
	Prefix         string
	Debug          bool

	AuthCapacity       int
	AuthRefillInterval time.Duration
}

func LoadRateLimitConfig() RateLimitConfig {
	def := RateLimitConfig{
		Enabled:            envBool("RATE_LIMIT_ENABLED", true),
		Capacity:           envInt("RATE_LIMIT_CAPACITY", 60),
		RefillTokens:       envInt("RATE_LIMIT_REFILL_TOKENS", 1),
		RefillInterval:     envDur("RATE_LIMIT_REFILL_INTERVAL", time.Second),
		TTL:                envDur("RATE_LIMIT_TTL", 10*time.Minute),
		KeyStrategy:        envStr("RATE_LIMIT_KEY_STRATEGY", "ip_user_route"),
		Prefix:             envStr("RATE_LIMIT_PREFIX", "rl"),
		Debug:              envBool("RATE_LIMIT_DEBUG", false),
		AuthCapacity:       envInt("RATE_LIMIT_AUTH_CAPACITY", 10),
		AuthRefillInterval: envDur("RATE_LIMIT_AUTH_REFILL_INTERVAL", 6*time.Second),
	}
	return def.normalized()
}

// Auth derives the bucket used for signup and login: keyed by client IP and
// route only, since there is no verified identity yet.
func (c RateLimitConfig) Auth() RateLimitConfig {
	a := c
	a.Capacity = c.AuthCapacity
	a.RefillTokens = 1
	a.RefillInterval = c.AuthRefillInterval
	a.KeyStrategy = "ip_route"
	a.Prefix = c.Prefix + ":auth"
	return a.normalized()
}

func (c RateLimitConfig) normalized() RateLimitConfig {
	if c.Capacity < 1 {
		c.Capacity = 1
	}
	if c.RefillTokens < 1 {
		c.RefillTokens = 1
	}
	if c.RefillInterval <= 0 {
		c.RefillInterval = time.Second
	}
	if minTTL := 5 * c.RefillInterval; c.TTL < minTTL {
		c.TTL = minTTL
	}
	return c
}

func envStr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func envBool(k string, d bool) bool {
	switch os.Getenv(k) {
	case "1", "true", "TRUE", "True", "yes", "YES", "on", "ON":
		return true
	case "0", "false", "FALSE", "False", "no", "NO", "off", "OFF":
		return false
	}
	return d
}

func envInt(k string, d int) int {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	return d
}

func envDur(k string, d time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	if dur, err := time.ParseDuration(v); err == nil {
		return dur
	}
	return d
}
