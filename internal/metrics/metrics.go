// Package metrics declares the Prometheus collectors exported on /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// APIRequestsTotal counts handled requests.
	// Labels: method, route (echo path pattern), status.
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mindful_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "route", "status"},
	)

	// APIRequestDuration measures handler latency.
	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mindful_api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "route"},
	)

	// AuthGateDecisions counts Auth Gate outcomes.
	// Labels: outcome ("ok", "missing", "invalid").
	AuthGateDecisions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mindful_auth_gate_decisions_total",
			Help: "Auth gate decisions by outcome",
		},
		[]string{"outcome"},
	)

	// AuthAttempts counts signup and login attempts.
	// Labels: op ("signup", "login"), outcome ("success", "rejected", "error").
	AuthAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mindful_auth_attempts_total",
			Help: "Signup and login attempts by outcome",
		},
		[]string{"op", "outcome"},
	)

	// CacheLookups counts response cache lookups.
	// Labels: result ("hit", "miss").
	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mindful_cache_lookups_total",
			Help: "Response cache lookups by result",
		},
		[]string{"result"},
	)

	// RateLimited counts requests rejected by the token bucket.
	RateLimited = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mindful_rate_limited_total",
			Help: "Requests rejected by the rate limiter",
		},
		[]string{"prefix"},
	)

	// EventsPublished counts domain events handed to the broker.
	// Labels: type, outcome ("ok", "error").
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mindful_events_published_total",
			Help: "Domain events published by type and outcome",
		},
		[]string{"type", "outcome"},
	)

	// EventsConsumed counts activity events written by the consumer.
	EventsConsumed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mindful_events_consumed_total",
			Help: "Domain events consumed by type",
		},
		[]string{"type"},
	)
)

// RecordAPIRequest records one handled request.
func RecordAPIRequest(method, route string, status int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	APIRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordAuthAttempt records a signup or login outcome.
func RecordAuthAttempt(op, outcome string) {
	AuthAttempts.WithLabelValues(op, outcome).Inc()
}

// RecordPublish records a publish attempt for event type typ.
func RecordPublish(typ string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	EventsPublished.WithLabelValues(typ, outcome).Inc()
}
