package config // package config loads application configuration from environment variables

import (
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types
	"strings"

	"github.com/joho/godotenv"

	"github.com/iliyamo/mindful/internal/logging"
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.
type Config struct {
	Env         string   // application environment (e.g. "dev", "prod")
	Port        string   // HTTP port to listen on
	DBUser      string   // database username
	DBPass      string   // database password (optional)
	DBHost      string   // database host address
	DBPort      string   // database port number
	DBName      string   // database name
	JWTSecret   string   // secret used to sign identity tokens
	BcryptCost  int      // bcrypt cost for password hashing
	StaticDir   string   // directory with the static frontend (optional)
	CORSOrigins []string // allowed CORS origins, "*" when unset
	LogLevel    string   // zerolog level name
	LogFormat   string   // json or console
}

// Load reads an optional .env file and then configuration values from
// environment variables.  Variables already present in the environment win
// over the file.  Required variables are enforced by must() and missing
// values cause the program to exit with a fatal log message.
func Load() Config {
	_ = godotenv.Load() // a missing .env is normal outside development
	return Config{
		Env:         must("APP_ENV"),
		Port:        must("APP_PORT"),
		DBUser:      must("DB_USER"),
		DBPass:      os.Getenv("DB_PASS"), // empty allowed
		DBHost:      must("DB_HOST"),
		DBPort:      must("DB_PORT"),
		DBName:      must("DB_NAME"),
		JWTSecret:   must("JWT_SECRET"),
		BcryptCost:  mustInt("BCRYPT_COST"),
		StaticDir:   os.Getenv("STATIC_DIR"),
		CORSOrigins: splitList(envStr("CORS_ORIGINS", "*")),
		LogLevel:    envStr("LOG_LEVEL", "info"),
		LogFormat:   envStr("LOG_FORMAT", "json"),
	}
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		logging.Fatal().Str("key", key).Msg("missing required env var")
	}
	return v
}

// mustInt is like must() but converts the retrieved string into an integer.
func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		logging.Fatal().Str("key", key).Str("value", s).Msg("invalid int env var")
	}
	return n
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
