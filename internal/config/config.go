// Package config centralises runtime configuration for the tracker.
package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store drivers understood by db.Open.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config captures runtime configuration values.
type Config struct {
	HTTPAddress     string
	StoreDriver     string
	DatabaseURL     string
	RedisAddr       string // Empty disables the user cache and event publishing.
	UserCacheTTL    time.Duration
	OTLPEndpoint    string // Empty disables OTLP export.
	TelemetryStdout bool
	LogLevel        slog.Level
	LogFormat       string
	AllowedOrigins  []string
	ShutdownTimeout time.Duration
}

// Load reads an optional .env file and the environment into Config,
// applying defaults suitable for local development.
func Load() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("could not load .env file", "error", err)
	}

	cfg := Config{
		HTTPAddress:     getEnv("HTTP_ADDRESS", ":3000"),
		StoreDriver:     strings.ToLower(getEnv("STORE_DRIVER", DriverSQLite)),
		DatabaseURL:     getEnv("DATABASE_URL", "./tracker.db"),
		RedisAddr:       getEnv("REDIS_ADDR", ""),
		UserCacheTTL:    getDurationEnv("USER_CACHE_TTL", 10*time.Minute),
		OTLPEndpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		TelemetryStdout: getBoolEnv("TELEMETRY_STDOUT", false),
		LogLevel:        parseLevel(getEnv("LOG_LEVEL", "info")),
		LogFormat:       strings.ToLower(getEnv("LOG_FORMAT", "text")),
		AllowedOrigins:  splitAndTrim(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		ShutdownTimeout: getDurationEnv("SHUTDOWN_TIMEOUT", 5*time.Second),
	}
	return cfg
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getBoolEnv(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func parseLevel(value string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(value)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func splitAndTrim(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
