package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultPort            = "8080"
	defaultEnvironment     = "development"
	defaultServiceName     = "errorhandler"
	defaultRequestTimeout  = 10 * time.Second
	defaultShutdownTimeout = 10 * time.Second
)

// loads configuration from environment variables
func LoadEnvironmentVariables() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		_ = err // not an error - production environments may not have .env file
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is required")
	}

	legacy, err := parseBool("LEGACY_MALFORMED_MESSAGE", false)
	if err != nil {
		return nil, err
	}

	requestTimeout, err := parseDuration("REQUEST_TIMEOUT", defaultRequestTimeout)
	if err != nil {
		return nil, err
	}

	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", defaultShutdownTimeout)
	if err != nil {
		return nil, err
	}

	return &Config{
		Port:                   getOrDefault("PORT", defaultPort),
		Environment:            getOrDefault("ENVIRONMENT", defaultEnvironment),
		LogLevel:               os.Getenv("LOG_LEVEL"),
		JWTSecret:              jwtSecret,
		DatabaseURL:            os.Getenv("DATABASE_URL"),
		CORSOrigins:            splitList(os.Getenv("CORS_ORIGINS")),
		ServiceName:            getOrDefault("OTEL_SERVICE_NAME", defaultServiceName),
		OTLPEndpoint:           os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		LegacyMalformedMessage: legacy,
		RequestTimeout:         requestTimeout,
		ShutdownTimeout:        shutdownTimeout,
	}, nil
}

// applies command line overrides on top of the environment
func (c *Config) Apply(f Flags) {
	if f.Port != "" {
		c.Port = f.Port
	}

	if f.LegacyMalformedMessage {
		c.LegacyMalformedMessage = true
	}
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}

func parseBool(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}

	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean: %w", key, err)
	}

	return b, nil
}

// accepts Go durations ("5s") or plain seconds ("5")
func parseDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}

	if seconds, err := strconv.Atoi(v); err == nil {
		if seconds < 0 {
			return 0, fmt.Errorf("%s must not be negative", key)
		}
		return time.Duration(seconds) * time.Second, nil
	}

	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration: %w", key, err)
	}

	if d < 0 {
		return 0, fmt.Errorf("%s must not be negative", key)
	}

	return d, nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}

	return out
}
