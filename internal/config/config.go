package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every runtime setting, loaded from the environment.
type Config struct {
	DatabaseURL string
	JWTSecret   string
	TokenTTL    time.Duration

	ServerPort string
	ServerHost string

	Environment string

	RedisURL         string
	RateLimitEnabled bool
	RateLimitCount   int
	RateLimitWindow  time.Duration

	AuditBufferSize int

	LogLevel  string
	LogFormat string
}

var (
	ErrMissingDatabaseURL = errors.New("DATABASE_URL is required")
	ErrMissingJWTSecret   = errors.New("JWT_SECRET is required")
)

// Load reads the environment (and a .env file if present) into a Config.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		TokenTTL:         getEnvOrDefaultDuration("TOKEN_TTL", 15*time.Minute),
		ServerPort:       getEnvOrDefault("SERVER_PORT", "8080"),
		ServerHost:       getEnvOrDefault("SERVER_HOST", "0.0.0.0"),
		Environment:      getEnvOrDefault("ENV", "development"),
		RedisURL:         getEnvOrDefault("REDIS_URL", "redis://localhost:6379/0"),
		RateLimitEnabled: getEnvOrDefaultBool("RATE_LIMIT_ENABLED", false),
		RateLimitCount:   getEnvOrDefaultInt("RATE_LIMIT_COUNT", 100),
		RateLimitWindow:  getEnvOrDefaultDuration("RATE_LIMIT_WINDOW", 60*time.Second),
		AuditBufferSize:  getEnvOrDefaultInt("AUDIT_BUFFER_SIZE", 256),
		LogLevel:         getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:        getEnvOrDefault("LOG_FORMAT", "json"),
	}

	if cfg.DatabaseURL == "" {
		return nil, ErrMissingDatabaseURL
	}
	if cfg.JWTSecret == "" {
		return nil, ErrMissingJWTSecret
	}

	return cfg, nil
}

func getEnvOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvOrDefaultBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvOrDefaultInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvOrDefaultDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}
