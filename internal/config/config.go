// Package config loads process configuration from the environment.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	Port     string
	DBPath   string
	LogLevel string

	// JWTSecret signs session tokens. Required: a missing secret is a
	// startup failure, never a silent default.
	JWTSecret string

	// JWTTTL is how long issued tokens remain valid.
	JWTTTL time.Duration
}

// Load reads configuration from environment variables, with an optional
// .env file for local development.
func Load() (*Config, error) {
	// Missing .env is fine; real deployments set the environment.
	_ = godotenv.Load()

	cfg := &Config{
		Port:     getEnvOrDefault("PORT", "8080"),
		DBPath:   getEnvOrDefault("DB_PATH", "./data/giftwell.db"),
		LogLevel: getEnvOrDefault("LOG_LEVEL", "info"),
	}

	if cfg.JWTSecret = os.Getenv("JWT_SECRET"); cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is required")
	}

	ttl := getEnvOrDefault("JWT_TTL", "24h")
	d, err := time.ParseDuration(ttl)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_TTL %q: %w", ttl, err)
	}
	cfg.JWTTTL = d

	return cfg, nil
}

// getEnvOrDefault returns the environment variable value or the default
// if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
