package config

import (
	"os"
	"strconv"
)

const defaultMaxTranspose = 12

// Config holds the application configuration
type Config struct {
	// Environment
	Environment string
	Port        string

	// Storage
	DatabaseURL string // postgres://... or sqlite://path

	// Observability
	SentryDSN string // Sentry DSN for error tracking

	// Auth mode
	// - "none": No auth (self-hosted, local dev)
	// - "gateway": Trust X-User-* headers from an upstream gateway
	// - "jwt": Validate HS256 bearer tokens signed with JWTSecret
	AuthMode  string
	JWTSecret string

	// AWS (metrics in production, songbook export)
	AWSRegion    string
	ExportBucket string

	// Largest transposition accepted in either direction
	MaxTranspose int
}

func Load() *Config {
	return &Config{
		Environment:  getEnv("ENVIRONMENT", "development"),
		Port:         getEnv("PORT", "8080"),
		DatabaseURL:  getEnv("DATABASE_URL", "sqlite://chordbook.db"),
		SentryDSN:    getEnv("SENTRY_DSN", ""),
		AuthMode:     getEnv("AUTH_MODE", "none"), // Default to no auth for self-hosted
		JWTSecret:    getEnv("JWT_SECRET", ""),
		AWSRegion:    getEnv("AWS_REGION", "us-east-1"),
		ExportBucket: getEnv("EXPORT_BUCKET", ""),
		MaxTranspose: getEnvInt("MAX_TRANSPOSE", defaultMaxTranspose),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil || n <= 0 {
		return defaultValue
	}
	return n
}

// IsGatewayMode returns true if running behind an authenticating gateway
func (c *Config) IsGatewayMode() bool {
	return c.AuthMode == "gateway"
}

// IsJWTMode returns true if the API validates bearer tokens itself
func (c *Config) IsJWTMode() bool {
	return c.AuthMode == "jwt"
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
