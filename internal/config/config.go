// Package config provides application configuration management.
// Configuration is loaded from environment variables following 12-factor principles.
package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds all application configuration.
// All fields are populated from environment variables. The variable names
// match the deployment env file (POSTGRES_*, DB_HOST, SECRET_KEY, ...).
type Config struct {
	// Application settings
	AppEnv  string `env:"APP_ENV" envDefault:"development"`
	AppPort int    `env:"APP_PORT" envDefault:"8000"`

	// Application secret, used to key token digests
	SecretKey string `env:"SECRET_KEY,required"`

	// Debug enables verbose logging and stack traces in responses
	Debug bool `env:"DEBUG" envDefault:"false"`

	// Comma-separated list of accepted Host header values
	AllowedHosts string `env:"ALLOWED_HOSTS" envDefault:""`

	// Database (PostgreSQL). DATABASE_URL wins when set; otherwise the
	// URL is assembled from the individual POSTGRES_*/DB_* variables.
	DatabaseURLOverride string `env:"DATABASE_URL"`
	PostgresDB          string `env:"POSTGRES_DB" envDefault:"foodgram"`
	PostgresUser        string `env:"POSTGRES_USER" envDefault:"foodgram"`
	PostgresPassword    string `env:"POSTGRES_PASSWORD"`
	DBHost              string `env:"DB_HOST" envDefault:"db"`
	DBPort              int    `env:"DB_PORT" envDefault:"5432"`

	// Cache (Redis)
	RedisURL string `env:"REDIS_URL,required"`

	// Base URL for absolute links in responses (image URLs, pagination)
	BaseURL string `env:"BASE_URL" envDefault:"http://localhost:8000"`

	// Directory where uploaded recipe images are stored
	MediaRoot string `env:"MEDIA_ROOT" envDefault:"/app/media"`

	// Default page size for paginated list endpoints
	PageSize int `env:"PAGE_SIZE" envDefault:"6"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// Server timeouts
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"5s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"10s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`

	// CORS configuration
	// Comma-separated list of allowed origins (e.g., "https://foodgram.example")
	CORSAllowedOrigins string `env:"CORS_ALLOWED_ORIGINS" envDefault:""`

	// Request body size limit in bytes (default 4MB; recipe images are inlined)
	MaxRequestBodySize int64 `env:"MAX_REQUEST_BODY_SIZE" envDefault:"4194304"`
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// DatabaseURL returns the PostgreSQL connection string.
func (c *Config) DatabaseURL() string {
	if c.DatabaseURLOverride != "" {
		return c.DatabaseURLOverride
	}

	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.PostgresUser, c.PostgresPassword),
		Host:   fmt.Sprintf("%s:%d", c.DBHost, c.DBPort),
		Path:   "/" + c.PostgresDB,
	}
	return u.String()
}

// GetAllowedHosts parses the comma-separated host list into a slice.
func (c *Config) GetAllowedHosts() []string {
	return splitCommaList(c.AllowedHosts)
}

// GetCORSAllowedOrigins parses the comma-separated origins string into a slice.
func (c *Config) GetCORSAllowedOrigins() []string {
	return splitCommaList(c.CORSAllowedOrigins)
}

func splitCommaList(s string) []string {
	if s == "" {
		return nil
	}

	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))

	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}

// Load parses environment variables and returns a Config.
// Returns an error if required variables are missing.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}
