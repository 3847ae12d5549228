// Package config provides application configuration management.
// Configuration is loaded from environment variables following 12-factor principles.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config holds all application configuration.
// All fields are populated from environment variables.
type Config struct {
	// Application settings
	AppEnv  string `env:"APP_ENV" envDefault:"development"`
	AppPort int    `env:"APP_PORT" envDefault:"8080"`

	// Database (PostgreSQL)
	DatabaseURL      string `env:"DATABASE_URL,required"`
	DatabaseMaxConns int32  `env:"DATABASE_MAX_CONNS" envDefault:"25"`
	DatabaseMinConns int32  `env:"DATABASE_MIN_CONNS" envDefault:"5"`

	// Cache (Redis)
	RedisURL          string `env:"REDIS_URL,required"`
	RedisPoolSize     int    `env:"REDIS_POOL_SIZE" envDefault:"50"`
	RedisMinIdleConns int    `env:"REDIS_MIN_IDLE_CONNS" envDefault:"10"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// Server timeouts
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"5s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"30s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`

	// Rate limiting. Host routes are limited per key tier, guest
	// submissions per client IP.
	RateLimitAPIEnabled    bool    `env:"RATE_LIMIT_API_ENABLED" envDefault:"true"`
	RateLimitSubmitEnabled bool    `env:"RATE_LIMIT_SUBMIT_ENABLED" envDefault:"true"`
	RateLimitSubmitRPS     float64 `env:"RATE_LIMIT_SUBMIT_RPS" envDefault:"0.2"`
	RateLimitSubmitBurst   int     `env:"RATE_LIMIT_SUBMIT_BURST" envDefault:"5"`

	// ExportCSVQuoting quotes CSV export fields per RFC 4180. Off by default
	// so exports stay byte-compatible with existing spreadsheets.
	ExportCSVQuoting bool `env:"EXPORT_CSV_QUOTING" envDefault:"false"`

	// CORS configuration
	// Comma-separated list of allowed origins (e.g., "https://example.com,https://*.example.com")
	CORSAllowedOrigins string `env:"CORS_ALLOWED_ORIGINS" envDefault:""`

	// Request body size limit in bytes (default 64KB)
	MaxRequestBodySize int64 `env:"MAX_REQUEST_BODY_SIZE" envDefault:"65536"`
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// GetCORSAllowedOrigins parses the comma-separated origins string into a slice.
func (c *Config) GetCORSAllowedOrigins() []string {
	if c.CORSAllowedOrigins == "" {
		return nil
	}

	origins := strings.Split(c.CORSAllowedOrigins, ",")
	result := make([]string, 0, len(origins))

	for _, origin := range origins {
		trimmed := strings.TrimSpace(origin)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}

// Validate checks values the env tags cannot express.
func (c *Config) Validate() error {
	var problems []string

	if c.AppPort < 1 || c.AppPort > 65535 {
		problems = append(problems, fmt.Sprintf("APP_PORT %d out of range", c.AppPort))
	}
	switch strings.ToLower(c.LogFormat) {
	case "json", "text":
	default:
		problems = append(problems, fmt.Sprintf("LOG_FORMAT %q must be json or text", c.LogFormat))
	}
	if c.DatabaseMinConns > c.DatabaseMaxConns {
		problems = append(problems, "DATABASE_MIN_CONNS must not exceed DATABASE_MAX_CONNS")
	}
	if c.RateLimitSubmitEnabled && (c.RateLimitSubmitRPS <= 0 || c.RateLimitSubmitBurst < 1) {
		problems = append(problems, "RATE_LIMIT_SUBMIT_RPS and RATE_LIMIT_SUBMIT_BURST must be positive")
	}
	if c.MaxRequestBodySize <= 0 {
		problems = append(problems, "MAX_REQUEST_BODY_SIZE must be positive")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
	}
	return nil
}

// Load reads an optional .env file, then parses environment variables.
// Variables already set in the environment win over the file.
// Returns an error if required variables are missing or values are invalid.
func Load() (*Config, error) {
	return LoadFile(".env")
}

// LoadFile is Load with an explicit dotenv path. A missing file is not an error.
func LoadFile(path string) (*Config, error) {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
