// Package config provides service configuration management.
// Configuration is loaded from environment variables following 12-factor principles.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds the configuration for one cinema service.
// All fields are populated from environment variables; each service applies
// its own defaults for port and fixture path at startup.
type Config struct {
	// Application settings
	AppEnv  string `env:"APP_ENV" envDefault:"development"`
	AppPort int    `env:"APP_PORT"`

	// Path to the JSON fixture this service loads at boot.
	FixturePath string `env:"FIXTURE_PATH"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// Server timeouts
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"5s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"10s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`

	// Redis backs rate limiting and the optional audit stream.
	// When empty, rate limiting is disabled and audit records go to the log only.
	RedisURL string `env:"REDIS_URL"`

	// Rate limiting (movies and showtimes services)
	RateLimitEnabled           bool `env:"RATE_LIMIT_ENABLED" envDefault:"true"`
	RateLimitServicePerMinute  int  `env:"RATE_LIMIT_SERVICE_PER_MINUTE" envDefault:"100"`
	RateLimitServiceBurst      int  `env:"RATE_LIMIT_SERVICE_BURST" envDefault:"20"`
	RateLimitEndpointPerMinute int  `env:"RATE_LIMIT_ENDPOINT_PER_MINUTE" envDefault:"60"`
	RateLimitEndpointBurst     int  `env:"RATE_LIMIT_ENDPOINT_BURST" envDefault:"10"`

	// Audit stream (requires Redis)
	AuditStreamEnabled bool `env:"AUDIT_STREAM_ENABLED" envDefault:"false"`

	// Downstream service base URLs (users service only)
	MovieServiceURL   string `env:"MOVIE_SERVICE_URL" envDefault:"http://127.0.0.1:5001"`
	BookingServiceURL string `env:"BOOKING_SERVICE_URL" envDefault:"http://127.0.0.1:5003"`

	// Shared secret for service-to-service calls. The bookings service
	// returns unfiltered records only to callers presenting this exact
	// value. Must be overridden outside development; empty disables the
	// privileged path entirely.
	InternalServiceToken string `env:"INTERNAL_SERVICE_TOKEN" envDefault:"dev-internal-token"`

	// Bounded timeout for downstream calls
	DownstreamTimeout time.Duration `env:"DOWNSTREAM_TIMEOUT" envDefault:"10s"`

	// CORS configuration
	// Comma-separated list of allowed origins (e.g., "https://example.com,https://app.example.com")
	CORSAllowedOrigins string `env:"CORS_ALLOWED_ORIGINS" envDefault:""`
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

// Load parses environment variables and returns a Config.
// Port zero means "use the service default"; fixture path likewise.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// ApplyDefaults fills in the per-service port and fixture path when the
// environment did not set them.
func (c *Config) ApplyDefaults(port int, fixturePath string) {
	if c.AppPort == 0 {
		c.AppPort = port
	}
	if c.FixturePath == "" {
		c.FixturePath = fixturePath
	}
}
