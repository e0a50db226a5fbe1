package config

import (
	"os"
	"testing"
	"time"
)

func TestConfig_Defaults(t *testing.T) {
	for _, key := range []string{"APP_ENV", "APP_PORT", "FIXTURE_PATH", "LOG_LEVEL", "REDIS_URL", "MOVIE_SERVICE_URL", "INTERNAL_SERVICE_TOKEN"} {
		os.Unsetenv(key)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if cfg.AppEnv != "development" {
		t.Errorf("expected default AppEnv 'development', got %s", cfg.AppEnv)
	}
	if cfg.AppPort != 0 {
		t.Errorf("expected unset AppPort 0, got %d", cfg.AppPort)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("expected default LogLevel 'info', got %s", cfg.LogLevel)
	}
	if cfg.MovieServiceURL != "http://127.0.0.1:5001" {
		t.Errorf("unexpected default movie service URL: %s", cfg.MovieServiceURL)
	}
	if cfg.BookingServiceURL != "http://127.0.0.1:5003" {
		t.Errorf("unexpected default booking service URL: %s", cfg.BookingServiceURL)
	}
	if cfg.InternalServiceToken == "" {
		t.Error("expected a development default for the internal service token")
	}
	if cfg.DownstreamTimeout != 10*time.Second {
		t.Errorf("expected default downstream timeout 10s, got %s", cfg.DownstreamTimeout)
	}
	if !cfg.RateLimitEnabled {
		t.Error("expected rate limiting enabled by default")
	}
	if cfg.RateLimitServicePerMinute != 100 || cfg.RateLimitEndpointPerMinute != 60 {
		t.Errorf("unexpected rate limit defaults: %d/%d",
			cfg.RateLimitServicePerMinute, cfg.RateLimitEndpointPerMinute)
	}
}

func TestConfig_FromEnvironment(t *testing.T) {
	os.Setenv("APP_PORT", "5001")
	os.Setenv("FIXTURE_PATH", "/data/movies.json")
	os.Setenv("REDIS_URL", "redis://localhost:6379")
	defer func() {
		os.Unsetenv("APP_PORT")
		os.Unsetenv("FIXTURE_PATH")
		os.Unsetenv("REDIS_URL")
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if cfg.AppPort != 5001 {
		t.Errorf("expected AppPort 5001, got %d", cfg.AppPort)
	}
	if cfg.FixturePath != "/data/movies.json" {
		t.Errorf("expected FixturePath set, got %s", cfg.FixturePath)
	}
	if cfg.RedisURL != "redis://localhost:6379" {
		t.Errorf("expected RedisURL set, got %s", cfg.RedisURL)
	}
}

func TestConfig_ApplyDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.ApplyDefaults(5002, "fixtures/showtimes.json")

	if cfg.AppPort != 5002 {
		t.Errorf("expected default port applied, got %d", cfg.AppPort)
	}
	if cfg.FixturePath != "fixtures/showtimes.json" {
		t.Errorf("expected default fixture path applied, got %s", cfg.FixturePath)
	}

	cfg = &Config{AppPort: 9000, FixturePath: "/custom.json"}
	cfg.ApplyDefaults(5002, "fixtures/showtimes.json")

	if cfg.AppPort != 9000 || cfg.FixturePath != "/custom.json" {
		t.Errorf("explicit values overridden: %+v", cfg)
	}
}

func TestConfig_GetCORSAllowedOrigins(t *testing.T) {
	cfg := &Config{CORSAllowedOrigins: "https://a.example.com, https://b.example.com ,"}

	origins := cfg.GetCORSAllowedOrigins()
	if len(origins) != 2 {
		t.Fatalf("expected 2 origins, got %v", origins)
	}
	if origins[0] != "https://a.example.com" || origins[1] != "https://b.example.com" {
		t.Errorf("unexpected origins: %v", origins)
	}

	cfg = &Config{}
	if cfg.GetCORSAllowedOrigins() != nil {
		t.Error("expected nil for empty origins")
	}
}
