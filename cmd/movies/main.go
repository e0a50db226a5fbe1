// Package main is the entrypoint for the movies service.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/cinebook/cinebook/internal/app"
	"github.com/cinebook/cinebook/internal/catalog"
	"github.com/cinebook/cinebook/internal/config"
	"github.com/cinebook/cinebook/internal/handler"
	"github.com/cinebook/cinebook/internal/middleware"
	"github.com/cinebook/cinebook/internal/model"
	"github.com/cinebook/cinebook/internal/server"
)

const (
	defaultPort    = 5001
	defaultFixture = "fixtures/movies.json"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg.ApplyDefaults(defaultPort, defaultFixture)

	logger := app.InitLogger(cfg)

	movies, err := catalog.Load[model.Movie](cfg.FixturePath)
	if err != nil {
		logger.Error("failed to load movie catalog",
			slog.String("error", err.Error()),
			slog.String("path", cfg.FixturePath),
		)
		os.Exit(1)
	}
	logger.Info("loaded movie catalog", slog.Int("movies", movies.Len()))

	rt, err := app.Bootstrap(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to connect to Redis", slog.String("error", err.Error()))
		os.Exit(1)
	}

	moviesHandler := handler.NewMovies(movies, rt.Audit, logger)

	r := setupRouter(moviesHandler, rt.Limiter(), cfg, logger)

	srv := server.New(
		r,
		cfg.AppPort,
		cfg.ReadTimeout,
		cfg.WriteTimeout,
		cfg.ShutdownTimeout,
		logger,
	)
	rt.RegisterShutdown(srv)

	logger.Info("starting movies service",
		"port", cfg.AppPort,
		"env", cfg.AppEnv,
	)

	if err := srv.Run(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// setupRouter configures the chi router with all routes and middleware.
func setupRouter(h *handler.Movies, limiter middleware.Limiter, cfg *config.Config, logger *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recoverer(logger))

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowedOrigins = cfg.GetCORSAllowedOrigins()
	r.Use(middleware.CORS(corsCfg))

	// Service-level rate limit covers every route
	r.Use(middleware.RateLimit(middleware.RateLimitConfig{
		Logger:    logger,
		Limiter:   limiter,
		Enabled:   cfg.RateLimitEnabled,
		Scope:     "movies",
		PerMinute: cfg.RateLimitServicePerMinute,
		Burst:     cfg.RateLimitServiceBurst,
	}))

	// Per-endpoint quotas on top of the service bucket
	endpointLimit := func(scope string) func(http.Handler) http.Handler {
		return middleware.RateLimit(middleware.RateLimitConfig{
			Logger:    logger,
			Limiter:   limiter,
			Enabled:   cfg.RateLimitEnabled,
			Scope:     scope,
			PerMinute: cfg.RateLimitEndpointPerMinute,
			Burst:     cfg.RateLimitEndpointBurst,
		})
	}

	r.Get("/", h.Index)
	r.With(endpointLimit("movies:list")).Get("/movies", h.List)
	r.With(endpointLimit("movies:get")).Get("/movies/{id}", h.Get)

	r.NotFound(handler.NotFound)
	r.MethodNotAllowed(handler.MethodNotAllowed)

	return r
}
