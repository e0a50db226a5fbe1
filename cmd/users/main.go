// Package main is the entrypoint for the users service.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/cinebook/cinebook/internal/app"
	"github.com/cinebook/cinebook/internal/catalog"
	"github.com/cinebook/cinebook/internal/client"
	"github.com/cinebook/cinebook/internal/config"
	"github.com/cinebook/cinebook/internal/gateway"
	"github.com/cinebook/cinebook/internal/handler"
	"github.com/cinebook/cinebook/internal/middleware"
	"github.com/cinebook/cinebook/internal/model"
	"github.com/cinebook/cinebook/internal/server"
)

const (
	defaultPort    = 5000
	defaultFixture = "fixtures/users.json"
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

	users, err := catalog.Load[model.User](cfg.FixturePath)
	if err != nil {
		logger.Error("failed to load user catalog",
			slog.String("error", err.Error()),
			slog.String("path", cfg.FixturePath),
		)
		os.Exit(1)
	}
	logger.Info("loaded user catalog", slog.Int("users", users.Len()))

	rt, err := app.Bootstrap(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to connect to Redis", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Downstream clients and the aggregation over them.
	bookingsClient := client.NewBookings(cfg.BookingServiceURL, cfg.DownstreamTimeout, cfg.InternalServiceToken)
	moviesClient := client.NewMovies(cfg.MovieServiceURL, cfg.DownstreamTimeout)
	gw := gateway.New(users, bookingsClient, moviesClient, rt.Audit, logger)

	usersHandler := handler.NewUsers(users, gw, rt.Audit, logger)

	r := setupRouter(usersHandler, cfg, logger)

	srv := server.New(
		r,
		cfg.AppPort,
		cfg.ReadTimeout,
		cfg.WriteTimeout,
		cfg.ShutdownTimeout,
		logger,
	)
	rt.RegisterShutdown(srv)

	logger.Info("starting users service",
		"port", cfg.AppPort,
		"env", cfg.AppEnv,
		"movie_service_url", cfg.MovieServiceURL,
		"booking_service_url", cfg.BookingServiceURL,
	)

	if err := srv.Run(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// setupRouter configures the chi router with all routes and middleware.
func setupRouter(h *handler.Users, cfg *config.Config, logger *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recoverer(logger))

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowedOrigins = cfg.GetCORSAllowedOrigins()
	r.Use(middleware.CORS(corsCfg))

	// Discovery document (no auth required)
	r.Get("/", h.Index)

	// User resources (require authentication)
	r.Route("/users", func(r chi.Router) {
		r.Use(middleware.RequireAuth(logger))

		r.Get("/", h.List)
		r.Get("/{username}", h.Profile)
		r.Get("/{username}/bookings", h.Bookings)
		r.Get("/{username}/suggested", h.Suggested)
	})

	r.NotFound(handler.NotFound)
	r.MethodNotAllowed(handler.MethodNotAllowed)

	return r
}
