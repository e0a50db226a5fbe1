// Package main is the entrypoint for the bookings service.
package main

import (
	"context"
	"log/slog"
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
	defaultPort    = 5003
	defaultFixture = "fixtures/bookings.json"
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

	bookings, err := catalog.Load[model.BookingDays](cfg.FixturePath)
	if err != nil {
		logger.Error("failed to load booking ledger",
			slog.String("error", err.Error()),
			slog.String("path", cfg.FixturePath),
		)
		os.Exit(1)
	}
	logger.Info("loaded booking ledger", slog.Int("users", bookings.Len()))

	rt, err := app.Bootstrap(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to connect to Redis", slog.String("error", err.Error()))
		os.Exit(1)
	}

	bookingsHandler := handler.NewBookings(bookings, cfg.InternalServiceToken, rt.Audit, logger)

	r := setupRouter(bookingsHandler, cfg, logger)

	srv := server.New(
		r,
		cfg.AppPort,
		cfg.ReadTimeout,
		cfg.WriteTimeout,
		cfg.ShutdownTimeout,
		logger,
	)
	rt.RegisterShutdown(srv)

	logger.Info("starting bookings service",
		"port", cfg.AppPort,
		"env", cfg.AppEnv,
	)

	if err := srv.Run(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// setupRouter configures the chi router with all routes and middleware.
func setupRouter(h *handler.Bookings, cfg *config.Config, logger *slog.Logger) *chi.Mux {
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

	// Booking records carry payment details, so every record route is
	// behind the auth gate.
	r.Route("/bookings", func(r chi.Router) {
		r.Use(middleware.RequireAuth(logger))

		r.Get("/", h.List)
		r.Get("/{username}", h.Get)
	})

	r.NotFound(handler.NotFound)
	r.MethodNotAllowed(handler.MethodNotAllowed)

	return r
}
