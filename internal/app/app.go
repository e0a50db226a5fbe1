// Package app holds bootstrap glue shared by the service entrypoints.
package app

import (
	"context"
	"log/slog"
	"os"

	"github.com/cinebook/cinebook/internal/audit"
	"github.com/cinebook/cinebook/internal/cache"
	"github.com/cinebook/cinebook/internal/config"
	"github.com/cinebook/cinebook/internal/middleware"
	"github.com/cinebook/cinebook/internal/server"
)

// InitLogger initializes the slog logger based on configuration and
// installs it as the default.
func InitLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLogLevel(cfg.LogLevel)}

	var h slog.Handler
	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(h)
	slog.SetDefault(logger)
	return logger
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Runtime holds the optional shared backends of one service process.
type Runtime struct {
	// Cache is nil when no Redis URL is configured.
	Cache *cache.Cache
	// Audit is never nil.
	Audit audit.Recorder
}

// Bootstrap connects optional backends. Without a Redis URL the service
// runs standalone: rate limiting is disabled and audit records go to the
// log only.
func Bootstrap(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Runtime, error) {
	rt := &Runtime{Audit: audit.NewLogRecorder(logger)}

	if cfg.RedisURL == "" {
		return rt, nil
	}

	c, err := cache.New(ctx, cfg.RedisURL)
	if err != nil {
		return nil, err
	}
	rt.Cache = c
	logger.Info("connected to Redis")

	if cfg.AuditStreamEnabled {
		rt.Audit = audit.NewStreamRecorder(c.Client(), logger)
	}

	return rt, nil
}

// Limiter returns the rate limit backend, or nil when Redis is not
// configured so the middleware passes through.
func (rt *Runtime) Limiter() middleware.Limiter {
	if rt.Cache == nil {
		return nil
	}
	return rt.Cache
}

// RegisterShutdown hooks the runtime's backends into the server's
// graceful shutdown.
func (rt *Runtime) RegisterShutdown(srv *server.Server) {
	if rt.Cache != nil {
		srv.OnShutdown("redis", func(ctx context.Context) error {
			return rt.Cache.Close()
		})
	}
}
