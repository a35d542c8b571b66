// Command api runs the investor forum HTTP server.
package main

import (
	"context"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	"github.com/emilythestrangee/investor-hub/backend/internal/cache"
	"github.com/emilythestrangee/investor-hub/backend/internal/config"
	"github.com/emilythestrangee/investor-hub/backend/internal/database"
	"github.com/emilythestrangee/investor-hub/backend/internal/middleware"
	"github.com/emilythestrangee/investor-hub/backend/internal/observability"
	"github.com/emilythestrangee/investor-hub/backend/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := middleware.InitLogger(cfg.IsProduction())

	shutdownTracing, err := observability.InitTracing(observability.TracingConfig{
		Environment: cfg.Env,
		Enabled:     cfg.TracingEnabled,
	})
	if err != nil {
		logger.Error("failed to initialize tracing", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg)
	if err != nil {
		logger.Error("failed to initialize database", "error", err)
		os.Exit(1)
	}

	// Redis is optional; without it vote counts are read from the database.
	var client *redis.Client
	if cfg.RedisURL != "" {
		client, err = cache.Connect(context.Background(), cfg.RedisURL)
		if err != nil {
			logger.Warn("redis unavailable, vote count cache disabled", "error", err)
			client = nil
		}
	}
	counts := cache.NewVoteCounts(client, cfg.VoteCountTTL)

	srv := server.New(cfg, db, counts, logger).HTTPServer()

	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		logger.Error("failed to listen", "addr", srv.Addr, "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("server starting", "addr", ln.Addr().String(), "env", cfg.Env)
	err = serve(ctx, srv, ln, logger, shutdownTimeout,
		shutdownTracing,
		func(context.Context) error {
			if client != nil {
				return client.Close()
			}
			return nil
		},
		func(context.Context) error { return db.Close() },
	)
	if err != nil {
		logger.Error("server stopped", "error", err)
		stop()
		os.Exit(1)
	}
}
