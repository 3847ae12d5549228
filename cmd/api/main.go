// Package main is the entrypoint for the RSVP dashboard API server.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/bradmoore314/rsvp-management-app-sub000/internal/cache"
	"github.com/bradmoore314/rsvp-management-app-sub000/internal/config"
	"github.com/bradmoore314/rsvp-management-app-sub000/internal/dashboard"
	"github.com/bradmoore314/rsvp-management-app-sub000/internal/metrics"
	"github.com/bradmoore314/rsvp-management-app-sub000/internal/repository"
	"github.com/bradmoore314/rsvp-management-app-sub000/internal/server"
	"github.com/bradmoore314/rsvp-management-app-sub000/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := initLogger(cfg)

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	repo, err := repository.New(ctx, cfg.DatabaseURL, repository.PoolOptions{
		MaxConns: cfg.DatabaseMaxConns,
		MinConns: cfg.DatabaseMinConns,
	})
	if err != nil {
		logger.Error(
			"failed to connect to database",
			slog.String("error", sanitizeError(err, cfg.DatabaseURL)),
			slog.String("database_url", redactURL(cfg.DatabaseURL)),
		)
		return errConnect
	}
	logger.Info("connected to database", slog.String("database_url", redactURL(cfg.DatabaseURL)))

	cacheClient, err := cache.New(ctx, cfg.RedisURL, cache.Options{
		PoolSize:     cfg.RedisPoolSize,
		MinIdleConns: cfg.RedisMinIdleConns,
	})
	if err != nil {
		repo.Close()
		logger.Error(
			"failed to connect to Redis",
			slog.String("error", sanitizeError(err, cfg.RedisURL)),
			slog.String("redis_url", redactURL(cfg.RedisURL)),
		)
		return errConnect
	}
	logger.Info("connected to Redis", slog.String("redis_url", redactURL(cfg.RedisURL)))

	recorder := metrics.NewInMemory()
	dashboards := service.NewDashboardService(repo, logger, recorder, dashboard.ExportOptions{
		QuoteCSV: cfg.ExportCSVQuoting,
	})
	responses := service.NewResponseService(repo, logger, recorder)

	r := newRouter(routerDeps{
		cfg:        cfg,
		logger:     logger,
		recorder:   recorder,
		keys:       repo,
		authCache:  cacheClient,
		limiter:    cacheClient,
		db:         repo,
		cache:      cacheClient,
		dashboards: dashboards,
		responses:  responses,
	})

	srv := server.New(r, server.Options{
		Port:            cfg.AppPort,
		ReadTimeout:     cfg.ReadTimeout,
		WriteTimeout:    cfg.WriteTimeout,
		ShutdownTimeout: cfg.ShutdownTimeout,
	}, logger)

	// Closed after the HTTP server drains, Postgres last.
	srv.OnShutdown("postgres", func(context.Context) error {
		repo.Close()
		return nil
	})
	srv.OnShutdown("redis", func(context.Context) error {
		return cacheClient.Close()
	})

	logger.Info("starting server",
		"port", cfg.AppPort,
		"env", cfg.AppEnv,
		"csv_quoting", cfg.ExportCSVQuoting,
	)

	return srv.Run(ctx)
}

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}

	var h slog.Handler
	if strings.EqualFold(cfg.LogFormat, "text") {
		h = slog.NewTextHandler(os.Stdout, opts)
	} else {
		h = slog.NewJSONHandler(os.Stdout, opts)
	}

	logger := slog.New(h).With("service", "rsvp-dashboard")
	slog.SetDefault(logger)

	return logger
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
