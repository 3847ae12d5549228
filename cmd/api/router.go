package main

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/bradmoore314/rsvp-management-app-sub000/internal/config"
	"github.com/bradmoore314/rsvp-management-app-sub000/internal/handler"
	"github.com/bradmoore314/rsvp-management-app-sub000/internal/metrics"
	"github.com/bradmoore314/rsvp-management-app-sub000/internal/middleware"
)

type routerDeps struct {
	cfg      *config.Config
	logger   *slog.Logger
	recorder *metrics.InMemoryRecorder

	keys      middleware.HostKeyStore
	authCache middleware.AuthCache
	limiter   middleware.RateLimiter
	db        handler.HealthChecker
	cache     handler.HealthChecker

	dashboards handler.DashboardReader
	responses  handler.ResponseSubmitter
}

// newRouter configures the chi router with all routes and middleware.
func newRouter(d routerDeps) *chi.Mux {
	cfg := d.cfg

	h := handler.New()
	healthHandler := handler.NewHealthHandler(d.db, d.cache, d.logger)
	metricsHandler := handler.NewMetricsHandler(d.recorder)
	dashboardHandler := handler.NewDashboardHandler(d.dashboards, d.logger, d.recorder)
	responseHandler := handler.NewResponseHandler(d.responses, d.logger)

	authCfg := middleware.AuthConfig{
		Logger: d.logger,
		Keys:   d.keys,
		Cache:  d.authCache,
	}

	rateLimitCfg := middleware.RateLimitConfig{
		Logger:        d.logger,
		Limiter:       d.limiter,
		Metrics:       d.recorder,
		APIEnabled:    cfg.RateLimitAPIEnabled,
		SubmitEnabled: cfg.RateLimitSubmitEnabled,
		SubmitRPS:     cfg.RateLimitSubmitRPS,
		SubmitBurst:   cfg.RateLimitSubmitBurst,
	}

	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(d.logger))
	r.Use(middleware.Recoverer(d.logger, cfg.IsDevelopment()))
	r.Use(middleware.Security(middleware.SecurityConfig{IsDevelopment: cfg.IsDevelopment()}))
	r.Use(middleware.CORS(middleware.CORSConfig{AllowedOrigins: cfg.GetCORSAllowedOrigins()}))
	r.Use(middleware.MaxBodySize(cfg.MaxRequestBodySize))

	r.Get("/", h.Hello)
	r.Get("/healthz", healthHandler.Healthz)
	r.Get("/readyz", healthHandler.Readyz)
	r.Get("/metrics", metricsHandler.Metrics)

	r.Route("/api/v1/events/{eventID}", func(r chi.Router) {
		r.Use(middleware.Auth(authCfg))
		r.Use(middleware.RateLimitAPI(rateLimitCfg))

		r.Get("/dashboard", dashboardHandler.Dashboard)
		r.Get("/responses", dashboardHandler.Responses)
		r.Get("/export", dashboardHandler.Export)
	})

	r.With(middleware.RateLimitSubmit(rateLimitCfg)).Post("/rsvp/{inviteID}", responseHandler.Submit)

	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.MethodNotAllowed)

	return r
}
