package middleware

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/bradmoore314/rsvp-management-app-sub000/internal/auth"
	"github.com/bradmoore314/rsvp-management-app-sub000/internal/cache"
	"github.com/bradmoore314/rsvp-management-app-sub000/internal/metrics"
	"github.com/bradmoore314/rsvp-management-app-sub000/internal/model"
)

// RateLimiter consumes tokens from per-key and per-IP buckets.
type RateLimiter interface {
	CheckHostRateLimit(ctx context.Context, keyID string, ratePerMinute, burst int) (*cache.RateLimitResult, error)
	CheckSubmitRateLimit(ctx context.Context, ip string, ratePerSecond float64, burst int) (*cache.RateLimitResult, error)
}

// RateLimitConfig holds configuration for rate limiting middleware.
type RateLimitConfig struct {
	Logger  *slog.Logger
	Limiter RateLimiter
	Metrics metrics.Recorder

	// Host API, per key and tier.
	APIEnabled bool

	// Guest submissions, per client IP.
	SubmitEnabled bool
	SubmitRPS     float64
	SubmitBurst   int
}

func (cfg RateLimitConfig) recorder() metrics.Recorder {
	if cfg.Metrics == nil {
		return metrics.NewNoop()
	}
	return cfg.Metrics
}

// RateLimitAPI limits host requests per key. It must run after Auth.
func RateLimitAPI(cfg RateLimitConfig) func(http.Handler) http.Handler {
	rec := cfg.recorder()
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authCtx := auth.AuthFromContext(r.Context())
			if !cfg.APIEnabled || authCtx == nil {
				next.ServeHTTP(w, r)
				return
			}

			tier := model.LimitsForTier(authCtx.RateLimitTier)
			if tier.RequestsPerMinute == 0 {
				next.ServeHTTP(w, r)
				return
			}

			result, err := cfg.Limiter.CheckHostRateLimit(r.Context(), authCtx.KeyID, tier.RequestsPerMinute, tier.Burst)
			if err != nil {
				cfg.Logger.Error("rate limit check failed",
					slog.String("error", err.Error()),
					slog.String("key_id", authCtx.KeyID),
				)
			}
			if result == nil {
				next.ServeHTTP(w, r)
				return
			}

			setRateLimitHeaders(w, tier.RequestsPerMinute, result)
			if !result.Allowed {
				rec.IncRateLimited("api")
				cfg.Logger.Warn("rate limit exceeded",
					slog.String("type", "api"),
					slog.String("key_id", authCtx.KeyID),
					slog.String("endpoint", r.Method+" "+r.URL.Path),
					slog.Int64("retry_after_seconds", int64(result.RetryAfter.Seconds())),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				writeRateLimited(w, result.RetryAfter)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RateLimitSubmit limits guest submissions per client IP.
func RateLimitSubmit(cfg RateLimitConfig) func(http.Handler) http.Handler {
	rec := cfg.recorder()
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !cfg.SubmitEnabled {
				next.ServeHTTP(w, r)
				return
			}

			ip := ClientIP(r)
			result, err := cfg.Limiter.CheckSubmitRateLimit(r.Context(), ip, cfg.SubmitRPS, cfg.SubmitBurst)
			if err != nil {
				cfg.Logger.Error("submit rate limit check failed", slog.String("error", err.Error()))
			}
			if result == nil {
				next.ServeHTTP(w, r)
				return
			}

			if !result.Allowed {
				rec.IncRateLimited("submit")
				cfg.Logger.Warn("rate limit exceeded",
					slog.String("type", "submit"),
					slog.String("endpoint", r.Method+" "+r.URL.Path),
					slog.Int64("retry_after_seconds", int64(result.RetryAfter.Seconds())),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				writeRateLimited(w, result.RetryAfter)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func setRateLimitHeaders(w http.ResponseWriter, limit int, result *cache.RateLimitResult) {
	w.Header().Set("X-RateLimit-Limit", strconv.Itoa(limit))
	w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(result.Remaining, 10))
	w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))
}

func writeRateLimited(w http.ResponseWriter, retryAfter time.Duration) {
	seconds := max(1, int(retryAfter.Seconds()))
	w.Header().Set("Retry-After", strconv.Itoa(seconds))
	writeError(w, http.StatusTooManyRequests, "RATE_LIMITED",
		"Rate limit exceeded. Retry after "+strconv.Itoa(seconds)+" seconds.")
}

// ClientIP returns the request's client address without the port.
// chimiddleware.RealIP has already applied X-Forwarded-For / X-Real-IP.
func ClientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
