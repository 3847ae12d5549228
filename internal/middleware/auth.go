package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/bradmoore314/rsvp-management-app-sub000/internal/auth"
	"github.com/bradmoore314/rsvp-management-app-sub000/internal/model"
)

// defaultMinAuthDuration pads every auth attempt so failures and cache hits
// take the same time.
const defaultMinAuthDuration = 200 * time.Millisecond

// HostKeyStore looks up host keys for verification.
type HostKeyStore interface {
	GetHostKeysByPrefix(ctx context.Context, prefix string) ([]*model.HostKey, error)
	UpdateHostKeyLastUsed(ctx context.Context, id string) error
}

// AuthCache caches resolved auth contexts by key hash.
type AuthCache interface {
	GetAuthContext(ctx context.Context, cacheKey string) (*model.AuthContext, error)
	SetAuthContext(ctx context.Context, cacheKey string, auth *model.AuthContext) error
}

// AuthConfig holds configuration for the auth middleware.
type AuthConfig struct {
	Logger      *slog.Logger
	Keys        HostKeyStore
	Cache       AuthCache
	MinDuration time.Duration
}

// Auth authenticates host requests by API key and stores the resolved
// AuthContext on the request context.
func Auth(cfg AuthConfig) func(http.Handler) http.Handler {
	minDuration := cfg.MinDuration
	if minDuration <= 0 {
		minDuration = defaultMinAuthDuration
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			authCtx, cacheHit, reason := authenticate(r, cfg)

			if elapsed := time.Since(start); elapsed < minDuration {
				time.Sleep(minDuration - elapsed)
			}

			if authCtx == nil {
				cfg.Logger.Warn("authentication failed",
					slog.String("reason", reason),
					slog.String("ip", r.RemoteAddr),
					slog.String("endpoint", r.Method+" "+r.URL.Path),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid or missing host key")
				return
			}

			cfg.Logger.Debug("authentication successful",
				slog.String("key_id", authCtx.KeyID),
				slog.String("key_prefix", authCtx.KeyPrefix),
				slog.Bool("cache_hit", cacheHit),
				slog.String("request_id", GetRequestID(r.Context())),
			)

			setLoggedKeyID(r.Context(), authCtx.KeyID)
			next.ServeHTTP(w, r.WithContext(auth.ContextWithAuth(r.Context(), authCtx)))
		})
	}
}

// authenticate resolves the request's key. On failure it returns a reason
// for the log line.
func authenticate(r *http.Request, cfg AuthConfig) (*model.AuthContext, bool, string) {
	ctx := r.Context()

	key := extractHostKey(r)
	if key == "" {
		return nil, false, "missing_key"
	}

	parsed, err := auth.ParseHostKey(key)
	if err != nil {
		return nil, false, "invalid_format"
	}

	cacheKey := auth.CacheKey(key)
	if cached, err := cfg.Cache.GetAuthContext(ctx, cacheKey); err != nil {
		cfg.Logger.Warn("auth cache read failed", slog.String("error", err.Error()))
	} else if cached != nil {
		return cached, true, ""
	}

	candidates, err := cfg.Keys.GetHostKeysByPrefix(ctx, parsed.Prefix)
	if err != nil {
		cfg.Logger.Error("database error during auth",
			slog.String("error", err.Error()),
			slog.String("request_id", GetRequestID(ctx)),
		)
		return nil, false, "lookup_failed"
	}

	var matched *model.HostKey
	for _, k := range candidates {
		if k.IsRevoked() {
			continue
		}
		if ok, err := auth.VerifyKey(key, k.KeyHash); err == nil && ok {
			matched = k
			break
		}
	}
	if matched == nil {
		return nil, false, "invalid_key"
	}

	authCtx := &model.AuthContext{
		KeyID:         matched.ID,
		KeyPrefix:     matched.KeyPrefix,
		HostEmail:     matched.HostEmail,
		RateLimitTier: matched.RateLimitTier,
	}

	if err := cfg.Cache.SetAuthContext(ctx, cacheKey, authCtx); err != nil {
		cfg.Logger.Warn("auth cache write failed", slog.String("error", err.Error()))
	}

	go func(id string) {
		bg, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		if err := cfg.Keys.UpdateHostKeyLastUsed(bg, id); err != nil {
			cfg.Logger.Warn("update host key last used failed",
				slog.String("key_id", id),
				slog.String("error", err.Error()),
			)
		}
	}(matched.ID)

	return authCtx, false, ""
}

// extractHostKey reads "Authorization: Bearer <key>" or "X-API-Key: <key>".
func extractHostKey(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		if token, ok := strings.CutPrefix(h, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
	}
	return strings.TrimSpace(r.Header.Get("X-API-Key"))
}
