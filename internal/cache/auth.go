package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/bradmoore314/rsvp-management-app-sub000/internal/model"
)

const (
	authCachePrefix = "auth:host:"
	authCacheTTL    = 5 * time.Minute
)

// cachedAuthContext is the JSON form of an auth context stored in Redis.
type cachedAuthContext struct {
	KeyID         string `json:"key_id"`
	KeyPrefix     string `json:"key_prefix"`
	HostEmail     string `json:"host_email"`
	RateLimitTier string `json:"rate_limit_tier"`
}

// GetAuthContext returns the cached auth context for a key hash.
// A miss or a corrupt entry returns nil, nil.
func (c *Cache) GetAuthContext(ctx context.Context, cacheKey string) (*model.AuthContext, error) {
	data, err := c.client.Get(ctx, authCachePrefix+cacheKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("get auth context: %w", err)
	}

	return decodeAuthContext(data), nil
}

// SetAuthContext caches an auth context.
func (c *Cache) SetAuthContext(ctx context.Context, cacheKey string, auth *model.AuthContext) error {
	data, err := json.Marshal(cachedAuthContext{
		KeyID:         auth.KeyID,
		KeyPrefix:     auth.KeyPrefix,
		HostEmail:     auth.HostEmail,
		RateLimitTier: auth.RateLimitTier,
	})
	if err != nil {
		return fmt.Errorf("marshal auth context: %w", err)
	}

	return c.client.Set(ctx, authCachePrefix+cacheKey, data, authCacheTTL).Err()
}

// DeleteAuthContext removes a cached auth context after revocation.
func (c *Cache) DeleteAuthContext(ctx context.Context, cacheKey string) error {
	return c.client.Del(ctx, authCachePrefix+cacheKey).Err()
}

func decodeAuthContext(data []byte) *model.AuthContext {
	var cached cachedAuthContext
	if err := json.Unmarshal(data, &cached); err != nil || cached.KeyID == "" {
		return nil
	}
	return &model.AuthContext{
		KeyID:         cached.KeyID,
		KeyPrefix:     cached.KeyPrefix,
		HostEmail:     cached.HostEmail,
		RateLimitTier: cached.RateLimitTier,
	}
}
