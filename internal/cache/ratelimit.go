package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	rateLimitHostPrefix   = "ratelimit:hostkey:"
	rateLimitSubmitPrefix = "ratelimit:submit:"
	rateLimitHostTTL      = 120 * time.Second
	rateLimitSubmitTTL    = 60 * time.Second
)

// RateLimitResult contains the result of a rate limit check.
type RateLimitResult struct {
	Allowed    bool
	Remaining  int64
	ResetAt    time.Time
	RetryAfter time.Duration
}

// tokenBucketScript refills and consumes one token atomically.
// Returns {allowed, retry_after_seconds, remaining_tokens}.
var tokenBucketScript = redis.NewScript(`
	local key = KEYS[1]
	local rate = tonumber(ARGV[1])
	local burst = tonumber(ARGV[2])
	local now = tonumber(ARGV[3])
	local ttl = tonumber(ARGV[4])

	local data = redis.call('HMGET', key, 'tokens', 'last_update')
	local tokens = tonumber(data[1]) or burst
	local last_update = tonumber(data[2]) or now

	tokens = math.min(burst, tokens + ((now - last_update) * rate))

	local allowed = 0
	local retry_after = 0
	if tokens >= 1 then
		tokens = tokens - 1
		allowed = 1
	else
		retry_after = math.ceil((1 - tokens) / rate)
	end

	redis.call('HSET', key, 'tokens', tokens, 'last_update', now)
	redis.call('EXPIRE', key, ttl)

	return {allowed, retry_after, math.floor(tokens)}
`)

// CheckHostRateLimit consumes a token from a host key's bucket.
// A zero rate means the tier is unlimited.
func (c *Cache) CheckHostRateLimit(ctx context.Context, keyID string, ratePerMinute, burst int) (*RateLimitResult, error) {
	if ratePerMinute == 0 {
		return unlimited(burst), nil
	}

	rate := float64(ratePerMinute) / 60.0
	return c.checkRateLimit(ctx, rateLimitHostPrefix+keyID, rate, burst, rateLimitHostTTL)
}

// CheckSubmitRateLimit consumes a token from a client IP's submission bucket.
// The IP is hashed before it is used as a key.
func (c *Cache) CheckSubmitRateLimit(ctx context.Context, ip string, ratePerSecond float64, burst int) (*RateLimitResult, error) {
	if ratePerSecond <= 0 {
		return unlimited(burst), nil
	}
	return c.checkRateLimit(ctx, rateLimitSubmitPrefix+hashIP(ip), ratePerSecond, burst, rateLimitSubmitTTL)
}

// checkRateLimit runs the bucket script. On Redis errors the request is
// allowed and the error is returned for logging.
func (c *Cache) checkRateLimit(ctx context.Context, key string, rate float64, burst int, ttl time.Duration) (*RateLimitResult, error) {
	now := time.Now()

	reply, err := tokenBucketScript.Run(ctx, c.client,
		[]string{key},
		rate, burst, now.Unix(), int(ttl.Seconds()),
	).Int64Slice()
	if err != nil {
		return unlimited(burst), fmt.Errorf("rate limit script: %w", err)
	}

	return bucketResult(reply, rate, now)
}

// bucketResult converts the script reply into a RateLimitResult.
func bucketResult(reply []int64, rate float64, now time.Time) (*RateLimitResult, error) {
	if len(reply) != 3 {
		return nil, fmt.Errorf("rate limit script: unexpected reply length %d", len(reply))
	}
	return &RateLimitResult{
		Allowed:    reply[0] == 1,
		Remaining:  reply[2],
		ResetAt:    now.Add(time.Duration(float64(time.Second) / rate)),
		RetryAfter: time.Duration(reply[1]) * time.Second,
	}, nil
}

func unlimited(burst int) *RateLimitResult {
	return &RateLimitResult{
		Allowed:   true,
		Remaining: int64(burst),
		ResetAt:   time.Now().Add(time.Minute),
	}
}

// hashIP returns the first 8 bytes of the SHA-256 of ip, hex encoded.
func hashIP(ip string) string {
	hash := sha256.Sum256([]byte(ip))
	return hex.EncodeToString(hash[:8])
}
