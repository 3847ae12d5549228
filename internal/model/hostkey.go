package model

import "time"

// RateLimitTier constants.
const (
	TierFree      = "free"
	TierPro       = "pro"
	TierUnlimited = "unlimited"
)

// RateLimitConfig defines rate limit parameters per tier.
type RateLimitConfig struct {
	RequestsPerMinute int
	Burst             int
}

// TierConfigs maps tier names to their rate limit configurations.
var TierConfigs = map[string]RateLimitConfig{
	TierFree:      {RequestsPerMinute: 60, Burst: 10},
	TierPro:       {RequestsPerMinute: 600, Burst: 50},
	TierUnlimited: {RequestsPerMinute: 0, Burst: 0}, // 0 means unlimited
}

// HostKey is an API key that lets a host read dashboards for their events.
type HostKey struct {
	ID            string     `json:"id"`
	HostEmail     string     `json:"host_email"`
	KeyHash       string     `json:"-"`
	KeyPrefix     string     `json:"key_prefix"`
	RateLimitTier string     `json:"rate_limit_tier"`
	Name          string     `json:"name,omitempty"`
	RevokedAt     *time.Time `json:"revoked_at,omitempty"`
	LastUsedAt    *time.Time `json:"last_used_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// IsRevoked returns true if the key has been revoked.
func (k *HostKey) IsRevoked() bool {
	return k.RevokedAt != nil
}

// GetRateLimitConfig returns the rate limit configuration for this key.
func (k *HostKey) GetRateLimitConfig() RateLimitConfig {
	return LimitsForTier(k.RateLimitTier)
}

// LimitsForTier returns a tier's limits. Unknown tiers get the free limits.
func LimitsForTier(tier string) RateLimitConfig {
	if config, ok := TierConfigs[tier]; ok {
		return config
	}
	return TierConfigs[TierFree]
}

// AuthContext identifies the host behind an authenticated request.
type AuthContext struct {
	KeyID         string
	KeyPrefix     string
	HostEmail     string
	RateLimitTier string
}
