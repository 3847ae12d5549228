package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/bradmoore314/rsvp-management-app-sub000/internal/model"
)

// ErrHostKeyNotFound is returned when a host key does not exist or is revoked.
var ErrHostKeyNotFound = errors.New("host key not found")

const hostKeyColumns = `id, host_email, key_hash, key_prefix, rate_limit_tier, name, revoked_at, last_used_at, created_at`

// CreateHostKey inserts a new host key.
func (r *Repository) CreateHostKey(ctx context.Context, key *model.HostKey) error {
	query := `
		INSERT INTO host_keys (id, host_email, key_hash, key_prefix, rate_limit_tier, name, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.pool.Exec(ctx, query,
		key.ID,
		key.HostEmail,
		key.KeyHash,
		key.KeyPrefix,
		key.RateLimitTier,
		key.Name,
		key.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create host key: %w", err)
	}

	return nil
}

// GetHostKeysByPrefix returns active keys sharing a lookup prefix.
// Callers verify the full secret against each candidate hash.
func (r *Repository) GetHostKeysByPrefix(ctx context.Context, prefix string) ([]*model.HostKey, error) {
	query := `
		SELECT ` + hostKeyColumns + `
		FROM host_keys
		WHERE key_prefix = $1 AND revoked_at IS NULL
	`

	rows, err := r.pool.Query(ctx, query, prefix)
	if err != nil {
		return nil, fmt.Errorf("failed to get host keys by prefix: %w", err)
	}
	defer rows.Close()

	var keys []*model.HostKey
	for rows.Next() {
		key, err := scanHostKey(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan host key: %w", err)
		}
		keys = append(keys, key)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating host keys: %w", err)
	}

	return keys, nil
}

// RevokeHostKey sets revoked_at on an active key.
func (r *Repository) RevokeHostKey(ctx context.Context, id string) error {
	query := `
		UPDATE host_keys
		SET revoked_at = $2
		WHERE id = $1 AND revoked_at IS NULL
	`

	result, err := r.pool.Exec(ctx, query, id, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to revoke host key: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrHostKeyNotFound
	}

	return nil
}

// UpdateHostKeyLastUsed records the time of the latest successful authentication.
func (r *Repository) UpdateHostKeyLastUsed(ctx context.Context, id string) error {
	query := `UPDATE host_keys SET last_used_at = $2 WHERE id = $1`

	if _, err := r.pool.Exec(ctx, query, id, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to update host key last used: %w", err)
	}

	return nil
}

func scanHostKey(row pgx.Row) (*model.HostKey, error) {
	var key model.HostKey
	err := row.Scan(
		&key.ID,
		&key.HostEmail,
		&key.KeyHash,
		&key.KeyPrefix,
		&key.RateLimitTier,
		&key.Name,
		&key.RevokedAt,
		&key.LastUsedAt,
		&key.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &key, nil
}
