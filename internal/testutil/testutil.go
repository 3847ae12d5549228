// Package testutil holds helpers shared by integration tests.
package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/bradmoore314/rsvp-management-app-sub000/internal/model"
)

// RequireEnv returns an environment variable or skips the test if missing.
func RequireEnv(t testing.TB, key string) string {
	t.Helper()
	value := os.Getenv(key)
	if value == "" {
		t.Skipf("%s not set", key)
	}
	return value
}

const advisoryLockID int64 = 731120

// AcquireDBLock grabs a global advisory lock to serialize DB tests.
func AcquireDBLock(ctx context.Context, pool *pgxpool.Pool) (func() error, error) {
	conn, err := pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}

	if _, err := conn.Exec(ctx, "SELECT pg_advisory_lock($1)", advisoryLockID); err != nil {
		conn.Release()
		return nil, fmt.Errorf("acquire advisory lock: %w", err)
	}

	unlock := func() error {
		defer conn.Release()
		if _, err := conn.Exec(ctx, "SELECT pg_advisory_unlock($1)", advisoryLockID); err != nil {
			return fmt.Errorf("release advisory lock: %w", err)
		}
		return nil
	}

	return unlock, nil
}

// MigrationFiles returns the up and down migration paths in apply order.
// Down migrations are returned newest first.
func MigrationFiles() (up, down []string, err error) {
	root, err := ProjectRoot()
	if err != nil {
		return nil, nil, err
	}

	dir := filepath.Join(root, "migrations")
	if up, err = filepath.Glob(filepath.Join(dir, "*.up.sql")); err != nil {
		return nil, nil, fmt.Errorf("list up migrations: %w", err)
	}
	if down, err = filepath.Glob(filepath.Join(dir, "*.down.sql")); err != nil {
		return nil, nil, fmt.Errorf("list down migrations: %w", err)
	}
	if len(up) == 0 {
		return nil, nil, fmt.Errorf("no migrations found in %s", dir)
	}

	slices.Sort(up)
	slices.Sort(down)
	slices.Reverse(down)
	return up, down, nil
}

// ResetSchema drops every table and re-applies all migrations.
func ResetSchema(ctx context.Context, pool *pgxpool.Pool) error {
	up, down, err := MigrationFiles()
	if err != nil {
		return err
	}

	for _, path := range down {
		if err := execFile(ctx, pool, path); err != nil {
			return fmt.Errorf("apply down migration: %w", err)
		}
	}
	for _, path := range up {
		if err := execFile(ctx, pool, path); err != nil {
			return fmt.Errorf("apply up migration: %w", err)
		}
	}

	return nil
}

func execFile(ctx context.Context, pool *pgxpool.Pool, path string) error {
	sql, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	if _, err := pool.Exec(ctx, string(sql)); err != nil {
		return fmt.Errorf("exec %s: %w", filepath.Base(path), err)
	}
	return nil
}

// FlushRedis clears the current Redis database.
func FlushRedis(ctx context.Context, client *redis.Client) error {
	return client.FlushDB(ctx).Err()
}

// ProjectRoot returns the project root directory.
func ProjectRoot() (string, error) {
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		return "", fmt.Errorf("failed to resolve testutil path")
	}
	root := filepath.Clean(filepath.Join(filepath.Dir(filename), "..", ".."))
	return root, nil
}

// ============================================================================
// Test Data Factories
// ============================================================================

// NewTestEvent creates a test event two weeks out.
func NewTestEvent(t testing.TB, hostEmail string) *model.EventSummary {
	t.Helper()
	return &model.EventSummary{
		ID:             UniqueID("evt"),
		Title:          "Test Event",
		Date:           time.Now().UTC().Truncate(24*time.Hour).AddDate(0, 0, 14),
		Time:           "18:00",
		Location:       "Test Hall",
		HostEmail:      hostEmail,
		DietaryOptions: []string{"Vegetarian", "Vegan", "Gluten-Free"},
	}
}

// NewTestInvite creates a test invite for an event.
func NewTestInvite(t testing.TB, eventID string) *model.Invite {
	t.Helper()
	return &model.Invite{
		ID:        UniqueID("inv"),
		EventID:   eventID,
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}
}

// NewTestResponse creates a test response for an invite.
func NewTestResponse(t testing.TB, inv *model.Invite, name string, submittedAt time.Time) *model.Response {
	t.Helper()
	return &model.Response{
		ID:             UniqueID("resp"),
		EventID:        inv.EventID,
		InviteID:       inv.ID,
		GuestName:      name,
		GuestEmail:     name + "@example.com",
		Attendance:     model.AttendanceYes,
		GuestCount:     1,
		DietaryOptions: []string{"Vegan"},
		SubmittedAt:    submittedAt.UTC().Truncate(time.Microsecond),
	}
}

// NewTestHostKey creates a test host key with sensible defaults.
func NewTestHostKey(t testing.TB, hostEmail string) *model.HostKey {
	t.Helper()
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &model.HostKey{
		ID:            UniqueID("key"),
		HostEmail:     hostEmail,
		KeyHash:       UniqueID("hash"),
		KeyPrefix:     "abc123",
		RateLimitTier: model.TierFree,
		Name:          "Test Key",
		CreatedAt:     now,
	}
}

// UniqueID generates a unique ID for tests.
func UniqueID(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
}
