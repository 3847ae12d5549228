package repository

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/jackc/pgx/v5"

	"github.com/bradmoore314/rsvp-management-app-sub000/internal/model"
)

// ErrInviteNotFound is returned when no invite has the requested ID.
var ErrInviteNotFound = errors.New("invite not found")

// CreateInvite inserts a new invite.
func (r *Repository) CreateInvite(ctx context.Context, inv *model.Invite) error {
	query := `
		INSERT INTO invites (id, event_id, created_at)
		VALUES ($1, $2, $3)
	`

	if _, err := r.pool.Exec(ctx, query, inv.ID, inv.EventID, inv.CreatedAt); err != nil {
		return fmt.Errorf("failed to create invite: %w", err)
	}

	return nil
}

// GetInvite retrieves an invite by ID.
func (r *Repository) GetInvite(ctx context.Context, inviteID string) (*model.Invite, error) {
	query := `
		SELECT id, event_id, created_at
		FROM invites
		WHERE id = $1
	`

	var inv model.Invite
	err := r.pool.QueryRow(ctx, query, inviteID).Scan(&inv.ID, &inv.EventID, &inv.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInviteNotFound
		}
		return nil, fmt.Errorf("failed to get invite: %w", err)
	}

	return &inv, nil
}

// GetInviteCounts returns invite and response totals for an event.
func (r *Repository) GetInviteCounts(ctx context.Context, eventID string) (model.InviteCounts, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM invites WHERE event_id = $1),
			(SELECT COUNT(*) FROM responses WHERE event_id = $1)
	`

	var invites, responses int
	if err := r.pool.QueryRow(ctx, query, eventID).Scan(&invites, &responses); err != nil {
		return model.InviteCounts{}, fmt.Errorf("failed to count invites: %w", err)
	}

	return model.InviteCounts{
		TotalInvites:   invites,
		TotalResponses: responses,
		ResponseRate:   responseRate(invites, responses),
	}, nil
}

// responseRate is responses/invites as a percentage with one decimal,
// or 0 when there are no invites.
func responseRate(invites, responses int) float64 {
	if invites <= 0 {
		return 0
	}
	return math.Round(float64(responses)/float64(invites)*1000) / 10
}
