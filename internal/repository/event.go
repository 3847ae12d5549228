package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/lib/pq"

	"github.com/bradmoore314/rsvp-management-app-sub000/internal/model"
)

// ErrEventNotFound is returned when no event has the requested ID.
var ErrEventNotFound = errors.New("event not found")

// CreateEvent inserts a new event.
func (r *Repository) CreateEvent(ctx context.Context, ev *model.EventSummary) error {
	query := `
		INSERT INTO events (id, title, event_date, event_time, location, host_email, dietary_options)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.pool.Exec(ctx, query,
		ev.ID,
		ev.Title,
		ev.Date,
		ev.Time,
		ev.Location,
		ev.HostEmail,
		textArray(ev.DietaryOptions),
	)
	if err != nil {
		return fmt.Errorf("failed to create event: %w", err)
	}

	return nil
}

// GetEvent retrieves the dashboard view of an event.
func (r *Repository) GetEvent(ctx context.Context, eventID string) (*model.EventSummary, error) {
	query := `
		SELECT id, title, event_date, event_time, location, host_email, dietary_options
		FROM events
		WHERE id = $1
	`

	var (
		ev      model.EventSummary
		options []string
	)
	err := r.pool.QueryRow(ctx, query, eventID).Scan(
		&ev.ID,
		&ev.Title,
		&ev.Date,
		&ev.Time,
		&ev.Location,
		&ev.HostEmail,
		pq.Array(&options),
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	ev.Date = ev.Date.UTC()
	ev.DietaryOptions = options
	return &ev, nil
}
