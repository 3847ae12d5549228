package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/lib/pq"

	"github.com/bradmoore314/rsvp-management-app-sub000/internal/model"
)

const responseColumns = `id, event_id, invite_id, guest_name, guest_email, guest_phone,
	emergency_contact, message, attendance, guest_count, dietary_options,
	dietary_restrictions, submitted_at, ip_address, user_agent`

// CreateResponse inserts a guest response.
func (r *Repository) CreateResponse(ctx context.Context, resp *model.Response) error {
	query := `
		INSERT INTO responses (` + responseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	_, err := r.pool.Exec(ctx, query,
		resp.ID,
		resp.EventID,
		resp.InviteID,
		resp.GuestName,
		resp.GuestEmail,
		resp.GuestPhone,
		resp.EmergencyContact,
		resp.Message,
		string(resp.Attendance),
		resp.GuestCount,
		textArray(resp.DietaryOptions),
		resp.DietaryRestrictions,
		resp.SubmittedAt,
		resp.IPAddress,
		resp.UserAgent,
	)
	if err != nil {
		return fmt.Errorf("failed to create response: %w", err)
	}

	return nil
}

// ListResponses returns every response for an event, oldest first.
func (r *Repository) ListResponses(ctx context.Context, eventID string) ([]model.Response, error) {
	query := `
		SELECT ` + responseColumns + `
		FROM responses
		WHERE event_id = $1
		ORDER BY submitted_at, id
	`

	rows, err := r.pool.Query(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to list responses: %w", err)
	}
	defer rows.Close()

	responses := make([]model.Response, 0)
	for rows.Next() {
		resp, err := scanResponse(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan response: %w", err)
		}
		responses = append(responses, resp)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating responses: %w", err)
	}

	return responses, nil
}

func scanResponse(row pgx.Row) (model.Response, error) {
	var (
		resp       model.Response
		attendance string
		options    []string
	)

	err := row.Scan(
		&resp.ID,
		&resp.EventID,
		&resp.InviteID,
		&resp.GuestName,
		&resp.GuestEmail,
		&resp.GuestPhone,
		&resp.EmergencyContact,
		&resp.Message,
		&attendance,
		&resp.GuestCount,
		pq.Array(&options),
		&resp.DietaryRestrictions,
		&resp.SubmittedAt,
		&resp.IPAddress,
		&resp.UserAgent,
	)
	if err != nil {
		return model.Response{}, err
	}

	resp.Attendance = model.Attendance(attendance)
	resp.DietaryOptions = options
	resp.SubmittedAt = resp.SubmittedAt.UTC()
	return resp, nil
}
