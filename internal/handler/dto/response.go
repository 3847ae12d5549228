package dto

import (
	"time"

	"github.com/bradmoore314/rsvp-management-app-sub000/internal/model"
)

// SubmitResponseRequest is the body of POST /rsvp/{inviteID}.
type SubmitResponseRequest struct {
	GuestName           string   `json:"guest_name"`
	GuestEmail          string   `json:"guest_email"`
	GuestPhone          string   `json:"guest_phone,omitempty"`
	EmergencyContact    string   `json:"emergency_contact,omitempty"`
	Message             string   `json:"message,omitempty"`
	Attendance          string   `json:"attendance"`
	GuestCount          int      `json:"guest_count"`
	DietaryOptions      []string `json:"dietary_options,omitempty"`
	DietaryRestrictions string   `json:"dietary_restrictions,omitempty"`
}

// SubmitResponseResult confirms a stored response.
type SubmitResponseResult struct {
	ID          string           `json:"id"`
	EventID     string           `json:"event_id"`
	InviteID    string           `json:"invite_id"`
	Attendance  model.Attendance `json:"attendance"`
	GuestCount  int              `json:"guest_count"`
	SubmittedAt time.Time        `json:"submitted_at"`
}

// ToSubmitResponseResult converts a stored response to its confirmation DTO.
// Guest contact details are not echoed back.
func ToSubmitResponseResult(resp *model.Response) *SubmitResponseResult {
	return &SubmitResponseResult{
		ID:          resp.ID,
		EventID:     resp.EventID,
		InviteID:    resp.InviteID,
		Attendance:  resp.Attendance,
		GuestCount:  resp.GuestCount,
		SubmittedAt: resp.SubmittedAt,
	}
}
