package model

import "time"

// EventSummary is the read-only view of an event used by the dashboard.
type EventSummary struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Date      time.Time `json:"date"` // reference point for days-before-event
	Time      string    `json:"time,omitempty"`
	Location  string    `json:"location,omitempty"`
	HostEmail string    `json:"host_email"`

	// DietaryOptions is the vocabulary guests may pick from.
	DietaryOptions []string `json:"dietary_options,omitempty"`
}

// InviteCounts holds invite and response totals for one event.
type InviteCounts struct {
	TotalInvites   int     `json:"total_invites"`
	TotalResponses int     `json:"total_responses"`
	ResponseRate   float64 `json:"response_rate"` // 0-100, one decimal
}

// Invite links a scannable code to an event.
type Invite struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	CreatedAt time.Time `json:"created_at"`
}
