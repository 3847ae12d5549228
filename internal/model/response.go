// Package model defines domain entities for the application.
package model

import (
	"slices"
	"time"
)

// Attendance is a guest's answer to an invitation.
type Attendance string

const (
	AttendanceYes   Attendance = "yes"
	AttendanceNo    Attendance = "no"
	AttendanceMaybe Attendance = "maybe"
)

// IsValid reports whether the attendance value is one of yes, no or maybe.
func (a Attendance) IsValid() bool {
	return a == AttendanceYes || a == AttendanceNo || a == AttendanceMaybe
}

// Response is one guest's submitted answer for one invite.
// Records are immutable once stored.
type Response struct {
	ID       string `json:"id"` // ULID
	EventID  string `json:"event_id"`
	InviteID string `json:"invite_id"`

	// Guest details
	GuestName        string `json:"guest_name"`
	GuestEmail       string `json:"guest_email"`
	GuestPhone       string `json:"guest_phone"`
	EmergencyContact string `json:"emergency_contact"`
	Message          string `json:"message"`

	// Answer
	Attendance          Attendance `json:"attendance"`
	GuestCount          int        `json:"guest_count"` // includes the respondent
	DietaryOptions      []string   `json:"dietary_options"`
	DietaryRestrictions string     `json:"dietary_restrictions"`

	SubmittedAt time.Time `json:"submitted_at"`

	// Provenance, never aggregated
	IPAddress string `json:"ip_address,omitempty"`
	UserAgent string `json:"user_agent,omitempty"`
}

// HasDietaryOption reports whether the response selected the given tag.
func (r *Response) HasDietaryOption(tag string) bool {
	return slices.Contains(r.DietaryOptions, tag)
}

// DistinctDietaryOptions returns the dietary tags without repeats, in the
// order they were first selected.
func (r *Response) DistinctDietaryOptions() []string {
	if len(r.DietaryOptions) == 0 {
		return nil
	}
	out := make([]string, 0, len(r.DietaryOptions))
	for _, tag := range r.DietaryOptions {
		if !slices.Contains(out, tag) {
			out = append(out, tag)
		}
	}
	return out
}

// DietaryTags returns the distinct dietary tags of the response in sorted order.
func (r *Response) DietaryTags() []string {
	if len(r.DietaryOptions) == 0 {
		return nil
	}
	tags := slices.Clone(r.DietaryOptions)
	slices.Sort(tags)
	return slices.Compact(tags)
}
