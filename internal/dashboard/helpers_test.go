package dashboard

import (
	"testing"
	"time"

	"github.com/bradmoore314/rsvp-management-app-sub000/internal/model"
)

var testEvent = model.EventSummary{
	ID:        "evt-1",
	Title:     "Summer Party",
	Date:      time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC),
	Time:      "18:00",
	Location:  "Rooftop",
	HostEmail: "host@example.com",
}

func at(t *testing.T, value string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, value)
	if err != nil {
		t.Fatalf("parse %q: %v", value, err)
	}
	return ts
}

func newResponse(name string, attendance model.Attendance, guests int, submittedAt time.Time, tags ...string) model.Response {
	return model.Response{
		ID:             "resp-" + name,
		EventID:        testEvent.ID,
		GuestName:      name,
		GuestEmail:     name + "@example.com",
		Attendance:     attendance,
		GuestCount:     guests,
		DietaryOptions: tags,
		SubmittedAt:    submittedAt,
	}
}

func names(responses []model.Response) []string {
	out := make([]string, len(responses))
	for i, r := range responses {
		out[i] = r.GuestName
	}
	return out
}
