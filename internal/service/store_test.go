package service

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/bradmoore314/rsvp-management-app-sub000/internal/model"
	"github.com/bradmoore314/rsvp-management-app-sub000/internal/repository"
)

var eventDate = time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeStore is an in-memory DashboardStore and ResponseStore.
type fakeStore struct {
	mu        sync.Mutex
	events    map[string]*model.EventSummary
	invites   map[string]*model.Invite
	responses map[string][]model.Response
	counts    map[string]model.InviteCounts
	listErr   error
	createErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		events: map[string]*model.EventSummary{
			"evt-1": {
				ID:             "evt-1",
				Title:          "Summer Party",
				Date:           eventDate,
				Time:           "18:00",
				Location:       "Rooftop",
				HostEmail:      "host@example.com",
				DietaryOptions: []string{"Vegetarian", "Vegan", "Gluten-Free"},
			},
		},
		invites: map[string]*model.Invite{
			"inv-1": {ID: "inv-1", EventID: "evt-1"},
		},
		responses: map[string][]model.Response{
			"evt-1": {
				{ID: "r1", EventID: "evt-1", GuestName: "Alice", GuestEmail: "alice@example.com", Attendance: model.AttendanceYes, GuestCount: 2, DietaryOptions: []string{"Vegetarian"}, SubmittedAt: eventDate.Add(-48 * time.Hour)},
				{ID: "r2", EventID: "evt-1", GuestName: "Bob", GuestEmail: "bob@example.com", Attendance: model.AttendanceNo, GuestCount: 1, SubmittedAt: eventDate.Add(-72 * time.Hour)},
				{ID: "r3", EventID: "evt-1", GuestName: "Carol", GuestEmail: "carol@example.com", Attendance: model.AttendanceYes, GuestCount: 3, SubmittedAt: eventDate.Add(-24 * time.Hour)},
			},
		},
		counts: map[string]model.InviteCounts{
			"evt-1": {TotalInvites: 10, TotalResponses: 3, ResponseRate: 30},
		},
	}
}

func (f *fakeStore) GetEvent(ctx context.Context, eventID string) (*model.EventSummary, error) {
	ev, ok := f.events[eventID]
	if !ok {
		return nil, repository.ErrEventNotFound
	}
	return ev, nil
}

func (f *fakeStore) ListResponses(ctx context.Context, eventID string) ([]model.Response, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]model.Response(nil), f.responses[eventID]...), nil
}

func (f *fakeStore) GetInviteCounts(ctx context.Context, eventID string) (model.InviteCounts, error) {
	return f.counts[eventID], nil
}

func (f *fakeStore) GetInvite(ctx context.Context, inviteID string) (*model.Invite, error) {
	inv, ok := f.invites[inviteID]
	if !ok {
		return nil, repository.ErrInviteNotFound
	}
	return inv, nil
}

func (f *fakeStore) CreateResponse(ctx context.Context, resp *model.Response) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[resp.EventID] = append(f.responses[resp.EventID], *resp)
	return nil
}
