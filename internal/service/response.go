package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"slices"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/bradmoore314/rsvp-management-app-sub000/internal/metrics"
	"github.com/bradmoore314/rsvp-management-app-sub000/internal/model"
	"github.com/bradmoore314/rsvp-management-app-sub000/internal/repository"
)

const (
	maxGuestNameLength    = 150
	maxEmailLength        = 254
	maxPhoneLength        = 30
	maxContactLength      = 150
	maxMessageLength      = 1000
	maxRestrictionsLength = 500
)

// ResponseStore is the write side of the response store.
type ResponseStore interface {
	GetInvite(ctx context.Context, inviteID string) (*model.Invite, error)
	GetEvent(ctx context.Context, eventID string) (*model.EventSummary, error)
	CreateResponse(ctx context.Context, resp *model.Response) error
}

// SubmissionError lists every problem found in a guest submission.
type SubmissionError struct {
	Problems []string
}

func (e *SubmissionError) Error() string {
	return "invalid submission: " + strings.Join(e.Problems, "; ")
}

// SubmitResponseInput is a guest's RSVP as received from the form.
type SubmitResponseInput struct {
	InviteID            string
	GuestName           string
	GuestEmail          string
	GuestPhone          string
	EmergencyContact    string
	Message             string
	Attendance          string
	GuestCount          int
	DietaryOptions      []string
	DietaryRestrictions string
	IPAddress           string
	UserAgent           string
}

// ResponseService records guest responses.
type ResponseService struct {
	store   ResponseStore
	logger  *slog.Logger
	metrics metrics.Recorder
	now     func() time.Time
}

// NewResponseService creates a new ResponseService.
func NewResponseService(store ResponseStore, logger *slog.Logger, recorder metrics.Recorder) *ResponseService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &ResponseService{
		store:   store,
		logger:  logger.With("component", "service.response"),
		metrics: recorder,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Submit validates a guest's response against the invite's event and stores it.
func (s *ResponseService) Submit(ctx context.Context, input SubmitResponseInput) (*model.Response, error) {
	invite, err := s.store.GetInvite(ctx, input.InviteID)
	if err != nil {
		if errors.Is(err, repository.ErrInviteNotFound) {
			return nil, ErrInviteNotFound
		}
		return nil, fmt.Errorf("get invite: %w", err)
	}

	event, err := s.store.GetEvent(ctx, invite.EventID)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	resp, problems := buildResponse(input, event)
	if len(problems) > 0 {
		s.metrics.IncResponseSubmitted("rejected")
		return nil, &SubmissionError{Problems: problems}
	}

	resp.ID = ulid.Make().String()
	resp.EventID = invite.EventID
	resp.InviteID = invite.ID
	resp.SubmittedAt = s.now()

	if err := s.store.CreateResponse(ctx, resp); err != nil {
		return nil, fmt.Errorf("create response: %w", err)
	}
	s.metrics.IncResponseSubmitted("accepted")

	s.logger.Info("response submitted",
		"response_id", resp.ID,
		"event_id", resp.EventID,
		"attendance", string(resp.Attendance),
		"guest_count", resp.GuestCount,
	)

	return resp, nil
}

// buildResponse normalizes input into a response and collects every
// validation problem.
func buildResponse(input SubmitResponseInput, event *model.EventSummary) (*model.Response, []string) {
	var problems []string
	addProblem := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	resp := &model.Response{
		GuestName:           strings.TrimSpace(input.GuestName),
		GuestEmail:          strings.TrimSpace(input.GuestEmail),
		GuestPhone:          strings.TrimSpace(input.GuestPhone),
		EmergencyContact:    strings.TrimSpace(input.EmergencyContact),
		Message:             strings.TrimSpace(input.Message),
		Attendance:          model.Attendance(strings.ToLower(strings.TrimSpace(input.Attendance))),
		GuestCount:          input.GuestCount,
		DietaryRestrictions: strings.TrimSpace(input.DietaryRestrictions),
		IPAddress:           input.IPAddress,
		UserAgent:           input.UserAgent,
	}

	switch {
	case resp.GuestName == "":
		addProblem("guest_name is required")
	case len(resp.GuestName) > maxGuestNameLength:
		addProblem("guest_name must be at most %d characters", maxGuestNameLength)
	}

	switch {
	case resp.GuestEmail == "":
		addProblem("guest_email is required")
	case len(resp.GuestEmail) > maxEmailLength || !isPlainAddress(resp.GuestEmail):
		addProblem("guest_email must be a valid email address")
	}

	if len(resp.GuestPhone) > maxPhoneLength {
		addProblem("guest_phone must be at most %d characters", maxPhoneLength)
	}
	if len(resp.EmergencyContact) > maxContactLength {
		addProblem("emergency_contact must be at most %d characters", maxContactLength)
	}
	if len(resp.Message) > maxMessageLength {
		addProblem("message must be at most %d characters", maxMessageLength)
	}
	if len(resp.DietaryRestrictions) > maxRestrictionsLength {
		addProblem("dietary_restrictions must be at most %d characters", maxRestrictionsLength)
	}

	if !resp.Attendance.IsValid() {
		addProblem("attendance must be one of yes, no, maybe")
	}
	if resp.GuestCount < minGuestCount || resp.GuestCount > maxGuestCount {
		addProblem("guest_count must be between %d and %d", minGuestCount, maxGuestCount)
	}

	for _, tag := range input.DietaryOptions {
		tag = strings.TrimSpace(tag)
		if tag == "" || slices.Contains(resp.DietaryOptions, tag) {
			continue
		}
		if !slices.Contains(event.DietaryOptions, tag) {
			addProblem("dietary option %q is not offered for this event", tag)
			continue
		}
		resp.DietaryOptions = append(resp.DietaryOptions, tag)
	}

	return resp, problems
}

// isPlainAddress reports whether s is a bare address with no display name.
func isPlainAddress(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}
