// Package service provides business logic for the application.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/bradmoore314/rsvp-management-app-sub000/internal/dashboard"
	"github.com/bradmoore314/rsvp-management-app-sub000/internal/metrics"
	"github.com/bradmoore314/rsvp-management-app-sub000/internal/model"
	"github.com/bradmoore314/rsvp-management-app-sub000/internal/repository"
)

// Service errors.
var (
	ErrEventNotFound  = errors.New("event not found")
	ErrForbidden      = errors.New("event does not belong to host")
	ErrInviteNotFound = errors.New("invite not found")
)

// DashboardStore is the read side of the response store.
type DashboardStore interface {
	GetEvent(ctx context.Context, eventID string) (*model.EventSummary, error)
	ListResponses(ctx context.Context, eventID string) ([]model.Response, error)
	GetInviteCounts(ctx context.Context, eventID string) (model.InviteCounts, error)
}

// DashboardService fetches an event's responses and hands them to the
// dashboard engine. It holds no per-event state.
type DashboardService struct {
	store      DashboardStore
	logger     *slog.Logger
	metrics    metrics.Recorder
	exportOpts dashboard.ExportOptions
	now        func() time.Time
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(store DashboardStore, logger *slog.Logger, recorder metrics.Recorder, exportOpts dashboard.ExportOptions) *DashboardService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &DashboardService{
		store:      store,
		logger:     logger.With("component", "service.dashboard"),
		metrics:    recorder,
		exportOpts: exportOpts,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// eventData is everything fetched for one request.
type eventData struct {
	event     *model.EventSummary
	responses []model.Response
	counts    model.InviteCounts
}

// load fetches the event, checks ownership, then fetches responses and
// invite counts in parallel.
func (s *DashboardService) load(ctx context.Context, eventID, hostEmail string) (*eventData, error) {
	event, err := s.store.GetEvent(ctx, eventID)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	if hostEmail == "" || !strings.EqualFold(event.HostEmail, hostEmail) {
		return nil, ErrForbidden
	}

	data := &eventData{event: event}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		responses, err := s.store.ListResponses(gctx, eventID)
		if err != nil {
			return fmt.Errorf("list responses: %w", err)
		}
		data.responses = responses
		return nil
	})
	g.Go(func() error {
		counts, err := s.store.GetInviteCounts(gctx, eventID)
		if err != nil {
			return fmt.Errorf("get invite counts: %w", err)
		}
		data.counts = counts
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return data, nil
}

// snapshot runs the aggregation and stamps the generation time.
func (s *DashboardService) snapshot(data *eventData) *dashboard.Snapshot {
	start := time.Now()
	snap := dashboard.ComputeDashboard(data.responses, *data.event, data.counts)
	s.metrics.ObserveAggregationDuration(time.Since(start))
	snap.GeneratedAt = s.now()
	return snap
}

// Dashboard returns a freshly computed snapshot for the host's event.
func (s *DashboardService) Dashboard(ctx context.Context, eventID, hostEmail string) (*dashboard.Snapshot, error) {
	data, err := s.load(ctx, eventID, hostEmail)
	if err != nil {
		return nil, err
	}

	snap := s.snapshot(data)
	s.metrics.IncDashboardBuilt()

	s.logger.Debug("dashboard computed",
		"event_id", eventID,
		"responses", len(data.responses),
	)

	return snap, nil
}

// Responses returns the event's responses filtered and sorted.
func (s *DashboardService) Responses(ctx context.Context, eventID, hostEmail string, filters dashboard.Filters) (*dashboard.FilterResult, error) {
	data, err := s.load(ctx, eventID, hostEmail)
	if err != nil {
		return nil, err
	}

	result := dashboard.FilterResponses(data.responses, filters)
	return &result, nil
}

// Export renders the dashboard summary plus the filtered responses.
// Aggregates always cover every response; filters only pick the rows.
func (s *DashboardService) Export(ctx context.Context, eventID, hostEmail string, filters dashboard.Filters, format dashboard.Format) (*dashboard.Export, error) {
	data, err := s.load(ctx, eventID, hostEmail)
	if err != nil {
		return nil, err
	}

	snap := s.snapshot(data)
	rows := dashboard.FilterResponses(data.responses, filters)

	out, err := dashboard.ExportDashboard(snap, rows.Responses, format, s.exportOpts)
	if err != nil {
		return nil, err
	}
	s.metrics.IncExport(string(format))

	s.logger.Info("dashboard exported",
		"event_id", eventID,
		"format", string(format),
		"rows", rows.TotalCount,
		"bytes", len(out.Body),
	)

	return out, nil
}
