package handler

import (
	"context"
	"errors"
	"log/slog"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/bradmoore314/rsvp-management-app-sub000/internal/auth"
	"github.com/bradmoore314/rsvp-management-app-sub000/internal/dashboard"
	"github.com/bradmoore314/rsvp-management-app-sub000/internal/metrics"
	"github.com/bradmoore314/rsvp-management-app-sub000/internal/service"
)

// DashboardReader is the read side of the dashboard service.
type DashboardReader interface {
	Dashboard(ctx context.Context, eventID, hostEmail string) (*dashboard.Snapshot, error)
	Responses(ctx context.Context, eventID, hostEmail string, filters dashboard.Filters) (*dashboard.FilterResult, error)
	Export(ctx context.Context, eventID, hostEmail string, filters dashboard.Filters, format dashboard.Format) (*dashboard.Export, error)
}

// DashboardHandler serves the host-facing dashboard routes.
type DashboardHandler struct {
	svc     DashboardReader
	logger  *slog.Logger
	metrics metrics.Recorder
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(svc DashboardReader, logger *slog.Logger, recorder metrics.Recorder) *DashboardHandler {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &DashboardHandler{
		svc:     svc,
		logger:  logger.With("component", "handler.dashboard"),
		metrics: recorder,
	}
}

// Dashboard handles GET /api/v1/events/{eventID}/dashboard.
func (h *DashboardHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "eventID")

	snap, err := h.svc.Dashboard(r.Context(), eventID, auth.HostEmailFromContext(r.Context()))
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, snap)
}

// Responses handles GET /api/v1/events/{eventID}/responses.
func (h *DashboardHandler) Responses(w http.ResponseWriter, r *http.Request) {
	filters, ok := h.parseFilters(w, r)
	if !ok {
		return
	}

	eventID := chi.URLParam(r, "eventID")
	result, err := h.svc.Responses(r.Context(), eventID, auth.HostEmailFromContext(r.Context()), filters)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Export handles GET /api/v1/events/{eventID}/export.
// The body is served as an attachment named after the event and date.
func (h *DashboardHandler) Export(w http.ResponseWriter, r *http.Request) {
	format, err := dashboard.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	filters, ok := h.parseFilters(w, r)
	if !ok {
		return
	}

	eventID := chi.URLParam(r, "eventID")
	export, err := h.svc.Export(r.Context(), eventID, auth.HostEmailFromContext(r.Context()), filters, format)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", contentDisposition(export.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(export.Body)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(export.Body); err != nil {
		h.logger.Warn("export write failed", "event_id", eventID, "error", err)
	}
}

// contentDisposition builds an attachment header, quoting or encoding the
// filename as needed.
func contentDisposition(filename string) string {
	if v := mime.FormatMediaType("attachment", map[string]string{"filename": filename}); v != "" {
		return v
	}
	return "attachment"
}

// parseFilters validates the filter query parameters. On failure it writes
// the 400 response itself and returns false.
func (h *DashboardHandler) parseFilters(w http.ResponseWriter, r *http.Request) (dashboard.Filters, bool) {
	filters, err := service.ParseFilters(filterParamsFromQuery(r))
	if err != nil {
		h.metrics.IncFilterRejected()
		h.handleServiceError(w, err)
		return dashboard.Filters{}, false
	}
	return filters, true
}

func filterParamsFromQuery(r *http.Request) service.FilterParams {
	q := r.URL.Query()

	var dietary []string
	for _, v := range q["dietary"] {
		dietary = append(dietary, strings.Split(v, ",")...)
	}

	return service.FilterParams{
		Attendance: q.Get("attendance"),
		Search:     q.Get("search"),
		Dietary:    dietary,
		GuestMin:   q.Get("guestMin"),
		GuestMax:   q.Get("guestMax"),
		From:       q.Get("from"),
		To:         q.Get("to"),
		SortBy:     q.Get("sortBy"),
	}
}

// handleServiceError maps service errors to HTTP responses.
func (h *DashboardHandler) handleServiceError(w http.ResponseWriter, err error) {
	var filterErr *service.FilterError

	switch {
	case errors.As(err, &filterErr):
		writeErrorDetails(w, http.StatusBadRequest, "INVALID_FILTER", "Invalid filter parameters", filterErr.Problems)
	case errors.Is(err, dashboard.ErrUnsupportedFormat):
		writeError(w, http.StatusBadRequest, "UNSUPPORTED_FORMAT", "Format must be one of csv, json, excel")
	case errors.Is(err, service.ErrEventNotFound):
		writeError(w, http.StatusNotFound, "EVENT_NOT_FOUND", "Event not found")
	case errors.Is(err, service.ErrForbidden):
		writeError(w, http.StatusForbidden, "FORBIDDEN", "Event does not belong to this host")
	default:
		h.logger.Error("internal_error", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}
