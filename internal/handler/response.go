package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bradmoore314/rsvp-management-app-sub000/internal/handler/dto"
	"github.com/bradmoore314/rsvp-management-app-sub000/internal/middleware"
	"github.com/bradmoore314/rsvp-management-app-sub000/internal/model"
	"github.com/bradmoore314/rsvp-management-app-sub000/internal/service"
)

// maxUserAgentLength caps the stored User-Agent header.
const maxUserAgentLength = 512

// ResponseSubmitter records guest responses.
type ResponseSubmitter interface {
	Submit(ctx context.Context, input service.SubmitResponseInput) (*model.Response, error)
}

// ResponseHandler serves the public guest submission route.
type ResponseHandler struct {
	svc    ResponseSubmitter
	logger *slog.Logger
}

// NewResponseHandler creates a new ResponseHandler.
func NewResponseHandler(svc ResponseSubmitter, logger *slog.Logger) *ResponseHandler {
	return &ResponseHandler{
		svc:    svc,
		logger: logger.With("component", "handler.response"),
	}
}

// Submit handles POST /rsvp/{inviteID}.
func (h *ResponseHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req dto.SubmitResponseRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	userAgent := r.UserAgent()
	if len(userAgent) > maxUserAgentLength {
		userAgent = userAgent[:maxUserAgentLength]
	}

	input := service.SubmitResponseInput{
		InviteID:            chi.URLParam(r, "inviteID"),
		GuestName:           req.GuestName,
		GuestEmail:          req.GuestEmail,
		GuestPhone:          req.GuestPhone,
		EmergencyContact:    req.EmergencyContact,
		Message:             req.Message,
		Attendance:          req.Attendance,
		GuestCount:          req.GuestCount,
		DietaryOptions:      req.DietaryOptions,
		DietaryRestrictions: req.DietaryRestrictions,
		IPAddress:           middleware.ClientIP(r),
		UserAgent:           userAgent,
	}

	resp, err := h.svc.Submit(r.Context(), input)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.ToSubmitResponseResult(resp))
}

// handleServiceError maps service errors to HTTP responses.
func (h *ResponseHandler) handleServiceError(w http.ResponseWriter, err error) {
	var subErr *service.SubmissionError

	switch {
	case errors.As(err, &subErr):
		writeErrorDetails(w, http.StatusBadRequest, "INVALID_RESPONSE", "Invalid RSVP submission", subErr.Problems)
	case errors.Is(err, service.ErrInviteNotFound):
		writeError(w, http.StatusNotFound, "INVITE_NOT_FOUND", "Invite not found")
	case errors.Is(err, service.ErrEventNotFound):
		writeError(w, http.StatusNotFound, "EVENT_NOT_FOUND", "Event not found")
	default:
		h.logger.Error("internal_error", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}
