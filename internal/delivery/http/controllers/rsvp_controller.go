package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"eventrsvp/internal/delivery/http/helpers"
	"eventrsvp/internal/delivery/http/middleware"
	"eventrsvp/internal/domain"
	"eventrsvp/internal/schema"
)

// SubmitRSVPResponse is the success body for PUT /events/rsvp (200).
type SubmitRSVPResponse struct {
	Message string       `json:"message"`
	RSVP    *domain.RSVP `json:"rsvp"`
}

// ListRSVPsResponse is the success body for GET /events/rsvps (200). Each
// RSVP carries its parent event.
type ListRSVPsResponse struct {
	Length int            `json:"length"`
	RSVPs  []*domain.RSVP `json:"rsvps"`
}

type RSVPController struct {
	Logger  *slog.Logger
	Service domain.RSVPService
}

func NewRSVPController(logger *slog.Logger, svc domain.RSVPService) *RSVPController {
	return &RSVPController{
		Logger:  logger,
		Service: svc,
	}
}

// Submit godoc
// @Summary Submit or update an RSVP
// @Description Records an RSVP for the event identified by eventId, authorized by the event's rsvpToken. Authenticated callers RSVP under their account (name and email come from the account); anonymous callers must supply an email. Re-submitting replaces the previous answer.
// @Tags rsvps
// @Accept json
// @Produce json
// @Param body body object true "eventId, rsvpToken, status, and name/email for anonymous callers"
// @Success 200 {object} controllers.SubmitRSVPResponse
// @Failure 400 {object} helpers.ErrorResponse "validation failure or invalid rsvp token"
// @Failure 500 {object} helpers.ErrorResponse
// @Router /events/rsvp [put]
func (c *RSVPController) Submit(w http.ResponseWriter, r *http.Request) {
	record := helpers.DecodeBody(w, r)
	if record == nil {
		return
	}
	if !helpers.ValidateRequest(w, schema.RSVP, record) {
		return
	}
	userID, _ := middleware.UserIDFromContext(r.Context())

	rsvp, err := c.Service.Submit(r.Context(), userID, domain.RSVPInput{
		EventID:   schema.Str(record, "eventId"),
		RSVPToken: schema.Str(record, "rsvpToken"),
		Name:      schema.Str(record, "name"),
		Email:     schema.Str(record, "email"),
		Status:    schema.Str(record, "status"),
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidToken):
			helpers.WriteError(w, http.StatusBadRequest, helpers.MsgInvalidRSVPToken)
		case errors.Is(err, domain.ErrInvalidInput):
			helpers.WriteError(w, http.StatusBadRequest, "An email address is required to RSVP without an account.")
		default:
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			helpers.WriteError(w, http.StatusInternalServerError, helpers.MsgServerError)
		}
		return
	}
	helpers.WriteJSON(w, http.StatusOK, SubmitRSVPResponse{
		Message: "RSVP saved successfully",
		RSVP:    rsvp,
	})
}

// ListForUser godoc
// @Summary List the current user's RSVPs
// @Description Returns every RSVP the authenticated user has submitted, each with its parent event.
// @Tags rsvps
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.ListRSVPsResponse
// @Failure 401 {object} helpers.ErrorResponse
// @Failure 500 {object} helpers.ErrorResponse
// @Router /events/rsvps [get]
func (c *RSVPController) ListForUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteError(w, http.StatusUnauthorized, helpers.MsgUnauthorized)
		return
	}

	rsvps, err := c.Service.ListForUser(r.Context(), userID)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteError(w, http.StatusInternalServerError, helpers.MsgServerError)
		return
	}
	if rsvps == nil {
		rsvps = []*domain.RSVP{}
	}
	helpers.WriteJSON(w, http.StatusOK, ListRSVPsResponse{Length: len(rsvps), RSVPs: rsvps})
}
