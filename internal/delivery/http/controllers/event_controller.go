package controllers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"eventrsvp/internal/delivery/http/helpers"
	"eventrsvp/internal/delivery/http/middleware"
	"eventrsvp/internal/domain"
	"eventrsvp/internal/schema"
)

// CreateEventResponse is the success body for POST /events (201).
type CreateEventResponse struct {
	Message  string        `json:"message"`
	NewEvent *domain.Event `json:"newEvent"`
}

// ListEventsResponse is the success body for GET /events (200).
type ListEventsResponse struct {
	Length int             `json:"length"`
	Events []*domain.Event `json:"events"`
}

// ModifyEventResponse is the success body for PUT /events (200).
type ModifyEventResponse struct {
	Message string        `json:"message"`
	Event   *domain.Event `json:"event"`
}

// DeleteEventResponse is the success body for DELETE /events (200). Event
// is the deleted record including the RSVPs removed with it.
type DeleteEventResponse struct {
	Message string        `json:"message"`
	Event   *domain.Event `json:"event"`
}

// InviteResponse is the body for POST /events/invite. FailedRecipients is
// present only on partial failure (207).
type InviteResponse struct {
	Message          string   `json:"message"`
	FailedRecipients []string `json:"failedRecipients,omitempty"`
}

type EventController struct {
	Logger  *slog.Logger
	Service domain.EventService
}

func NewEventController(logger *slog.Logger, svc domain.EventService) *EventController {
	return &EventController{
		Logger:  logger,
		Service: svc,
	}
}

// Create godoc
// @Summary Create a new event
// @Description Creates an event owned by the authenticated user. The slug and rsvpToken are server-generated; creationStatus defaults to PUBLISHED.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body object true "title, startDate, and optional description, location, endDate, creationStatus"
// @Success 201 {object} controllers.CreateEventResponse
// @Failure 400 {object} helpers.ErrorResponse "validation failure or endDate before startDate"
// @Failure 401 {object} helpers.ErrorResponse
// @Failure 500 {object} helpers.ErrorResponse
// @Router /events [post]
func (c *EventController) Create(w http.ResponseWriter, r *http.Request) {
	record := helpers.DecodeBody(w, r)
	if record == nil {
		return
	}
	if !helpers.ValidateRequest(w, schema.CreateEvent, record) {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteError(w, http.StatusUnauthorized, helpers.MsgUnauthorized)
		return
	}

	startDate, _ := schema.Time(record, "startDate")
	in := domain.CreateEventInput{
		Title:       schema.Str(record, "title"),
		Description: schema.Str(record, "description"),
		Location:    schema.Str(record, "location"),
		StartDate:   startDate,
		EndDate:     schema.OptTime(record, "endDate"),
	}
	if s := schema.Str(record, "creationStatus"); s != "" {
		in.CreationStatus = domain.CreationStatus(s)
	}

	event, err := c.Service.Create(r.Context(), userID, in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteError(w, http.StatusBadRequest, "endDate must not be before startDate.")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteError(w, http.StatusInternalServerError, helpers.MsgServerError)
		return
	}
	helpers.WriteJSON(w, http.StatusCreated, CreateEventResponse{
		Message:  "Event created successfully",
		NewEvent: event,
	})
}

// List godoc
// @Summary List events owned by the current user
// @Description Returns the caller's events with creator and RSVP details, newest first. limit and offset are optional query params.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Maximum number of events"
// @Param offset query int false "Number of events to skip"
// @Success 200 {object} controllers.ListEventsResponse
// @Failure 400 {object} helpers.ErrorResponse
// @Failure 401 {object} helpers.ErrorResponse
// @Failure 500 {object} helpers.ErrorResponse
// @Router /events [get]
func (c *EventController) List(w http.ResponseWriter, r *http.Request) {
	record := helpers.QueryRecord(r, "limit", "offset")
	if !helpers.ValidateRequest(w, schema.GetEvents, record) {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteError(w, http.StatusUnauthorized, helpers.MsgUnauthorized)
		return
	}

	params := domain.ListParams{
		Limit:  schema.OptInt(record, "limit"),
		Offset: schema.OptInt(record, "offset"),
	}
	events, err := c.Service.ListByOwner(r.Context(), userID, params)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteError(w, http.StatusInternalServerError, helpers.MsgServerError)
		return
	}
	if events == nil {
		events = []*domain.Event{}
	}
	helpers.WriteJSON(w, http.StatusOK, ListEventsResponse{Length: len(events), Events: events})
}

// GetDetailed godoc
// @Summary Get a single event with details
// @Description Returns the event with creator and RSVPs. The owner sees everything; a caller presenting the event's rsvpToken sees the event without its RSVP list; everyone else gets 403.
// @Tags events
// @Produce json
// @Param eventId path string true "Event ID (UUID)"
// @Param rsvpToken query string false "Per-event capability token"
// @Success 200 {object} domain.Event
// @Failure 400 {object} helpers.ErrorResponse
// @Failure 403 {object} helpers.ErrorResponse
// @Failure 404 {object} helpers.ErrorResponse
// @Failure 500 {object} helpers.ErrorResponse
// @Router /events/{eventId} [get]
func (c *EventController) GetDetailed(w http.ResponseWriter, r *http.Request) {
	record := helpers.QueryRecord(r, "rsvpToken")
	record["eventId"] = r.PathValue("eventId")
	if !helpers.ValidateRequest(w, schema.GetDetailedEvent, record) {
		return
	}
	userID, _ := middleware.UserIDFromContext(r.Context())

	event, err := c.Service.GetDetailed(r.Context(), schema.Str(record, "eventId"), userID, schema.Str(record, "rsvpToken"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			helpers.WriteError(w, http.StatusNotFound, "Event not found.")
		case errors.Is(err, domain.ErrForbidden):
			helpers.WriteError(w, http.StatusForbidden, helpers.MsgNotAuthorizedView)
		default:
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			helpers.WriteError(w, http.StatusInternalServerError, helpers.MsgServerError)
		}
		return
	}
	helpers.WriteJSON(w, http.StatusOK, event)
}

// Modify godoc
// @Summary Modify an event
// @Description Partially updates an event owned by the caller; omitted fields are unchanged. Changing startDate discards all existing RSVPs and notifies their holders by email.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body object true "eventId plus the fields to change"
// @Success 200 {object} controllers.ModifyEventResponse
// @Failure 400 {object} helpers.ErrorResponse
// @Failure 401 {object} helpers.ErrorResponse
// @Failure 404 {object} helpers.ErrorResponse "event missing or caller is not the owner"
// @Failure 500 {object} helpers.ErrorResponse
// @Router /events [put]
func (c *EventController) Modify(w http.ResponseWriter, r *http.Request) {
	record := helpers.DecodeBody(w, r)
	if record == nil {
		return
	}
	if !helpers.ValidateRequest(w, schema.ModifyEvent, record) {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteError(w, http.StatusUnauthorized, helpers.MsgUnauthorized)
		return
	}

	update := domain.EventUpdate{
		Title:       schema.OptStr(record, "title"),
		Description: schema.OptStr(record, "description"),
		Location:    schema.OptStr(record, "location"),
		StartDate:   schema.OptTime(record, "startDate"),
		EndDate:     schema.OptTime(record, "endDate"),
	}
	if s := schema.OptStr(record, "creationStatus"); s != nil {
		cs := domain.CreationStatus(*s)
		update.CreationStatus = &cs
	}

	event, err := c.Service.Modify(r.Context(), userID, domain.ModifyEventInput{
		EventID: schema.Str(record, "eventId"),
		Update:  update,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			helpers.WriteError(w, http.StatusNotFound, helpers.MsgEventNotFound)
		case errors.Is(err, domain.ErrInvalidInput):
			helpers.WriteError(w, http.StatusBadRequest, "endDate must not be before startDate.")
		default:
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			helpers.WriteError(w, http.StatusInternalServerError, helpers.MsgServerError)
		}
		return
	}
	helpers.WriteJSON(w, http.StatusOK, ModifyEventResponse{
		Message: "Event updated successfully.",
		Event:   event,
	})
}

// Delete godoc
// @Summary Delete an event
// @Description Deletes an event owned by the caller along with its RSVPs, and returns the record as it was before deletion.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body object true "eventId"
// @Success 200 {object} controllers.DeleteEventResponse
// @Failure 400 {object} helpers.ErrorResponse
// @Failure 401 {object} helpers.ErrorResponse
// @Failure 404 {object} helpers.ErrorResponse "event missing or caller is not the owner"
// @Failure 500 {object} helpers.ErrorResponse
// @Router /events [delete]
func (c *EventController) Delete(w http.ResponseWriter, r *http.Request) {
	record := helpers.DecodeBody(w, r)
	if record == nil {
		return
	}
	if !helpers.ValidateRequest(w, schema.DeleteEvent, record) {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteError(w, http.StatusUnauthorized, helpers.MsgUnauthorized)
		return
	}

	event, err := c.Service.Delete(r.Context(), schema.Str(record, "eventId"), userID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			helpers.WriteError(w, http.StatusNotFound, helpers.MsgEventNotFound)
		default:
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			helpers.WriteError(w, http.StatusInternalServerError, helpers.MsgServerError)
		}
		return
	}
	helpers.WriteJSON(w, http.StatusOK, DeleteEventResponse{
		Message: "Event deleted successfully.",
		Event:   event,
	})
}

// Invite godoc
// @Summary Send invitation emails for an event
// @Description Emails each recipient an invitation carrying the event's rsvpToken link. Only the owner can invite. Every recipient is attempted; a partial failure returns 207 with the addresses that failed.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body object true "eventId, recipients (email, optional name), optional customMessage"
// @Success 200 {object} controllers.InviteResponse
// @Success 207 {object} controllers.InviteResponse "some recipients failed"
// @Failure 400 {object} helpers.ErrorResponse
// @Failure 401 {object} helpers.ErrorResponse
// @Failure 404 {object} helpers.ErrorResponse "event missing or caller is not the owner"
// @Failure 500 {object} helpers.ErrorResponse
// @Router /events/invite [post]
func (c *EventController) Invite(w http.ResponseWriter, r *http.Request) {
	record := helpers.DecodeBody(w, r)
	if record == nil {
		return
	}
	if !helpers.ValidateRequest(w, schema.Invite, record) {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteError(w, http.StatusUnauthorized, helpers.MsgUnauthorized)
		return
	}

	recipients := recipientsFromRecord(record)
	failed, err := c.Service.Invite(r.Context(), schema.Str(record, "eventId"), userID, recipients, schema.Str(record, "customMessage"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			helpers.WriteError(w, http.StatusNotFound, helpers.MsgEventNotFound)
		default:
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			helpers.WriteError(w, http.StatusInternalServerError, helpers.MsgServerError)
		}
		return
	}
	if len(failed) > 0 {
		helpers.WriteJSON(w, http.StatusMultiStatus, InviteResponse{
			Message:          fmt.Sprintf("Some invitations could not be sent: %s.", strings.Join(failed, ", ")),
			FailedRecipients: failed,
		})
		return
	}
	helpers.WriteJSON(w, http.StatusOK, InviteResponse{Message: "Invitations sent successfully."})
}

// recipientsFromRecord reads the validated recipients array out of the
// request record.
func recipientsFromRecord(record map[string]any) []domain.Recipient {
	items, _ := record["recipients"].([]any)
	recipients := make([]domain.Recipient, 0, len(items))
	for _, item := range items {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}
		recipients = append(recipients, domain.Recipient{
			Email: schema.Str(entry, "email"),
			Name:  schema.Str(entry, "name"),
		})
	}
	return recipients
}
