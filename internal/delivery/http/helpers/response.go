package helpers

import (
	"encoding/json"
	"net/http"

	"eventrsvp/internal/schema"
)

// Shared user-facing messages. Validation failures and conflicts keep the
// wording the web client already matches on.
const (
	MsgServerError        = "Something went wrong. Please try again later."
	MsgInvalidBody        = "Invalid request body."
	MsgUnauthorized       = "Unauthorized"
	MsgTokenExpired       = "Token expired. Please log in again."
	MsgEventNotFound      = "Event not found or invalid userId."
	MsgNotAuthorizedView  = "You are not authorized to view this event."
	MsgInvalidRSVPToken   = "Invalid RSVP token."
	MsgEmailAlreadyExists = "A user with the given email already exists."
	MsgInvalidCredentials = "Invalid email or password."
)

// ErrorResponse is the body of every error response. ValidationErrors is
// present on every schema-validation failure, absent otherwise.
// swagger:model ErrorResponse
type ErrorResponse struct {
	Message          string              `json:"message"`
	ValidationErrors []schema.FieldError `json:"validationErrors,omitempty"`
}

// WriteJSON sets Content-Type to application/json, writes statusCode, and
// encodes payload.
func WriteJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

// WriteError writes an error response carrying only a message.
func WriteError(w http.ResponseWriter, statusCode int, message string) {
	WriteJSON(w, statusCode, ErrorResponse{Message: message})
}

// WriteValidationErrors writes a 400 with the message and every
// field-level error, so a UI can display all problems at once.
func WriteValidationErrors(w http.ResponseWriter, errs []schema.FieldError) {
	WriteJSON(w, http.StatusBadRequest, ErrorResponse{
		Message:          MsgInvalidBody,
		ValidationErrors: errs,
	})
}

// DecodeBody decodes the request body into a record. On malformed JSON it
// writes a 400 and returns nil; callers should return immediately.
func DecodeBody(w http.ResponseWriter, r *http.Request) map[string]any {
	var record map[string]any
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		WriteError(w, http.StatusBadRequest, MsgInvalidBody)
		return nil
	}
	if record == nil {
		record = map[string]any{}
	}
	return record
}

// ValidateRequest validates record against the named schema, writing a
// 400 with all field errors on failure. Returns true when valid.
func ValidateRequest(w http.ResponseWriter, schemaName string, record map[string]any) bool {
	ok, errs := schema.Validate(schemaName, record)
	if !ok {
		WriteValidationErrors(w, errs)
		return false
	}
	return true
}
