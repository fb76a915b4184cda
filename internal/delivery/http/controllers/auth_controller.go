package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"eventrsvp/internal/delivery/http/helpers"
	"eventrsvp/internal/domain"
	"eventrsvp/internal/schema"
)

// TokenResponse carries the session JWT returned by register and login.
type TokenResponse struct {
	Token string `json:"token"`
}

type AuthController struct {
	Logger  *slog.Logger
	Service domain.AuthService
}

func NewAuthController(logger *slog.Logger, svc domain.AuthService) *AuthController {
	return &AuthController{
		Logger:  logger,
		Service: svc,
	}
}

// Register godoc
// @Summary Register a new user
// @Description Creates a user account and returns a session token. Email must be unique; passwords are 8-72 characters.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body object true "email, password, firstName, lastName"
// @Success 201 {object} controllers.TokenResponse
// @Failure 400 {object} helpers.ErrorResponse "validation failure or duplicate email"
// @Failure 500 {object} helpers.ErrorResponse
// @Router /auth/register [post]
func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	record := helpers.DecodeBody(w, r)
	if record == nil {
		return
	}
	if !helpers.ValidateRequest(w, schema.Register, record) {
		return
	}

	token, err := c.Service.Register(r.Context(),
		schema.Str(record, "email"),
		schema.Str(record, "password"),
		schema.Str(record, "firstName"),
		schema.Str(record, "lastName"),
	)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			helpers.WriteError(w, http.StatusBadRequest, helpers.MsgEmailAlreadyExists)
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteError(w, http.StatusInternalServerError, helpers.MsgServerError)
		return
	}
	helpers.WriteJSON(w, http.StatusCreated, TokenResponse{Token: token})
}

// Login godoc
// @Summary Log in
// @Description Verifies credentials and returns a session token. Unknown emails and wrong passwords get the same response.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body object true "email, password"
// @Success 200 {object} controllers.TokenResponse
// @Failure 400 {object} helpers.ErrorResponse "validation failure or bad credentials"
// @Failure 500 {object} helpers.ErrorResponse
// @Router /auth/login [post]
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	record := helpers.DecodeBody(w, r)
	if record == nil {
		return
	}
	if !helpers.ValidateRequest(w, schema.Login, record) {
		return
	}

	token, err := c.Service.Login(r.Context(), schema.Str(record, "email"), schema.Str(record, "password"))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			helpers.WriteError(w, http.StatusBadRequest, helpers.MsgInvalidCredentials)
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteError(w, http.StatusInternalServerError, helpers.MsgServerError)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, TokenResponse{Token: token})
}
