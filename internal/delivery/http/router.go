package http

import (
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"eventrsvp/internal/delivery/http/controllers"
	"eventrsvp/internal/delivery/http/middleware"
	"eventrsvp/internal/domain"
)

// NewRouter initializes the HTTP router with all application routes.
// "GET /events/rsvps" is registered as a literal so it wins over the
// "GET /events/{eventId}" wildcard.
func NewRouter(
	logger *slog.Logger,
	verifier domain.TokenVerifier,
	allowedOrigins []string,
	authController *controllers.AuthController,
	eventController *controllers.EventController,
	rsvpController *controllers.RSVPController,
) http.Handler {
	mux := http.NewServeMux()

	requireAuth := middleware.RequireAuth(verifier)
	optionalAuth := middleware.OptionalAuth(verifier)

	// Auth
	mux.HandleFunc("POST /auth/register", authController.Register)
	mux.HandleFunc("POST /auth/login", authController.Login)

	// Events
	mux.HandleFunc("POST /events", requireAuth(eventController.Create))
	mux.HandleFunc("GET /events", requireAuth(eventController.List))
	mux.HandleFunc("PUT /events", requireAuth(eventController.Modify))
	mux.HandleFunc("DELETE /events", requireAuth(eventController.Delete))
	mux.HandleFunc("POST /events/invite", requireAuth(eventController.Invite))
	mux.HandleFunc("GET /events/{eventId}", optionalAuth(eventController.GetDetailed))

	// RSVPs
	mux.HandleFunc("PUT /events/rsvp", optionalAuth(rsvpController.Submit))
	mux.HandleFunc("GET /events/rsvps", requireAuth(rsvpController.ListForUser))

	// Operational endpoints
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	var handler http.Handler = mux
	handler = middleware.Metrics(handler)
	handler = middleware.LoggingMiddleware(logger, handler)
	handler = middleware.CORS(allowedOrigins, handler)
	return handler
}
