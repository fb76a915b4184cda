package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"eventrsvp/internal/delivery/http/helpers"
	"eventrsvp/internal/domain"
)

type contextKey string

const userIDKey contextKey = "userID"

// SetUserID returns a context with the user ID set. Used by auth middleware.
func SetUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserIDFromContext returns the authenticated user ID from the context, if present.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok
}

func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(auth, prefix) {
		return ""
	}
	return strings.TrimSpace(auth[len(prefix):])
}

// RequireAuth returns a wrapper that validates the Bearer token and sets
// the user ID in the request context. Missing or invalid tokens get a
// 401; an expired token gets its own message so clients can force a
// logout.
func RequireAuth(verifier domain.TokenVerifier) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				helpers.WriteError(w, http.StatusUnauthorized, helpers.MsgUnauthorized)
				return
			}
			userID, err := verifier.Verify(token)
			if err != nil {
				if errors.Is(err, domain.ErrTokenExpired) {
					helpers.WriteError(w, http.StatusUnauthorized, helpers.MsgTokenExpired)
					return
				}
				helpers.WriteError(w, http.StatusUnauthorized, helpers.MsgUnauthorized)
				return
			}
			r = r.WithContext(SetUserID(r.Context(), userID))
			next(w, r)
		}
	}
}

// OptionalAuth resolves the caller's identity when a valid Bearer token
// is present and treats everything else as anonymous. An absent or
// invalid token never fails the request; the access policy downstream
// decides what an anonymous caller may do.
func OptionalAuth(verifier domain.TokenVerifier) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if token := bearerToken(r); token != "" {
				if userID, err := verifier.Verify(token); err == nil {
					r = r.WithContext(SetUserID(r.Context(), userID))
				}
			}
			next(w, r)
		}
	}
}
