package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	h "joiny/internal/delivery/http/helpers"
	"joiny/internal/domain"
)

type contextKey string

const userIDKey contextKey = "userID"

// SetUserID returns a context with the user ID set. Used by auth middleware.
func SetUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserIDFromContext returns the authenticated user ID from the context, if present.
func UserIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok && id > 0
}

// ActorFromContext returns the caller as a domain.Actor; anonymous when no
// user was authenticated.
func ActorFromContext(ctx context.Context) domain.Actor {
	if id, ok := UserIDFromContext(ctx); ok {
		return domain.UserActor(id)
	}
	return domain.Anonymous()
}

// bearerToken extracts the token from the Authorization header. present is
// false when no header was sent at all.
func bearerToken(r *http.Request) (token string, present bool, problem string) {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return "", false, "missing authorization header"
	}
	const prefix = "Bearer "
	if !strings.HasPrefix(auth, prefix) {
		return "", true, "invalid authorization format"
	}
	token = strings.TrimSpace(auth[len(prefix):])
	if token == "" {
		return "", true, "missing token"
	}
	return token, true, ""
}

// RequireAuth returns a wrapper that validates the Bearer access token and sets the user ID in the request context.
// If the token is missing or invalid, it responds with 401 and does not call next.
func RequireAuth(verifier domain.TokenVerifier, logger *slog.Logger) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			token, _, problem := bearerToken(r)
			if problem != "" {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, problem)
				return
			}
			userID, err := verifier.Verify(token, domain.AccessToken)
			if err != nil {
				logger.DebugContext(r.Context(), "rejected token", "path", r.URL.Path, "err", err)
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "invalid or expired token")
				return
			}
			next(w, r.WithContext(SetUserID(r.Context(), userID)))
		}
	}
}

// OptionalAuth lets anonymous requests through. A request that does send
// credentials must send valid ones; a bad token is still a 401.
func OptionalAuth(verifier domain.TokenVerifier, logger *slog.Logger) func(http.HandlerFunc) http.HandlerFunc {
	strict := RequireAuth(verifier, logger)
	return func(next http.HandlerFunc) http.HandlerFunc {
		authed := strict(next)
		return func(w http.ResponseWriter, r *http.Request) {
			if _, present, _ := bearerToken(r); !present {
				next(w, r)
				return
			}
			authed(w, r)
		}
	}
}
