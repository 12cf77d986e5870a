package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// CORS wraps next with a policy for the given origins. A "*" entry allows any
// origin without credentials. Websocket upgrades are GETs and pass through
// unchanged; their origin is checked by the upgrader.
func CORS(allowedOrigins []string, next http.Handler) http.Handler {
	opts := cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "Accept"},
		AllowCredentials: true,
		MaxAge:           86400,
	}
	for _, o := range allowedOrigins {
		if o == "*" {
			opts.AllowCredentials = false
			break
		}
	}
	return cors.New(opts).Handler(next)
}

// OriginChecker returns a websocket CheckOrigin func for the same origin
// list. Requests without an Origin header (non-browser clients) pass.
func OriginChecker(allowedOrigins []string) func(*http.Request) bool {
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		if o == "*" {
			return func(*http.Request) bool { return true }
		}
		allowed[o] = struct{}{}
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		_, ok := allowed[origin]
		return ok
	}
}
