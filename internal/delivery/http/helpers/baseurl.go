package helpers

import (
	"net/http"
	"strings"
)

// BaseURL returns the public origin used to build absolute links. A
// configured value wins; otherwise it is derived from the request, honouring
// X-Forwarded-Proto from a terminating proxy.
func BaseURL(r *http.Request, configured string) string {
	if configured != "" {
		return strings.TrimSuffix(configured, "/")
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if p := r.Header.Get("X-Forwarded-Proto"); p != "" {
		scheme = strings.ToLower(strings.TrimSpace(strings.Split(p, ",")[0]))
	}
	return scheme + "://" + r.Host
}
