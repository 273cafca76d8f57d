package middleware

import (
	"net"
	"net/http"
	"strings"
)

// SecurityConfig holds configuration for security headers and host checks.
type SecurityConfig struct {
	// IsDevelopment disables HSTS in dev environments.
	IsDevelopment bool
	// AllowedHosts is the list of Host header values the server accepts.
	// "*" or an empty list disables the check.
	AllowedHosts []string
}

// Security returns a middleware that applies security headers to all
// responses and rejects requests with an unexpected Host header.
func Security(cfg SecurityConfig) func(http.Handler) http.Handler {
	hostMap := make(map[string]bool, len(cfg.AllowedHosts))
	allowAll := len(cfg.AllowedHosts) == 0
	for _, h := range cfg.AllowedHosts {
		if h == "*" {
			allowAll = true
		}
		hostMap[strings.ToLower(h)] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !allowAll && !hostAllowed(r.Host, hostMap) {
				http.Error(w, "Bad Request", http.StatusBadRequest)
				return
			}

			w.Header().Set("X-Content-Type-Options", "nosniff")
			w.Header().Set("X-Frame-Options", "DENY")
			w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

			// HSTS only in production with HTTPS
			if !cfg.IsDevelopment {
				w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
			}

			next.ServeHTTP(w, r)
		})
	}
}

// hostAllowed strips the port from the Host header and checks the whitelist.
func hostAllowed(host string, hostMap map[string]bool) bool {
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	return hostMap[strings.ToLower(host)]
}

// MaxBodySize returns a middleware that limits request body size.
// Base64 recipe images make bodies larger than typical JSON payloads,
// so the limit is configured rather than hardcoded.
func MaxBodySize(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil && r.ContentLength > maxBytes {
				http.Error(w, `{"detail":"Тело запроса слишком большое."}`, http.StatusRequestEntityTooLarge)
				return
			}

			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

			next.ServeHTTP(w, r)
		})
	}
}
