package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func securityHandler(cfg SecurityConfig) http.Handler {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return Security(cfg)(next)
}

func TestSecurity_Headers(t *testing.T) {
	t.Parallel()

	h := securityHandler(SecurityConfig{IsDevelopment: false})

	req := httptest.NewRequest(http.MethodGet, "/api/tags", nil)
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	if rec.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Error("X-Content-Type-Options missing")
	}
	if rec.Header().Get("X-Frame-Options") != "DENY" {
		t.Error("X-Frame-Options missing")
	}
	if rec.Header().Get("Strict-Transport-Security") == "" {
		t.Error("HSTS expected in production mode")
	}
}

func TestSecurity_NoHSTSInDevelopment(t *testing.T) {
	t.Parallel()

	h := securityHandler(SecurityConfig{IsDevelopment: true})

	req := httptest.NewRequest(http.MethodGet, "/api/tags", nil)
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	if rec.Header().Get("Strict-Transport-Security") != "" {
		t.Error("HSTS should be disabled in development")
	}
}

func TestSecurity_AllowedHosts(t *testing.T) {
	t.Parallel()

	h := securityHandler(SecurityConfig{AllowedHosts: []string{"foodgram.example", "localhost"}})

	tests := []struct {
		host     string
		wantCode int
	}{
		{"foodgram.example", http.StatusOK},
		{"localhost", http.StatusOK},
		{"localhost:8000", http.StatusOK},
		{"evil.example", http.StatusBadRequest},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/api/tags", nil)
		req.Host = tt.host
		rec := httptest.NewRecorder()

		h.ServeHTTP(rec, req)

		if rec.Code != tt.wantCode {
			t.Errorf("host %q: status = %d, want %d", tt.host, rec.Code, tt.wantCode)
		}
	}
}

func TestSecurity_WildcardHost(t *testing.T) {
	t.Parallel()

	h := securityHandler(SecurityConfig{AllowedHosts: []string{"*"}})

	req := httptest.NewRequest(http.MethodGet, "/api/tags", nil)
	req.Host = "anything.example"
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("wildcard should allow any host, got %d", rec.Code)
	}
}

func TestMaxBodySize_RejectsLargeContentLength(t *testing.T) {
	t.Parallel()

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	h := MaxBodySize(10)(next)

	req := httptest.NewRequest(http.MethodPost, "/api/recipes", strings.NewReader(strings.Repeat("x", 100)))
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("expected 413, got %d", rec.Code)
	}
}

func TestMaxBodySize_AllowsSmallBody(t *testing.T) {
	t.Parallel()

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	h := MaxBodySize(1024)(next)

	req := httptest.NewRequest(http.MethodPost, "/api/recipes", strings.NewReader("{}"))
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}
