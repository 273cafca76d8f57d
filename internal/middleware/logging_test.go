package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRequestID_Generated(t *testing.T) {
	t.Parallel()

	var captured string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = GetRequestID(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	RequestID(next).ServeHTTP(rec, req)

	if captured == "" {
		t.Error("request ID should be generated")
	}
	if rec.Header().Get(RequestIDHeader) != captured {
		t.Error("request ID should be echoed in the response header")
	}
}

func TestRequestID_Propagated(t *testing.T) {
	t.Parallel()

	var captured string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = GetRequestID(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "incoming-id")
	rec := httptest.NewRecorder()

	RequestID(next).ServeHTTP(rec, req)

	if captured != "incoming-id" {
		t.Errorf("request ID = %q, want incoming-id", captured)
	}
}

func TestLogger_StatusAndPath(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/tags", nil)
	rec := httptest.NewRecorder()

	Logger(logger)(next).ServeHTTP(rec, req)

	out := buf.String()
	if !strings.Contains(out, `"status_code":418`) {
		t.Errorf("log should contain status 418: %s", out)
	}
	if !strings.Contains(out, `"path":"/api/tags"`) {
		t.Errorf("log should contain the path: %s", out)
	}
}

func TestLogger_ErrorLevelFor5xx(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	Logger(logger)(next).ServeHTTP(rec, req)

	if !strings.Contains(buf.String(), `"level":"ERROR"`) {
		t.Errorf("5xx responses should log at error level: %s", buf.String())
	}
}

func TestStatusRecorder_ImplicitOK(t *testing.T) {
	t.Parallel()

	rec := newStatusRecorder(httptest.NewRecorder())

	if _, err := rec.Write([]byte("body")); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	if rec.status != http.StatusOK {
		t.Errorf("implicit status = %d, want 200", rec.status)
	}
}

func TestStatusRecorder_DoubleWriteHeader(t *testing.T) {
	t.Parallel()

	rec := newStatusRecorder(httptest.NewRecorder())

	rec.WriteHeader(http.StatusCreated)
	rec.WriteHeader(http.StatusInternalServerError)

	if rec.status != http.StatusCreated {
		t.Errorf("first status should win, got %d", rec.status)
	}
}

func TestLogLevelFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status int
		want   slog.Level
	}{
		{200, slog.LevelInfo},
		{301, slog.LevelInfo},
		{404, slog.LevelWarn},
		{500, slog.LevelError},
	}

	for _, tt := range tests {
		if got := logLevelFor(tt.status); got != tt.want {
			t.Errorf("logLevelFor(%d) = %v, want %v", tt.status, got, tt.want)
		}
	}
}
