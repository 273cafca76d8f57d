package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/foodgram/foodgram/internal/service"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestHandleRecipeError_Mapping(t *testing.T) {
	h := &RecipeHandler{logger: discardLogger()}

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantKey    string
	}{
		{"not found", service.ErrRecipeNotFound, http.StatusNotFound, "detail"},
		{"not author", service.ErrNotRecipeAuthor, http.StatusForbidden, "detail"},
		{"empty tags", service.ErrEmptyTags, http.StatusBadRequest, "errors"},
		{"duplicate ingredient", service.ErrDuplicateIngredient, http.StatusBadRequest, "errors"},
		{"bad amount", service.ErrInvalidAmount, http.StatusBadRequest, "errors"},
		{"bad image", service.ErrInvalidImage, http.StatusBadRequest, "errors"},
		{"already favorited", service.ErrAlreadyFavorited, http.StatusBadRequest, "errors"},
		{"not in cart", service.ErrNotInCart, http.StatusBadRequest, "errors"},
		{"unknown", io.ErrUnexpectedEOF, http.StatusInternalServerError, "detail"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()

			h.handleRecipeError(rec, tt.err)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}

			var body map[string]string
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if body[tt.wantKey] == "" {
				t.Errorf("expected %q key in body, got %v", tt.wantKey, body)
			}
		})
	}
}

func TestFlagParam(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  bool
	}{
		{"missing", "", false},
		{"one", "1", true},
		{"zero", "0", false},
		{"other nonzero", "2", true},
		{"negative", "-1", true},
		{"garbage", "true", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := flagParam(tt.value); got != tt.want {
				t.Errorf("flagParam(%q) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestParseRecipesLimit(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  int
	}{
		{"missing", "", 0},
		{"valid", "recipes_limit=3", 3},
		{"zero", "recipes_limit=0", 0},
		{"negative", "recipes_limit=-1", 0},
		{"garbage", "recipes_limit=abc", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/api/users/subscriptions?"+tt.query, nil)
			if got := parseRecipesLimit(r); got != tt.want {
				t.Errorf("parseRecipesLimit(%q) = %d, want %d", tt.query, got, tt.want)
			}
		})
	}
}
