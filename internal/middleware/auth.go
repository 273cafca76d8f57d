package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/foodgram/foodgram/internal/auth"
	"github.com/foodgram/foodgram/internal/cache"
	"github.com/foodgram/foodgram/internal/model"
	"github.com/foodgram/foodgram/internal/repository"
)

// AuthConfig holds configuration for the auth middleware.
type AuthConfig struct {
	Logger     *slog.Logger
	Repository *repository.Repository
	Cache      *cache.Cache
	SecretKey  string
}

// Auth returns a middleware that requires an authenticated request.
// It extracts the token from the "Authorization: Token <key>" header,
// resolves it, and injects the auth context into the request.
func Auth(cfg AuthConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authCtx := resolveAuth(r, cfg)
			if authCtx == nil {
				writeAuthError(w)
				return
			}

			ctx := auth.ContextWithAuth(r.Context(), authCtx)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth resolves the auth context when a valid token is present
// but lets anonymous requests through. Used on public read endpoints
// where the viewer affects is_favorited/is_subscribed flags.
func OptionalAuth(cfg AuthConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if authCtx := resolveAuth(r, cfg); authCtx != nil {
				r = r.WithContext(auth.ContextWithAuth(r.Context(), authCtx))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// resolveAuth turns the Authorization header into an AuthContext.
// Returns nil for missing, malformed or revoked tokens.
func resolveAuth(r *http.Request, cfg AuthConfig) *model.AuthContext {
	token := extractToken(r)
	if token == "" {
		return nil
	}

	if !auth.ValidateTokenFormat(token) {
		cfg.Logger.Warn("authentication failed",
			slog.String("reason", "invalid_format"),
			slog.String("ip", r.RemoteAddr),
			slog.String("endpoint", r.Method+" "+r.URL.Path),
			slog.String("request_id", GetRequestID(r.Context())),
		)
		return nil
	}

	digest := auth.TokenDigest(cfg.SecretKey, token)

	// Check cache first
	if cfg.Cache != nil {
		if authCtx, _ := cfg.Cache.GetAuthContext(r.Context(), digest); authCtx != nil {
			return authCtx
		}
	}

	// Cache miss - hit the database
	tokenRow, user, err := cfg.Repository.GetTokenWithUser(r.Context(), digest)
	if err != nil {
		if !errors.Is(err, repository.ErrTokenNotFound) {
			cfg.Logger.Error("database error during auth",
				slog.String("error", err.Error()),
				slog.String("request_id", GetRequestID(r.Context())),
			)
		} else {
			cfg.Logger.Warn("authentication failed",
				slog.String("reason", "unknown_token"),
				slog.String("ip", r.RemoteAddr),
				slog.String("endpoint", r.Method+" "+r.URL.Path),
				slog.String("request_id", GetRequestID(r.Context())),
			)
		}
		return nil
	}

	authCtx := &model.AuthContext{
		TokenID:   tokenRow.ID,
		TokenHash: digest,
		UserID:    user.ID,
		Username:  user.Username,
		Email:     user.Email,
	}

	if cfg.Cache != nil {
		_ = cfg.Cache.SetAuthContext(r.Context(), digest, authCtx)
	}

	// Update last_used_at asynchronously
	go func(tokenID string) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = cfg.Repository.UpdateTokenLastUsed(ctx, tokenID)
	}(tokenRow.ID)

	return authCtx
}

// extractToken extracts the token from "Authorization: Token <key>".
func extractToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Token ") {
		return strings.TrimPrefix(header, "Token ")
	}
	return ""
}

// writeAuthError writes a 401 Unauthorized response.
// Uses the same message for all auth failures to prevent enumeration.
func writeAuthError(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"detail":"Учетные данные не были предоставлены."}`))
}
