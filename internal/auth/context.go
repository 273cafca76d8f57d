package auth

import (
	"context"

	"github.com/foodgram/foodgram/internal/model"
)

type contextKey string

const authContextKey contextKey = "auth_context"

// ContextWithAuth stores the resolved auth context on ctx.
func ContextWithAuth(ctx context.Context, auth *model.AuthContext) context.Context {
	return context.WithValue(ctx, authContextKey, auth)
}

// AuthFromContext returns the auth context, or nil for anonymous requests.
func AuthFromContext(ctx context.Context) *model.AuthContext {
	auth, ok := ctx.Value(authContextKey).(*model.AuthContext)
	if !ok {
		return nil
	}
	return auth
}

// MustAuthFromContext returns the auth context and panics when absent.
// Only for handlers behind the Auth middleware.
func MustAuthFromContext(ctx context.Context) *model.AuthContext {
	auth := AuthFromContext(ctx)
	if auth == nil {
		panic("auth context not found - ensure auth middleware is applied")
	}
	return auth
}

// UserIDFromContext returns the caller's user ID, 0 when anonymous.
// Zero doubles as the "no viewer" value for the is_favorited and
// is_in_shopping_cart flags.
func UserIDFromContext(ctx context.Context) int64 {
	if auth := AuthFromContext(ctx); auth != nil {
		return auth.UserID
	}
	return 0
}

// TokenIDFromContext returns the ID of the token that authenticated the
// request, "" when anonymous. Logout revokes exactly this token.
func TokenIDFromContext(ctx context.Context) string {
	if auth := AuthFromContext(ctx); auth != nil {
		return auth.TokenID
	}
	return ""
}
