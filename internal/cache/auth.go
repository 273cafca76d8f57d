package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/foodgram/foodgram/internal/model"
)

const (
	// authCachePrefix is the Redis key prefix for auth context cache.
	authCachePrefix = "auth:ctx:"
	// authCacheTTL is the time-to-live for cached auth contexts.
	authCacheTTL = 5 * time.Minute
)

// CachedAuthContext represents auth context stored in Redis.
type CachedAuthContext struct {
	TokenID  string `json:"token_id"`
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// toModel converts the cached form back to the domain AuthContext.
func (c *CachedAuthContext) toModel(tokenHash string) *model.AuthContext {
	return &model.AuthContext{
		TokenID:   c.TokenID,
		TokenHash: tokenHash,
		UserID:    c.UserID,
		Username:  c.Username,
		Email:     c.Email,
	}
}

// GetAuthContext retrieves a cached auth context by token digest.
// Returns nil if not found (cache miss).
func (c *Cache) GetAuthContext(ctx context.Context, tokenHash string) (*model.AuthContext, error) {
	key := authCachePrefix + tokenHash

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		// Cache miss is not an error
		return nil, nil //nolint:nilerr
	}

	var cached CachedAuthContext
	if err := json.Unmarshal(data, &cached); err != nil {
		// Corrupted cache entry - treat as miss
		return nil, nil //nolint:nilerr
	}

	return cached.toModel(tokenHash), nil
}

// SetAuthContext caches an auth context under the token digest.
func (c *Cache) SetAuthContext(ctx context.Context, tokenHash string, auth *model.AuthContext) error {
	key := authCachePrefix + tokenHash

	cached := CachedAuthContext{
		TokenID:  auth.TokenID,
		UserID:   auth.UserID,
		Username: auth.Username,
		Email:    auth.Email,
	}

	data, err := json.Marshal(cached)
	if err != nil {
		return fmt.Errorf("marshal auth context: %w", err)
	}

	return c.client.Set(ctx, key, data, authCacheTTL).Err()
}

// DeleteAuthContext removes a cached auth context.
// Used on logout so a revoked token stops working immediately.
func (c *Cache) DeleteAuthContext(ctx context.Context, tokenHash string) error {
	key := authCachePrefix + tokenHash
	return c.client.Del(ctx, key).Err()
}
