package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/foodgram/foodgram/internal/model"
)

const (
	// tagListKey is the Redis key for the full tag list.
	// Tags are reference data that changes only on deploys, so a single
	// cached list with a TTL is enough.
	tagListKey = "tags:all"
	// tagListTTL is the time-to-live for the cached tag list.
	tagListTTL = 10 * time.Minute
)

// GetTagList retrieves the cached tag list.
// Returns nil if not cached (cache miss).
func (c *Cache) GetTagList(ctx context.Context) ([]model.Tag, error) {
	data, err := c.client.Get(ctx, tagListKey).Bytes()
	if err != nil {
		// Cache miss is not an error
		return nil, nil //nolint:nilerr
	}

	var tags []model.Tag
	if err := json.Unmarshal(data, &tags); err != nil {
		// Corrupted cache entry - treat as miss
		return nil, nil //nolint:nilerr
	}

	return tags, nil
}

// SetTagList caches the full tag list.
func (c *Cache) SetTagList(ctx context.Context, tags []model.Tag) error {
	data, err := json.Marshal(tags)
	if err != nil {
		return fmt.Errorf("marshal tag list: %w", err)
	}

	return c.client.Set(ctx, tagListKey, data, tagListTTL).Err()
}
