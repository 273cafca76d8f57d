package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/lib/pq"

	"github.com/foodgram/foodgram/internal/model"
)

// ErrTagNotFound indicates the requested tag does not exist.
var ErrTagNotFound = errors.New("tag not found")

// ListTags returns all tags ordered by slug.
func (r *Repository) ListTags(ctx context.Context) ([]model.Tag, error) {
	query := `
		SELECT id, name, color, slug
		FROM tags
		ORDER BY slug
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	defer rows.Close()

	return collectTags(rows)
}

// GetTagByID retrieves a tag by ID.
func (r *Repository) GetTagByID(ctx context.Context, id int64) (*model.Tag, error) {
	query := `
		SELECT id, name, color, slug
		FROM tags
		WHERE id = $1
	`

	var tag model.Tag
	err := r.pool.QueryRow(ctx, query, id).Scan(&tag.ID, &tag.Name, &tag.Color, &tag.Slug)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTagNotFound
		}
		return nil, fmt.Errorf("failed to get tag by ID: %w", err)
	}

	return &tag, nil
}

// GetTagsByIDs loads the given tags. Returns ErrTagNotFound when any
// requested ID is missing so callers can reject invalid recipe payloads.
func (r *Repository) GetTagsByIDs(ctx context.Context, ids []int64) ([]model.Tag, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `
		SELECT id, name, color, slug
		FROM tags
		WHERE id = ANY($1)
		ORDER BY slug
	`

	rows, err := r.pool.Query(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to get tags: %w", err)
	}
	defer rows.Close()

	tags, err := collectTags(rows)
	if err != nil {
		return nil, err
	}

	if len(tags) != len(ids) {
		return nil, ErrTagNotFound
	}

	return tags, nil
}

// collectTags scans all rows into a tag slice.
func collectTags(rows pgx.Rows) ([]model.Tag, error) {
	var tags []model.Tag
	for rows.Next() {
		var tag model.Tag
		if err := rows.Scan(&tag.ID, &tag.Name, &tag.Color, &tag.Slug); err != nil {
			return nil, fmt.Errorf("failed to scan tag: %w", err)
		}
		tags = append(tags, tag)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tags: %w", err)
	}

	return tags, nil
}
