package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/foodgram/foodgram/internal/model"
)

// Common errors for subscription operations.
var (
	ErrAlreadySubscribed = errors.New("already subscribed")
	ErrNotSubscribed     = errors.New("subscription does not exist")
)

// CreateSubscription subscribes a user to an author.
func (r *Repository) CreateSubscription(ctx context.Context, subscriberID, authorID int64) error {
	query := `INSERT INTO subscriptions (subscriber_id, author_id) VALUES ($1, $2)`

	if _, err := r.pool.Exec(ctx, query, subscriberID, authorID); err != nil {
		if uniqueViolation(err, "") {
			return ErrAlreadySubscribed
		}
		return fmt.Errorf("failed to create subscription: %w", err)
	}

	return nil
}

// DeleteSubscription removes a subscription.
func (r *Repository) DeleteSubscription(ctx context.Context, subscriberID, authorID int64) error {
	query := `DELETE FROM subscriptions WHERE subscriber_id = $1 AND author_id = $2`

	result, err := r.pool.Exec(ctx, query, subscriberID, authorID)
	if err != nil {
		return fmt.Errorf("failed to delete subscription: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotSubscribed
	}

	return nil
}

// IsSubscribed reports whether subscriber follows author.
func (r *Repository) IsSubscribed(ctx context.Context, subscriberID, authorID int64) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM subscriptions WHERE subscriber_id = $1 AND author_id = $2)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, subscriberID, authorID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check subscription: %w", err)
	}

	return exists, nil
}

// ListSubscribedAuthors returns a page of authors the subscriber follows,
// newest subscription first.
func (r *Repository) ListSubscribedAuthors(ctx context.Context, subscriberID int64, limit, offset int) ([]*model.User, error) {
	query := `
		SELECT u.id, u.email, u.username, u.first_name, u.last_name, u.password_hash, u.created_at
		FROM subscriptions sub
		JOIN users u ON u.id = sub.author_id
		WHERE sub.subscriber_id = $1
		ORDER BY sub.id DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.pool.Query(ctx, query, subscriberID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}
	defer rows.Close()

	var authors []*model.User
	for rows.Next() {
		author, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan author: %w", err)
		}
		authors = append(authors, author)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating subscriptions: %w", err)
	}

	return authors, nil
}

// CountSubscribedAuthors returns how many authors the subscriber follows.
func (r *Repository) CountSubscribedAuthors(ctx context.Context, subscriberID int64) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM subscriptions WHERE subscriber_id = $1`, subscriberID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count subscriptions: %w", err)
	}
	return count, nil
}
