package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/foodgram/foodgram/internal/model"
)

// ErrTokenNotFound indicates no token matches the given digest or ID.
var ErrTokenNotFound = errors.New("token not found")

// CreateToken inserts a new auth token.
func (r *Repository) CreateToken(ctx context.Context, token *model.AuthToken) error {
	query := `
		INSERT INTO auth_tokens (id, user_id, token_hash, created_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.pool.Exec(ctx, query,
		token.ID,
		token.UserID,
		token.TokenHash,
		token.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create token: %w", err)
	}

	return nil
}

// GetTokenWithUser resolves a token digest to the token row and its owner.
// This is the hot path for authenticated requests.
func (r *Repository) GetTokenWithUser(ctx context.Context, tokenHash string) (*model.AuthToken, *model.User, error) {
	query := `
		SELECT t.id, t.user_id, t.token_hash, t.last_used_at, t.created_at,
		       u.id, u.email, u.username, u.first_name, u.last_name, u.password_hash, u.created_at
		FROM auth_tokens t
		JOIN users u ON u.id = t.user_id
		WHERE t.token_hash = $1
	`

	var token model.AuthToken
	var user model.User
	err := r.pool.QueryRow(ctx, query, tokenHash).Scan(
		&token.ID,
		&token.UserID,
		&token.TokenHash,
		&token.LastUsedAt,
		&token.CreatedAt,
		&user.ID,
		&user.Email,
		&user.Username,
		&user.FirstName,
		&user.LastName,
		&user.PasswordHash,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, ErrTokenNotFound
		}
		return nil, nil, fmt.Errorf("failed to get token: %w", err)
	}

	return &token, &user, nil
}

// DeleteToken removes a token by ID. Used on logout.
func (r *Repository) DeleteToken(ctx context.Context, id string) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM auth_tokens WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete token: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrTokenNotFound
	}

	return nil
}

// DeleteTokensByUser removes every token of a user and returns the
// deleted digests so their cache entries can be purged as well.
// Called after a password change to force re-login.
func (r *Repository) DeleteTokensByUser(ctx context.Context, userID int64) ([]string, error) {
	rows, err := r.pool.Query(ctx, `DELETE FROM auth_tokens WHERE user_id = $1 RETURNING token_hash`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to delete user tokens: %w", err)
	}
	defer rows.Close()

	var hashes []string
	for rows.Next() {
		var hash string
		if err := rows.Scan(&hash); err != nil {
			return nil, fmt.Errorf("failed to scan deleted token: %w", err)
		}
		hashes = append(hashes, hash)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to delete user tokens: %w", err)
	}

	return hashes, nil
}

// UpdateTokenLastUsed bumps the last_used_at timestamp.
// Called asynchronously from the auth middleware.
func (r *Repository) UpdateTokenLastUsed(ctx context.Context, id string) error {
	if _, err := r.pool.Exec(ctx, `UPDATE auth_tokens SET last_used_at = NOW() WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to update token last_used_at: %w", err)
	}
	return nil
}
