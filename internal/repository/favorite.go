package repository

import (
	"context"
	"errors"
	"fmt"
)

// Common errors for favorite operations.
var (
	ErrAlreadyFavorited = errors.New("recipe already favorited")
	ErrNotFavorited     = errors.New("recipe not favorited")
)

// AddFavorite marks a recipe as a favorite of the user.
func (r *Repository) AddFavorite(ctx context.Context, userID, recipeID int64) error {
	query := `INSERT INTO favorites (user_id, recipe_id) VALUES ($1, $2)`

	if _, err := r.pool.Exec(ctx, query, userID, recipeID); err != nil {
		if uniqueViolation(err, "") {
			return ErrAlreadyFavorited
		}
		return fmt.Errorf("failed to add favorite: %w", err)
	}

	return nil
}

// RemoveFavorite removes a recipe from the user's favorites.
func (r *Repository) RemoveFavorite(ctx context.Context, userID, recipeID int64) error {
	query := `DELETE FROM favorites WHERE user_id = $1 AND recipe_id = $2`

	result, err := r.pool.Exec(ctx, query, userID, recipeID)
	if err != nil {
		return fmt.Errorf("failed to remove favorite: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFavorited
	}

	return nil
}
