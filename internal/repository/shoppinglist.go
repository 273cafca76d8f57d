package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/foodgram/foodgram/internal/model"
)

// Common errors for shopping list operations.
var (
	ErrAlreadyInCart = errors.New("recipe already in shopping cart")
	ErrNotInCart     = errors.New("recipe not in shopping cart")
)

// AddToCart puts a recipe into the user's shopping cart.
func (r *Repository) AddToCart(ctx context.Context, userID, recipeID int64) error {
	query := `INSERT INTO shopping_list (user_id, recipe_id) VALUES ($1, $2)`

	if _, err := r.pool.Exec(ctx, query, userID, recipeID); err != nil {
		if uniqueViolation(err, "") {
			return ErrAlreadyInCart
		}
		return fmt.Errorf("failed to add to cart: %w", err)
	}

	return nil
}

// RemoveFromCart takes a recipe out of the user's shopping cart.
func (r *Repository) RemoveFromCart(ctx context.Context, userID, recipeID int64) error {
	query := `DELETE FROM shopping_list WHERE user_id = $1 AND recipe_id = $2`

	result, err := r.pool.Exec(ctx, query, userID, recipeID)
	if err != nil {
		return fmt.Errorf("failed to remove from cart: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotInCart
	}

	return nil
}

// AggregateCart sums ingredient amounts across every recipe in the user's
// cart, grouped by ingredient name and unit.
func (r *Repository) AggregateCart(ctx context.Context, userID int64) ([]model.ShoppingItem, error) {
	query := `
		SELECT i.name, i.measurement_unit, SUM(ri.amount) AS amount
		FROM shopping_list s
		JOIN recipe_ingredients ri ON ri.recipe_id = s.recipe_id
		JOIN ingredients i ON i.id = ri.ingredient_id
		WHERE s.user_id = $1
		GROUP BY i.name, i.measurement_unit
		ORDER BY i.name
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate cart: %w", err)
	}
	defer rows.Close()

	var items []model.ShoppingItem
	for rows.Next() {
		var item model.ShoppingItem
		if err := rows.Scan(&item.Name, &item.MeasurementUnit, &item.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan cart item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cart items: %w", err)
	}

	return items, nil
}
