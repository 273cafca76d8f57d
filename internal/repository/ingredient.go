package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/lib/pq"

	"github.com/foodgram/foodgram/internal/model"
)

// ErrIngredientNotFound indicates the requested ingredient does not exist.
var ErrIngredientNotFound = errors.New("ingredient not found")

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike escapes LIKE/ILIKE metacharacters so a user-supplied
// substring matches literally instead of acting as a pattern.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// ListIngredients returns ingredients ordered by name, optionally filtered
// by a case-insensitive substring match on the name.
func (r *Repository) ListIngredients(ctx context.Context, nameFilter string) ([]model.Ingredient, error) {
	query := `
		SELECT id, name, measurement_unit
		FROM ingredients
	`
	var args []any
	if nameFilter != "" {
		query += ` WHERE name ILIKE '%' || $1 || '%'`
		args = append(args, escapeLike(nameFilter))
	}
	query += ` ORDER BY name`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list ingredients: %w", err)
	}
	defer rows.Close()

	return collectIngredients(rows)
}

// GetIngredientByID retrieves an ingredient by ID.
func (r *Repository) GetIngredientByID(ctx context.Context, id int64) (*model.Ingredient, error) {
	query := `
		SELECT id, name, measurement_unit
		FROM ingredients
		WHERE id = $1
	`

	var ing model.Ingredient
	err := r.pool.QueryRow(ctx, query, id).Scan(&ing.ID, &ing.Name, &ing.MeasurementUnit)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrIngredientNotFound
		}
		return nil, fmt.Errorf("failed to get ingredient by ID: %w", err)
	}

	return &ing, nil
}

// IngredientsExist checks that every given ID references an ingredient.
func (r *Repository) IngredientsExist(ctx context.Context, ids []int64) (bool, error) {
	if len(ids) == 0 {
		return true, nil
	}

	query := `SELECT COUNT(*) FROM ingredients WHERE id = ANY($1)`

	var count int64
	if err := r.pool.QueryRow(ctx, query, pq.Array(ids)).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check ingredients: %w", err)
	}

	return count == int64(len(ids)), nil
}

// UpsertIngredient inserts an ingredient unless the (name, unit) pair
// already exists. Used by the CSV import command.
func (r *Repository) UpsertIngredient(ctx context.Context, ing *model.Ingredient) (bool, error) {
	query := `
		INSERT INTO ingredients (name, measurement_unit)
		VALUES ($1, $2)
		ON CONFLICT (name, measurement_unit) DO NOTHING
		RETURNING id
	`

	err := r.pool.QueryRow(ctx, query, ing.Name, ing.MeasurementUnit).Scan(&ing.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil // Already present
		}
		return false, fmt.Errorf("failed to upsert ingredient: %w", err)
	}

	return true, nil
}

// collectIngredients scans all rows into an ingredient slice.
func collectIngredients(rows pgx.Rows) ([]model.Ingredient, error) {
	var ingredients []model.Ingredient
	for rows.Next() {
		var ing model.Ingredient
		if err := rows.Scan(&ing.ID, &ing.Name, &ing.MeasurementUnit); err != nil {
			return nil, fmt.Errorf("failed to scan ingredient: %w", err)
		}
		ingredients = append(ingredients, ing)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ingredients: %w", err)
	}

	return ingredients, nil
}
