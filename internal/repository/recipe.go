package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/lib/pq"

	"github.com/foodgram/foodgram/internal/model"
)

// ErrRecipeNotFound indicates the requested recipe does not exist.
var ErrRecipeNotFound = errors.New("recipe not found")

// RecipeFilter defines filters for listing recipes.
// ViewerID drives the is_favorited/is_in_shopping_cart flags and is zero
// for anonymous requests.
type RecipeFilter struct {
	AuthorID    int64
	TagSlugs    []string
	FavoritedBy int64
	InCartOf    int64
	ViewerID    int64
}

// IngredientAmount pairs an ingredient ID with the amount a recipe needs.
type IngredientAmount struct {
	IngredientID int64
	Amount       int
}

const recipeSelectColumns = `
	r.id, r.author_id, r.name, r.text, r.cooking_time, COALESCE(r.image, ''), r.pub_date,
	EXISTS(SELECT 1 FROM favorites f WHERE f.recipe_id = r.id AND f.user_id = $1) AS is_favorited,
	EXISTS(SELECT 1 FROM shopping_list s WHERE s.recipe_id = r.id AND s.user_id = $1) AS is_in_shopping_cart
`

// GetRecipeByID retrieves a recipe with its tags and ingredients loaded.
func (r *Repository) GetRecipeByID(ctx context.Context, id, viewerID int64) (*model.Recipe, error) {
	query := `SELECT ` + recipeSelectColumns + `
		FROM recipes r
		WHERE r.id = $2
	`

	recipe, err := scanRecipe(r.pool.QueryRow(ctx, query, viewerID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRecipeNotFound
		}
		return nil, fmt.Errorf("failed to get recipe by ID: %w", err)
	}

	if err := r.loadRecipeRelations(ctx, []*model.Recipe{recipe}); err != nil {
		return nil, err
	}

	return recipe, nil
}

// ListRecipes retrieves a filtered page of recipes, newest first,
// with tags and ingredients loaded.
func (r *Repository) ListRecipes(ctx context.Context, filter RecipeFilter, limit, offset int) ([]*model.Recipe, error) {
	query := `SELECT ` + recipeSelectColumns + `
		FROM recipes r
		WHERE TRUE
	`
	args := []any{filter.ViewerID}
	query, args = appendRecipeFilters(query, args, filter)

	query += fmt.Sprintf(" ORDER BY r.pub_date DESC, r.id DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	defer rows.Close()

	var recipes []*model.Recipe
	for rows.Next() {
		recipe, err := scanRecipe(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan recipe: %w", err)
		}
		recipes = append(recipes, recipe)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating recipes: %w", err)
	}

	if err := r.loadRecipeRelations(ctx, recipes); err != nil {
		return nil, err
	}

	return recipes, nil
}

// CountRecipes returns the number of recipes matching the filter.
func (r *Repository) CountRecipes(ctx context.Context, filter RecipeFilter) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM recipes r
		WHERE TRUE
	`
	args := []any{filter.ViewerID}
	query, args = appendRecipeFilters(query, args, filter)

	var count int64
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count recipes: %w", err)
	}

	return count, nil
}

// appendRecipeFilters extends the WHERE clause for the given filter.
// args[0] is always the viewer ID so favorited/cart filters can reuse it.
func appendRecipeFilters(query string, args []any, filter RecipeFilter) (string, []any) {
	if filter.AuthorID != 0 {
		query += fmt.Sprintf(" AND r.author_id = $%d", len(args)+1)
		args = append(args, filter.AuthorID)
	}

	if len(filter.TagSlugs) > 0 {
		query += fmt.Sprintf(` AND r.id IN (
			SELECT rt.recipe_id FROM recipe_tags rt
			JOIN tags t ON t.id = rt.tag_id
			WHERE t.slug = ANY($%d)
		)`, len(args)+1)
		args = append(args, pq.Array(filter.TagSlugs))
	}

	if filter.FavoritedBy != 0 {
		query += fmt.Sprintf(" AND EXISTS(SELECT 1 FROM favorites f2 WHERE f2.recipe_id = r.id AND f2.user_id = $%d)", len(args)+1)
		args = append(args, filter.FavoritedBy)
	}

	if filter.InCartOf != 0 {
		query += fmt.Sprintf(" AND EXISTS(SELECT 1 FROM shopping_list s2 WHERE s2.recipe_id = r.id AND s2.user_id = $%d)", len(args)+1)
		args = append(args, filter.InCartOf)
	}

	return query, args
}

// CreateRecipe inserts a recipe with its tag and ingredient links in one
// transaction and fills in the generated ID.
func (r *Repository) CreateRecipe(ctx context.Context, recipe *model.Recipe, tagIDs []int64, ingredients []IngredientAmount) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	query := `
		INSERT INTO recipes (author_id, name, text, cooking_time, image, pub_date)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6)
		RETURNING id
	`

	err = tx.QueryRow(ctx, query,
		recipe.AuthorID,
		recipe.Name,
		recipe.Text,
		recipe.CookingTime,
		recipe.Image,
		recipe.PubDate,
	).Scan(&recipe.ID)
	if err != nil {
		return fmt.Errorf("failed to create recipe: %w", err)
	}

	if err := insertRecipeRelations(ctx, tx, recipe.ID, tagIDs, ingredients); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit recipe: %w", err)
	}

	return nil
}

// UpdateRecipe rewrites a recipe's fields and replaces its tag and
// ingredient links in one transaction.
func (r *Repository) UpdateRecipe(ctx context.Context, recipe *model.Recipe, tagIDs []int64, ingredients []IngredientAmount) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	query := `
		UPDATE recipes
		SET name = $2, text = $3, cooking_time = $4, image = NULLIF($5, '')
		WHERE id = $1
	`

	result, err := tx.Exec(ctx, query,
		recipe.ID,
		recipe.Name,
		recipe.Text,
		recipe.CookingTime,
		recipe.Image,
	)
	if err != nil {
		return fmt.Errorf("failed to update recipe: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrRecipeNotFound
	}

	if _, err := tx.Exec(ctx, `DELETE FROM recipe_tags WHERE recipe_id = $1`, recipe.ID); err != nil {
		return fmt.Errorf("failed to clear recipe tags: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM recipe_ingredients WHERE recipe_id = $1`, recipe.ID); err != nil {
		return fmt.Errorf("failed to clear recipe ingredients: %w", err)
	}

	if err := insertRecipeRelations(ctx, tx, recipe.ID, tagIDs, ingredients); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit recipe update: %w", err)
	}

	return nil
}

// DeleteRecipe removes a recipe. Links, favorites and cart entries go
// with it via ON DELETE CASCADE.
func (r *Repository) DeleteRecipe(ctx context.Context, id int64) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM recipes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete recipe: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrRecipeNotFound
	}

	return nil
}

// ListShortRecipesByAuthor returns an author's newest recipes without
// relations, for subscription payloads. limit <= 0 means no limit.
func (r *Repository) ListShortRecipesByAuthor(ctx context.Context, authorID int64, limit int) ([]*model.Recipe, error) {
	query := `
		SELECT id, author_id, name, COALESCE(image, ''), cooking_time, pub_date
		FROM recipes
		WHERE author_id = $1
		ORDER BY pub_date DESC, id DESC
	`
	args := []any{authorID}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list author recipes: %w", err)
	}
	defer rows.Close()

	var recipes []*model.Recipe
	for rows.Next() {
		var recipe model.Recipe
		if err := rows.Scan(&recipe.ID, &recipe.AuthorID, &recipe.Name, &recipe.Image, &recipe.CookingTime, &recipe.PubDate); err != nil {
			return nil, fmt.Errorf("failed to scan recipe: %w", err)
		}
		recipes = append(recipes, &recipe)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating recipes: %w", err)
	}

	return recipes, nil
}

// CountRecipesByAuthor returns the number of recipes by an author.
func (r *Repository) CountRecipesByAuthor(ctx context.Context, authorID int64) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM recipes WHERE author_id = $1`, authorID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count author recipes: %w", err)
	}
	return count, nil
}

// insertRecipeRelations writes the recipe_tags and recipe_ingredients rows.
func insertRecipeRelations(ctx context.Context, tx pgx.Tx, recipeID int64, tagIDs []int64, ingredients []IngredientAmount) error {
	for _, tagID := range tagIDs {
		_, err := tx.Exec(ctx,
			`INSERT INTO recipe_tags (recipe_id, tag_id) VALUES ($1, $2)`,
			recipeID, tagID,
		)
		if err != nil {
			return fmt.Errorf("failed to link tag %d: %w", tagID, err)
		}
	}

	for _, ing := range ingredients {
		_, err := tx.Exec(ctx,
			`INSERT INTO recipe_ingredients (recipe_id, ingredient_id, amount) VALUES ($1, $2, $3)`,
			recipeID, ing.IngredientID, ing.Amount,
		)
		if err != nil {
			return fmt.Errorf("failed to link ingredient %d: %w", ing.IngredientID, err)
		}
	}

	return nil
}

// loadRecipeRelations batch-loads tags and ingredients for a page of recipes.
func (r *Repository) loadRecipeRelations(ctx context.Context, recipes []*model.Recipe) error {
	if len(recipes) == 0 {
		return nil
	}

	byID := make(map[int64]*model.Recipe, len(recipes))
	ids := make([]int64, 0, len(recipes))
	for _, recipe := range recipes {
		byID[recipe.ID] = recipe
		ids = append(ids, recipe.ID)
	}

	tagQuery := `
		SELECT rt.recipe_id, t.id, t.name, t.color, t.slug
		FROM recipe_tags rt
		JOIN tags t ON t.id = rt.tag_id
		WHERE rt.recipe_id = ANY($1)
		ORDER BY t.slug
	`

	tagRows, err := r.pool.Query(ctx, tagQuery, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("failed to load recipe tags: %w", err)
	}
	defer tagRows.Close()

	for tagRows.Next() {
		var recipeID int64
		var tag model.Tag
		if err := tagRows.Scan(&recipeID, &tag.ID, &tag.Name, &tag.Color, &tag.Slug); err != nil {
			return fmt.Errorf("failed to scan recipe tag: %w", err)
		}
		if recipe, ok := byID[recipeID]; ok {
			recipe.Tags = append(recipe.Tags, tag)
		}
	}
	if err := tagRows.Err(); err != nil {
		return fmt.Errorf("error iterating recipe tags: %w", err)
	}

	ingQuery := `
		SELECT ri.recipe_id, i.id, i.name, i.measurement_unit, ri.amount
		FROM recipe_ingredients ri
		JOIN ingredients i ON i.id = ri.ingredient_id
		WHERE ri.recipe_id = ANY($1)
		ORDER BY i.name
	`

	ingRows, err := r.pool.Query(ctx, ingQuery, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("failed to load recipe ingredients: %w", err)
	}
	defer ingRows.Close()

	for ingRows.Next() {
		var recipeID int64
		var ing model.RecipeIngredient
		if err := ingRows.Scan(&recipeID, &ing.IngredientID, &ing.Name, &ing.MeasurementUnit, &ing.Amount); err != nil {
			return fmt.Errorf("failed to scan recipe ingredient: %w", err)
		}
		if recipe, ok := byID[recipeID]; ok {
			recipe.Ingredients = append(recipe.Ingredients, ing)
		}
	}
	if err := ingRows.Err(); err != nil {
		return fmt.Errorf("error iterating recipe ingredients: %w", err)
	}

	return nil
}

// scanRecipe scans a single row into a Recipe model.
func scanRecipe(row pgx.Row) (*model.Recipe, error) {
	var recipe model.Recipe
	err := row.Scan(
		&recipe.ID,
		&recipe.AuthorID,
		&recipe.Name,
		&recipe.Text,
		&recipe.CookingTime,
		&recipe.Image,
		&recipe.PubDate,
		&recipe.IsFavorited,
		&recipe.IsInShoppingCart,
	)
	return &recipe, err
}
