package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/foodgram/foodgram/internal/metrics"
	"github.com/foodgram/foodgram/internal/model"
	"github.com/foodgram/foodgram/internal/repository"
	"github.com/foodgram/foodgram/internal/storage"
)

// Recipe service errors.
var (
	ErrRecipeNotFound      = errors.New("recipe not found")
	ErrNotRecipeAuthor     = errors.New("only the author may modify a recipe")
	ErrEmptyTags           = errors.New("tags list cannot be empty")
	ErrDuplicateTag        = errors.New("duplicate tags are not allowed")
	ErrTagNotFound         = errors.New("tag does not exist")
	ErrEmptyIngredients    = errors.New("ingredients list cannot be empty")
	ErrDuplicateIngredient = errors.New("duplicate ingredients are not allowed")
	ErrIngredientNotFound  = errors.New("ingredient does not exist")
	ErrInvalidAmount       = errors.New("ingredient amount out of range")
	ErrInvalidCookingTime  = errors.New("cooking time out of range")
	ErrInvalidRecipeName   = errors.New("invalid recipe name")
	ErrInvalidImage        = errors.New("invalid image payload")
	ErrAlreadyFavorited    = errors.New("recipe already favorited")
	ErrNotFavorited        = errors.New("recipe not favorited")
	ErrAlreadyInCart       = errors.New("recipe already in shopping cart")
	ErrNotInCart           = errors.New("recipe not in shopping cart")
)

// RecipeService handles recipe CRUD, favorites and the shopping cart.
type RecipeService struct {
	repo    *repository.Repository
	media   *storage.MediaStore
	metrics metrics.Recorder
}

// NewRecipeService creates a new RecipeService.
func NewRecipeService(repo *repository.Repository, media *storage.MediaStore, recorder metrics.Recorder) *RecipeService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &RecipeService{
		repo:    repo,
		media:   media,
		metrics: recorder,
	}
}

// RecipeInput defines input for creating or updating a recipe.
// Image is a base64 data URI; empty on update means keep the current image.
type RecipeInput struct {
	Name        string
	Text        string
	CookingTime int
	Image       string
	TagIDs      []int64
	Ingredients []repository.IngredientAmount
}

// ListRecipesInput defines input for listing recipes.
type ListRecipesInput struct {
	Filter repository.RecipeFilter
	Limit  int
	Offset int
}

// ListRecipesResult holds a page of recipes and the total match count.
type ListRecipesResult struct {
	Recipes []*model.Recipe
	Count   int64
}

// ListRecipes returns a filtered page of recipes plus the total count.
func (s *RecipeService) ListRecipes(ctx context.Context, input ListRecipesInput) (*ListRecipesResult, error) {
	recipes, err := s.repo.ListRecipes(ctx, input.Filter, input.Limit, input.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}

	count, err := s.repo.CountRecipes(ctx, input.Filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count recipes: %w", err)
	}

	return &ListRecipesResult{Recipes: recipes, Count: count}, nil
}

// GetRecipe retrieves a recipe with relations, flags computed for viewerID.
func (s *RecipeService) GetRecipe(ctx context.Context, id, viewerID int64) (*model.Recipe, error) {
	recipe, err := s.repo.GetRecipeByID(ctx, id, viewerID)
	if err != nil {
		if errors.Is(err, repository.ErrRecipeNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, fmt.Errorf("failed to get recipe: %w", err)
	}
	return recipe, nil
}

// CreateRecipe validates the payload, stores the image and inserts the recipe.
func (s *RecipeService) CreateRecipe(ctx context.Context, authorID int64, input RecipeInput) (*model.Recipe, error) {
	if err := s.validateRecipeInput(ctx, input); err != nil {
		return nil, err
	}

	var imagePath string
	if input.Image != "" {
		var err error
		imagePath, err = s.media.SaveRecipeImage(input.Image)
		if err != nil {
			if errors.Is(err, storage.ErrInvalidImage) {
				return nil, ErrInvalidImage
			}
			return nil, fmt.Errorf("failed to store image: %w", err)
		}
	}

	recipe := &model.Recipe{
		AuthorID:    authorID,
		Name:        input.Name,
		Text:        input.Text,
		CookingTime: input.CookingTime,
		Image:       imagePath,
		PubDate:     time.Now().UTC(),
	}

	if err := s.repo.CreateRecipe(ctx, recipe, input.TagIDs, input.Ingredients); err != nil {
		_ = s.media.Remove(imagePath)
		return nil, fmt.Errorf("failed to create recipe: %w", err)
	}

	s.metrics.IncRecipeCreated()

	return s.GetRecipe(ctx, recipe.ID, authorID)
}

// UpdateRecipe validates the payload and rewrites the recipe.
// Only the author may update; the old image is removed when replaced.
func (s *RecipeService) UpdateRecipe(ctx context.Context, id, userID int64, input RecipeInput) (*model.Recipe, error) {
	existing, err := s.GetRecipe(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if existing.AuthorID != userID {
		return nil, ErrNotRecipeAuthor
	}

	if err := s.validateRecipeInput(ctx, input); err != nil {
		return nil, err
	}

	imagePath := existing.Image
	if input.Image != "" {
		imagePath, err = s.media.SaveRecipeImage(input.Image)
		if err != nil {
			if errors.Is(err, storage.ErrInvalidImage) {
				return nil, ErrInvalidImage
			}
			return nil, fmt.Errorf("failed to store image: %w", err)
		}
	}

	recipe := &model.Recipe{
		ID:          id,
		AuthorID:    userID,
		Name:        input.Name,
		Text:        input.Text,
		CookingTime: input.CookingTime,
		Image:       imagePath,
	}

	if err := s.repo.UpdateRecipe(ctx, recipe, input.TagIDs, input.Ingredients); err != nil {
		if imagePath != existing.Image {
			_ = s.media.Remove(imagePath)
		}
		if errors.Is(err, repository.ErrRecipeNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, fmt.Errorf("failed to update recipe: %w", err)
	}

	if imagePath != existing.Image {
		_ = s.media.Remove(existing.Image)
	}

	s.metrics.IncRecipeUpdated()

	return s.GetRecipe(ctx, id, userID)
}

// DeleteRecipe removes a recipe and its stored image. Author only.
func (s *RecipeService) DeleteRecipe(ctx context.Context, id, userID int64) error {
	existing, err := s.GetRecipe(ctx, id, userID)
	if err != nil {
		return err
	}
	if existing.AuthorID != userID {
		return ErrNotRecipeAuthor
	}

	if err := s.repo.DeleteRecipe(ctx, id); err != nil {
		if errors.Is(err, repository.ErrRecipeNotFound) {
			return ErrRecipeNotFound
		}
		return fmt.Errorf("failed to delete recipe: %w", err)
	}

	_ = s.media.Remove(existing.Image)

	s.metrics.IncRecipeDeleted()

	return nil
}

// Favorite adds a recipe to the user's favorites and returns it.
func (s *RecipeService) Favorite(ctx context.Context, userID, recipeID int64) (*model.Recipe, error) {
	recipe, err := s.GetRecipe(ctx, recipeID, userID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.AddFavorite(ctx, userID, recipeID); err != nil {
		if errors.Is(err, repository.ErrAlreadyFavorited) {
			return nil, ErrAlreadyFavorited
		}
		return nil, fmt.Errorf("failed to add favorite: %w", err)
	}

	return recipe, nil
}

// Unfavorite removes a recipe from the user's favorites.
func (s *RecipeService) Unfavorite(ctx context.Context, userID, recipeID int64) error {
	if _, err := s.GetRecipe(ctx, recipeID, userID); err != nil {
		return err
	}

	if err := s.repo.RemoveFavorite(ctx, userID, recipeID); err != nil {
		if errors.Is(err, repository.ErrNotFavorited) {
			return ErrNotFavorited
		}
		return fmt.Errorf("failed to remove favorite: %w", err)
	}

	return nil
}

// AddToCart puts a recipe into the user's shopping cart and returns it.
func (s *RecipeService) AddToCart(ctx context.Context, userID, recipeID int64) (*model.Recipe, error) {
	recipe, err := s.GetRecipe(ctx, recipeID, userID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.AddToCart(ctx, userID, recipeID); err != nil {
		if errors.Is(err, repository.ErrAlreadyInCart) {
			return nil, ErrAlreadyInCart
		}
		return nil, fmt.Errorf("failed to add to cart: %w", err)
	}

	return recipe, nil
}

// RemoveFromCart takes a recipe out of the user's shopping cart.
func (s *RecipeService) RemoveFromCart(ctx context.Context, userID, recipeID int64) error {
	if _, err := s.GetRecipe(ctx, recipeID, userID); err != nil {
		return err
	}

	if err := s.repo.RemoveFromCart(ctx, userID, recipeID); err != nil {
		if errors.Is(err, repository.ErrNotInCart) {
			return ErrNotInCart
		}
		return fmt.Errorf("failed to remove from cart: %w", err)
	}

	return nil
}

// validateRecipeInput applies the recipe payload rules: non-empty
// duplicate-free tags and ingredients, amounts and cooking time in range,
// and referenced tags/ingredients must exist.
func (s *RecipeService) validateRecipeInput(ctx context.Context, input RecipeInput) error {
	if input.Name == "" || len(input.Name) > model.MaxRecipeNameLength {
		return ErrInvalidRecipeName
	}

	if !model.ValidCookingTime(input.CookingTime) {
		return ErrInvalidCookingTime
	}

	if len(input.TagIDs) == 0 {
		return ErrEmptyTags
	}
	seenTags := make(map[int64]bool, len(input.TagIDs))
	for _, id := range input.TagIDs {
		if seenTags[id] {
			return ErrDuplicateTag
		}
		seenTags[id] = true
	}

	if len(input.Ingredients) == 0 {
		return ErrEmptyIngredients
	}
	seenIngredients := make(map[int64]bool, len(input.Ingredients))
	for _, ing := range input.Ingredients {
		if seenIngredients[ing.IngredientID] {
			return ErrDuplicateIngredient
		}
		seenIngredients[ing.IngredientID] = true

		if !model.ValidAmount(ing.Amount) {
			return ErrInvalidAmount
		}
	}

	if _, err := s.repo.GetTagsByIDs(ctx, input.TagIDs); err != nil {
		if errors.Is(err, repository.ErrTagNotFound) {
			return ErrTagNotFound
		}
		return fmt.Errorf("failed to check tags: %w", err)
	}

	ids := make([]int64, 0, len(input.Ingredients))
	for _, ing := range input.Ingredients {
		ids = append(ids, ing.IngredientID)
	}
	exist, err := s.repo.IngredientsExist(ctx, ids)
	if err != nil {
		return fmt.Errorf("failed to check ingredients: %w", err)
	}
	if !exist {
		return ErrIngredientNotFound
	}

	return nil
}
