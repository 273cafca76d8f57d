package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/foodgram/foodgram/internal/repository"
)

// validationInput returns a payload that passes every local check.
// Existence checks against the database run after the local ones, so
// these tests only exercise inputs that fail before any query.
func validationInput() RecipeInput {
	return RecipeInput{
		Name:        "Борщ",
		Text:        "Сварить бульон, добавить овощи.",
		CookingTime: 60,
		TagIDs:      []int64{1, 2},
		Ingredients: []repository.IngredientAmount{
			{IngredientID: 1, Amount: 300},
			{IngredientID: 2, Amount: 50},
		},
	}
}

func TestValidateRecipeInput_LocalRules(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*RecipeInput)
		wantErr error
	}{
		{"empty name", func(in *RecipeInput) { in.Name = "" }, ErrInvalidRecipeName},
		{"name too long", func(in *RecipeInput) { in.Name = strings.Repeat("x", 201) }, ErrInvalidRecipeName},
		{"zero cooking time", func(in *RecipeInput) { in.CookingTime = 0 }, ErrInvalidCookingTime},
		{"cooking time too large", func(in *RecipeInput) { in.CookingTime = 32001 }, ErrInvalidCookingTime},
		{"no tags", func(in *RecipeInput) { in.TagIDs = nil }, ErrEmptyTags},
		{"duplicate tags", func(in *RecipeInput) { in.TagIDs = []int64{1, 1} }, ErrDuplicateTag},
		{"no ingredients", func(in *RecipeInput) { in.Ingredients = nil }, ErrEmptyIngredients},
		{"duplicate ingredients", func(in *RecipeInput) {
			in.Ingredients = []repository.IngredientAmount{
				{IngredientID: 1, Amount: 10},
				{IngredientID: 1, Amount: 20},
			}
		}, ErrDuplicateIngredient},
		{"zero amount", func(in *RecipeInput) {
			in.Ingredients[0].Amount = 0
		}, ErrInvalidAmount},
		{"amount too large", func(in *RecipeInput) {
			in.Ingredients[0].Amount = 32001
		}, ErrInvalidAmount},
	}

	svc := &RecipeService{}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			input := validationInput()
			tt.mutate(&input)

			err := svc.validateRecipeInput(context.Background(), input)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("validateRecipeInput() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
