package dto

import "github.com/foodgram/foodgram/internal/model"

// IngredientAmountRequest is one ingredient reference in a recipe payload.
type IngredientAmountRequest struct {
	ID     int64 `json:"id"`
	Amount int   `json:"amount"`
}

// RecipeRequest represents the request body for creating or updating
// a recipe. Image is a base64 data URI and may be omitted on update.
type RecipeRequest struct {
	Ingredients []IngredientAmountRequest `json:"ingredients"`
	Tags        []int64                   `json:"tags"`
	Image       string                    `json:"image,omitempty"`
	Name        string                    `json:"name"`
	Text        string                    `json:"text"`
	CookingTime int                       `json:"cooking_time"`
}

// RecipeIngredientResponse is an ingredient with its amount in a recipe.
type RecipeIngredientResponse struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Amount          int    `json:"amount"`
}

// RecipeResponse is the full read serialization of a recipe.
type RecipeResponse struct {
	ID               int64                      `json:"id"`
	Tags             []model.Tag                `json:"tags"`
	Author           UserResponse               `json:"author"`
	Ingredients      []RecipeIngredientResponse `json:"ingredients"`
	IsFavorited      bool                       `json:"is_favorited"`
	IsInShoppingCart bool                       `json:"is_in_shopping_cart"`
	Name             string                     `json:"name"`
	Image            *string                    `json:"image"`
	Text             string                     `json:"text"`
	CookingTime      int                        `json:"cooking_time"`
}

// RecipeShortResponse is the compact recipe shape used by favorites,
// shopping cart and subscription payloads.
type RecipeShortResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Image       *string `json:"image"`
	CookingTime int     `json:"cooking_time"`
}

// ToRecipeResponse converts a Recipe model to RecipeResponse DTO.
// The author and their is_subscribed flag are resolved by the handler.
func ToRecipeResponse(recipe *model.Recipe, author *model.User, authorSubscribed bool, baseURL string) *RecipeResponse {
	tags := recipe.Tags
	if tags == nil {
		tags = []model.Tag{}
	}

	ingredients := make([]RecipeIngredientResponse, len(recipe.Ingredients))
	for i, ing := range recipe.Ingredients {
		ingredients[i] = RecipeIngredientResponse{
			ID:              ing.IngredientID,
			Name:            ing.Name,
			MeasurementUnit: ing.MeasurementUnit,
			Amount:          ing.Amount,
		}
	}

	return &RecipeResponse{
		ID:               recipe.ID,
		Tags:             tags,
		Author:           *ToUserResponse(author, authorSubscribed),
		Ingredients:      ingredients,
		IsFavorited:      recipe.IsFavorited,
		IsInShoppingCart: recipe.IsInShoppingCart,
		Name:             recipe.Name,
		Image:            imageURL(recipe.Image, baseURL),
		Text:             recipe.Text,
		CookingTime:      recipe.CookingTime,
	}
}

// ToRecipeShortResponse converts a Recipe model to its compact shape.
func ToRecipeShortResponse(recipe *model.Recipe, baseURL string) *RecipeShortResponse {
	return &RecipeShortResponse{
		ID:          recipe.ID,
		Name:        recipe.Name,
		Image:       imageURL(recipe.Image, baseURL),
		CookingTime: recipe.CookingTime,
	}
}

// imageURL builds the absolute media URL for a stored image path.
// Returns nil for recipes without an image.
func imageURL(path, baseURL string) *string {
	if path == "" {
		return nil
	}
	u := baseURL + "/media/" + path
	return &u
}
