package model

import "time"

// Amount and cooking time bounds (inclusive).
const (
	MinAmount = 1
	MaxAmount = 32000

	MinCookingTime = 1
	MaxCookingTime = 32000

	MaxRecipeNameLength = 200
)

// Recipe represents a published recipe.
type Recipe struct {
	ID          int64     `json:"id"`
	AuthorID    int64     `json:"author_id"`
	Name        string    `json:"name"`
	Text        string    `json:"text"`
	CookingTime int       `json:"cooking_time"`
	Image       string    `json:"image,omitempty"` // Relative media path, empty if unset
	PubDate     time.Time `json:"pub_date"`

	// Loaded relations; populated by the repository on reads.
	Tags        []Tag              `json:"tags,omitempty"`
	Ingredients []RecipeIngredient `json:"ingredients,omitempty"`

	// Viewer-dependent flags computed per request.
	IsFavorited      bool `json:"is_favorited"`
	IsInShoppingCart bool `json:"is_in_shopping_cart"`
}

// RecipeIngredient is an ingredient with the amount a recipe needs.
type RecipeIngredient struct {
	IngredientID    int64  `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Amount          int    `json:"amount"`
}

// ValidAmount reports whether an ingredient amount is within bounds.
func ValidAmount(amount int) bool {
	return amount >= MinAmount && amount <= MaxAmount
}

// ValidCookingTime reports whether a cooking time is within bounds.
func ValidCookingTime(minutes int) bool {
	return minutes >= MinCookingTime && minutes <= MaxCookingTime
}

// ShoppingItem is one aggregated line of a shopping list export:
// the total amount of an ingredient summed across every recipe in the cart.
type ShoppingItem struct {
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Amount          int64  `json:"amount"`
}
