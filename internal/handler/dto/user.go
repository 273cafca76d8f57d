// Package dto provides Data Transfer Objects for API requests and responses.
package dto

import "github.com/foodgram/foodgram/internal/model"

// RegisterRequest represents the request body for user registration.
type RegisterRequest struct {
	Email     string `json:"email"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Password  string `json:"password"`
}

// SetPasswordRequest represents the request body for a password change.
type SetPasswordRequest struct {
	NewPassword     string `json:"new_password"`
	CurrentPassword string `json:"current_password"`
}

// LoginRequest represents the request body for token login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse carries a freshly issued token.
type TokenResponse struct {
	AuthToken string `json:"auth_token"`
}

// UserResponse represents a user profile in API responses.
type UserResponse struct {
	Email        string `json:"email"`
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	IsSubscribed bool   `json:"is_subscribed"`
}

// UserWithRecipesResponse is a user profile extended with their recipes,
// used in subscription payloads.
type UserWithRecipesResponse struct {
	UserResponse
	Recipes      []RecipeShortResponse `json:"recipes"`
	RecipesCount int64                 `json:"recipes_count"`
}

// ErrorDetail is the generic error body ({"detail": ...}).
type ErrorDetail struct {
	Detail string `json:"detail"`
}

// ErrorList is the validation error body ({"errors": ...}).
type ErrorList struct {
	Errors string `json:"errors"`
}

// ToUserResponse converts a User model to UserResponse DTO.
func ToUserResponse(user *model.User, isSubscribed bool) *UserResponse {
	return &UserResponse{
		Email:        user.Email,
		ID:           user.ID,
		Username:     user.Username,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		IsSubscribed: isSubscribed,
	}
}

// ToUserWithRecipes converts a User model plus their recipes to the
// subscription payload shape. Subscription listings always imply
// is_subscribed=true for the viewer.
func ToUserWithRecipes(user *model.User, isSubscribed bool, recipes []*model.Recipe, recipesCount int64, baseURL string) *UserWithRecipesResponse {
	shorts := make([]RecipeShortResponse, len(recipes))
	for i, recipe := range recipes {
		shorts[i] = *ToRecipeShortResponse(recipe, baseURL)
	}
	return &UserWithRecipesResponse{
		UserResponse: *ToUserResponse(user, isSubscribed),
		Recipes:      shorts,
		RecipesCount: recipesCount,
	}
}
