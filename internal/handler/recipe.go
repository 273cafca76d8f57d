package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/foodgram/foodgram/internal/auth"
	"github.com/foodgram/foodgram/internal/handler/dto"
	"github.com/foodgram/foodgram/internal/model"
	"github.com/foodgram/foodgram/internal/pagination"
	"github.com/foodgram/foodgram/internal/repository"
	"github.com/foodgram/foodgram/internal/service"
)

// RecipeHandler handles recipe CRUD, favorites and the shopping cart.
type RecipeHandler struct {
	recipes  *service.RecipeService
	users    *service.UserService
	repo     *repository.Repository
	baseURL  string
	pageSize int
	logger   *slog.Logger
}

// NewRecipeHandler creates a new RecipeHandler.
func NewRecipeHandler(
	recipes *service.RecipeService,
	users *service.UserService,
	repo *repository.Repository,
	baseURL string,
	pageSize int,
	logger *slog.Logger,
) *RecipeHandler {
	return &RecipeHandler{
		recipes:  recipes,
		users:    users,
		repo:     repo,
		baseURL:  baseURL,
		pageSize: pageSize,
		logger:   logger,
	}
}

// List handles GET /api/recipes/. Supports author, tags, is_favorited
// and is_in_shopping_cart filters; flag filters apply only when a viewer
// is authenticated.
func (h *RecipeHandler) List(w http.ResponseWriter, r *http.Request) {
	params := pagination.ParseParams(r.URL.Query(), h.pageSize)
	viewerID := auth.UserIDFromContext(r.Context())

	filter := repository.RecipeFilter{
		ViewerID: viewerID,
		TagSlugs: r.URL.Query()["tags"],
	}

	if v := r.URL.Query().Get("author"); v != "" {
		authorID, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			writeErrors(w, http.StatusBadRequest, "Некорректный параметр author.")
			return
		}
		filter.AuthorID = authorID
	}

	if viewerID != 0 {
		if flagParam(r.URL.Query().Get("is_favorited")) {
			filter.FavoritedBy = viewerID
		}
		if flagParam(r.URL.Query().Get("is_in_shopping_cart")) {
			filter.InCartOf = viewerID
		}
	}

	result, err := h.recipes.ListRecipes(r.Context(), service.ListRecipesInput{
		Filter: filter,
		Limit:  params.Limit,
		Offset: params.Offset(),
	})
	if err != nil {
		h.handleRecipeError(w, err)
		return
	}

	if params.InvalidPage(result.Count) {
		writeDetail(w, http.StatusNotFound, "Неправильная страница.")
		return
	}

	authors, subscribed, err := h.loadAuthors(r, viewerID, result.Recipes)
	if err != nil {
		h.handleRecipeError(w, err)
		return
	}

	results := make([]dto.RecipeResponse, 0, len(result.Recipes))
	for _, recipe := range result.Recipes {
		author, ok := authors[recipe.AuthorID]
		if !ok {
			h.handleRecipeError(w, fmt.Errorf("recipe %d references missing author %d", recipe.ID, recipe.AuthorID))
			return
		}
		results = append(results, *dto.ToRecipeResponse(recipe, author, subscribed[recipe.AuthorID], h.baseURL))
	}

	writeJSON(w, http.StatusOK, pagination.NewResponse(r, h.baseURL, result.Count, params, results))
}

// Get handles GET /api/recipes/{id}/.
func (h *RecipeHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := recipeID(w, r)
	if !ok {
		return
	}

	viewerID := auth.UserIDFromContext(r.Context())
	recipe, err := h.recipes.GetRecipe(r.Context(), id, viewerID)
	if err != nil {
		h.handleRecipeError(w, err)
		return
	}

	h.writeRecipe(w, r, http.StatusOK, recipe, viewerID)
}

// Create handles POST /api/recipes/.
func (h *RecipeHandler) Create(w http.ResponseWriter, r *http.Request) {
	authCtx := auth.MustAuthFromContext(r.Context())

	input, ok := decodeRecipeInput(w, r)
	if !ok {
		return
	}
	if input.Image == "" {
		writeErrors(w, http.StatusBadRequest, "Изображение обязательно.")
		return
	}

	recipe, err := h.recipes.CreateRecipe(r.Context(), authCtx.UserID, input)
	if err != nil {
		h.handleRecipeError(w, err)
		return
	}

	h.logger.Info("recipe_created",
		"recipe_id", recipe.ID,
		"author_id", authCtx.UserID,
	)

	h.writeRecipe(w, r, http.StatusCreated, recipe, authCtx.UserID)
}

// Update handles PATCH /api/recipes/{id}/.
func (h *RecipeHandler) Update(w http.ResponseWriter, r *http.Request) {
	authCtx := auth.MustAuthFromContext(r.Context())

	id, ok := recipeID(w, r)
	if !ok {
		return
	}

	input, ok := decodeRecipeInput(w, r)
	if !ok {
		return
	}

	recipe, err := h.recipes.UpdateRecipe(r.Context(), id, authCtx.UserID, input)
	if err != nil {
		h.handleRecipeError(w, err)
		return
	}

	h.logger.Info("recipe_updated",
		"recipe_id", recipe.ID,
		"author_id", authCtx.UserID,
	)

	h.writeRecipe(w, r, http.StatusOK, recipe, authCtx.UserID)
}

// Delete handles DELETE /api/recipes/{id}/.
func (h *RecipeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	authCtx := auth.MustAuthFromContext(r.Context())

	id, ok := recipeID(w, r)
	if !ok {
		return
	}

	if err := h.recipes.DeleteRecipe(r.Context(), id, authCtx.UserID); err != nil {
		h.handleRecipeError(w, err)
		return
	}

	h.logger.Info("recipe_deleted",
		"recipe_id", id,
		"author_id", authCtx.UserID,
	)

	w.WriteHeader(http.StatusNoContent)
}

// Favorite handles POST /api/recipes/{id}/favorite/.
func (h *RecipeHandler) Favorite(w http.ResponseWriter, r *http.Request) {
	authCtx := auth.MustAuthFromContext(r.Context())

	id, ok := recipeID(w, r)
	if !ok {
		return
	}

	recipe, err := h.recipes.Favorite(r.Context(), authCtx.UserID, id)
	if err != nil {
		h.handleRecipeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.ToRecipeShortResponse(recipe, h.baseURL))
}

// Unfavorite handles DELETE /api/recipes/{id}/favorite/.
func (h *RecipeHandler) Unfavorite(w http.ResponseWriter, r *http.Request) {
	authCtx := auth.MustAuthFromContext(r.Context())

	id, ok := recipeID(w, r)
	if !ok {
		return
	}

	if err := h.recipes.Unfavorite(r.Context(), authCtx.UserID, id); err != nil {
		h.handleRecipeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AddToCart handles POST /api/recipes/{id}/shopping_cart/.
func (h *RecipeHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	authCtx := auth.MustAuthFromContext(r.Context())

	id, ok := recipeID(w, r)
	if !ok {
		return
	}

	recipe, err := h.recipes.AddToCart(r.Context(), authCtx.UserID, id)
	if err != nil {
		h.handleRecipeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.ToRecipeShortResponse(recipe, h.baseURL))
}

// RemoveFromCart handles DELETE /api/recipes/{id}/shopping_cart/.
func (h *RecipeHandler) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	authCtx := auth.MustAuthFromContext(r.Context())

	id, ok := recipeID(w, r)
	if !ok {
		return
	}

	if err := h.recipes.RemoveFromCart(r.Context(), authCtx.UserID, id); err != nil {
		h.handleRecipeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DownloadShoppingCart handles GET /api/recipes/download_shopping_cart/.
// Responds with a plain-text attachment of summed ingredients.
func (h *RecipeHandler) DownloadShoppingCart(w http.ResponseWriter, r *http.Request) {
	authCtx := auth.MustAuthFromContext(r.Context())

	export, err := h.recipes.ExportShoppingList(r.Context(), authCtx.UserID, authCtx.Username)
	if err != nil {
		h.handleRecipeError(w, err)
		return
	}

	h.logger.Info("cart_exported", "user_id", authCtx.UserID)

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(export.Content)
}

// writeRecipe serializes a single recipe with its author resolved.
func (h *RecipeHandler) writeRecipe(w http.ResponseWriter, r *http.Request, status int, recipe *model.Recipe, viewerID int64) {
	author, err := h.users.GetUser(r.Context(), recipe.AuthorID)
	if err != nil {
		h.handleRecipeError(w, err)
		return
	}

	authorSubscribed := false
	if viewerID != 0 && viewerID != recipe.AuthorID {
		authorSubscribed, err = h.repo.IsSubscribed(r.Context(), viewerID, recipe.AuthorID)
		if err != nil {
			h.handleRecipeError(w, err)
			return
		}
	}

	writeJSON(w, status, dto.ToRecipeResponse(recipe, author, authorSubscribed, h.baseURL))
}

// loadAuthors batch-loads authors for a recipe page and the subset the
// viewer is subscribed to.
func (h *RecipeHandler) loadAuthors(r *http.Request, viewerID int64, recipes []*model.Recipe) (map[int64]*model.User, map[int64]bool, error) {
	seen := make(map[int64]bool, len(recipes))
	ids := make([]int64, 0, len(recipes))
	for _, recipe := range recipes {
		if !seen[recipe.AuthorID] {
			seen[recipe.AuthorID] = true
			ids = append(ids, recipe.AuthorID)
		}
	}

	authors, err := h.repo.GetUsersByIDs(r.Context(), ids)
	if err != nil {
		return nil, nil, err
	}

	subscribed := map[int64]bool{}
	if viewerID != 0 {
		subscribed, err = h.repo.SubscribedAuthorSet(r.Context(), viewerID, ids)
		if err != nil {
			return nil, nil, err
		}
	}

	return authors, subscribed, nil
}

// flagParam interprets a numeric filter flag: any nonzero integer turns
// the filter on, everything else leaves it off.
func flagParam(v string) bool {
	n, err := strconv.Atoi(v)
	return err == nil && n != 0
}

// recipeID parses the id path parameter, writing a 404 on bad input.
func recipeID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeDetail(w, http.StatusNotFound, "Страница не найдена.")
		return 0, false
	}
	return id, true
}

// decodeRecipeInput decodes and converts a recipe payload.
func decodeRecipeInput(w http.ResponseWriter, r *http.Request) (service.RecipeInput, bool) {
	var req dto.RecipeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrors(w, http.StatusBadRequest, "Некорректное тело запроса.")
		return service.RecipeInput{}, false
	}

	ingredients := make([]repository.IngredientAmount, len(req.Ingredients))
	for i, ing := range req.Ingredients {
		ingredients[i] = repository.IngredientAmount{
			IngredientID: ing.ID,
			Amount:       ing.Amount,
		}
	}

	return service.RecipeInput{
		Name:        req.Name,
		Text:        req.Text,
		CookingTime: req.CookingTime,
		Image:       req.Image,
		TagIDs:      req.Tags,
		Ingredients: ingredients,
	}, true
}

// handleRecipeError maps recipe service errors to HTTP responses.
func (h *RecipeHandler) handleRecipeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrRecipeNotFound):
		writeDetail(w, http.StatusNotFound, "Страница не найдена.")
	case errors.Is(err, service.ErrNotRecipeAuthor):
		writeDetail(w, http.StatusForbidden, "У вас недостаточно прав для выполнения данного действия.")
	case errors.Is(err, service.ErrInvalidRecipeName):
		writeErrors(w, http.StatusBadRequest, "Некорректное название рецепта.")
	case errors.Is(err, service.ErrInvalidCookingTime):
		writeErrors(w, http.StatusBadRequest, "Время приготовления должно быть от 1 до 32000.")
	case errors.Is(err, service.ErrEmptyTags):
		writeErrors(w, http.StatusBadRequest, "Нужно выбрать хотя бы один тег.")
	case errors.Is(err, service.ErrDuplicateTag):
		writeErrors(w, http.StatusBadRequest, "Теги должны быть уникальными.")
	case errors.Is(err, service.ErrTagNotFound):
		writeErrors(w, http.StatusBadRequest, "Указан несуществующий тег.")
	case errors.Is(err, service.ErrEmptyIngredients):
		writeErrors(w, http.StatusBadRequest, "Нужен хотя бы один ингредиент.")
	case errors.Is(err, service.ErrDuplicateIngredient):
		writeErrors(w, http.StatusBadRequest, "Ингредиенты должны быть уникальными.")
	case errors.Is(err, service.ErrIngredientNotFound):
		writeErrors(w, http.StatusBadRequest, "Указан несуществующий ингредиент.")
	case errors.Is(err, service.ErrInvalidAmount):
		writeErrors(w, http.StatusBadRequest, "Количество ингредиента должно быть от 1 до 32000.")
	case errors.Is(err, service.ErrInvalidImage):
		writeErrors(w, http.StatusBadRequest, "Некорректное изображение.")
	case errors.Is(err, service.ErrAlreadyFavorited):
		writeErrors(w, http.StatusBadRequest, "Рецепт уже в избранном.")
	case errors.Is(err, service.ErrNotFavorited):
		writeErrors(w, http.StatusBadRequest, "Рецепта нет в избранном.")
	case errors.Is(err, service.ErrAlreadyInCart):
		writeErrors(w, http.StatusBadRequest, "Рецепт уже в списке покупок.")
	case errors.Is(err, service.ErrNotInCart):
		writeErrors(w, http.StatusBadRequest, "Рецепта нет в списке покупок.")
	case errors.Is(err, service.ErrUserNotFound):
		writeDetail(w, http.StatusNotFound, "Страница не найдена.")
	default:
		h.logger.Error("internal_error", "error", err)
		writeDetail(w, http.StatusInternalServerError, "Внутренняя ошибка сервера.")
	}
}
