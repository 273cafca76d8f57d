package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/foodgram/foodgram/internal/model"
	"github.com/foodgram/foodgram/internal/repository"
)

// IngredientHandler handles read-only ingredient endpoints.
type IngredientHandler struct {
	repo   *repository.Repository
	logger *slog.Logger
}

// NewIngredientHandler creates a new IngredientHandler.
func NewIngredientHandler(repo *repository.Repository, logger *slog.Logger) *IngredientHandler {
	return &IngredientHandler{
		repo:   repo,
		logger: logger,
	}
}

// List handles GET /api/ingredients/. The optional name parameter filters
// by case-insensitive substring match.
func (h *IngredientHandler) List(w http.ResponseWriter, r *http.Request) {
	nameFilter := r.URL.Query().Get("name")

	ingredients, err := h.repo.ListIngredients(r.Context(), nameFilter)
	if err != nil {
		h.logger.Error("list_ingredients_failed", "error", err)
		writeDetail(w, http.StatusInternalServerError, "Внутренняя ошибка сервера.")
		return
	}
	if ingredients == nil {
		ingredients = []model.Ingredient{}
	}

	writeJSON(w, http.StatusOK, ingredients)
}

// Get handles GET /api/ingredients/{id}/.
func (h *IngredientHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeDetail(w, http.StatusNotFound, "Страница не найдена.")
		return
	}

	ingredient, err := h.repo.GetIngredientByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrIngredientNotFound) {
			writeDetail(w, http.StatusNotFound, "Страница не найдена.")
			return
		}
		h.logger.Error("get_ingredient_failed", "error", err, "ingredient_id", id)
		writeDetail(w, http.StatusInternalServerError, "Внутренняя ошибка сервера.")
		return
	}

	writeJSON(w, http.StatusOK, ingredient)
}
