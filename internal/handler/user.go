package handler

import (
	"encoding/json"
	"errors"
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

// UserHandler handles HTTP requests for user profiles and subscriptions.
type UserHandler struct {
	users         *service.UserService
	subscriptions *service.SubscriptionService
	repo          *repository.Repository
	baseURL       string
	pageSize      int
	logger        *slog.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(
	users *service.UserService,
	subscriptions *service.SubscriptionService,
	repo *repository.Repository,
	baseURL string,
	pageSize int,
	logger *slog.Logger,
) *UserHandler {
	return &UserHandler{
		users:         users,
		subscriptions: subscriptions,
		repo:          repo,
		baseURL:       baseURL,
		pageSize:      pageSize,
		logger:        logger,
	}
}

// RegisterResponse is the registration payload: the profile without
// the is_subscribed flag.
type RegisterResponse struct {
	Email     string `json:"email"`
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// Register handles POST /api/users/.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrors(w, http.StatusBadRequest, "Некорректное тело запроса.")
		return
	}

	user, err := h.users.Register(r.Context(), service.RegisterInput{
		Email:     req.Email,
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  req.Password,
	})
	if err != nil {
		h.handleUserError(w, err)
		return
	}

	h.logger.Info("user_registered",
		"user_id", user.ID,
		"username", user.Username,
	)

	writeJSON(w, http.StatusCreated, RegisterResponse{
		Email:     user.Email,
		ID:        user.ID,
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	})
}

// List handles GET /api/users/.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	params := pagination.ParseParams(r.URL.Query(), h.pageSize)

	users, count, err := h.users.ListUsers(r.Context(), params.Limit, params.Offset())
	if err != nil {
		h.handleUserError(w, err)
		return
	}

	if params.InvalidPage(count) {
		writeDetail(w, http.StatusNotFound, "Неправильная страница.")
		return
	}

	viewerID := auth.UserIDFromContext(r.Context())
	subscribed, err := h.subscribedSet(r, viewerID, users)
	if err != nil {
		h.handleUserError(w, err)
		return
	}

	results := make([]dto.UserResponse, len(users))
	for i, user := range users {
		results[i] = *dto.ToUserResponse(user, subscribed[user.ID])
	}

	writeJSON(w, http.StatusOK, pagination.NewResponse(r, h.baseURL, count, params, results))
}

// Get handles GET /api/users/{id}/.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeDetail(w, http.StatusNotFound, "Страница не найдена.")
		return
	}

	user, err := h.users.GetUser(r.Context(), id)
	if err != nil {
		h.handleUserError(w, err)
		return
	}

	isSubscribed := false
	if viewerID := auth.UserIDFromContext(r.Context()); viewerID != 0 {
		isSubscribed, err = h.repo.IsSubscribed(r.Context(), viewerID, user.ID)
		if err != nil {
			h.handleUserError(w, err)
			return
		}
	}

	writeJSON(w, http.StatusOK, dto.ToUserResponse(user, isSubscribed))
}

// Me handles GET /api/users/me/.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	authCtx := auth.MustAuthFromContext(r.Context())

	user, err := h.users.GetUser(r.Context(), authCtx.UserID)
	if err != nil {
		h.handleUserError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToUserResponse(user, false))
}

// SetPassword handles POST /api/users/set_password/.
func (h *UserHandler) SetPassword(w http.ResponseWriter, r *http.Request) {
	authCtx := auth.MustAuthFromContext(r.Context())

	var req dto.SetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrors(w, http.StatusBadRequest, "Некорректное тело запроса.")
		return
	}

	err := h.users.SetPassword(r.Context(), authCtx.UserID, req.CurrentPassword, req.NewPassword)
	if err != nil {
		h.handleUserError(w, err)
		return
	}

	h.logger.Info("password_changed", "user_id", authCtx.UserID)

	w.WriteHeader(http.StatusNoContent)
}

// Subscribe handles POST /api/users/{id}/subscribe/.
func (h *UserHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	authCtx := auth.MustAuthFromContext(r.Context())

	authorID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeDetail(w, http.StatusNotFound, "Страница не найдена.")
		return
	}

	author, err := h.subscriptions.Subscribe(r.Context(), authCtx.UserID, authorID)
	if err != nil {
		h.handleUserError(w, err)
		return
	}

	recipesLimit := parseRecipesLimit(r)
	recipes, recipesCount, err := h.subscriptions.AuthorRecipes(r.Context(), authorID, recipesLimit)
	if err != nil {
		h.handleUserError(w, err)
		return
	}

	h.logger.Info("subscribed",
		"subscriber_id", authCtx.UserID,
		"author_id", authorID,
	)

	writeJSON(w, http.StatusCreated, dto.ToUserWithRecipes(author, true, recipes, recipesCount, h.baseURL))
}

// Unsubscribe handles DELETE /api/users/{id}/subscribe/.
func (h *UserHandler) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	authCtx := auth.MustAuthFromContext(r.Context())

	authorID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeDetail(w, http.StatusNotFound, "Страница не найдена.")
		return
	}

	if err := h.subscriptions.Unsubscribe(r.Context(), authCtx.UserID, authorID); err != nil {
		h.handleUserError(w, err)
		return
	}

	h.logger.Info("unsubscribed",
		"subscriber_id", authCtx.UserID,
		"author_id", authorID,
	)

	w.WriteHeader(http.StatusNoContent)
}

// Subscriptions handles GET /api/users/subscriptions/.
func (h *UserHandler) Subscriptions(w http.ResponseWriter, r *http.Request) {
	authCtx := auth.MustAuthFromContext(r.Context())
	params := pagination.ParseParams(r.URL.Query(), h.pageSize)
	recipesLimit := parseRecipesLimit(r)

	authors, count, err := h.subscriptions.ListAuthors(r.Context(), authCtx.UserID, params.Limit, params.Offset())
	if err != nil {
		h.handleUserError(w, err)
		return
	}

	if params.InvalidPage(count) {
		writeDetail(w, http.StatusNotFound, "Неправильная страница.")
		return
	}

	results := make([]dto.UserWithRecipesResponse, len(authors))
	for i, author := range authors {
		recipes, recipesCount, err := h.subscriptions.AuthorRecipes(r.Context(), author.ID, recipesLimit)
		if err != nil {
			h.handleUserError(w, err)
			return
		}
		results[i] = *dto.ToUserWithRecipes(author, true, recipes, recipesCount, h.baseURL)
	}

	writeJSON(w, http.StatusOK, pagination.NewResponse(r, h.baseURL, count, params, results))
}

// subscribedSet resolves which listed users the viewer follows.
func (h *UserHandler) subscribedSet(r *http.Request, viewerID int64, users []*model.User) (map[int64]bool, error) {
	if viewerID == 0 || len(users) == 0 {
		return map[int64]bool{}, nil
	}

	ids := make([]int64, len(users))
	for i, user := range users {
		ids[i] = user.ID
	}

	return h.repo.SubscribedAuthorSet(r.Context(), viewerID, ids)
}

// parseRecipesLimit extracts the recipes_limit query parameter.
// Zero means unlimited.
func parseRecipesLimit(r *http.Request) int {
	if v := r.URL.Query().Get("recipes_limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			return parsed
		}
	}
	return 0
}

// handleUserError maps user and subscription service errors to HTTP responses.
func (h *UserHandler) handleUserError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		writeDetail(w, http.StatusNotFound, "Страница не найдена.")
	case errors.Is(err, service.ErrInvalidEmail):
		writeErrors(w, http.StatusBadRequest, "Некорректный адрес электронной почты.")
	case errors.Is(err, service.ErrInvalidUsername):
		writeErrors(w, http.StatusBadRequest, "Некорректное имя пользователя.")
	case errors.Is(err, service.ErrInvalidName):
		writeErrors(w, http.StatusBadRequest, "Имя и фамилия обязательны.")
	case errors.Is(err, service.ErrInvalidPassword):
		writeErrors(w, http.StatusBadRequest, "Пароль должен содержать от 8 до 150 символов.")
	case errors.Is(err, service.ErrEmailExists):
		writeErrors(w, http.StatusBadRequest, "Пользователь с таким email уже существует.")
	case errors.Is(err, service.ErrUsernameExists):
		writeErrors(w, http.StatusBadRequest, "Пользователь с таким именем уже существует.")
	case errors.Is(err, service.ErrWrongPassword):
		writeErrors(w, http.StatusBadRequest, "Неверный текущий пароль.")
	case errors.Is(err, service.ErrSelfSubscribe):
		writeDetail(w, http.StatusBadRequest, "Вы не можете подписаться на себя.")
	case errors.Is(err, service.ErrAlreadySubscribed):
		writeDetail(w, http.StatusBadRequest, "Вы уже подписаны на этого пользователя.")
	case errors.Is(err, service.ErrNotSubscribed):
		writeDetail(w, http.StatusBadRequest, "Подписка не существует.")
	default:
		h.logger.Error("internal_error", "error", err)
		writeDetail(w, http.StatusInternalServerError, "Внутренняя ошибка сервера.")
	}
}
