package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/foodgram/foodgram/internal/auth"
	"github.com/foodgram/foodgram/internal/handler/dto"
	"github.com/foodgram/foodgram/internal/service"
)

// TokenHandler handles token login and logout.
type TokenHandler struct {
	users  *service.UserService
	logger *slog.Logger
}

// NewTokenHandler creates a new TokenHandler.
func NewTokenHandler(users *service.UserService, logger *slog.Logger) *TokenHandler {
	return &TokenHandler{
		users:  users,
		logger: logger,
	}
}

// Login handles POST /api/auth/token/login/.
func (h *TokenHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrors(w, http.StatusBadRequest, "Некорректное тело запроса.")
		return
	}

	token, err := h.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			writeErrors(w, http.StatusBadRequest, "Невозможно войти с предоставленными учетными данными.")
			return
		}
		h.logger.Error("login_failed", "error", err)
		writeDetail(w, http.StatusInternalServerError, "Внутренняя ошибка сервера.")
		return
	}

	writeJSON(w, http.StatusCreated, dto.TokenResponse{AuthToken: token})
}

// Logout handles POST /api/auth/token/logout/.
func (h *TokenHandler) Logout(w http.ResponseWriter, r *http.Request) {
	authCtx := auth.MustAuthFromContext(r.Context())

	if err := h.users.Logout(r.Context(), authCtx); err != nil {
		h.logger.Error("logout_failed", "error", err, "user_id", authCtx.UserID)
		writeDetail(w, http.StatusInternalServerError, "Внутренняя ошибка сервера.")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
