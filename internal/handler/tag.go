package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/foodgram/foodgram/internal/cache"
	"github.com/foodgram/foodgram/internal/model"
	"github.com/foodgram/foodgram/internal/repository"
)

// TagHandler handles read-only tag endpoints.
type TagHandler struct {
	repo   *repository.Repository
	cache  *cache.Cache
	logger *slog.Logger
}

// NewTagHandler creates a new TagHandler.
func NewTagHandler(repo *repository.Repository, cacheClient *cache.Cache, logger *slog.Logger) *TagHandler {
	return &TagHandler{
		repo:   repo,
		cache:  cacheClient,
		logger: logger,
	}
}

// List handles GET /api/tags/. The tag list is reference data and is
// served from cache when possible.
func (h *TagHandler) List(w http.ResponseWriter, r *http.Request) {
	if h.cache != nil {
		if tags, err := h.cache.GetTagList(r.Context()); err == nil && tags != nil {
			writeJSON(w, http.StatusOK, tags)
			return
		}
	}

	tags, err := h.repo.ListTags(r.Context())
	if err != nil {
		h.logger.Error("list_tags_failed", "error", err)
		writeDetail(w, http.StatusInternalServerError, "Внутренняя ошибка сервера.")
		return
	}
	if tags == nil {
		tags = []model.Tag{}
	}

	if h.cache != nil {
		if err := h.cache.SetTagList(r.Context(), tags); err != nil {
			h.logger.Warn("tag_cache_set_failed", "error", err)
		}
	}

	writeJSON(w, http.StatusOK, tags)
}

// Get handles GET /api/tags/{id}/.
func (h *TagHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeDetail(w, http.StatusNotFound, "Страница не найдена.")
		return
	}

	tag, err := h.repo.GetTagByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrTagNotFound) {
			writeDetail(w, http.StatusNotFound, "Страница не найдена.")
			return
		}
		h.logger.Error("get_tag_failed", "error", err, "tag_id", id)
		writeDetail(w, http.StatusInternalServerError, "Внутренняя ошибка сервера.")
		return
	}

	writeJSON(w, http.StatusOK, tag)
}
