package handlers

import (
	"net/http"
	"time"

	"github.com/campusvoice/backend/internal/database"
	"github.com/campusvoice/backend/internal/repository"
	"github.com/campusvoice/backend/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type CategoryHandler struct {
	repoManager *repository.RepositoryManager
	cache       *database.Cache
	logger      *logrus.Logger
}

func NewCategoryHandler(repoManager *repository.RepositoryManager, cache *database.Cache, logger *logrus.Logger) *CategoryHandler {
	return &CategoryHandler{
		repoManager: repoManager,
		cache:       cache,
		logger:      logger,
	}
}

// HandleList returns all categories, served from cache when possible
func (h *CategoryHandler) HandleList(c *gin.Context) {
	ctx := c.Request.Context()

	if cached, err := h.cache.GetCachedCategories(ctx); err == nil {
		h.logger.Debug("Categories served from cache")
		utils.SuccessResponse(c, http.StatusOK, "Categories retrieved", cached)
		return
	}

	categories, err := h.repoManager.Category.GetAll()
	if err != nil {
		h.logger.WithError(err).Error("Failed to load categories")
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to load categories", err)
		return
	}

	if err := h.cache.CacheCategories(ctx, categories, time.Hour); err != nil {
		h.logger.WithError(err).Warn("Failed to cache categories")
	}

	utils.SuccessResponse(c, http.StatusOK, "Categories retrieved", categories)
}
