package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/campusvoice/backend/internal/database"
	"github.com/campusvoice/backend/internal/repository"
	"github.com/campusvoice/backend/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type TopicHandler struct {
	repoManager *repository.RepositoryManager
	cache       *database.Cache
	logger      *logrus.Logger
}

func NewTopicHandler(repoManager *repository.RepositoryManager, cache *database.Cache, logger *logrus.Logger) *TopicHandler {
	return &TopicHandler{
		repoManager: repoManager,
		cache:       cache,
		logger:      logger,
	}
}

// HandleTrending returns the most frequently reported topics
func (h *TopicHandler) HandleTrending(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "5"))
	if limit <= 0 || limit > 20 {
		limit = 5
	}

	ctx := c.Request.Context()

	if cached, err := h.cache.GetCachedPopularTopics(ctx); err == nil && len(cached) >= limit {
		h.logger.Debug("Trending topics served from cache")
		utils.SuccessResponse(c, http.StatusOK, "Trending topics retrieved", cached[:limit])
		return
	}

	topics, err := h.repoManager.PopularTopic.GetTop(limit)
	if err != nil {
		h.logger.WithError(err).Error("Failed to load trending topics")
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to load trending topics", err)
		return
	}

	if err := h.cache.CachePopularTopics(ctx, topics, 5*time.Minute); err != nil {
		h.logger.WithError(err).Warn("Failed to cache trending topics")
	}

	utils.SuccessResponse(c, http.StatusOK, "Trending topics retrieved", topics)
}
