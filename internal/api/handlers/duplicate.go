package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/campusvoice/backend/internal/models"
	"github.com/campusvoice/backend/internal/repository"
	"github.com/campusvoice/backend/internal/services"
	"github.com/campusvoice/backend/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// DuplicateCheckHandler serves the duplicate-feedback check consumed by
// the submission form and the chat widget.
type DuplicateCheckHandler struct {
	checker     *services.DuplicateCheckService
	repoManager *repository.RepositoryManager
	logger      *logrus.Logger
}

func NewDuplicateCheckHandler(
	checker *services.DuplicateCheckService,
	repoManager *repository.RepositoryManager,
	logger *logrus.Logger,
) *DuplicateCheckHandler {
	return &DuplicateCheckHandler{
		checker:     checker,
		repoManager: repoManager,
		logger:      logger,
	}
}

// emptyResult is the data payload echoed on validation failures
func emptyResult() *models.DuplicateCheckResult {
	return &models.DuplicateCheckResult{
		SimilarFeedback: []models.SimilarFeedbackView{},
		Count:           0,
	}
}

// HandleCheck processes duplicate-check requests
func (h *DuplicateCheckHandler) HandleCheck(c *gin.Context) {
	startTime := time.Now()

	var req models.DuplicateCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithError(err).Debug("Invalid duplicate-check request body")
		utils.ErrorResponseWithData(c, http.StatusBadRequest, "Invalid request format", emptyResult())
		return
	}

	userSession := h.getUserSession(c)

	h.logger.WithFields(logrus.Fields{
		"description_length": len(req.Description),
		"category_id":        req.CategoryID,
		"user_session":       userSession,
	}).Info("Processing duplicate check")

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	result, err := h.checker.CheckDuplicates(ctx, req.Description, req.CategoryID, req.Limit)
	if err != nil {
		if services.IsValidationError(err) {
			utils.ErrorResponseWithData(c, http.StatusBadRequest, err.Error(), emptyResult())
			return
		}

		h.logger.WithError(err).Error("Duplicate check failed")
		go h.trackCheck(userSession, req.Description, 0, time.Since(startTime), c.GetHeader("User-Agent"), c.ClientIP())
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to check for similar feedback", err)
		return
	}

	responseTime := time.Since(startTime)
	go h.trackCheck(userSession, req.Description, result.Count, responseTime, c.GetHeader("User-Agent"), c.ClientIP())

	h.logger.WithFields(logrus.Fields{
		"match_count":   result.Count,
		"response_time": responseTime.Milliseconds(),
	}).Info("Duplicate check completed")

	utils.SuccessResponse(c, http.StatusOK, "Similar feedback retrieved", result)
}

// Helper methods

func (h *DuplicateCheckHandler) getUserSession(c *gin.Context) string {
	if session := c.GetHeader("X-Session-ID"); session != "" {
		return session
	}

	// Basic fingerprinting from IP + User-Agent
	return utils.GenerateSessionID(c.ClientIP() + c.GetHeader("User-Agent"))
}

func (h *DuplicateCheckHandler) trackCheck(userSession, query string, matchCount int, responseTime time.Duration, userAgent, ipAddress string) {
	checkQuery := &models.DuplicateCheckQuery{
		QueryText:      query,
		UserSession:    userSession,
		MatchCount:     matchCount,
		CheckedAt:      time.Now(),
		ResponseTimeMs: int(responseTime.Milliseconds()),
		UserAgent:      userAgent,
		IPAddress:      ipAddress,
	}

	if err := h.repoManager.DuplicateCheckQuery.Create(checkQuery); err != nil {
		h.logger.WithError(err).Error("Failed to track duplicate check")
	}
}
