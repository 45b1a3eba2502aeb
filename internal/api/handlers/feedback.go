package handlers

import (
	"net/http"
	"strconv"

	"github.com/campusvoice/backend/internal/models"
	"github.com/campusvoice/backend/internal/services"
	"github.com/campusvoice/backend/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type FeedbackHandler struct {
	feedbackService *services.FeedbackService
	logger          *logrus.Logger
}

func NewFeedbackHandler(feedbackService *services.FeedbackService, logger *logrus.Logger) *FeedbackHandler {
	return &FeedbackHandler{
		feedbackService: feedbackService,
		logger:          logger,
	}
}

// HandleSubmit accepts new feedback and returns similar existing
// feedback as a warning alongside the created record.
func (h *FeedbackHandler) HandleSubmit(c *gin.Context) {
	var req models.SubmitFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid feedback format", err)
		return
	}

	userSession := h.getUserSession(c)

	result, err := h.feedbackService.Submit(c.Request.Context(), &req, userSession)
	if err != nil {
		h.logger.WithError(err).Error("Failed to submit feedback")
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to submit feedback", err)
		return
	}

	h.logger.WithFields(logrus.Fields{
		"feedback_id":   result.Feedback.ID,
		"similar_count": result.SimilarCount,
		"user_session":  userSession,
	}).Info("Feedback submitted")

	utils.SuccessResponse(c, http.StatusCreated, "Feedback submitted", result)
}

// HandleGet returns one feedback record with its responses
func (h *FeedbackHandler) HandleGet(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid feedback ID", err)
		return
	}

	feedback, err := h.feedbackService.GetByID(uint(id))
	if err != nil {
		utils.ErrorResponse(c, http.StatusNotFound, "Feedback not found", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Feedback retrieved", feedback)
}

// HandleList returns recent feedback, optionally filtered by category
func (h *FeedbackHandler) HandleList(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	var categoryID *uint
	if raw := c.Query("category_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			utils.ErrorResponse(c, http.StatusBadRequest, "Invalid category ID", err)
			return
		}
		id := uint(parsed)
		categoryID = &id
	}

	records, err := h.feedbackService.ListRecent(limit, categoryID)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list feedback")
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to list feedback", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Feedback retrieved", gin.H{
		"feedback": records,
		"count":    len(records),
	})
}

// HandleAddResponse appends an admin response to a feedback record
func (h *FeedbackHandler) HandleAddResponse(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid feedback ID", err)
		return
	}

	var req models.AddResponseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid response format", err)
		return
	}

	response, err := h.feedbackService.AddResponse(uint(id), req.AdminName, req.ResponseText)
	if err != nil {
		h.logger.WithError(err).WithField("feedback_id", id).Error("Failed to add response")
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to add response", err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Response added", response)
}

// HandleUpdateStatus transitions a feedback record's status
func (h *FeedbackHandler) HandleUpdateStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid feedback ID", err)
		return
	}

	var req models.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid status format", err)
		return
	}

	if err := h.feedbackService.UpdateStatus(uint(id), req.Status); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Failed to update status", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Status updated", nil)
}

func (h *FeedbackHandler) getUserSession(c *gin.Context) string {
	if session := c.GetHeader("X-Session-ID"); session != "" {
		return session
	}
	return utils.GenerateSessionID(c.ClientIP() + c.GetHeader("User-Agent"))
}
