package handlers

import (
	"net/http"
	"time"

	"github.com/campusvoice/backend/internal/health"
	"github.com/campusvoice/backend/internal/models"
	"github.com/campusvoice/backend/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type HealthHandler struct {
	checker *health.HealthChecker
	logger  *logrus.Logger
}

func NewHealthHandler(checker *health.HealthChecker, logger *logrus.Logger) *HealthHandler {
	return &HealthHandler{
		checker: checker,
		logger:  logger,
	}
}

// HandleHealth serves the fast health endpoint, preferring the cached
// snapshot from the periodic checker.
func (h *HealthHandler) HandleHealth(c *gin.Context) {
	overall, err := h.checker.CheckCached(c.Request.Context())
	if err != nil {
		overall = &health.OverallHealth{Status: "healthy"}
	}

	services := make(map[string]string, len(overall.Services))
	for _, s := range overall.Services {
		services[s.Name] = s.Status
	}

	code := http.StatusOK
	if overall.Status == "unhealthy" {
		code = http.StatusServiceUnavailable
	}

	c.JSON(code, models.HealthResponse{
		Status:    overall.Status,
		Service:   "campusvoice-backend",
		Timestamp: time.Now().Format(time.RFC3339),
		Services:  services,
	})
}

// HandleHealthDetailed runs live checks against every backing service
func (h *HealthHandler) HandleHealthDetailed(c *gin.Context) {
	overall := h.checker.CheckAll()

	code := http.StatusOK
	if overall.Status == "unhealthy" {
		code = http.StatusServiceUnavailable
	}

	utils.SuccessResponse(c, code, "Health check completed", overall)
}
