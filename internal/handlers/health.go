package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/marberan/tastemix/internal/services"
)

type HealthHandler struct {
	logger *logrus.Logger
	health *services.HealthService
}

func NewHealthHandler(logger *logrus.Logger, health *services.HealthService) *HealthHandler {
	return &HealthHandler{
		logger: logger,
		health: health,
	}
}

func (h *HealthHandler) Get(c *gin.Context) {
	status := h.health.CheckHealth()

	code := http.StatusOK
	if status.Status != "healthy" {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, status)
}

// Ready reports readiness for load balancers; the process is ready once
// every catalog has been seeded.
func (h *HealthHandler) Ready(c *gin.Context) {
	status := h.health.CheckHealth()
	if status.Status == "healthy" {
		c.JSON(http.StatusOK, gin.H{"ready": true})
		return
	}
	c.JSON(http.StatusServiceUnavailable, gin.H{"ready": false})
}
