package handler

import (
	"time"

	"github.com/gin-gonic/gin"
)

// HealthHandler provides the root health endpoint.
type HealthHandler struct {
	version string
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(version string) *HealthHandler {
	return &HealthHandler{version: version}
}

// GetHealth responds with service identity and status.
func (h *HealthHandler) GetHealth(c *gin.Context) {
	c.JSON(200, gin.H{
		"success":   true,
		"message":   "Amazon Partner API Mock",
		"version":   h.version,
		"status":    "running",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}
