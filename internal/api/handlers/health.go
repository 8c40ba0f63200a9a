package handlers

import (
	"net/http"

	"github.com/Conceptual-Machines/chordbook-api/internal/database"
	"github.com/Conceptual-Machines/chordbook-api/internal/logger"
	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type HealthHandler struct {
	db *gorm.DB
}

func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// HealthCheck returns the health status of the API and its database
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	if err := database.Ping(h.db); err != nil {
		fields := logger.Fields{"error": err.Error(), "component": "database"}
		logger.Warn("Health check failed", fields)
		logger.LogToSentry(sentry.LevelWarning, "Health check degraded", fields)
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":   "degraded",
			"database": "unreachable",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"database": "ok",
	})
}
