package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/pulse-hq/pulse/internal/models"
)

// HealthHandler provides health check endpoints.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// CheckHealth returns the health status of all subsystems.
func (h *HealthHandler) CheckHealth(c *gin.Context) {
	overall := "healthy"

	// Database check
	dbStatus := "ok"
	sqlDB, err := models.GetDB().DB()
	if err != nil {
		dbStatus = "error: " + err.Error()
		overall = "unhealthy"
	} else if err := sqlDB.Ping(); err != nil {
		dbStatus = "error: " + err.Error()
		overall = "unhealthy"
	}

	var sessionCount int64
	models.GetDB().Model(&models.LoginSession{}).Count(&sessionCount)

	c.JSON(200, gin.H{
		"status":  overall,
		"service": "pulse",
		"components": gin.H{
			"database":       dbStatus,
			"login_sessions": sessionCount,
		},
	})
}
