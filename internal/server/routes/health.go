package routes

import (
	"github.com/gin-gonic/gin"
)

// SetupHealthRoutes configures the health endpoint
func SetupHealthRoutes(router *gin.RouterGroup, h *Handlers) {
	router.GET("/health", h.Health.Check)
}
