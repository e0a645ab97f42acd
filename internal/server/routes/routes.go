package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/afandihd/portfolio-backend/internal/api/middleware"
	"github.com/afandihd/portfolio-backend/internal/config"
	"github.com/afandihd/portfolio-backend/internal/logging"
)

// Setup configures all route groups under /api.
func Setup(router *gin.Engine, h *Handlers, m *Middleware) {
	api := router.Group("/api")

	SetupContactRoutes(api, h, m)
	SetupHealthRoutes(api, h)
}

// SetupGlobalMiddleware configures middleware that applies to all routes
func SetupGlobalMiddleware(router *gin.Engine, cfg *config.Config, logger *logging.Logger) {
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.CORS(cfg.Environment, cfg.AllowedOrigins))
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.BurstLimit(middleware.BurstLimitConfig{
		RPS:   10,
		Burst: 20,
	}))
}
