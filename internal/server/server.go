package server

import (
	"io"

	"github.com/gin-gonic/gin"

	"github.com/afandihd/portfolio-backend/internal/api/handlers"
	"github.com/afandihd/portfolio-backend/internal/api/validation"
	"github.com/afandihd/portfolio-backend/internal/config"
	"github.com/afandihd/portfolio-backend/internal/logging"
	"github.com/afandihd/portfolio-backend/internal/mailer"
	"github.com/afandihd/portfolio-backend/internal/ratelimit"
	"github.com/afandihd/portfolio-backend/internal/server/routes"
	"github.com/afandihd/portfolio-backend/internal/service"
)

// Version is stamped at build time via -ldflags.
var Version = "0.1.0"

// Server represents the HTTP server
type Server struct {
	cfg     *config.Config
	logger  *logging.Logger
	router  *gin.Engine
	limiter *ratelimit.FixedWindow
}

// New assembles the engine, services and routes.
func New(cfg *config.Config, logger *logging.Logger) *Server {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Disable gin's own logger; the application logger middleware
	// covers requests.
	gin.DisableConsoleColor()
	gin.DefaultWriter = io.Discard

	router := gin.New()
	routes.SetupGlobalMiddleware(router, cfg, logger)

	limiter := ratelimit.NewFixedWindow(cfg.RateLimitMaxRequests, cfg.RateLimitWindow())

	// One capability query decides both "require token" and "verify
	// token"; validator and verifier never diverge.
	turnstile := service.NewTurnstileService(cfg.TurnstileSecretKey)
	validator := validation.New(turnstile.Enabled())
	robot := service.NewRobotService(cfg.RobotMinSubmissionTime())
	sender := mailer.NewService(cfg.SMTP, cfg.SiteName, cfg.SiteURL, logger)

	h := &routes.Handlers{
		Contact: handlers.NewContactHandler(validator, turnstile, robot, sender, logger),
		Health:  handlers.NewHealthHandler(Version, cfg.Environment),
	}
	m := &routes.Middleware{
		ContactLimiter: limiter,
		ContactLimit:   cfg.RateLimitMaxRequests,
	}

	routes.Setup(router, h, m)

	return &Server{
		cfg:     cfg,
		logger:  logger,
		router:  router,
		limiter: limiter,
	}
}

// Router exposes the engine, used by tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Start runs the HTTP server; it blocks until the listener fails.
func (s *Server) Start() error {
	defer s.limiter.Stop()

	s.logger.Info("Listening on :%s (%s)", s.cfg.Port, s.cfg.Environment)
	return s.router.Run(":" + s.cfg.Port)
}
