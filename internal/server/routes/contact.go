package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/afandihd/portfolio-backend/internal/api/middleware"
)

// SetupContactRoutes configures the contact form endpoint. The guard
// and the per-IP limiter run before the handler; every other verb on
// the path answers 405.
func SetupContactRoutes(router *gin.RouterGroup, h *Handlers, m *Middleware) {
	router.POST("/contact",
		middleware.RequestGuard(),
		middleware.RateLimit(m.ContactLimiter, m.ContactLimit),
		h.Contact.Submit,
	)

	for _, method := range []string{"GET", "PUT", "PATCH", "DELETE", "HEAD"} {
		router.Handle(method, "/contact", h.Contact.MethodNotAllowed)
	}
}
