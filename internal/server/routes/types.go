package routes

import (
	"github.com/afandihd/portfolio-backend/internal/api/handlers"
	"github.com/afandihd/portfolio-backend/internal/ratelimit"
)

// Handlers contains all the route handlers
type Handlers struct {
	Contact *handlers.ContactHandler
	Health  *handlers.HealthHandler
}

// Middleware contains the route-scoped middleware dependencies
type Middleware struct {
	ContactLimiter ratelimit.Limiter
	ContactLimit   int
}
