package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/afandihd/portfolio-backend/internal/api/dto/common"
)

// BurstLimitConfig defines configuration for the global burst limiter
type BurstLimitConfig struct {
	// Requests per second
	RPS int
	// Burst size (number of requests that can be made in a single burst)
	Burst int
}

// BurstLimit is a coarse process-wide token bucket sitting in front of
// every route. It caps total throughput; the per-IP fairness limit on
// the contact route is handled by RateLimit.
func BurstLimit(config BurstLimitConfig) gin.HandlerFunc {
	limiter := rate.NewLimiter(rate.Limit(config.RPS), config.Burst)

	return func(c *gin.Context) {
		if !limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				common.NewErrorResponse("Too many requests. Please try again later."))
			return
		}

		c.Next()
	}
}
