package middleware

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/afandihd/portfolio-backend/internal/api/dto/common"
	"github.com/afandihd/portfolio-backend/internal/ratelimit"
	"github.com/afandihd/portfolio-backend/internal/utils"
)

// RateLimit applies the per-IP fixed-window limiter and emits the
// X-RateLimit-* headers on every response. limit is the per-window
// budget, echoed in X-RateLimit-Limit.
func RateLimit(limiter ratelimit.Limiter, limit int) gin.HandlerFunc {
	return func(c *gin.Context) {
		clientIP := utils.GetClientIP(c)
		decision := limiter.Check(clientIP)

		c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))
		c.Header("X-RateLimit-Reset", decision.ResetAt.UTC().Format(time.RFC3339))

		if !decision.Allowed {
			retryAfter := int(math.Ceil(time.Until(decision.ResetAt).Seconds()))
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				common.NewErrorResponse("Too many requests. Please try again later."))
			return
		}

		c.Next()
	}
}
