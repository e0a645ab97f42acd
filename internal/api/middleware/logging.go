package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/afandihd/portfolio-backend/internal/logging"
	"github.com/afandihd/portfolio-backend/internal/utils"
)

// RequestLogger logs every completed request through the application
// logger.
func RequestLogger(logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		logger.LogHTTPRequest(
			c.Request.Method,
			c.Request.URL.Path,
			utils.GetClientIP(c),
			c.GetString(ContextKeyRequestID),
			c.Writer.Status(),
			time.Since(start).String(),
		)
	}
}
