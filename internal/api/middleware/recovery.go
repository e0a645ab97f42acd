package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/afandihd/portfolio-backend/internal/api/dto/common"
	"github.com/afandihd/portfolio-backend/internal/logging"
)

// Recovery is the outermost error boundary: any panic escaping a
// handler is logged with its stack and converted to a generic 500.
// Internal detail never reaches the client.
func Recovery(logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error("panic recovered: %v | %s %s | %s\n%s",
					err,
					c.Request.Method,
					c.Request.URL.Path,
					c.GetString(ContextKeyRequestID),
					debug.Stack(),
				)

				c.AbortWithStatusJSON(http.StatusInternalServerError,
					common.NewErrorResponse("An error occurred while processing your request. Please try again later."))
			}
		}()

		c.Next()
	}
}
