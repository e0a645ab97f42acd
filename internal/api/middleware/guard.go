package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/afandihd/portfolio-backend/internal/api/dto/common"
)

// MaxBodySize is the request body ceiling for the contact endpoint.
const MaxBodySize = 1 << 20 // 1 MiB

// RequestGuard rejects wrong content types and oversized bodies before
// any parsing or validation work happens. The declared Content-Length
// is checked up front; the actual body is capped with MaxBytesReader
// for clients that lie about it.
func RequestGuard() gin.HandlerFunc {
	return func(c *gin.Context) {
		contentType := c.GetHeader("Content-Type")
		if contentType == "" || !strings.Contains(contentType, "application/json") {
			c.AbortWithStatusJSON(http.StatusBadRequest,
				common.NewErrorResponse("Invalid content type. Expected application/json"))
			return
		}

		if c.Request.ContentLength > MaxBodySize {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge,
				common.NewErrorResponse("Request body too large"))
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxBodySize)

		c.Next()
	}
}
