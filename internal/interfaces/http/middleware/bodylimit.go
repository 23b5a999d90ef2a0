package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/livestock/backend/internal/interfaces/http/dto"
)

// BodyLimit returns a middleware that limits request body size.
// Bodies without a Content-Length are cut off by http.MaxBytesReader and
// surface as a binding error in the handler.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			dto.WriteProblem(c, dto.ErrCodeRequestTooLarge, "Request body exceeds maximum allowed size")
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
