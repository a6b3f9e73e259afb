package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/brewhouse/backend/internal/interfaces/http/dto"
)

// BodyLimit rejects oversized request bodies. Declared lengths above the
// limit get an immediate 413; chunked bodies are capped by MaxBytesReader.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge,
				dto.NewErrorResponse("REQUEST_TOO_LARGE", "Request body exceeds maximum allowed size"))
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
