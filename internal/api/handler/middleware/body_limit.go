package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"jobsite/internal/api/handler/response"

	"github.com/gin-gonic/gin"
)

// BodyLimit caps the request body at limit bytes. A declared Content-Length
// over the limit is refused before anything is read; otherwise reads past the
// limit fail with *http.MaxBytesError. A limit <= 0 disables the check.
func BodyLimit(limit int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limit <= 0 {
			c.Next()
			return
		}
		if c.Request.ContentLength > limit {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, response.ActionResult{
				Error: fmt.Sprintf("request body exceeds %d bytes", limit),
			})
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		c.Next()
	}
}

// BodyTooLarge reports whether err was caused by a body cut off by BodyLimit.
func BodyTooLarge(err error) bool {
	var maxBytesErr *http.MaxBytesError
	return errors.As(err, &maxBytesErr)
}
