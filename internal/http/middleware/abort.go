package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-auth-backend/internal/dto"
)

// abortWithError stops the chain with a dto.ErrorResponse. Middleware cannot
// import the handlers package, so it builds the envelope itself.
func abortWithError(c *gin.Context, status int, label, msg string) {
	resp := dto.NewErrorResponse(time.Now(), status, label, msg, c.Request.URL.Path).
		WithRequestID(requestIDOf(c))
	c.AbortWithStatusJSON(resp.Status, resp)
}

// requestIDOf returns the correlation id set by RequestID, falling back to
// the response and request headers.
func requestIDOf(c *gin.Context) string {
	if v, ok := c.Get(requestIDKey); ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	if rid := c.Writer.Header().Get(requestIDHeader); rid != "" {
		return rid
	}
	return c.GetHeader(requestIDHeader)
}
