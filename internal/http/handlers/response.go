// Package handlers provides HTTP handler implementations for the public API.
//
// This file defines the response utilities shared by all endpoints. Every
// failure, whatever its origin, leaves the service as a dto.ErrorResponse;
// success bodies are written with ok() and noContent().
//
// Conventions:
//   - `fail()` writes a non-validation envelope (empty fieldErrors) and logs
//     5xx responses with the request-scoped logger.
//   - `bindJSON()` maps decode failures to 400, or 413 past the body cap.
//   - `failValidation()` writes the 400 validation envelope with field errors
//     in detection order.
//   - Unhandled errors never reach the client verbatim; see `internalError()`.
package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-auth-backend/internal/dto"
	"github.com/tbourn/go-auth-backend/internal/http/middleware"
)

// now is the clock used for envelope timestamps.
var now = time.Now

// fail aborts the request with a structured error and logs server-side errors.
func fail(c *gin.Context, status int, code, msg string) {
	resp := dto.NewErrorResponse(now(), status, code, msg, requestPath(c)).
		WithRequestID(c.Writer.Header().Get("X-Request-ID"))

	if resp.Status >= http.StatusInternalServerError {
		middleware.LoggerFrom(c).Error().
			Int("status", resp.Status).
			Str("code", code).
			Str("message", msg).
			Msg("api error")
	}

	c.AbortWithStatusJSON(resp.Status, resp)
}

// failValidation aborts with the 400 validation envelope.
func failValidation(c *gin.Context, fieldErrors []dto.FieldError) {
	resp := dto.NewValidationErrorResponse(now(), requestPath(c), fieldErrors).
		WithRequestID(c.Writer.Header().Get("X-Request-ID"))
	c.AbortWithStatusJSON(resp.Status, resp)
}

// internalError logs err with request context and answers with a generic 500.
func internalError(c *gin.Context, err error) {
	_ = c.Error(err)
	fail(c, http.StatusInternalServerError, ErrCodeInternal, msgInternal)
}

// bindJSON decodes the request body into dst. On failure it answers 413 when
// the body hit the size cap and 400 otherwise, and reports false.
func bindJSON(c *gin.Context, dst any) bool {
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return true
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		fail(c, http.StatusRequestEntityTooLarge, ErrCodePayloadTooLarge,
			fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit))
		return false
	}
	fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
	return false
}

// Fail is the exported variant of fail().
//
// External packages (e.g., router setup) should call Fail to return
// consistent error envelopes without directly depending on unexported helpers.
func Fail(c *gin.Context, status int, code, msg string) { fail(c, status, code, msg) }

// ok writes a success JSON response.
func ok(c *gin.Context, status int, body any) {
	c.JSON(status, body)
}

// noContent writes an HTTP 204 No Content response.
func noContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

func requestPath(c *gin.Context) string {
	if c.Request == nil || c.Request.URL == nil {
		return ""
	}
	return c.Request.URL.Path
}
