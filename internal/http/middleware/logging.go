// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file provides the correlation id injector, a plain structured access
// logger, panic recovery and the accessors for the request-scoped logger:
//
//   - RequestID() reuses X-Request-ID or mints a UUID, echoes it back and
//     stores it in the Gin context.
//   - Logger() emits one access log line per request and attaches a
//     request-scoped zerolog.Logger. RedactingLogger() in redact_logger.go is
//     the scrubbing alternative; the router installs exactly one of them.
//   - Recovery() turns panics into a 500 dto.ErrorResponse and logs the stack.
//   - LoggerFrom() returns the request-scoped logger (or a global fallback).
//
// Recommended order: RequestID, Logger/RedactingLogger, Recovery.
package middleware

import (
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	// requestIDKey is the Gin context key under which the request ID is stored.
	requestIDKey = "requestID"
	// requestIDHeader is the HTTP header used to propagate the correlation ID.
	requestIDHeader = "X-Request-ID"
	// loggerKey is the Gin context key of the request-scoped logger.
	loggerKey = "logger"
	// maxQueryLogLength caps the number of bytes of the raw query string logged.
	maxQueryLogLength = 2048
)

// RequestID attaches (or propagates) a correlation identifier per request.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(requestIDHeader)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Set(requestIDKey, rid)
		c.Writer.Header().Set(requestIDHeader, rid)
		c.Next()
	}
}

// Logger writes a structured access log for each request.
//
// Level is chosen by outcome: error for 5xx or when handlers recorded Gin
// errors, warn for 4xx, info otherwise. The user id is read after the chain
// ran, so it is present whenever Authenticate accepted the request.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		l := log.With().
			Str("request_id", requestIDOf(c)).
			Str("method", c.Request.Method).
			Str("path", routeOf(c)).
			Str("remote_ip", c.ClientIP()).
			Str("user_agent", c.Request.UserAgent()).
			Str("query", truncate(c.Request.URL.RawQuery, maxQueryLogLength)).
			Int64("bytes_in", c.Request.ContentLength).
			Logger()
		c.Set(loggerKey, &l)

		c.Next()

		logOutcome(c, l.With().
			Str("user_id", UserIDFrom(c)).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Int("bytes_out", c.Writer.Size()).
			Logger(), "request")
	}
}

// logOutcome emits msg on l at a level derived from the response status.
func logOutcome(c *gin.Context, l zerolog.Logger, msg string) {
	status := c.Writer.Status()
	switch {
	case len(c.Errors) > 0:
		l.Error().Str("errors", c.Errors.String()).Msg(msg)
	case status >= http.StatusInternalServerError:
		l.Error().Msg(msg)
	case status >= http.StatusBadRequest:
		l.Warn().Msg(msg)
	default:
		l.Info().Msg(msg)
	}
}

// Recovery intercepts panics, logs a stack trace and answers with a 500
// dto.ErrorResponse labelled internal_error. The panic value never reaches
// the client.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				LoggerFrom(c).Error().
					Interface("panic", rec).
					Bytes("stack", debug.Stack()).
					Str("request_id", requestIDOf(c)).
					Msg("panic recovered")

				if c.Writer.Written() {
					c.AbortWithStatus(http.StatusInternalServerError)
					return
				}
				abortWithError(c, http.StatusInternalServerError, "internal_error", "internal server error")
			}
		}()
		c.Next()
	}
}

// LoggerFrom returns the request-scoped zerolog.Logger, or a logger derived
// from the global one when none was attached. The result is never nil.
func LoggerFrom(c *gin.Context) *zerolog.Logger {
	if v, ok := c.Get(loggerKey); ok {
		if lg, ok := v.(*zerolog.Logger); ok {
			return lg
		}
	}
	l := log.With().Logger()
	return &l
}

// routeOf returns the matched route pattern, or the raw path on 404.
func routeOf(c *gin.Context) string {
	if p := c.FullPath(); p != "" {
		return p
	}
	return c.Request.URL.Path
}

// truncate caps s at max bytes and appends an ellipsis. A max <= 0 disables
// truncation.
func truncate(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	return s[:max] + "…"
}
