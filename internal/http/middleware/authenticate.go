// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file implements bearer-token authentication. Authenticate parses the
// Authorization header, stores the caller's id under the "userID" context key
// (read by UserIDFrom and by KeyByUserOrIP) and enriches the request-scoped
// logger with it. Requests without a valid token are answered with a 401
// dto.ErrorResponse.
package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-auth-backend/internal/auth"
)

const (
	userIDKey   = "userID"
	usernameKey = "username"
)

// TokenParser validates a bearer token and returns its claims.
type TokenParser interface {
	Parse(token string) (*auth.Claims, error)
}

// Authenticate rejects requests that do not carry a valid bearer token.
func Authenticate(p TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, found := bearerToken(c.GetHeader("Authorization"))
		if !found {
			c.Header("WWW-Authenticate", `Bearer`)
			abortWithError(c, http.StatusUnauthorized, "unauthorized", "missing bearer token")
			return
		}

		claims, err := p.Parse(raw)
		if err != nil {
			msg := "invalid token"
			if errors.Is(err, auth.ErrTokenExpired) {
				msg = "token expired"
			}
			c.Header("WWW-Authenticate", `Bearer error="invalid_token"`)
			abortWithError(c, http.StatusUnauthorized, "unauthorized", msg)
			return
		}

		c.Set(userIDKey, claims.Subject)
		c.Set(usernameKey, claims.Username)

		l := LoggerFrom(c).With().Str("user_id", claims.Subject).Logger()
		c.Set(loggerKey, &l)

		c.Next()
	}
}

// UserIDFrom returns the authenticated user id, or "" for anonymous requests.
func UserIDFrom(c *gin.Context) string {
	if v, ok := c.Get(userIDKey); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// bearerToken extracts the token of an "Authorization: Bearer <token>" header.
// The scheme is matched case-insensitively.
func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
