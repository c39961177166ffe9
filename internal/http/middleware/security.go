// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file provides SecurityHeaders, which hardens every response of the
// JSON API. Responses here carry bearer tokens and profile data, so the
// router enables NoStore.
package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// SecurityOptions configures SecurityHeaders.
type SecurityOptions struct {
	EnableHSTS   bool          // only when traffic is HTTPS end-to-end
	HSTSMaxAge   time.Duration // defaults to 180 days when <= 0
	NoStore      bool          // Cache-Control: no-store (+ Pragma/Expires)
	EnablePolicy bool          // Permissions-Policy and friends
}

// SecurityHeaders returns a Gin middleware that sets:
//
//   - X-Content-Type-Options: nosniff, X-Frame-Options: DENY and
//     Referrer-Policy: no-referrer on every response
//   - Permissions-Policy / X-Permitted-Cross-Domain-Policies when EnablePolicy
//   - Cache-Control: no-store, Pragma: no-cache, Expires: 0 when NoStore
//   - Strict-Transport-Security when EnableHSTS and the request is HTTPS
//     (directly or via X-Forwarded-Proto)
//   - Access-Control-Expose-Headers including X-Request-ID when one is set
func SecurityHeaders(opt SecurityOptions) gin.HandlerFunc {
	static := opt.staticHeaders()
	hsts := opt.hstsValue()

	return func(c *gin.Context) {
		h := c.Writer.Header()
		for _, kv := range static {
			h.Set(kv[0], kv[1])
		}
		if opt.EnableHSTS && isHTTPS(c.Request) {
			h.Set("Strict-Transport-Security", hsts)
		}
		exposeRequestID(h)
		c.Next()
	}
}

// staticHeaders lists the headers that do not depend on the request.
func (opt SecurityOptions) staticHeaders() [][2]string {
	out := [][2]string{
		{"X-Content-Type-Options", "nosniff"},
		{"X-Frame-Options", "DENY"},
		{"Referrer-Policy", "no-referrer"},
	}
	if opt.EnablePolicy {
		out = append(out,
			[2]string{"Permissions-Policy", "geolocation=(), microphone=(), camera=(), payment=()"},
			[2]string{"X-Permitted-Cross-Domain-Policies", "none"},
		)
	}
	if opt.NoStore {
		out = append(out,
			[2]string{"Cache-Control", "no-store"},
			[2]string{"Pragma", "no-cache"},
			[2]string{"Expires", "0"},
		)
	}
	return out
}

// hstsValue renders Strict-Transport-Security; ages under one second mean
// 180 days.
func (opt SecurityOptions) hstsValue() string {
	secs := int64(opt.HSTSMaxAge / time.Second)
	if secs <= 0 {
		secs = int64(180 * 24 * time.Hour / time.Second)
	}
	return "max-age=" + strconv.FormatInt(secs, 10) + "; includeSubDomains; preload"
}

// exposeRequestID adds X-Request-ID to Access-Control-Expose-Headers when the
// response carries one, keeping any headers already exposed.
func exposeRequestID(h http.Header) {
	if h.Get(requestIDHeader) == "" {
		return
	}
	const hdr = "Access-Control-Expose-Headers"
	switch cur := h.Get(hdr); {
	case cur == "":
		h.Set(hdr, requestIDHeader)
	case !strings.Contains(cur, requestIDHeader):
		h.Set(hdr, cur+", "+requestIDHeader)
	}
}

// isHTTPS reports whether the request used HTTPS directly or behind a proxy
// that set X-Forwarded-Proto: https.
func isHTTPS(r *http.Request) bool {
	if r.TLS != nil {
		return true
	}
	return strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
}
