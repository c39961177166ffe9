package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-auth-backend/internal/auth"
)

func newAuthRouter(p TokenParser) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.Use(Authenticate(p))
	r.GET("/me", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": UserIDFrom(c), "username": c.GetString(usernameKey)})
	})
	return r
}

func TestAuthenticate_ValidToken(t *testing.T) {
	issuer := auth.NewTokenIssuer([]byte("secret"), "test", time.Hour)
	tok, err := issuer.Issue("u-1", "alina")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	r := newAuthRouter(issuer)
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "bearer "+tok)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var body map[string]string
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	if body["id"] != "u-1" || body["username"] != "alina" {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestAuthenticate_Rejections(t *testing.T) {
	issuer := auth.NewTokenIssuer([]byte("secret"), "test", time.Hour)
	expired := auth.NewTokenIssuer([]byte("secret"), "test", time.Nanosecond)
	old, err := expired.Issue("u-1", "alina")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	time.Sleep(1100 * time.Millisecond)

	cases := []struct {
		name    string
		header  string
		wantMsg string
	}{
		{name: "missing", header: "", wantMsg: "missing bearer token"},
		{name: "wrong scheme", header: "Basic dXNlcjpwdw==", wantMsg: "missing bearer token"},
		{name: "empty token", header: "Bearer   ", wantMsg: "missing bearer token"},
		{name: "garbage", header: "Bearer not-a-jwt", wantMsg: "invalid token"},
		{name: "expired", header: "Bearer " + old, wantMsg: "token expired"},
	}

	r := newAuthRouter(issuer)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != http.StatusUnauthorized {
				t.Fatalf("status=%d", w.Code)
			}
			if w.Header().Get("WWW-Authenticate") == "" {
				t.Fatalf("missing WWW-Authenticate header")
			}
			var body map[string]any
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("json: %v", err)
			}
			if body["error"] != "unauthorized" || body["message"] != tc.wantMsg || body["path"] != "/me" {
				t.Fatalf("unexpected envelope: %v", body)
			}
		})
	}
}

func TestUserIDFrom_Anonymous(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if got := UserIDFrom(c); got != "" {
		t.Fatalf("UserIDFrom = %q", got)
	}
	c.Set(userIDKey, 42)
	if got := UserIDFrom(c); got != "" {
		t.Fatalf("non-string id should read as empty, got %q", got)
	}
}

func TestBearerToken(t *testing.T) {
	if tok, ok := bearerToken("  Bearer abc.def.ghi "); !ok || tok != "abc.def.ghi" {
		t.Fatalf("bearerToken = %q, %v", tok, ok)
	}
	if _, ok := bearerToken("Bearer"); ok {
		t.Fatalf("scheme without token must be rejected")
	}
}
