package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"

	"github.com/tbourn/go-auth-backend/internal/domain"
	"github.com/tbourn/go-auth-backend/internal/dto"
	"github.com/tbourn/go-auth-backend/internal/seqs"
	"github.com/tbourn/go-auth-backend/internal/services"
)

// newUserTestRouter mounts the user endpoints behind a fake auth step that
// marks the caller as uid (empty uid = anonymous).
func newUserTestRouter(svc UserService, uid string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := New(&stubAuthSvc{}, svc, language.Russian)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if uid != "" {
			c.Set("userID", uid)
		}
		c.Next()
	})
	r.GET("/users/me", h.Me)
	r.GET("/users", h.ListUsers)
	r.PUT("/users/display-names", h.BulkRename)
	return r
}

func doReq(r http.Handler, method, path, body string, hdr map[string]string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// ---------- Me ----------

func TestMe(t *testing.T) {
	created := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	svc := stubUserSvc{get: func(_ context.Context, id string) (*domain.User, error) {
		if id != "u1" {
			return nil, services.ErrUserNotFound
		}
		return &domain.User{ID: "u1", Username: "alina", Email: "a@example.com", DisplayName: "Alina", PasswordHash: "secret-hash", CreatedAt: created}, nil
	}}

	w := doReq(newUserTestRouter(svc, "u1"), http.MethodGet, "/users/me", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	if bytes.Contains(w.Body.Bytes(), []byte("secret-hash")) {
		t.Fatalf("password hash leaked: %s", w.Body.String())
	}
	var u dto.UserDTO
	_ = json.Unmarshal(w.Body.Bytes(), &u)
	if !u.Equal(dto.UserDTO{ID: "u1", Username: "alina", Email: "a@example.com", DisplayName: "Alina", CreatedAt: created}) {
		t.Fatalf("unexpected user: %+v", u)
	}

	w = doReq(newUserTestRouter(svc, "gone"), http.MethodGet, "/users/me", "", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("deleted user: status=%d", w.Code)
	}

	w = doReq(newUserTestRouter(svc, ""), http.MethodGet, "/users/me", "", nil)
	if w.Code != http.StatusUnauthorized || decodeError(t, w).Error != ErrCodeUnauthorized {
		t.Fatalf("anonymous: status=%d body=%s", w.Code, w.Body.String())
	}
}

// ---------- ListUsers ----------

func TestListUsers_PaginationAndETag(t *testing.T) {
	maxTS := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	var gotPage, gotSize int
	svc := stubUserSvc{
		stats: func(context.Context) (int64, *time.Time, error) { return 45, &maxTS, nil },
		listPage: func(_ context.Context, page, size int) ([]domain.User, int64, error) {
			gotPage, gotSize = page, size
			return []domain.User{{ID: "u21"}, {ID: "u22"}}, 45, nil
		},
	}
	r := newUserTestRouter(svc, "u1")

	w := doReq(r, http.MethodGet, "/users?page=2&page_size=20", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	if gotPage != 2 || gotSize != 20 {
		t.Fatalf("page=%d size=%d", gotPage, gotSize)
	}
	var resp dto.ListUsersResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("json: %v", err)
	}
	if len(resp.Users) != 2 || resp.Pagination.TotalPages != 3 || !resp.Pagination.HasNext {
		t.Fatalf("unexpected response: %+v", resp)
	}

	etag := w.Header().Get("ETag")
	if etag == "" {
		t.Fatalf("missing ETag")
	}
	w = doReq(r, http.MethodGet, "/users?page=2&page_size=20", "", map[string]string{"If-None-Match": etag})
	if w.Code != http.StatusNotModified {
		t.Fatalf("expected 304, got %d", w.Code)
	}

	// A different page must not be served from the same ETag.
	w = doReq(r, http.MethodGet, "/users?page=3&page_size=20", "", map[string]string{"If-None-Match": etag})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for other page, got %d", w.Code)
	}
}

func TestListUsers_EmptyAndStatsFailure(t *testing.T) {
	r := newUserTestRouter(stubUserSvc{}, "u1") // Stats fails, ListPage returns nil

	w := doReq(r, http.MethodGet, "/users", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	if w.Header().Get("ETag") != "" {
		t.Fatalf("no ETag expected when stats fail")
	}
	if !bytes.Contains(w.Body.Bytes(), []byte(`"users":[]`)) {
		t.Fatalf("expected empty users array, got %s", w.Body.String())
	}
}

func TestListUsers_ServiceError(t *testing.T) {
	svc := stubUserSvc{listPage: func(context.Context, int, int) ([]domain.User, int64, error) {
		return nil, 0, errSecret
	}}
	w := doReq(newUserTestRouter(svc, "u1"), http.MethodGet, "/users", "", nil)
	if w.Code != http.StatusInternalServerError || decodeError(t, w).Error != ErrCodeInternal {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
}

// ---------- BulkRename ----------

func TestBulkRename_DifferentLengths(t *testing.T) {
	svc := stubUserSvc{bulkRename: func(_ context.Context, _ string, ids, names []string) error {
		_, err := seqs.Zip(ids, names)
		return err
	}}
	w := doReq(newUserTestRouter(svc, "u1"), http.MethodPut, "/users/display-names",
		`{"ids":["a","b","c"],"displayNames":["A","B"]}`, nil)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d", w.Code)
	}
	resp := decodeError(t, w)
	if resp.Error != ErrCodeDifferentLengthOfArrays || len(resp.FieldErrors) != 0 {
		t.Fatalf("unexpected envelope: %+v", resp)
	}
	if resp.Message != "sequences must have equal length: got 3 and 2" {
		t.Fatalf("message = %q", resp.Message)
	}
}

func TestBulkRename_Outcomes(t *testing.T) {
	cases := []struct {
		name     string
		body     string
		err      error
		wantCode int
		wantErr  string
	}{
		{"ok", `{"ids":["a"],"displayNames":["A"]}`, nil, http.StatusNoContent, ""},
		{"unknown id", `{"ids":["a"],"displayNames":["A"]}`, services.ErrUserNotFound, http.StatusNotFound, ErrCodeNotFound},
		{"other user's id", `{"ids":["u2"],"displayNames":["B"]}`, services.ErrForbidden, http.StatusForbidden, ErrCodeForbidden},
		{"db failure", `{"ids":["a"],"displayNames":["A"]}`, errSecret, http.StatusInternalServerError, ErrCodeInternal},
		{"empty arrays", `{"ids":[],"displayNames":[]}`, nil, http.StatusBadRequest, ErrCodeValidationFailed},
		{"bad json", `{"ids":`, nil, http.StatusBadRequest, ErrCodeBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := stubUserSvc{bulkRename: func(context.Context, string, []string, []string) error { return tc.err }}
			w := doReq(newUserTestRouter(svc, "u1"), http.MethodPut, "/users/display-names", tc.body, nil)
			if w.Code != tc.wantCode {
				t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
			}
			if tc.wantErr != "" && decodeError(t, w).Error != tc.wantErr {
				t.Fatalf("unexpected body: %s", w.Body.String())
			}
		})
	}
}

func TestBulkRename_PassesCallerAndRejectsOthers(t *testing.T) {
	var gotCaller string
	svc := stubUserSvc{bulkRename: func(_ context.Context, caller string, ids, _ []string) error {
		gotCaller = caller
		for _, id := range ids {
			if id != caller {
				return services.ErrForbidden
			}
		}
		return nil
	}}

	w := doReq(newUserTestRouter(svc, "alice"), http.MethodPut, "/users/display-names",
		`{"ids":["bob"],"displayNames":["Owned"]}`, nil)
	if w.Code != http.StatusForbidden || decodeError(t, w).Error != ErrCodeForbidden {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	if gotCaller != "alice" {
		t.Fatalf("caller = %q; want alice", gotCaller)
	}

	w = doReq(newUserTestRouter(svc, "alice"), http.MethodPut, "/users/display-names",
		`{"ids":["alice"],"displayNames":["Alice"]}`, nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("self rename: status=%d", w.Code)
	}

	w = doReq(newUserTestRouter(svc, ""), http.MethodPut, "/users/display-names",
		`{"ids":["alice"],"displayNames":["Alice"]}`, nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous: status=%d", w.Code)
	}
}
