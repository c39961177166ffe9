package handlers

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"

	"github.com/tbourn/go-auth-backend/internal/domain"
	"github.com/tbourn/go-auth-backend/internal/dto"
)

//
// Service contracts (context-aware)
//

// AuthService exchanges credentials for bearer tokens.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type AuthService interface {
	// Login authenticates a user by username or email and password.
	Login(ctx context.Context, usernameOrEmail, password string) (dto.AuthResponse, error)
	// Register creates an account from a validated request and logs it in.
	Register(ctx context.Context, req dto.RegisterRequest) (dto.AuthResponse, error)
}

// UserService exposes user profile operations.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type UserService interface {
	// Get returns one user by id.
	Get(ctx context.Context, id string) (*domain.User, error)
	// ListPage returns a page of users and the total count.
	ListPage(ctx context.Context, page, pageSize int) ([]domain.User, int64, error)
	// Stats returns the user count and latest update time (ETag input).
	Stats(ctx context.Context) (int64, *time.Time, error)
	// BulkRename assigns displayNames[i] to ids[i] atomically on behalf of
	// callerID.
	BulkRename(ctx context.Context, callerID string, ids, displayNames []string) error
}

//
// Handler wiring
//

// Handlers groups the HTTP endpoints for authentication and users.
type Handlers struct {
	authSvc       AuthService
	userSvc       UserService
	defaultLocale language.Tag
}

// New constructs Handlers bound to the given services. defaultLocale is used
// for validation messages when Accept-Language is absent or unsupported.
func New(authSvc AuthService, userSvc UserService, defaultLocale language.Tag) *Handlers {
	return &Handlers{authSvc: authSvc, userSvc: userSvc, defaultLocale: defaultLocale}
}

// locale picks the message language for the current request.
func (h *Handlers) locale(c *gin.Context) language.Tag {
	return dto.MatchLocale(c.GetHeader("Accept-Language"), h.defaultLocale)
}
