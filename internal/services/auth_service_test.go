package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/go-auth-backend/internal/auth"
	"github.com/tbourn/go-auth-backend/internal/domain"
	"github.com/tbourn/go-auth-backend/internal/dto"
	"github.com/tbourn/go-auth-backend/internal/repo"
)

func newServiceDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:svc_%s?mode=memory&cache=shared", name)), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	require.NoError(t, repo.AutoMigrate(db))
	return db
}

func newAuthService(t *testing.T) (*AuthService, *auth.TokenIssuer) {
	t.Helper()
	tokens := auth.NewTokenIssuer([]byte("test-secret"), "test", time.Hour)
	return NewAuthService(newServiceDB(t), auth.NewPasswordHasher(bcrypt.MinCost), tokens), tokens
}

func TestAuthService_RegisterThenLogin(t *testing.T) {
	svc, tokens := newAuthService(t)
	ctx := context.Background()

	reg, err := svc.Register(ctx, dto.RegisterRequest{Username: "alina", Email: "Alina@Example.com", Password: "s3cret-pass"})
	require.NoError(t, err)
	assert.NotEmpty(t, reg.Token)
	assert.Equal(t, int64(3600), reg.ExpiresIn)
	assert.Equal(t, "alina", reg.User.Username)
	assert.Equal(t, "alina@example.com", reg.User.Email)
	assert.Equal(t, "alina", reg.User.DisplayName, "display name defaults to username")

	loginAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc.Now = func() time.Time { return loginAt }

	for _, login := range []string{"alina", "alina@example.com"} {
		resp, err := svc.Login(ctx, login, "s3cret-pass")
		require.NoError(t, err, login)
		assert.NotEmpty(t, resp.Token)
		assert.Greater(t, resp.ExpiresIn, int64(0))
		assert.Equal(t, reg.User.ID, resp.User.ID)

		claims, err := tokens.Parse(resp.Token)
		require.NoError(t, err)
		assert.Equal(t, reg.User.ID, claims.Subject)
	}

	var u domain.User
	require.NoError(t, svc.DB.First(&u, "id = ?", reg.User.ID).Error)
	require.NotNil(t, u.LastLoginAt)
	assert.True(t, u.LastLoginAt.Equal(loginAt))
	assert.NotEqual(t, "s3cret-pass", u.PasswordHash)
}

func TestAuthService_Login_InvalidCredentials(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, dto.RegisterRequest{Username: "alina", Email: "a@example.com", Password: "s3cret-pass"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, "alina", "wrong-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "nobody", "s3cret-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Register_Duplicates(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, dto.RegisterRequest{Username: "alina", Email: "a@example.com", Password: "s3cret-pass", DisplayName: "Алина"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, dto.RegisterRequest{Username: "alina", Email: "b@example.com", Password: "s3cret-pass"})
	assert.ErrorIs(t, err, ErrUsernameTaken)

	_, err = svc.Register(ctx, dto.RegisterRequest{Username: "bob", Email: "A@example.com", Password: "s3cret-pass"})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

type failingIssuer struct{}

func (failingIssuer) Issue(string, string) (string, error) { return "", errors.New("sign failed") }
func (failingIssuer) TTL() time.Duration                   { return time.Hour }

type zeroTTLIssuer struct{}

func (zeroTTLIssuer) Issue(string, string) (string, error) { return "tok", nil }
func (zeroTTLIssuer) TTL() time.Duration                   { return 0 }

func TestAuthService_TokenFailures(t *testing.T) {
	db := newServiceDB(t)
	hasher := auth.NewPasswordHasher(bcrypt.MinCost)
	ctx := context.Background()

	svc := NewAuthService(db, hasher, failingIssuer{})
	_, err := svc.Register(ctx, dto.RegisterRequest{Username: "a", Email: "a@example.com", Password: "s3cret-pass"})
	assert.EqualError(t, err, "sign failed")

	svc = NewAuthService(db, hasher, zeroTTLIssuer{})
	_, err = svc.Login(ctx, "a", "s3cret-pass")
	assert.ErrorIs(t, err, dto.ErrNonPositiveTTL)
}

func TestAuthService_Login_NoTable(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file:svc_no_table?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	svc := NewAuthService(db, auth.NewPasswordHasher(bcrypt.MinCost), auth.NewTokenIssuer([]byte("s"), "", time.Hour))
	_, err = svc.Login(context.Background(), "alina", "pw")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrInvalidCredentials))
}

func TestAuthService_EmailLoginNotShadowedByUsername(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	// An account whose username looks like someone else's email, as could
	// exist from before usernames rejected '@'.
	_, err := svc.Register(ctx, dto.RegisterRequest{Username: "victim@example.com", Email: "squatter@example.com", Password: "squatter-pass"})
	require.NoError(t, err)
	victim, err := svc.Register(ctx, dto.RegisterRequest{Username: "victim", Email: "victim@example.com", Password: "victim-pass"})
	require.NoError(t, err)

	resp, err := svc.Login(ctx, "victim@example.com", "victim-pass")
	require.NoError(t, err)
	assert.Equal(t, victim.User.ID, resp.User.ID)

	_, err = svc.Login(ctx, "victim@example.com", "squatter-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
