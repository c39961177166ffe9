// Package services – AuthService
//
// This file implements AuthService, which registers accounts and exchanges
// credentials for signed bearer tokens. Request validation happens before
// these methods are called (see dto.LoginRequest.Validate); the service
// concerns itself with lookups, password checks and token issuance.
package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-auth-backend/internal/auth"
	"github.com/tbourn/go-auth-backend/internal/dto"
	"github.com/tbourn/go-auth-backend/internal/repo"
)

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) (bool, error)
}

// TokenIssuer signs bearer tokens.
type TokenIssuer interface {
	Issue(userID, username string) (string, error)
	TTL() time.Duration
}

// AuthService implements registration and login.
type AuthService struct {
	// DB is the database handle used for user lookups and inserts.
	DB *gorm.DB
	// Hasher hashes new passwords and verifies presented ones.
	Hasher PasswordHasher
	// Tokens issues the bearer token returned on success.
	Tokens TokenIssuer
	// Now is the clock used for last-login bookkeeping; nil means time.Now.
	Now func() time.Time

	dummyOnce sync.Once
	dummyHash string
}

// NewAuthService wires an AuthService.
func NewAuthService(db *gorm.DB, hasher PasswordHasher, tokens TokenIssuer) *AuthService {
	return &AuthService{DB: db, Hasher: hasher, Tokens: tokens}
}

// Login authenticates usernameOrEmail/password and returns the success
// envelope.
//
// Errors:
//   - ErrInvalidCredentials when no user matches or the password is wrong.
//   - The underlying DB, hashing or signing error otherwise.
func (s *AuthService) Login(ctx context.Context, usernameOrEmail, password string) (dto.AuthResponse, error) {
	u, err := repo.FindUserByLogin(ctx, s.DB, usernameOrEmail)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			// Unknown logins still pay for one bcrypt comparison.
			_, _ = s.Hasher.Verify(password, s.placeholderHash())
			return dto.AuthResponse{}, ErrInvalidCredentials
		}
		return dto.AuthResponse{}, err
	}

	match, err := s.Hasher.Verify(password, u.PasswordHash)
	if err != nil {
		return dto.AuthResponse{}, err
	}
	if !match {
		return dto.AuthResponse{}, ErrInvalidCredentials
	}

	if err := repo.TouchLastLogin(ctx, s.DB, u.ID, s.now()); err != nil {
		return dto.AuthResponse{}, err
	}
	return s.respond(u.ID, u.Username, dto.UserFromDomain(u))
}

// Register creates an account from a validated request and logs it in.
//
// Errors:
//   - ErrUsernameTaken / ErrEmailTaken on unique violations.
//   - The underlying DB, hashing or signing error otherwise.
func (s *AuthService) Register(ctx context.Context, req dto.RegisterRequest) (dto.AuthResponse, error) {
	hash, err := s.Hasher.Hash(req.Password)
	if err != nil {
		return dto.AuthResponse{}, err
	}

	displayName := req.DisplayName
	if displayName == "" {
		displayName = req.Username
	}

	u, err := repo.CreateUser(ctx, s.DB, req.Username, req.Email, hash, displayName)
	switch {
	case errors.Is(err, repo.ErrDuplicateUsername):
		return dto.AuthResponse{}, ErrUsernameTaken
	case errors.Is(err, repo.ErrDuplicateEmail):
		return dto.AuthResponse{}, ErrEmailTaken
	case err != nil:
		return dto.AuthResponse{}, err
	}
	return s.respond(u.ID, u.Username, dto.UserFromDomain(u))
}

func (s *AuthService) respond(userID, username string, user dto.UserDTO) (dto.AuthResponse, error) {
	token, err := s.Tokens.Issue(userID, username)
	if err != nil {
		return dto.AuthResponse{}, err
	}
	return dto.NewAuthResponse(token, s.Tokens.TTL(), user)
}

func (s *AuthService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *AuthService) placeholderHash() string {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = s.Hasher.Hash("placeholder-password")
	})
	return s.dummyHash
}

var _ PasswordHasher = (*auth.PasswordHasher)(nil)
var _ TokenIssuer = (*auth.TokenIssuer)(nil)
