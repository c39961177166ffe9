package dto

import (
	"errors"
	"time"

	"golang.org/x/text/language"
)

var (
	// ErrEmptyToken is returned by NewAuthResponse when no token was issued.
	ErrEmptyToken = errors.New("auth response: token is empty")
	// ErrNonPositiveTTL is returned by NewAuthResponse when the token lifetime
	// is shorter than one second.
	ErrNonPositiveTTL = errors.New("auth response: expiresIn must be > 0")
)

// LoginRequest is the JSON body of POST /auth/login.
//
// Both fields are required and must not be blank. Validation runs before any
// credential check; see Validate.
type LoginRequest struct {
	// Username or email address
	UsernameOrEmail string `json:"usernameOrEmail" validate:"notblank" example:"alina"`
	// Plain-text password
	Password string `json:"password" validate:"notblank" example:"secret"`
}

// Validate returns one FieldError per blank field, in field order.
func (r LoginRequest) Validate(lang language.Tag) []FieldError {
	return Validate(r, lang)
}

// RegisterRequest is the JSON body of POST /auth/register.
//
// Usernames may not contain '@', so a login containing one always names an
// email. Passwords are bounded in bytes, not characters: bcrypt reads at most
// 72 bytes.
type RegisterRequest struct {
	Username    string `json:"username" validate:"notblank,max=64,excludes=@" example:"alina"`
	Email       string `json:"email" validate:"notblank,email,max=254" example:"alina@example.com"`
	Password    string `json:"password" validate:"notblank,min=8,bcryptmax" example:"s3cret-pass"`
	DisplayName string `json:"displayName" validate:"max=120" example:"Alina"`
}

// Validate returns one FieldError per invalid field, in field order.
func (r RegisterRequest) Validate(lang language.Tag) []FieldError {
	return Validate(r, lang)
}

// AuthResponse is returned on successful authentication.
type AuthResponse struct {
	// Opaque bearer token
	Token string `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	// Seconds until the token expires
	ExpiresIn int64 `json:"expiresIn" example:"3600"`
	// Public summary of the authenticated user
	User UserDTO `json:"user"`
}

// NewAuthResponse builds the success envelope. ttl is truncated to whole
// seconds and must leave at least one.
func NewAuthResponse(token string, ttl time.Duration, user UserDTO) (AuthResponse, error) {
	if token == "" {
		return AuthResponse{}, ErrEmptyToken
	}
	secs := int64(ttl / time.Second)
	if secs <= 0 {
		return AuthResponse{}, ErrNonPositiveTTL
	}
	return AuthResponse{Token: token, ExpiresIn: secs, User: user}, nil
}

// Equal reports whether r and o carry the same values.
func (r AuthResponse) Equal(o AuthResponse) bool {
	return r.Token == o.Token && r.ExpiresIn == o.ExpiresIn && r.User.Equal(o.User)
}
