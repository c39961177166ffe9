// Package services defines the business logic for authentication and user
// management. This file centralizes service-level error values so that they
// can be consistently returned by service methods and checked by callers.
//
// Translation into user-facing messages or HTTP status codes is performed at
// the handler layer.
package services

import "errors"

// Authentication errors.
var (
	// ErrInvalidCredentials is returned when the login does not match any user
	// or the password does not match. The two cases are deliberately
	// indistinguishable to callers.
	ErrInvalidCredentials = errors.New("invalid username/email or password")
)

// User errors.
var (
	// ErrUserNotFound indicates that the requested user does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrUsernameTaken is returned on registration when the username is
	// already in use.
	ErrUsernameTaken = errors.New("username already taken")

	// ErrForbidden is returned when a non-admin caller targets another
	// user's profile.
	ErrForbidden = errors.New("not allowed to modify other users")

	// ErrEmailTaken is returned on registration when the email is already
	// in use.
	ErrEmailTaken = errors.New("email already registered")
)
