// Package handlers defines HTTP-layer error labels used across all API endpoints.
//
// This file centralizes the symbolic labels written to the `error` field of
// dto.ErrorResponse (via the `fail()` helper in this package). Labels give
// clients a stable, machine-readable taxonomy next to the human-readable
// message.
//
// Conventions:
//   - Labels are lowercase snake_case.
//   - Generic labels (bad_request, unauthorized, not_found, ...) mirror the
//     HTTP status they are sent with.
//   - Domain labels (validation_failed, different_length_of_arrays,
//     invalid_credentials, ...) name failures the status alone cannot convey.
//
// Example response:
//
//	{
//	  "timestamp": "2025-01-02T15:04:05Z",
//	  "status": 400,
//	  "error": "different_length_of_arrays",
//	  "message": "sequences must have equal length: got 3 and 2",
//	  "path": "/api/v1/users/display-names",
//	  "fieldErrors": []
//	}
package handlers

import "github.com/tbourn/go-auth-backend/internal/dto"

const (
	ErrCodeBadRequest       = "bad_request"
	ErrCodeUnauthorized     = "unauthorized"
	ErrCodeForbidden        = "forbidden"
	ErrCodeNotFound         = "not_found"
	ErrCodeConflict         = "conflict"
	ErrCodeRateLimited      = "too_many_requests"
	ErrCodeInternal         = "internal_error"
	ErrCodeMethodNotAllowed = "method_not_allowed"
	ErrCodePayloadTooLarge  = "payload_too_large"

	// Domain-specific:
	ErrCodeValidationFailed        = dto.LabelValidationFailed
	ErrCodeDifferentLengthOfArrays = "different_length_of_arrays"
	ErrCodeInvalidCredentials      = "invalid_credentials"
	ErrCodeUsernameTaken           = "username_taken"
	ErrCodeEmailTaken              = "email_taken"
)

// msgInternal is the only message a client sees for unhandled faults.
const msgInternal = "internal server error"
