// Package dto defines the envelopes exchanged at the HTTP JSON boundary:
// the error envelope, the authentication request/response shapes and the
// user summary, plus the explicit validation step that turns violated
// constraints into ordered field-level errors.
//
// Envelopes are plain values. They are built once per request through a
// single constructor, never mutated afterwards and compared with Equal.
//
// Example error envelope:
//
//	HTTP/1.1 400 Bad Request
//	{
//	  "timestamp": "2025-01-02T15:04:05.123456789Z",
//	  "status": 400,
//	  "error": "validation_failed",
//	  "message": "validation failed",
//	  "path": "/api/v1/auth/login",
//	  "fieldErrors": [
//	    { "field": "usernameOrEmail", "message": "Логин или email не могут быть пустыми" }
//	  ],
//	  "requestId": "123e4567-e89b-12d3-a456-426614174000"
//	}
package dto

import (
	"net/http"
	"time"
)

const (
	// LabelValidationFailed is the error label of every validation envelope.
	LabelValidationFailed = "validation_failed"
	// MessageValidationFailed is the top-level message of validation envelopes;
	// the details live in FieldErrors.
	MessageValidationFailed = "validation failed"
)

// FieldError identifies one invalid input field and the reason it was rejected.
type FieldError struct {
	// JSON name of the invalid field
	Field string `json:"field" example:"usernameOrEmail"`
	// Human-readable, locale-specific reason
	Message string `json:"message" example:"Логин или email не могут быть пустыми"`
}

// ErrorResponse is the envelope returned by every endpoint on failure.
//
// FieldErrors is populated only for validation failures and keeps the order
// in which violations were detected. It is always serialized (as [] when
// empty) so clients can rely on the key being present.
type ErrorResponse struct {
	// Moment the failure was translated into a response (UTC)
	Timestamp time.Time `json:"timestamp" example:"2025-01-02T15:04:05Z"`
	// HTTP status code
	Status int `json:"status" example:"404"`
	// Short, machine-stable label (see handlers/errors.go)
	Error string `json:"error" example:"not_found"`
	// Human-readable message (safe to show to users)
	Message string `json:"message" example:"user not found"`
	// Path of the originating request
	Path string `json:"path" example:"/api/v1/users/me"`
	// Field-level details, validation failures only
	FieldErrors []FieldError `json:"fieldErrors"`
	// Correlates server logs and client errors
	RequestID string `json:"requestId,omitempty" example:"123e4567-e89b-12d3-a456-426614174000"`
}

// NewErrorResponse builds an envelope without field-level details.
// An unknown status code is coerced to 500.
func NewErrorResponse(now time.Time, status int, label, message, path string) ErrorResponse {
	if http.StatusText(status) == "" {
		status = http.StatusInternalServerError
	}
	return ErrorResponse{
		Timestamp:   now.UTC(),
		Status:      status,
		Error:       label,
		Message:     message,
		Path:        path,
		FieldErrors: []FieldError{},
	}
}

// NewValidationErrorResponse builds a 400 envelope carrying fieldErrors in
// the given order. The slice is copied.
func NewValidationErrorResponse(now time.Time, path string, fieldErrors []FieldError) ErrorResponse {
	resp := NewErrorResponse(now, http.StatusBadRequest, LabelValidationFailed, MessageValidationFailed, path)
	resp.FieldErrors = append(resp.FieldErrors, fieldErrors...)
	return resp
}

// WithRequestID returns a copy of r carrying the correlation id.
func (r ErrorResponse) WithRequestID(id string) ErrorResponse {
	r.FieldErrors = append([]FieldError{}, r.FieldErrors...)
	r.RequestID = id
	return r
}

// IsValidationFailure reports whether r describes a field-level validation failure.
func (r ErrorResponse) IsValidationFailure() bool {
	return r.Error == LabelValidationFailed
}

// Equal reports whether r and o carry the same values. Instants are compared
// with time.Time.Equal; a nil and an empty FieldErrors are equal.
func (r ErrorResponse) Equal(o ErrorResponse) bool {
	if !r.Timestamp.Equal(o.Timestamp) ||
		r.Status != o.Status ||
		r.Error != o.Error ||
		r.Message != o.Message ||
		r.Path != o.Path ||
		r.RequestID != o.RequestID ||
		len(r.FieldErrors) != len(o.FieldErrors) {
		return false
	}
	for i := range r.FieldErrors {
		if r.FieldErrors[i] != o.FieldErrors[i] {
			return false
		}
	}
	return true
}
