// Package error defines domain-specific errors for the FinançasPRO application.
package error

import "errors"

// Session domain errors.
var (
	// ErrMissingToken is returned when no session token is provided.
	ErrMissingToken = errors.New("session token is required")

	// ErrInvalidToken is returned when a session token is invalid or malformed.
	ErrInvalidToken = errors.New("invalid session token")

	// ErrExpiredToken is returned when a session token has expired.
	ErrExpiredToken = errors.New("session token has expired")

	// ErrRateLimited is returned when a client exceeds the request budget.
	ErrRateLimited = errors.New("too many requests")
)

// SessionErrorCode defines error codes for session errors.
// Format: SES-XXYYYY where XX is category and YYYY is specific error.
type SessionErrorCode string

const (
	// Token errors (01XXXX)
	ErrCodeMissingToken SessionErrorCode = "SES-010001"
	ErrCodeInvalidToken SessionErrorCode = "SES-010002"
	ErrCodeExpiredToken SessionErrorCode = "SES-010003"

	// Rate limiting (02XXXX)
	ErrCodeRateLimited SessionErrorCode = "SES-020001"
)

// SessionError represents a session error with code and message.
type SessionError struct {
	Code    SessionErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *SessionError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *SessionError) Unwrap() error {
	return e.Err
}

// NewSessionError creates a new SessionError with the given code and message.
func NewSessionError(code SessionErrorCode, message string, err error) *SessionError {
	return &SessionError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
