// Package error defines domain-specific errors for the FinançasPRO application.
package error

import "errors"

// Dashboard domain errors.
var (
	// ErrInvalidPeriodKey is returned when a period key is not in YYYY-MM form.
	ErrInvalidPeriodKey = errors.New("invalid period key")

	// ErrInvalidWindowSize is returned when the rolling window size is not positive.
	ErrInvalidWindowSize = errors.New("window size must be greater than zero")

	// ErrSnapshotUnavailable is returned when the ledger snapshot could not be fetched.
	ErrSnapshotUnavailable = errors.New("ledger snapshot unavailable")
)

// DashboardErrorCode defines error codes for dashboard errors.
// Format: DSH-XXYYYY where XX is category and YYYY is specific error.
type DashboardErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidPeriodKey  DashboardErrorCode = "DSH-010001"
	ErrCodeInvalidWindowSize DashboardErrorCode = "DSH-010002"

	// Store errors (02XXXX)
	ErrCodeSnapshotUnavailable DashboardErrorCode = "DSH-020001"
)

// DashboardError represents a dashboard error with code and message.
type DashboardError struct {
	Code    DashboardErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *DashboardError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *DashboardError) Unwrap() error {
	return e.Err
}

// NewDashboardError creates a new DashboardError with the given code and message.
func NewDashboardError(code DashboardErrorCode, message string, err error) *DashboardError {
	return &DashboardError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
