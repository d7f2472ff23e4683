// Package error defines domain-specific errors for the FinançasPRO application.
package error

import "errors"

// Goal domain errors.
var (
	// ErrGoalNotFound is returned when a goal is not found in the system.
	ErrGoalNotFound = errors.New("goal not found")

	// ErrMissingGoalName is returned when the goal name is empty.
	ErrMissingGoalName = errors.New("goal name is required")

	// ErrInvalidTargetAmount is returned when the target amount is zero or negative.
	ErrInvalidTargetAmount = errors.New("target amount must be greater than zero")

	// ErrInvalidCurrentAmount is returned when the current amount is negative.
	ErrInvalidCurrentAmount = errors.New("current amount must not be negative")

	// ErrInvalidDepositAmount is returned when a deposit amount is zero or negative.
	ErrInvalidDepositAmount = errors.New("deposit amount must be greater than zero")

	// ErrInvalidDeadline is returned when the deadline is not a valid calendar date.
	ErrInvalidDeadline = errors.New("invalid deadline")

	// ErrUnauthorizedGoalAccess is returned when the goal belongs to another owner.
	ErrUnauthorizedGoalAccess = errors.New("unauthorized access to goal")
)

// GoalErrorCode defines error codes for goal errors.
// Format: GOL-XXYYYY where XX is category and YYYY is specific error.
type GoalErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeMissingGoalName      GoalErrorCode = "GOL-010001"
	ErrCodeInvalidTargetAmount  GoalErrorCode = "GOL-010002"
	ErrCodeInvalidCurrentAmount GoalErrorCode = "GOL-010003"
	ErrCodeInvalidDepositAmount GoalErrorCode = "GOL-010004"
	ErrCodeInvalidDeadline      GoalErrorCode = "GOL-010005"
	ErrCodeMissingGoalFields    GoalErrorCode = "GOL-010006"

	// Access errors (02XXXX)
	ErrCodeGoalNotFound           GoalErrorCode = "GOL-020001"
	ErrCodeUnauthorizedGoalAccess GoalErrorCode = "GOL-020002"
)

// GoalError represents a goal error with code and message.
type GoalError struct {
	Code    GoalErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *GoalError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *GoalError) Unwrap() error {
	return e.Err
}

// NewGoalError creates a new GoalError with the given code and message.
func NewGoalError(code GoalErrorCode, message string, err error) *GoalError {
	return &GoalError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
