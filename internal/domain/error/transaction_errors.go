// Package error defines domain-specific errors for the FinançasPRO application.
package error

import "errors"

// Transaction domain errors.
var (
	// ErrTransactionNotFound is returned when a transaction is not found in the ledger.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrInvalidTransactionType is returned when the transaction type is not income or expense.
	ErrInvalidTransactionType = errors.New("invalid transaction type")

	// ErrMissingDescription is returned when the transaction description is empty.
	ErrMissingDescription = errors.New("description is required")

	// ErrInvalidAmount is returned when the transaction amount is negative or not a number.
	ErrInvalidAmount = errors.New("amount must be a non-negative number")

	// ErrInvalidCategory is returned when the category is not in the fixed category set.
	ErrInvalidCategory = errors.New("unknown category")

	// ErrInvalidDate is returned when the transaction date is missing or not a valid calendar date.
	ErrInvalidDate = errors.New("invalid date")

	// ErrUnauthorizedTransactionAccess is returned when the transaction belongs to another owner.
	ErrUnauthorizedTransactionAccess = errors.New("unauthorized access to transaction")
)

// TransactionErrorCode defines error codes for transaction errors.
// Format: TXN-XXYYYY where XX is category and YYYY is specific error.
type TransactionErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidTransactionType TransactionErrorCode = "TXN-010001"
	ErrCodeMissingDescription     TransactionErrorCode = "TXN-010002"
	ErrCodeInvalidAmount          TransactionErrorCode = "TXN-010003"
	ErrCodeInvalidCategory        TransactionErrorCode = "TXN-010004"
	ErrCodeInvalidDate            TransactionErrorCode = "TXN-010005"

	// Access errors (02XXXX)
	ErrCodeTransactionNotFound           TransactionErrorCode = "TXN-020001"
	ErrCodeUnauthorizedTransactionAccess TransactionErrorCode = "TXN-020002"
)

// TransactionError represents a transaction error with code and message.
type TransactionError struct {
	Code    TransactionErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *TransactionError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *TransactionError) Unwrap() error {
	return e.Err
}

// NewTransactionError creates a new TransactionError with the given code and message.
func NewTransactionError(code TransactionErrorCode, message string, err error) *TransactionError {
	return &TransactionError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
