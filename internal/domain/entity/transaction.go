// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType represents the type of transaction (income or expense).
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// Categories is the fixed category set transactions are classified into.
var Categories = []string{
	"Trabalho",
	"Moradia",
	"Alimentação",
	"Transporte",
	"Saúde",
	"Lazer",
	"Investimentos",
	"Outros",
}

// DefaultCategory is used when no category is selected.
const DefaultCategory = "Outros"

// IsValidCategory reports whether name belongs to the fixed category set.
func IsValidCategory(name string) bool {
	for _, c := range Categories {
		if c == name {
			return true
		}
	}
	return false
}

// Transaction represents a single income or expense record in the ledger.
// Transactions are immutable after creation: corrections are modeled as
// delete plus recreate, never in-place mutation.
type Transaction struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	Type        TransactionType
	Description string
	Amount      decimal.Decimal // Always non-negative; Type carries the sign
	Category    string
	Date        time.Time
	Recurrent   bool
	CreatedAt   time.Time
}

// NewTransaction creates a new Transaction entity.
func NewTransaction(
	ownerID uuid.UUID,
	transactionType TransactionType,
	description string,
	amount decimal.Decimal,
	category string,
	date time.Time,
	recurrent bool,
) *Transaction {
	return &Transaction{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Type:        transactionType,
		Description: description,
		Amount:      amount,
		Category:    category,
		Date:        date,
		Recurrent:   recurrent,
		CreatedAt:   time.Now().UTC(),
	}
}

// NextOccurrence returns a new transaction materialized for the following
// calendar month: same type, amount and category, date advanced one month.
func (t *Transaction) NextOccurrence() *Transaction {
	return NewTransaction(
		t.OwnerID,
		t.Type,
		t.Description,
		t.Amount,
		t.Category,
		AdvanceOneMonth(t.Date),
		true,
	)
}

// AdvanceOneMonth moves a date forward one calendar month. The day of month
// is preserved when it exists in the target month and clamped to the target
// month's last day otherwise (Jan 31 advances to Feb 28/29). time.AddDate
// would normalize the overflow into the following month and shift the
// transaction out of its bucket, so the day is clamped explicitly.
func AdvanceOneMonth(date time.Time) time.Time {
	firstOfNext := time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location()).AddDate(0, 1, 0)
	day := date.Day()
	if lastDay := firstOfNext.AddDate(0, 1, -1).Day(); day > lastDay {
		day = lastDay
	}
	return time.Date(firstOfNext.Year(), firstOfNext.Month(), day, 0, 0, 0, 0, date.Location())
}
