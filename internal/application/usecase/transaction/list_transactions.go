package transaction

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/financaspro/backend/internal/application/adapter"
	"github.com/financaspro/backend/internal/domain/entity"
)

// ListTransactionsInput represents the input for listing transactions.
type ListTransactionsInput struct {
	OwnerID uuid.UUID

	// Type filters by transaction type; empty or "all" disables the filter.
	Type string

	// Search matches case-insensitively against description and category.
	Search string
}

// ListTransactionsOutput represents the filtered transaction list,
// most recent first.
type ListTransactionsOutput struct {
	Transactions []*entity.Transaction
}

// ListTransactionsUseCase handles transaction listing with filters.
type ListTransactionsUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewListTransactionsUseCase creates a new ListTransactionsUseCase instance.
func NewListTransactionsUseCase(transactionRepo adapter.TransactionRepository) *ListTransactionsUseCase {
	return &ListTransactionsUseCase{
		transactionRepo: transactionRepo,
	}
}

// Execute fetches the owner's transactions and applies the filters in memory.
func (uc *ListTransactionsUseCase) Execute(ctx context.Context, input ListTransactionsInput) (*ListTransactionsOutput, error) {
	transactions, err := uc.transactionRepo.FindByOwner(ctx, input.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	return &ListTransactionsOutput{
		Transactions: Filter(transactions, input.Type, input.Search),
	}, nil
}

// Filter applies the type and search filters to a transaction slice,
// preserving order.
func Filter(transactions []*entity.Transaction, txType, search string) []*entity.Transaction {
	typeFilter := entity.TransactionType(txType)
	filterByType := txType != "" && txType != "all"
	needle := strings.ToLower(search)

	filtered := make([]*entity.Transaction, 0, len(transactions))
	for _, t := range transactions {
		if filterByType && t.Type != typeFilter {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(t.Description), needle) &&
			!strings.Contains(strings.ToLower(t.Category), needle) {
			continue
		}
		filtered = append(filtered, t)
	}
	return filtered
}
