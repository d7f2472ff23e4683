package transaction

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/financaspro/backend/internal/application/adapter"
	"github.com/financaspro/backend/internal/domain/entity"
	domainerror "github.com/financaspro/backend/internal/domain/error"
)

// CreateTransactionInput represents the input for creating a transaction.
type CreateTransactionInput struct {
	OwnerID     uuid.UUID
	Type        string
	Description string
	Amount      decimal.Decimal
	Category    string
	Date        time.Time
	Recurrent   bool
}

// CreateTransactionOutput represents the output after creating a transaction.
type CreateTransactionOutput struct {
	Transaction *entity.Transaction
}

// CreateTransactionUseCase handles transaction creation.
type CreateTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewCreateTransactionUseCase creates a new CreateTransactionUseCase instance.
func NewCreateTransactionUseCase(transactionRepo adapter.TransactionRepository) *CreateTransactionUseCase {
	return &CreateTransactionUseCase{
		transactionRepo: transactionRepo,
	}
}

// Execute validates the input and persists a new transaction. All validation
// failures are reported before any store access happens.
func (uc *CreateTransactionUseCase) Execute(ctx context.Context, input CreateTransactionInput) (*CreateTransactionOutput, error) {
	txType := entity.TransactionType(input.Type)
	if txType != entity.TransactionTypeIncome && txType != entity.TransactionTypeExpense {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionType,
			fmt.Sprintf("transaction type must be %q or %q", entity.TransactionTypeIncome, entity.TransactionTypeExpense),
			domainerror.ErrInvalidTransactionType,
		)
	}

	if input.Description == "" {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeMissingDescription,
			"transaction description is required",
			domainerror.ErrMissingDescription,
		)
	}

	if input.Amount.IsNegative() {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidAmount,
			"transaction amount must not be negative",
			domainerror.ErrInvalidAmount,
		)
	}

	category := input.Category
	if category == "" {
		category = entity.DefaultCategory
	}
	if !entity.IsValidCategory(category) {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidCategory,
			fmt.Sprintf("unknown transaction category %q", input.Category),
			domainerror.ErrInvalidCategory,
		)
	}

	if input.Date.IsZero() {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidDate,
			"transaction date is required",
			domainerror.ErrInvalidDate,
		)
	}

	tx := entity.NewTransaction(
		input.OwnerID,
		txType,
		input.Description,
		input.Amount,
		category,
		input.Date,
		input.Recurrent,
	)

	if err := uc.transactionRepo.Create(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	return &CreateTransactionOutput{Transaction: tx}, nil
}
