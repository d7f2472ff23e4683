// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/financaspro/backend/internal/domain/entity"
)

// TransactionRepository defines the interface for ledger store transaction operations.
type TransactionRepository interface {
	// Create persists a new transaction in the ledger store.
	Create(ctx context.Context, transaction *entity.Transaction) error

	// FindByID retrieves a transaction by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error)

	// FindByOwner retrieves all transactions for an owner, ordered by date descending.
	FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.Transaction, error)

	// Delete removes a transaction from the ledger store.
	Delete(ctx context.Context, id uuid.UUID) error
}
