// Package recurring materializes recurring transactions into the current
// calendar month.
package recurring

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/financaspro/backend/internal/application/adapter"
	"github.com/financaspro/backend/internal/domain/entity"
)

// MaterializeInput represents the input for a materialization pass.
type MaterializeInput struct {
	OwnerID uuid.UUID

	// Transactions is the in-memory ledger snapshot, date descending. When
	// nil, the snapshot is fetched from the store.
	Transactions []*entity.Transaction

	// Now anchors the current period. Zero means time.Now().UTC().
	Now time.Time
}

// MaterializeOutput represents the result of a materialization pass.
type MaterializeOutput struct {
	// Transactions is the updated snapshot with newly materialized
	// transactions prepended.
	Transactions []*entity.Transaction

	// Created holds the transactions materialized by this pass.
	Created []*entity.Transaction

	// Failed counts candidates whose store write failed and was skipped.
	Failed int
}

// MaterializeUseCase ensures every recurring transaction from the previous
// calendar month has a counterpart in the current one.
//
// Candidates are matched on description alone, ignoring category: two
// recurring transactions sharing a description across categories collide,
// and the second is treated as already materialized. This mirrors the
// observed ledger behavior and is the sole de-duplication mechanism, which
// also makes the pass idempotent.
type MaterializeUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewMaterializeUseCase creates a new MaterializeUseCase instance.
func NewMaterializeUseCase(transactionRepo adapter.TransactionRepository) *MaterializeUseCase {
	return &MaterializeUseCase{
		transactionRepo: transactionRepo,
	}
}

// Execute runs one materialization pass. Store writes happen one at a time
// so the "already exists this period" check stays valid against the latest
// known state; a failed write skips that candidate and the scan continues.
func (uc *MaterializeUseCase) Execute(ctx context.Context, input MaterializeInput) (*MaterializeOutput, error) {
	now := input.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}

	snapshot := input.Transactions
	if snapshot == nil {
		fetched, err := uc.transactionRepo.FindByOwner(ctx, input.OwnerID)
		if err != nil {
			return nil, err
		}
		snapshot = fetched
	}

	currentYear, currentMonth, _ := now.Date()
	firstOfCurrent := time.Date(currentYear, currentMonth, 1, 0, 0, 0, 0, time.UTC)
	previous := firstOfCurrent.AddDate(0, -1, 0)

	output := &MaterializeOutput{Transactions: snapshot}

	// The pass ranges over the original snapshot while dedup checks read
	// output.Transactions, so instances prepended mid-pass take part in
	// later "already exists" checks.
	candidates := snapshot
	for _, t := range candidates {
		if !t.Recurrent || !inMonth(t.Date, previous) {
			continue
		}
		if existsInMonth(output.Transactions, t.Description, firstOfCurrent) {
			continue
		}

		next := t.NextOccurrence()
		if err := uc.transactionRepo.Create(ctx, next); err != nil {
			// Failure is isolated to this candidate; the rest of the pass
			// continues and the next load retries.
			slog.Warn("Failed to materialize recurring transaction",
				"owner_id", input.OwnerID,
				"description", t.Description,
				"error", err,
			)
			output.Failed++
			continue
		}

		output.Transactions = append([]*entity.Transaction{next}, output.Transactions...)
		output.Created = append(output.Created, next)
	}

	if len(output.Created) > 0 {
		slog.Info("Materialized recurring transactions",
			"owner_id", input.OwnerID,
			"created", len(output.Created),
			"period", firstOfCurrent.Format("2006-01"),
		)
	}
	return output, nil
}

// inMonth reports whether date falls in the calendar month containing anchor.
func inMonth(date, anchor time.Time) bool {
	return date.Year() == anchor.Year() && date.Month() == anchor.Month()
}

// existsInMonth reports whether any transaction with the given description
// is dated within the calendar month containing anchor.
func existsInMonth(transactions []*entity.Transaction, description string, anchor time.Time) bool {
	for _, t := range transactions {
		if t.Description == description && inMonth(t.Date, anchor) {
			return true
		}
	}
	return false
}
