package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/financaspro/backend/internal/domain/entity"
	domainerror "github.com/financaspro/backend/internal/domain/error"
)

func TestTransactionRepositoryCreateAndFind(t *testing.T) {
	repo := NewTransactionRepository(openTestDB(t))
	ctx := context.Background()
	ownerID := uuid.New()

	tx := entity.NewTransaction(ownerID, entity.TransactionTypeExpense, "Mercado",
		decimal.RequireFromString("150.50"), "Alimentação",
		time.Date(2025, time.February, 10, 0, 0, 0, 0, time.UTC), false)

	if err := repo.Create(ctx, tx); err != nil {
		t.Fatalf("Create() returned error: %v", err)
	}

	found, err := repo.FindByID(ctx, tx.ID)
	if err != nil {
		t.Fatalf("FindByID() returned error: %v", err)
	}
	if found.Description != "Mercado" || found.OwnerID != ownerID {
		t.Errorf("found = %+v", found)
	}
	if !found.Amount.Equal(decimal.RequireFromString("150.50")) {
		t.Errorf("Amount = %s, want 150.50", found.Amount)
	}
}

func TestTransactionRepositoryFindByIDNotFound(t *testing.T) {
	repo := NewTransactionRepository(openTestDB(t))

	_, err := repo.FindByID(context.Background(), uuid.New())
	if err == nil {
		t.Fatal("FindByID() should fail for an unknown ID")
	}
	var txErr *domainerror.TransactionError
	if !errors.As(err, &txErr) || txErr.Code != domainerror.ErrCodeTransactionNotFound {
		t.Errorf("err = %v, want TXN not-found error", err)
	}
}

func TestTransactionRepositoryFindByOwnerOrdering(t *testing.T) {
	repo := NewTransactionRepository(openTestDB(t))
	ctx := context.Background()
	ownerID := uuid.New()

	older := entity.NewTransaction(ownerID, entity.TransactionTypeExpense, "Aluguel",
		decimal.RequireFromString("2000"), "Moradia",
		time.Date(2025, time.January, 5, 0, 0, 0, 0, time.UTC), false)
	newer := entity.NewTransaction(ownerID, entity.TransactionTypeIncome, "Salário",
		decimal.RequireFromString("5000"), "Trabalho",
		time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC), false)
	foreign := entity.NewTransaction(uuid.New(), entity.TransactionTypeExpense, "Alheia",
		decimal.RequireFromString("10"), "Outros",
		time.Date(2025, time.February, 2, 0, 0, 0, 0, time.UTC), false)

	for _, tx := range []*entity.Transaction{older, newer, foreign} {
		if err := repo.Create(ctx, tx); err != nil {
			t.Fatalf("Create() returned error: %v", err)
		}
	}

	found, err := repo.FindByOwner(ctx, ownerID)
	if err != nil {
		t.Fatalf("FindByOwner() returned error: %v", err)
	}
	if len(found) != 2 {
		t.Fatalf("FindByOwner() returned %d rows, want 2", len(found))
	}
	// Date descending.
	if found[0].Description != "Salário" || found[1].Description != "Aluguel" {
		t.Errorf("order = [%s, %s], want [Salário, Aluguel]", found[0].Description, found[1].Description)
	}
}

func TestTransactionRepositoryDelete(t *testing.T) {
	repo := NewTransactionRepository(openTestDB(t))
	ctx := context.Background()

	tx := entity.NewTransaction(uuid.New(), entity.TransactionTypeExpense, "Mercado",
		decimal.RequireFromString("50"), "Alimentação", time.Now().UTC(), false)
	if err := repo.Create(ctx, tx); err != nil {
		t.Fatalf("Create() returned error: %v", err)
	}

	if err := repo.Delete(ctx, tx.ID); err != nil {
		t.Fatalf("Delete() returned error: %v", err)
	}
	if _, err := repo.FindByID(ctx, tx.ID); err == nil {
		t.Error("FindByID() should fail after delete")
	}
}
