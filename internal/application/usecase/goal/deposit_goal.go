// Package goal contains goal-related use cases.
package goal

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/financaspro/backend/internal/application/adapter"
	"github.com/financaspro/backend/internal/domain/entity"
	domainerror "github.com/financaspro/backend/internal/domain/error"
)

// DepositGoalInput represents the input for a goal deposit.
type DepositGoalInput struct {
	OwnerID uuid.UUID
	GoalID  uuid.UUID
	Amount  decimal.Decimal
}

// DepositGoalOutput represents the output of a goal deposit.
type DepositGoalOutput struct {
	Goal *entity.Goal
}

// DepositGoalUseCase handles adding funds to a goal. Deposits are the only
// mutation of a goal's current amount; over-funding past the target is
// allowed.
type DepositGoalUseCase struct {
	goalRepo adapter.GoalRepository
}

// NewDepositGoalUseCase creates a new DepositGoalUseCase instance.
func NewDepositGoalUseCase(goalRepo adapter.GoalRepository) *DepositGoalUseCase {
	return &DepositGoalUseCase{
		goalRepo: goalRepo,
	}
}

// Execute performs the deposit.
func (uc *DepositGoalUseCase) Execute(ctx context.Context, input DepositGoalInput) (*DepositGoalOutput, error) {
	if !input.Amount.IsPositive() {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeInvalidDepositAmount,
			"deposit amount must be greater than zero",
			domainerror.ErrInvalidDepositAmount,
		)
	}

	goal, err := uc.goalRepo.FindByID(ctx, input.GoalID)
	if err != nil {
		return nil, err
	}

	if goal.OwnerID != input.OwnerID {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeUnauthorizedGoalAccess,
			"goal does not belong to owner",
			domainerror.ErrUnauthorizedGoalAccess,
		)
	}

	goal.Deposit(input.Amount)

	if err := uc.goalRepo.Update(ctx, goal); err != nil {
		return nil, fmt.Errorf("failed to update goal: %w", err)
	}

	return &DepositGoalOutput{
		Goal: goal,
	}, nil
}
