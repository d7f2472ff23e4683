// Package goal contains goal-related use cases.
package goal

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/financaspro/backend/internal/application/adapter"
	"github.com/financaspro/backend/internal/domain/entity"
)

// ListGoalsInput represents the input for listing goals.
type ListGoalsInput struct {
	OwnerID uuid.UUID
	Now     time.Time
}

// GoalWithProgress pairs a goal with its derived progress.
type GoalWithProgress struct {
	Goal     *entity.Goal
	Progress Progress
}

// ListGoalsOutput represents the output of listing goals.
type ListGoalsOutput struct {
	Goals []*GoalWithProgress
}

// ListGoalsUseCase handles listing goals with their computed progress.
type ListGoalsUseCase struct {
	goalRepo adapter.GoalRepository
}

// NewListGoalsUseCase creates a new ListGoalsUseCase instance.
func NewListGoalsUseCase(goalRepo adapter.GoalRepository) *ListGoalsUseCase {
	return &ListGoalsUseCase{
		goalRepo: goalRepo,
	}
}

// Execute performs the goal listing.
func (uc *ListGoalsUseCase) Execute(ctx context.Context, input ListGoalsInput) (*ListGoalsOutput, error) {
	goals, err := uc.goalRepo.FindByOwner(ctx, input.OwnerID)
	if err != nil {
		return nil, err
	}

	now := input.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}

	output := &ListGoalsOutput{
		Goals: make([]*GoalWithProgress, 0, len(goals)),
	}
	for _, g := range goals {
		output.Goals = append(output.Goals, &GoalWithProgress{
			Goal:     g,
			Progress: ProgressFor(g, now),
		})
	}
	return output, nil
}
