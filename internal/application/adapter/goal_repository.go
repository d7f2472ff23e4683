// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/financaspro/backend/internal/domain/entity"
)

// GoalRepository defines the interface for goal persistence operations.
type GoalRepository interface {
	// Create persists a new goal.
	Create(ctx context.Context, goal *entity.Goal) error

	// FindByID retrieves a goal by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Goal, error)

	// FindByOwner retrieves all goals for an owner, ordered by creation time.
	FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.Goal, error)

	// CountByOwner returns the number of goals an owner has.
	CountByOwner(ctx context.Context, ownerID uuid.UUID) (int, error)

	// Update saves changes to an existing goal.
	Update(ctx context.Context, goal *entity.Goal) error

	// Delete removes a goal.
	Delete(ctx context.Context, id uuid.UUID) error
}
