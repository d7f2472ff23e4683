// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// GoalColorPalette is the cycling set of display colors assigned to goals
// in creation order.
var GoalColorPalette = []string{
	"#6366f1",
	"#22d3ee",
	"#f59e0b",
	"#10b981",
	"#f43f5e",
	"#8b5cf6",
}

// Goal represents a savings goal. CurrentAmount may exceed TargetAmount
// (over-funding is allowed); displayed progress is clamped elsewhere.
type Goal struct {
	ID            uuid.UUID
	OwnerID       uuid.UUID
	Name          string
	TargetAmount  decimal.Decimal
	CurrentAmount decimal.Decimal
	Deadline      *time.Time
	Color         string // Display token, assigned from GoalColorPalette
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewGoal creates a new Goal entity. The color is taken from the palette
// based on how many goals the owner already has.
func NewGoal(
	ownerID uuid.UUID,
	name string,
	target decimal.Decimal,
	current decimal.Decimal,
	deadline *time.Time,
	existingGoals int,
) *Goal {
	now := time.Now().UTC()

	return &Goal{
		ID:            uuid.New(),
		OwnerID:       ownerID,
		Name:          name,
		TargetAmount:  target,
		CurrentAmount: current,
		Deadline:      deadline,
		Color:         GoalColorPalette[existingGoals%len(GoalColorPalette)],
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// Deposit adds amount to the goal's current balance.
func (g *Goal) Deposit(amount decimal.Decimal) {
	g.CurrentAmount = g.CurrentAmount.Add(amount)
	g.UpdatedAt = time.Now().UTC()
}
