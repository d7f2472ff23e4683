// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/financaspro/backend/internal/application/usecase/goal"
)

// CreateGoalRequest represents the request body for goal creation.
type CreateGoalRequest struct {
	Name          string          `json:"name" binding:"required"`
	TargetAmount  decimal.Decimal `json:"target_amount" binding:"required"`
	CurrentAmount decimal.Decimal `json:"current_amount,omitempty"`
	Deadline      *string         `json:"deadline,omitempty"`
}

// UpdateGoalRequest represents the request body for goal update. Absent
// fields stay untouched; an explicit null deadline clears it.
type UpdateGoalRequest struct {
	Name          *string          `json:"name,omitempty"`
	TargetAmount  *decimal.Decimal `json:"target_amount,omitempty"`
	Deadline      *string          `json:"deadline,omitempty"`
	ClearDeadline bool             `json:"clear_deadline,omitempty"`
}

// DepositGoalRequest represents the request body for a goal deposit.
type DepositGoalRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// GoalResponse represents a single goal in API responses.
type GoalResponse struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	TargetAmount  decimal.Decimal  `json:"target_amount"`
	CurrentAmount decimal.Decimal  `json:"current_amount"`
	Deadline      *string          `json:"deadline,omitempty"`
	Color         string           `json:"color"`
	CompletionPct float64          `json:"completion_pct"`
	Completed     bool             `json:"completed"`
	Urgent        bool             `json:"urgent"`
	DaysLeft      *int             `json:"days_left,omitempty"`
	MonthsLeft    *int             `json:"months_left,omitempty"`
	MonthlyNeed   *decimal.Decimal `json:"monthly_need,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// GoalListResponse represents the response for listing goals.
type GoalListResponse struct {
	Goals []GoalResponse `json:"goals"`
}

// ToGoalResponse converts a goal with its derived progress to a GoalResponse DTO.
func ToGoalResponse(gp *goal.GoalWithProgress) GoalResponse {
	g := gp.Goal
	p := gp.Progress

	response := GoalResponse{
		ID:            g.ID.String(),
		Name:          g.Name,
		TargetAmount:  g.TargetAmount,
		CurrentAmount: g.CurrentAmount,
		Color:         g.Color,
		CompletionPct: p.CompletionPct,
		Completed:     p.Completed,
		Urgent:        p.Urgent,
		MonthlyNeed:   p.MonthlyNeed,
		CreatedAt:     g.CreatedAt,
		UpdatedAt:     g.UpdatedAt,
	}

	if g.Deadline != nil {
		deadline := g.Deadline.Format("2006-01-02")
		response.Deadline = &deadline
	}
	if p.HasDeadline {
		daysLeft := p.DaysLeft
		monthsLeft := p.MonthsLeft
		response.DaysLeft = &daysLeft
		response.MonthsLeft = &monthsLeft
	}

	return response
}

// ToGoalListResponse converts a list of goals with progress to a GoalListResponse.
func ToGoalListResponse(goals []*goal.GoalWithProgress) GoalListResponse {
	responses := make([]GoalResponse, len(goals))
	for i, gp := range goals {
		responses[i] = ToGoalResponse(gp)
	}
	return GoalListResponse{
		Goals: responses,
	}
}
