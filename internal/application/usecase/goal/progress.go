// Package goal contains goal-related use cases and the goal progress math.
package goal

import (
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/financaspro/backend/internal/domain/entity"
)

// urgencyWindowDays is how close a deadline must be for an incomplete goal
// to be flagged urgent.
const urgencyWindowDays = 30

// Progress holds the derived completion state of a goal at a point in time.
type Progress struct {
	CompletionPct float64 // Clamped to [0,100] even when over-funded
	DaysLeft      int     // Negative when overdue; valid only with a deadline
	HasDeadline   bool
	MonthsLeft    int              // max(0, round(daysLeft/30)); valid only with a deadline
	MonthlyNeed   *decimal.Decimal // nil when complete or MonthsLeft == 0
	Urgent        bool
	Completed     bool
}

// Notification is one entry of the goal notification feed.
type Notification struct {
	GoalID        uuid.UUID `json:"goal_id"`
	Name          string    `json:"name"`
	DaysLeft      int       `json:"days_left"`
	CompletionPct float64   `json:"completion_pct"`
	Urgent        bool      `json:"urgent"`
}

// ProgressFor derives the progress of a single goal relative to now.
func ProgressFor(g *entity.Goal, now time.Time) Progress {
	p := Progress{
		CompletionPct: completionPct(g.CurrentAmount, g.TargetAmount),
		// Completion is decided on the exact amounts, never on the rounded
		// percentage: a goal at 7999.70 of 8000 is still open.
		Completed: g.TargetAmount.IsPositive() && g.CurrentAmount.Cmp(g.TargetAmount) >= 0,
	}

	if g.Deadline == nil {
		return p
	}
	p.HasDeadline = true

	remaining := g.Deadline.Sub(now)
	p.DaysLeft = int(math.Round(remaining.Hours() / 24))
	p.MonthsLeft = int(math.Round(remaining.Hours() / (24 * 30)))
	if p.MonthsLeft < 0 {
		p.MonthsLeft = 0
	}

	p.Urgent = p.DaysLeft <= urgencyWindowDays && !p.Completed

	if !p.Completed && p.MonthsLeft > 0 {
		need := g.TargetAmount.Sub(g.CurrentAmount).
			Div(decimal.NewFromInt(int64(p.MonthsLeft)))
		p.MonthlyNeed = &need
	}
	return p
}

// BuildNotifications derives the notification feed from the goal set:
// incomplete goals with a deadline, most urgent first. Overdue goals carry
// negative DaysLeft and sort to the front; completed goals never appear,
// even when their deadline has passed.
func BuildNotifications(goals []*entity.Goal, now time.Time) []Notification {
	feed := make([]Notification, 0, len(goals))
	for _, g := range goals {
		p := ProgressFor(g, now)
		if !p.HasDeadline || p.Completed {
			continue
		}
		feed = append(feed, Notification{
			GoalID:        g.ID,
			Name:          g.Name,
			DaysLeft:      p.DaysLeft,
			CompletionPct: p.CompletionPct,
			Urgent:        p.Urgent,
		})
	}
	sort.Slice(feed, func(i, j int) bool {
		return feed[i].DaysLeft < feed[j].DaysLeft
	})
	return feed
}

// completionPct returns current/target × 100 clamped to 100, rounded to one
// decimal place for display. Over-funded goals report 100, not their raw
// ratio. The clamp looks at the exact ratio, so rounding can only ever move
// an incomplete goal up to 100.0 on screen, never flip its completed state.
func completionPct(current, target decimal.Decimal) float64 {
	if !target.IsPositive() {
		return 0
	}
	pct := current.Mul(decimal.NewFromInt(100)).Div(target)
	if pct.GreaterThanOrEqual(decimal.NewFromInt(100)) {
		return 100
	}
	return pct.Round(1).InexactFloat64()
}
