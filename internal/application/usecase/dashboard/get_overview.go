package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/financaspro/backend/internal/application/adapter"
	goalusecase "github.com/financaspro/backend/internal/application/usecase/goal"
	"github.com/financaspro/backend/internal/application/usecase/recurring"
	"github.com/financaspro/backend/internal/domain/entity"
	domainerror "github.com/financaspro/backend/internal/domain/error"
)

const (
	// recentLimit is the number of transactions shown in the recent activity panel.
	recentLimit = 6

	// alertSuppressionWindow is how long a goal alert suppresses re-alerting
	// for the same goal.
	alertSuppressionWindow = 24 * time.Hour
)

// GetOverviewInput represents the input for building the dashboard overview.
type GetOverviewInput struct {
	OwnerID    uuid.UUID
	OwnerEmail string
	OwnerName  string

	// Now anchors the current period. Zero means time.Now().UTC().
	Now time.Time
}

// Summary holds the headline figures of the current month plus their trends
// against the previous month.
type Summary struct {
	Income         decimal.Decimal `json:"income"`
	Expense        decimal.Decimal `json:"expense"`
	Net            decimal.Decimal `json:"net"`
	SavingsRatePct float64         `json:"savings_rate_pct"`
	IncomeTrend    Trend           `json:"income_trend"`
	ExpenseTrend   Trend           `json:"expense_trend"`
	NetTrend       Trend           `json:"net_trend"`
}

// Reports holds the extremes panel: the single largest income and expense
// transactions on record and the heaviest expense category of the current month.
type Reports struct {
	TopIncome   *entity.Transaction `json:"top_income,omitempty"`
	TopExpense  *entity.Transaction `json:"top_expense,omitempty"`
	TopCategory *CategoryTotal      `json:"top_category,omitempty"`
}

// GetOverviewOutput is the full dashboard view model.
type GetOverviewOutput struct {
	PeriodKey     string
	Summary       Summary
	Breakdown     []CategoryTotal
	Window        []MonthlyBucket
	BalanceSeries []BalancePoint
	Goals         []*goalusecase.GoalWithProgress
	Notifications []goalusecase.Notification
	Recent        []*entity.Transaction
	Reports       Reports
	Materialized  int
}

// GetOverviewUseCase derives the dashboard view model from the owner's ledger
// and goals. Recurring transactions are materialized first so every figure on
// the dashboard already includes the current month's recurring entries.
type GetOverviewUseCase struct {
	transactionRepo adapter.TransactionRepository
	goalRepo        adapter.GoalRepository
	emailQueueRepo  adapter.EmailQueueRepository
	materializer    *recurring.MaterializeUseCase
	windowSize      int
}

// NewGetOverviewUseCase creates a new GetOverviewUseCase instance.
func NewGetOverviewUseCase(
	transactionRepo adapter.TransactionRepository,
	goalRepo adapter.GoalRepository,
	emailQueueRepo adapter.EmailQueueRepository,
	materializer *recurring.MaterializeUseCase,
	windowSize int,
) *GetOverviewUseCase {
	if windowSize <= 0 {
		windowSize = DefaultWindowSize
	}
	return &GetOverviewUseCase{
		transactionRepo: transactionRepo,
		goalRepo:        goalRepo,
		emailQueueRepo:  emailQueueRepo,
		materializer:    materializer,
		windowSize:      windowSize,
	}
}

// Execute builds the overview. The ledger snapshot is fetched once; every
// derived figure is computed from that same snapshot so the panels always
// agree with each other.
func (uc *GetOverviewUseCase) Execute(ctx context.Context, input GetOverviewInput) (*GetOverviewOutput, error) {
	now := input.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}

	materialized, err := uc.materializer.Execute(ctx, recurring.MaterializeInput{
		OwnerID: input.OwnerID,
		Now:     now,
	})
	if err != nil {
		return nil, domainerror.NewDashboardError(
			domainerror.ErrCodeSnapshotUnavailable,
			"failed to load ledger snapshot",
			fmt.Errorf("%w: %w", domainerror.ErrSnapshotUnavailable, err),
		)
	}
	transactions := materialized.Transactions

	currentKey := PeriodKeyFor(now)
	previousKey := PeriodKeyFor(now.AddDate(0, -1, 0))

	current := BucketFor(transactions, currentKey)
	previous := BucketFor(transactions, previousKey)

	window := RollingWindow(transactions, now, uc.windowSize)
	series := BalanceSeries(window, AllTimeNet(transactions))

	goals, err := uc.goalRepo.FindByOwner(ctx, input.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load goals: %w", err)
	}

	withProgress := make([]*goalusecase.GoalWithProgress, 0, len(goals))
	for _, g := range goals {
		withProgress = append(withProgress, &goalusecase.GoalWithProgress{
			Goal:     g,
			Progress: goalusecase.ProgressFor(g, now),
		})
	}
	notifications := goalusecase.BuildNotifications(goals, now)

	uc.enqueueDeadlineAlerts(ctx, input, notifications, now)

	recent := transactions
	if len(recent) > recentLimit {
		recent = recent[:recentLimit]
	}

	return &GetOverviewOutput{
		PeriodKey: currentKey,
		Summary: Summary{
			Income:         current.Income,
			Expense:        current.Expense,
			Net:            current.Net(),
			SavingsRatePct: savingsRatePct(current),
			IncomeTrend:    TrendBetween(current.Income, previous.Income),
			ExpenseTrend:   TrendBetween(current.Expense, previous.Expense),
			NetTrend:       TrendBetween(current.Net(), previous.Net()),
		},
		Breakdown:     BreakdownFor(transactions, currentKey),
		Window:        window,
		BalanceSeries: series,
		Goals:         withProgress,
		Notifications: notifications,
		Recent:        recent,
		Reports:       buildReports(transactions, currentKey),
		Materialized:  len(materialized.Created),
	}, nil
}

// enqueueDeadlineAlerts queues one alert email per urgent goal, unless the
// goal was already alerted inside the suppression window. Queue failures are
// logged and skipped so the overview never fails because of email plumbing.
func (uc *GetOverviewUseCase) enqueueDeadlineAlerts(ctx context.Context, input GetOverviewInput, notifications []goalusecase.Notification, now time.Time) {
	if input.OwnerEmail == "" {
		return
	}

	since := now.Add(-alertSuppressionWindow)
	for _, n := range notifications {
		if !n.Urgent {
			continue
		}

		recent, err := uc.emailQueueRepo.HasRecentAlert(ctx, n.GoalID, since)
		if err != nil {
			slog.Warn("Failed to check recent goal alerts",
				"goal_id", n.GoalID,
				"error", err,
			)
			continue
		}
		if recent {
			continue
		}

		job := entity.NewGoalDeadlineAlertJob(
			n.GoalID,
			input.OwnerEmail,
			input.OwnerName,
			fmt.Sprintf("Sua meta %q está perto do prazo", n.Name),
			map[string]interface{}{
				"goal_name":      n.Name,
				"days_left":      n.DaysLeft,
				"completion_pct": n.CompletionPct,
			},
		)
		if err := uc.emailQueueRepo.Create(ctx, job); err != nil {
			slog.Warn("Failed to enqueue goal deadline alert",
				"goal_id", n.GoalID,
				"error", err,
			)
			continue
		}

		slog.Info("Queued goal deadline alert",
			"goal_id", n.GoalID,
			"days_left", n.DaysLeft,
		)
	}
}

// savingsRatePct returns net/income × 100 rounded to one decimal place, or
// zero when the month has no income.
func savingsRatePct(bucket MonthlyBucket) float64 {
	if !bucket.Income.IsPositive() {
		return 0
	}
	return bucket.Net().
		Mul(decimal.NewFromInt(100)).
		Div(bucket.Income).
		Round(1).
		InexactFloat64()
}

// buildReports finds the current month's largest income and expense
// transactions and its heaviest expense category.
func buildReports(transactions []*entity.Transaction, currentKey string) Reports {
	var r Reports
	for _, t := range transactions {
		if PeriodKeyFor(t.Date) != currentKey {
			continue
		}
		switch t.Type {
		case entity.TransactionTypeIncome:
			if r.TopIncome == nil || t.Amount.GreaterThan(r.TopIncome.Amount) {
				r.TopIncome = t
			}
		case entity.TransactionTypeExpense:
			if r.TopExpense == nil || t.Amount.GreaterThan(r.TopExpense.Amount) {
				r.TopExpense = t
			}
		}
	}

	if breakdown := BreakdownFor(transactions, currentKey); len(breakdown) > 0 {
		top := breakdown[0]
		r.TopCategory = &top
	}
	return r
}
