// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"github.com/shopspring/decimal"

	"github.com/financaspro/backend/internal/application/usecase/dashboard"
	goalusecase "github.com/financaspro/backend/internal/application/usecase/goal"
)

// TrendResponse represents a period-over-period delta. Null means the
// previous period had no baseline to compare against.
type TrendResponse struct {
	Pct        float64 `json:"pct"`
	NoBaseline bool    `json:"no_baseline,omitempty"`
}

// SummaryResponse represents the headline figures of the current month.
type SummaryResponse struct {
	Income         decimal.Decimal `json:"income"`
	Expense        decimal.Decimal `json:"expense"`
	Net            decimal.Decimal `json:"net"`
	SavingsRatePct float64         `json:"savings_rate_pct"`
	IncomeTrend    TrendResponse   `json:"income_trend"`
	ExpenseTrend   TrendResponse   `json:"expense_trend"`
	NetTrend       TrendResponse   `json:"net_trend"`
}

// CategoryTotalResponse represents one slice of the expense breakdown.
type CategoryTotalResponse struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
}

// MonthlyBucketResponse represents one month of the rolling window.
type MonthlyBucketResponse struct {
	PeriodKey string          `json:"period_key"`
	Label     string          `json:"label"`
	Income    decimal.Decimal `json:"income"`
	Expense   decimal.Decimal `json:"expense"`
	Net       decimal.Decimal `json:"net"`
}

// BalancePointResponse represents one point of the balance series.
type BalancePointResponse struct {
	PeriodKey string          `json:"period_key"`
	Label     string          `json:"label"`
	Balance   decimal.Decimal `json:"balance"`
	Projected bool            `json:"projected"`
}

// NotificationResponse represents one entry of the goal notification feed.
type NotificationResponse struct {
	GoalID        string  `json:"goal_id"`
	Name          string  `json:"name"`
	DaysLeft      int     `json:"days_left"`
	CompletionPct float64 `json:"completion_pct"`
	Urgent        bool    `json:"urgent"`
}

// ReportsResponse represents the extremes panel.
type ReportsResponse struct {
	TopIncome   *TransactionResponse   `json:"top_income,omitempty"`
	TopExpense  *TransactionResponse   `json:"top_expense,omitempty"`
	TopCategory *CategoryTotalResponse `json:"top_category,omitempty"`
}

// OverviewResponse is the full dashboard view model returned by the API.
type OverviewResponse struct {
	PeriodKey     string                  `json:"period_key"`
	Summary       SummaryResponse         `json:"summary"`
	Breakdown     []CategoryTotalResponse `json:"breakdown"`
	Monthly       []MonthlyBucketResponse `json:"monthly"`
	BalanceSeries []BalancePointResponse  `json:"balance_series"`
	Goals         []GoalResponse          `json:"goals"`
	Notifications []NotificationResponse  `json:"notifications"`
	Recent        []TransactionResponse   `json:"recent"`
	Reports       ReportsResponse         `json:"reports"`
	Materialized  int                     `json:"materialized"`
}

// ToOverviewResponse converts a GetOverviewOutput to an OverviewResponse DTO.
func ToOverviewResponse(output *dashboard.GetOverviewOutput) OverviewResponse {
	response := OverviewResponse{
		PeriodKey: output.PeriodKey,
		Summary: SummaryResponse{
			Income:         output.Summary.Income,
			Expense:        output.Summary.Expense,
			Net:            output.Summary.Net,
			SavingsRatePct: output.Summary.SavingsRatePct,
			IncomeTrend:    toTrendResponse(output.Summary.IncomeTrend),
			ExpenseTrend:   toTrendResponse(output.Summary.ExpenseTrend),
			NetTrend:       toTrendResponse(output.Summary.NetTrend),
		},
		Breakdown:     make([]CategoryTotalResponse, len(output.Breakdown)),
		Monthly:       make([]MonthlyBucketResponse, len(output.Window)),
		BalanceSeries: make([]BalancePointResponse, len(output.BalanceSeries)),
		Goals:         make([]GoalResponse, len(output.Goals)),
		Notifications: toNotificationResponses(output.Notifications),
		Recent:        make([]TransactionResponse, len(output.Recent)),
		Materialized:  output.Materialized,
	}

	for i, ct := range output.Breakdown {
		response.Breakdown[i] = CategoryTotalResponse{Category: ct.Category, Total: ct.Total}
	}
	for i, bucket := range output.Window {
		response.Monthly[i] = MonthlyBucketResponse{
			PeriodKey: bucket.PeriodKey,
			Label:     bucket.Label,
			Income:    bucket.Income,
			Expense:   bucket.Expense,
			Net:       bucket.Net(),
		}
	}
	for i, point := range output.BalanceSeries {
		response.BalanceSeries[i] = BalancePointResponse{
			PeriodKey: point.PeriodKey,
			Label:     point.Label,
			Balance:   point.Balance,
			Projected: point.Projected,
		}
	}
	for i, gp := range output.Goals {
		response.Goals[i] = ToGoalResponse(gp)
	}
	for i, t := range output.Recent {
		response.Recent[i] = ToTransactionResponse(t)
	}

	if output.Reports.TopIncome != nil {
		top := ToTransactionResponse(output.Reports.TopIncome)
		response.Reports.TopIncome = &top
	}
	if output.Reports.TopExpense != nil {
		top := ToTransactionResponse(output.Reports.TopExpense)
		response.Reports.TopExpense = &top
	}
	if output.Reports.TopCategory != nil {
		response.Reports.TopCategory = &CategoryTotalResponse{
			Category: output.Reports.TopCategory.Category,
			Total:    output.Reports.TopCategory.Total,
		}
	}

	return response
}

func toTrendResponse(t dashboard.Trend) TrendResponse {
	return TrendResponse{Pct: t.Pct, NoBaseline: t.NoBaseline}
}

func toNotificationResponses(notifications []goalusecase.Notification) []NotificationResponse {
	responses := make([]NotificationResponse, len(notifications))
	for i, n := range notifications {
		responses[i] = NotificationResponse{
			GoalID:        n.GoalID.String(),
			Name:          n.Name,
			DaysLeft:      n.DaysLeft,
			CompletionPct: n.CompletionPct,
			Urgent:        n.Urgent,
		}
	}
	return responses
}
