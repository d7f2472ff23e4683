// Package dashboard contains the derivation logic behind the dashboard view model.
package dashboard

import (
	"github.com/shopspring/decimal"
)

// Trend is a period-over-period percentage delta. When the previous period
// has no total to compare against, NoBaseline is set instead of reporting an
// infinite or zero percentage, and callers render a "first period" state.
type Trend struct {
	Pct        float64 `json:"pct"`
	NoBaseline bool    `json:"no_baseline,omitempty"`
}

// TrendBetween computes (current − previous) / previous × 100, rounded to
// two decimal places. A previous total of zero yields the no-baseline
// sentinel, never a division by zero.
func TrendBetween(current, previous decimal.Decimal) Trend {
	if !previous.IsPositive() {
		return Trend{NoBaseline: true}
	}

	pct := current.Sub(previous).
		Mul(decimal.NewFromInt(100)).
		Div(previous).
		Round(2)
	return Trend{Pct: pct.InexactFloat64()}
}
