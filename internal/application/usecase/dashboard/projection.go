// Package dashboard contains the derivation logic behind the dashboard view model.
package dashboard

import (
	"github.com/shopspring/decimal"
)

const (
	// ProjectionHorizon is the number of future months projected past the window.
	ProjectionHorizon = 3

	// projectionLookback is how many trailing historical months feed the average.
	projectionLookback = 3
)

// BalancePoint is one point of the balance series. Projected points carry
// Projected = true and a "*" suffix on the label so downstream consumers
// can never mistake them for historical data.
type BalancePoint struct {
	PeriodKey string          `json:"period_key"`
	Label     string          `json:"label"`
	Balance   decimal.Decimal `json:"balance"`
	Projected bool            `json:"projected"`
}

// BalanceSeries reconstructs the historical end-of-month balance for each
// bucket of the window and appends a ProjectionHorizon-month projection.
//
// The balance at the end of a bucketed month is the all-time net minus the
// net of every bucket after it; the projection adds the average net of the
// last projectionLookback historical months cumulatively to the last
// historical balance. Projected points form a trailing suffix only.
func BalanceSeries(window []MonthlyBucket, allTimeNet decimal.Decimal) []BalancePoint {
	series := make([]BalancePoint, 0, len(window)+ProjectionHorizon)

	// Walk backwards: the running total starts at the all-time net and
	// drops each later bucket's net as it moves toward the oldest month.
	balances := make([]decimal.Decimal, len(window))
	running := allTimeNet
	for i := len(window) - 1; i >= 0; i-- {
		balances[i] = running
		running = running.Sub(window[i].Net())
	}

	for i, bucket := range window {
		series = append(series, BalancePoint{
			PeriodKey: bucket.PeriodKey,
			Label:     bucket.Label,
			Balance:   balances[i],
			Projected: false,
		})
	}

	avgNet := averageNet(window)
	lastBalance := allTimeNet
	lastStart, err := PeriodStart(periodKeyOfLast(window))
	if err != nil {
		return series
	}

	for step := 1; step <= ProjectionHorizon; step++ {
		start := lastStart.AddDate(0, step, 0)
		series = append(series, BalancePoint{
			PeriodKey: PeriodKeyFor(start),
			Label:     PeriodLabel(start) + "*",
			Balance:   lastBalance.Add(avgNet.Mul(decimal.NewFromInt(int64(step)))),
			Projected: true,
		})
	}
	return series
}

// averageNet averages the net of the last projectionLookback buckets. With
// fewer buckets it averages over however many exist; an empty window
// yields zero rather than dividing by a period count of zero.
func averageNet(window []MonthlyBucket) decimal.Decimal {
	lookback := projectionLookback
	if len(window) < lookback {
		lookback = len(window)
	}
	if lookback == 0 {
		return decimal.Zero
	}

	sum := decimal.Zero
	for _, bucket := range window[len(window)-lookback:] {
		sum = sum.Add(bucket.Net())
	}
	return sum.Div(decimal.NewFromInt(int64(lookback)))
}

func periodKeyOfLast(window []MonthlyBucket) string {
	if len(window) == 0 {
		return ""
	}
	return window[len(window)-1].PeriodKey
}
