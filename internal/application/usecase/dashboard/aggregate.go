// Package dashboard contains the derivation logic behind the dashboard view model.
package dashboard

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/financaspro/backend/internal/domain/entity"
)

// DefaultWindowSize is the number of months in the rolling window.
const DefaultWindowSize = 6

// CategoryTotal is one slice of the expense breakdown for a period.
type CategoryTotal struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
}

// BucketFor computes the income and expense totals of the given period over
// the transaction snapshot. Transactions outside the period are ignored.
func BucketFor(transactions []*entity.Transaction, periodKey string) MonthlyBucket {
	bucket := MonthlyBucket{
		PeriodKey: periodKey,
		Income:    decimal.Zero,
		Expense:   decimal.Zero,
	}
	if start, err := PeriodStart(periodKey); err == nil {
		bucket.Label = PeriodLabel(start)
	}

	for _, t := range transactions {
		if PeriodKeyFor(t.Date) != periodKey {
			continue
		}
		switch t.Type {
		case entity.TransactionTypeIncome:
			bucket.Income = bucket.Income.Add(t.Amount)
		case entity.TransactionTypeExpense:
			bucket.Expense = bucket.Expense.Add(t.Amount)
		}
	}
	return bucket
}

// BreakdownFor computes the expense-by-category breakdown of the given
// period, largest first. The totals sum exactly to the period's expense
// total: both walk the same snapshot with the same period and type filter.
func BreakdownFor(transactions []*entity.Transaction, periodKey string) []CategoryTotal {
	totals := make(map[string]decimal.Decimal)
	for _, t := range transactions {
		if t.Type != entity.TransactionTypeExpense || PeriodKeyFor(t.Date) != periodKey {
			continue
		}
		totals[t.Category] = totals[t.Category].Add(t.Amount)
	}

	breakdown := make([]CategoryTotal, 0, len(totals))
	for category, total := range totals {
		breakdown = append(breakdown, CategoryTotal{Category: category, Total: total})
	}
	sort.Slice(breakdown, func(i, j int) bool {
		if cmp := breakdown[i].Total.Cmp(breakdown[j].Total); cmp != 0 {
			return cmp > 0
		}
		return breakdown[i].Category < breakdown[j].Category
	})
	return breakdown
}

// RollingWindow buckets the snapshot into the n calendar months ending at
// the month containing now, oldest first. Months without transactions
// report zero totals.
func RollingWindow(transactions []*entity.Transaction, now time.Time, n int) []MonthlyBucket {
	series := PeriodSeries(now, n)

	window := make([]MonthlyBucket, 0, len(series))
	for _, start := range series {
		window = append(window, BucketFor(transactions, PeriodKeyFor(start)))
	}
	return window
}

// AllTimeNet returns the net balance of the entire snapshot
// (Σ income − Σ expense).
func AllTimeNet(transactions []*entity.Transaction) decimal.Decimal {
	net := decimal.Zero
	for _, t := range transactions {
		switch t.Type {
		case entity.TransactionTypeIncome:
			net = net.Add(t.Amount)
		case entity.TransactionTypeExpense:
			net = net.Sub(t.Amount)
		}
	}
	return net
}
