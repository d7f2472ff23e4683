// Package dashboard contains the derivation logic behind the dashboard view
// model: period bucketing, trends, the balance series and its projection.
package dashboard

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// PeriodKeyLayout is the time layout for period keys ("YYYY-MM").
const PeriodKeyLayout = "2006-01"

// monthAbbreviations maps months to their pt-BR chart labels.
var monthAbbreviations = map[time.Month]string{
	time.January:   "Jan",
	time.February:  "Fev",
	time.March:     "Mar",
	time.April:     "Abr",
	time.May:       "Mai",
	time.June:      "Jun",
	time.July:      "Jul",
	time.August:    "Ago",
	time.September: "Set",
	time.October:   "Out",
	time.November:  "Nov",
	time.December:  "Dez",
}

// MonthlyBucket holds the income and expense totals of one calendar month.
type MonthlyBucket struct {
	PeriodKey string          `json:"period_key"`
	Label     string          `json:"label"`
	Income    decimal.Decimal `json:"income"`
	Expense   decimal.Decimal `json:"expense"`
}

// Net returns income minus expense for the bucket.
func (b MonthlyBucket) Net() decimal.Decimal {
	return b.Income.Sub(b.Expense)
}

// PeriodKeyFor returns the period key of the month containing date.
func PeriodKeyFor(date time.Time) string {
	return date.Format(PeriodKeyLayout)
}

// PeriodStart parses a period key into the first instant of that month.
func PeriodStart(periodKey string) (time.Time, error) {
	start, err := time.Parse(PeriodKeyLayout, periodKey)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse period key %q: %w", periodKey, err)
	}
	return start, nil
}

// PeriodLabel returns the chart label for a period start ("Fev 2025").
func PeriodLabel(periodStart time.Time) string {
	return fmt.Sprintf("%s %d", monthAbbreviations[periodStart.Month()], periodStart.Year())
}

// PeriodSeries returns the start of each of the n calendar months ending at
// the month containing now, oldest first. Labels are derived from the date
// alone, so empty months still get a slot.
func PeriodSeries(now time.Time, n int) []time.Time {
	firstOfCurrent := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	series := make([]time.Time, 0, n)
	for offset := n - 1; offset >= 0; offset-- {
		series = append(series, firstOfCurrent.AddDate(0, -offset, 0))
	}
	return series
}
