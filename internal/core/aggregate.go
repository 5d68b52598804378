package core

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

type (
	// YearMonth identifies a calendar month. Bucketing is always done on
	// (year, month) pairs, never on elapsed-day arithmetic.
	YearMonth struct {
		Year  int `json:"year"`
		Month int `json:"month"` // 1-12
	}

	// KindTotals holds the summed magnitudes per entry kind.
	KindTotals struct {
		Income  decimal.Decimal `json:"income"`
		Expense decimal.Decimal `json:"expense"`
		Savings decimal.Decimal `json:"savings"`
	}

	// CategoryAmount is an amount aggregated by category name.
	CategoryAmount struct {
		Category string          `json:"category"`
		Amount   decimal.Decimal `json:"amount"`
	}

	// MonthBucket is the per-kind total for one calendar month.
	MonthBucket struct {
		YearMonth
		Totals KindTotals `json:"totals"`
	}
)

// YearMonthOf returns the bucket a date falls into.
func YearMonthOf(d Date) YearMonth {
	return YearMonth{Year: d.Year(), Month: d.Month()}
}

// Before reports whether ym is chronologically earlier than other.
func (ym YearMonth) Before(other YearMonth) bool {
	if ym.Year != other.Year {
		return ym.Year < other.Year
	}
	return ym.Month < other.Month
}

// Next returns the following calendar month.
func (ym YearMonth) Next() YearMonth {
	if ym.Month == 12 {
		return YearMonth{Year: ym.Year + 1, Month: 1}
	}
	return YearMonth{Year: ym.Year, Month: ym.Month + 1}
}

// String formats the bucket as YYYY-MM.
func (ym YearMonth) String() string {
	return fmt.Sprintf("%04d-%02d", ym.Year, ym.Month)
}

// NewKindTotals returns totals initialized to zero for every kind.
func NewKindTotals() KindTotals {
	return KindTotals{Income: decimal.Zero, Expense: decimal.Zero, Savings: decimal.Zero}
}

func (t KindTotals) add(kind Kind, amount decimal.Decimal) KindTotals {
	switch kind {
	case Income:
		t.Income = t.Income.Add(amount)
	case Expense:
		t.Expense = t.Expense.Add(amount)
	case Savings:
		t.Savings = t.Savings.Add(amount)
	}
	return t
}

// Of returns the total for one kind.
func (t KindTotals) Of(kind Kind) decimal.Decimal {
	switch kind {
	case Income:
		return t.Income
	case Expense:
		return t.Expense
	case Savings:
		return t.Savings
	}
	return decimal.Zero
}

// TotalsByKind sums the entry amounts per kind. A kind with no entries
// totals zero.
func TotalsByKind(entries []Entry) KindTotals {
	totals := NewKindTotals()
	for _, e := range entries {
		totals = totals.add(e.Kind, e.Amount)
	}
	return totals
}

// TotalsByCategory sums the amounts of entries of one kind per category,
// sorted descending by amount. Ties break alphabetically so the order is
// deterministic. Unknown categories aggregate like any other; the
// presentation palette is not consulted here.
func TotalsByCategory(entries []Entry, kind Kind) []CategoryAmount {
	sums := make(map[string]decimal.Decimal)
	for _, e := range entries {
		if e.Kind != kind {
			continue
		}
		sums[e.Category] = sums[e.Category].Add(e.Amount)
	}

	out := make([]CategoryAmount, 0, len(sums))
	for category, amount := range sums {
		out = append(out, CategoryAmount{Category: category, Amount: amount})
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Amount.Equal(out[j].Amount) {
			return out[i].Amount.GreaterThan(out[j].Amount)
		}
		return out[i].Category < out[j].Category
	})
	return out
}

// MonthlyBuckets groups entries into calendar-month buckets, ascending,
// keeping the most recent monthsBack months that actually have data. This
// is not a trailing window from today: only months present in the ledger
// are bucketed, then the newest N are kept.
func MonthlyBuckets(entries []Entry, monthsBack int) []MonthBucket {
	byMonth := make(map[YearMonth]KindTotals)
	for _, e := range entries {
		ym := YearMonthOf(e.Date)
		totals, ok := byMonth[ym]
		if !ok {
			totals = NewKindTotals()
		}
		byMonth[ym] = totals.add(e.Kind, e.Amount)
	}

	buckets := make([]MonthBucket, 0, len(byMonth))
	for ym, totals := range byMonth {
		buckets = append(buckets, MonthBucket{YearMonth: ym, Totals: totals})
	}
	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].YearMonth.Before(buckets[j].YearMonth)
	})

	if monthsBack > 0 && len(buckets) > monthsBack {
		buckets = buckets[len(buckets)-monthsBack:]
	}
	return buckets
}

// NetBalance is income minus expense. Savings is excluded: it is an
// allocation, not a liability.
func NetBalance(entries []Entry) decimal.Decimal {
	totals := TotalsByKind(entries)
	return totals.Income.Sub(totals.Expense)
}

// PercentageOfIncome returns value as a percentage of total income, defined
// as zero when income is zero so no non-finite value ever propagates.
func PercentageOfIncome(value, totalIncome decimal.Decimal) decimal.Decimal {
	if totalIncome.IsZero() {
		return decimal.Zero
	}
	return value.Div(totalIncome).Mul(decimal.NewFromInt(100))
}
