package core

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// monthlyFactors maps each billing frequency to its monthly-equivalent
// multiplier. These are frozen averaging approximations (52/12 is about
// 4.33), not exact calendar conversions: quarterly times four lands near
// 1.32 of monthly and yearly times twelve near 0.996. Callers accept the
// small systematic bias.
var monthlyFactors = map[Frequency]decimal.Decimal{
	Weekly:    decimal.RequireFromString("4.33"),
	Monthly:   decimal.NewFromInt(1),
	Quarterly: decimal.RequireFromString("0.33"),
	Yearly:    decimal.RequireFromString("0.083"),
}

// MonthlyFactor returns the monthly-equivalent multiplier for a frequency.
// An unknown frequency is a programming error, not user input: Frequency is
// a closed enumeration validated upstream.
func MonthlyFactor(f Frequency) (decimal.Decimal, error) {
	factor, ok := monthlyFactors[f]
	if !ok {
		return decimal.Zero, fmt.Errorf("unknown frequency: %s", f)
	}
	return factor, nil
}

// NormalizeMonthly converts an amount billed at the given frequency into its
// average monthly figure.
func NormalizeMonthly(amount decimal.Decimal, f Frequency) (decimal.Decimal, error) {
	factor, err := MonthlyFactor(f)
	if err != nil {
		return decimal.Zero, err
	}
	return amount.Mul(factor), nil
}

// MonthlyRecurringTotal sums the monthly-equivalent cost of all active
// subscriptions. Inactive subscriptions contribute zero.
func MonthlyRecurringTotal(subs []Subscription) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, sub := range subs {
		if !sub.Active {
			continue
		}
		normalized, err := NormalizeMonthly(sub.Amount, sub.Frequency)
		if err != nil {
			return decimal.Zero, fmt.Errorf("subscription %s: %w", sub.ID, err)
		}
		total = total.Add(normalized)
	}
	return total, nil
}

// MonthlyRecurringByCategory groups the monthly-equivalent cost of active
// subscriptions by category, sorted descending by amount with alphabetical
// tie-breaks.
func MonthlyRecurringByCategory(subs []Subscription) ([]CategoryAmount, error) {
	sums := make(map[string]decimal.Decimal)
	for _, sub := range subs {
		if !sub.Active {
			continue
		}
		normalized, err := NormalizeMonthly(sub.Amount, sub.Frequency)
		if err != nil {
			return nil, fmt.Errorf("subscription %s: %w", sub.ID, err)
		}
		sums[sub.Category] = sums[sub.Category].Add(normalized)
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
	return out, nil
}
