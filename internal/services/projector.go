package services

import (
	"time"

	"github.com/shopspring/decimal"

	"budget/internal/core"
)

// Fixed extrapolation policy: modest income growth, mild expense inflation,
// savings held flat. These are design parameters, not fitted values.
var (
	incomeGrowth     = decimal.RequireFromString("1.02")
	expenseInflation = decimal.RequireFromString("1.01")
)

// historyMonths is how many recent actual months feed the projection means.
const historyMonths = 3

// ProjectedMonth is one row of the cash-flow outlook: either an actual
// month from the ledger or a projected future month.
type ProjectedMonth struct {
	core.YearMonth
	Income        decimal.Decimal `json:"income"`
	Expenses      decimal.Decimal `json:"expenses"`
	Savings       decimal.Decimal `json:"savings"`
	Subscriptions decimal.Decimal `json:"subscriptions"`
	IsProjected   bool            `json:"isProjected"`
}

// Project extrapolates cash flow horizonMonths into the future from the
// last three actual months. The output starts with the actual months (up to
// three, IsProjected false) followed by the projected ones. Deterministic:
// everything derives from the arguments, now included.
func Project(entries []core.Entry, monthlyRecurring decimal.Decimal, now time.Time, horizonMonths int) []ProjectedMonth {
	history := core.MonthlyBuckets(entries, historyMonths)

	out := make([]ProjectedMonth, 0, len(history)+horizonMonths)
	meanIncome, meanExpense, meanSavings := decimal.Zero, decimal.Zero, decimal.Zero

	for _, b := range history {
		out = append(out, ProjectedMonth{
			YearMonth:     b.YearMonth,
			Income:        b.Totals.Income,
			Expenses:      b.Totals.Expense,
			Savings:       b.Totals.Savings,
			Subscriptions: monthlyRecurring,
			IsProjected:   false,
		})
		meanIncome = meanIncome.Add(b.Totals.Income)
		meanExpense = meanExpense.Add(b.Totals.Expense)
		meanSavings = meanSavings.Add(b.Totals.Savings)
	}

	// Mean over however many months have data; zero months means zero
	// projections, never a division by zero.
	if n := int64(len(history)); n > 0 {
		count := decimal.NewFromInt(n)
		meanIncome = meanIncome.Div(count)
		meanExpense = meanExpense.Div(count)
		meanSavings = meanSavings.Div(count)
	}

	ym := core.YearMonth{Year: now.Year(), Month: int(now.Month())}
	for i := 0; i < horizonMonths; i++ {
		ym = ym.Next()
		out = append(out, ProjectedMonth{
			YearMonth:     ym,
			Income:        meanIncome.Mul(incomeGrowth),
			Expenses:      meanExpense.Mul(expenseInflation),
			Savings:       meanSavings,
			Subscriptions: monthlyRecurring,
			IsProjected:   true,
		})
	}
	return out
}
