package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"budget/internal/core"
	"budget/internal/services"
)

type categorySlice struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
	Color    string          `json:"color"`
}

type summaryResponse struct {
	Totals            core.KindTotals    `json:"totals"`
	NetBalance        decimal.Decimal    `json:"netBalance"`
	ExpensePercentage decimal.Decimal    `json:"expensePercentage"`
	SavingsPercentage decimal.Decimal    `json:"savingsPercentage"`
	MonthlyRecurring  decimal.Decimal    `json:"monthlyRecurring"`
	Months            []core.MonthBucket `json:"months"`
	ExpenseBreakdown  []categorySlice    `json:"expenseBreakdown"`
	IncomeBreakdown   []categorySlice    `json:"incomeBreakdown"`
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	monthsBack := queryInt(r, "months", 6)
	if monthsBack < 1 || monthsBack > 36 {
		monthsBack = 6
	}

	cacheKey := "summary:" + r.URL.RawQuery
	if body, ok := s.dashCache.Get(cacheKey); ok {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(body)
		return
	}

	entries, err := s.ledger.Entries(r.Context())
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, err)
		return
	}
	recurring, err := s.registry.MonthlyRecurringTotal(r.Context())
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, err)
		return
	}

	totals := core.TotalsByKind(entries)
	resp := summaryResponse{
		Totals:            totals,
		NetBalance:        core.NetBalance(entries),
		ExpensePercentage: core.PercentageOfIncome(totals.Expense, totals.Income),
		SavingsPercentage: core.PercentageOfIncome(totals.Savings, totals.Income),
		MonthlyRecurring:  recurring,
		Months:            core.MonthlyBuckets(entries, monthsBack),
		ExpenseBreakdown:  colorize(core.TotalsByCategory(entries, core.Expense), expenseColors),
		IncomeBreakdown:   colorize(core.TotalsByCategory(entries, core.Income), incomeColors),
	}

	body, err := json.Marshal(resp)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, err)
		return
	}
	s.dashCache.Set(cacheKey, body)

	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(body)
}

func (s *Server) handleProjection(w http.ResponseWriter, r *http.Request) {
	months := queryInt(r, "months", s.horizon)
	if months < 1 || months > 24 {
		months = s.horizon
	}

	cacheKey := "projection:" + r.URL.RawQuery
	if body, ok := s.dashCache.Get(cacheKey); ok {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(body)
		return
	}

	entries, err := s.ledger.Entries(r.Context())
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, err)
		return
	}
	recurring, err := s.registry.MonthlyRecurringTotal(r.Context())
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, err)
		return
	}

	projection := services.Project(entries, recurring, time.Now(), months)

	body, err := json.Marshal(map[string]any{"months": projection})
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, err)
		return
	}
	s.dashCache.Set(cacheKey, body)

	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(body)
}

func colorize(slices []core.CategoryAmount, palette map[string]string) []categorySlice {
	out := make([]categorySlice, len(slices))
	for i, c := range slices {
		out[i] = categorySlice{
			Category: c.Category,
			Amount:   c.Amount,
			Color:    categoryColor(palette, c.Category),
		}
	}
	return out
}
