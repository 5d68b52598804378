package http

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"budget/internal/core"
	"budget/internal/services"
)

// goalView decorates a savings goal with the derived figures the dashboard
// renders alongside it.
type goalView struct {
	core.SavingsGoal
	ProgressPercent decimal.Decimal `json:"progressPercent"`
	DaysRemaining   *int            `json:"daysRemaining,omitempty"`
}

func newGoalView(g core.SavingsGoal, now time.Time) goalView {
	view := goalView{SavingsGoal: g}
	if g.TargetAmount.IsPositive() {
		view.ProgressPercent = g.CurrentAmount.Div(g.TargetAmount).Mul(decimal.NewFromInt(100)).Round(2)
	}
	if !g.TargetDate.IsZero() {
		days := int(math.Ceil(g.TargetDate.Sub(now).Hours() / 24))
		if days < 0 {
			days = 0
		}
		view.DaysRemaining = &days
	}
	return view
}

type createGoalRequest struct {
	Name          string `json:"name"`
	TargetAmount  string `json:"targetAmount"`
	CurrentAmount string `json:"currentAmount"`
	TargetDate    string `json:"targetDate"`
}

type addFundsRequest struct {
	Amount string `json:"amount"`
}

func (s *Server) handleListGoals(w http.ResponseWriter, r *http.Request) {
	goals, err := s.registry.SavingsGoals(r.Context())
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, err)
		return
	}
	entries, err := s.ledger.Entries(r.Context())
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, err)
		return
	}

	now := time.Now().UTC()
	views := make([]goalView, 0, len(goals))
	for _, g := range goals {
		views = append(views, newGoalView(g, now))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"goals":      views,
		"totalSaved": core.TotalsByKind(entries).Savings,
	})
}

func (s *Server) handleCreateGoal(w http.ResponseWriter, r *http.Request) {
	var req createGoalRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}

	target, err := core.ParseAmount(req.TargetAmount)
	if err != nil {
		writeError(w, r, http.StatusUnprocessableEntity, fmt.Errorf("invalid target amount: %w", err))
		return
	}

	goal := core.SavingsGoal{
		Name:         sanitizeInput(req.Name),
		TargetAmount: target,
	}
	if req.CurrentAmount != "" {
		current, err := core.ParseAmount(req.CurrentAmount)
		if err != nil {
			writeError(w, r, http.StatusUnprocessableEntity, fmt.Errorf("invalid current amount: %w", err))
			return
		}
		goal.CurrentAmount = current
	}
	if req.TargetDate != "" {
		date, err := parseDate(req.TargetDate)
		if err != nil {
			writeError(w, r, http.StatusUnprocessableEntity, fmt.Errorf("invalid target date: %w", err))
			return
		}
		goal.TargetDate = date
	}

	added, err := s.registry.AddSavingsGoal(r.Context(), goal)
	if err != nil {
		writeError(w, r, http.StatusUnprocessableEntity, err)
		return
	}
	writeJSON(w, http.StatusCreated, added)
}

func (s *Server) handleAddGoalFunds(w http.ResponseWriter, r *http.Request) {
	var req addFundsRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}

	amount, err := core.ParseAmount(req.Amount)
	if err != nil {
		writeError(w, r, http.StatusUnprocessableEntity, fmt.Errorf("invalid amount: %w", err))
		return
	}

	updated, err := s.registry.AddGoalFunds(r.Context(), r.PathValue("id"), amount)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			writeError(w, r, http.StatusNotFound, err)
			return
		}
		writeError(w, r, http.StatusUnprocessableEntity, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteGoal(w http.ResponseWriter, r *http.Request) {
	if err := s.registry.DeleteSavingsGoal(r.Context(), r.PathValue("id")); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			writeError(w, r, http.StatusNotFound, err)
			return
		}
		writeError(w, r, http.StatusInternalServerError, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
