package http

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"budget/internal/core"
	"budget/internal/services"
)

type createScheduledIncomeRequest struct {
	Description string `json:"description"`
	Amount      string `json:"amount"`
	Category    string `json:"category"`
	DayOfMonth  int    `json:"dayOfMonth"`
}

func (s *Server) handleListScheduledIncome(w http.ResponseWriter, r *http.Request) {
	rules, err := s.registry.ScheduledIncomeRules(r.Context())
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, err)
		return
	}
	if rules == nil {
		rules = []core.ScheduledIncomeRule{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"rules": rules})
}

func (s *Server) handleCreateScheduledIncome(w http.ResponseWriter, r *http.Request) {
	var req createScheduledIncomeRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}

	amount, err := core.ParseAmount(req.Amount)
	if err != nil {
		writeError(w, r, http.StatusUnprocessableEntity, fmt.Errorf("invalid amount: %w", err))
		return
	}

	rule := core.ScheduledIncomeRule{
		Description: sanitizeInput(req.Description),
		Amount:      amount,
		Category:    sanitizeInput(req.Category),
		DayOfMonth:  req.DayOfMonth,
		Active:      true,
	}

	added, err := s.registry.AddScheduledIncomeRule(r.Context(), rule)
	if err != nil {
		writeError(w, r, http.StatusUnprocessableEntity, err)
		return
	}
	writeJSON(w, http.StatusCreated, added)
}

func (s *Server) handleToggleScheduledIncome(w http.ResponseWriter, r *http.Request) {
	toggled, err := s.registry.ToggleScheduledIncomeRule(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			writeError(w, r, http.StatusNotFound, err)
			return
		}
		writeError(w, r, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, toggled)
}

func (s *Server) handleDeleteScheduledIncome(w http.ResponseWriter, r *http.Request) {
	if err := s.registry.DeleteScheduledIncomeRule(r.Context(), r.PathValue("id")); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			writeError(w, r, http.StatusNotFound, err)
			return
		}
		writeError(w, r, http.StatusInternalServerError, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleProcessScheduledIncome runs one materialization pass immediately.
// Safe to call any number of times; rules already satisfied this month
// produce nothing.
func (s *Server) handleProcessScheduledIncome(w http.ResponseWriter, r *http.Request) {
	rules, err := s.registry.ScheduledIncomeRules(r.Context())
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, err)
		return
	}

	created, err := s.ledger.MaterializeScheduled(r.Context(), rules, time.Now())
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, err)
		return
	}
	if created == nil {
		created = []core.Entry{}
	}

	s.invalidate()
	writeJSON(w, http.StatusOK, map[string]any{
		"created": created,
		"count":   len(created),
	})
}
