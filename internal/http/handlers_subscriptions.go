package http

import (
	"errors"
	"fmt"
	"net/http"

	"budget/internal/core"
	"budget/internal/services"
)

type createSubscriptionRequest struct {
	Name        string `json:"name"`
	Amount      string `json:"amount"`
	Category    string `json:"category"`
	Frequency   string `json:"frequency"`
	NextDueDate string `json:"nextDueDate"`
}

func (s *Server) handleListSubscriptions(w http.ResponseWriter, r *http.Request) {
	subs, err := s.registry.Subscriptions(r.Context())
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, err)
		return
	}
	if subs == nil {
		subs = []core.Subscription{}
	}
	total, err := s.registry.MonthlyRecurringTotal(r.Context())
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, err)
		return
	}
	breakdown, err := core.MonthlyRecurringByCategory(subs)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, err)
		return
	}
	if breakdown == nil {
		breakdown = []core.CategoryAmount{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"subscriptions":     subs,
		"monthlyRecurring":  total,
		"categoryBreakdown": breakdown,
	})
}

func (s *Server) handleCreateSubscription(w http.ResponseWriter, r *http.Request) {
	var req createSubscriptionRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}

	amount, err := core.ParseAmount(req.Amount)
	if err != nil {
		writeError(w, r, http.StatusUnprocessableEntity, fmt.Errorf("invalid amount: %w", err))
		return
	}
	var nextDue core.Date
	if req.NextDueDate != "" {
		nextDue, err = parseDate(req.NextDueDate)
		if err != nil {
			writeError(w, r, http.StatusUnprocessableEntity, fmt.Errorf("invalid next due date: %w", err))
			return
		}
	}

	sub := core.Subscription{
		Name:        sanitizeInput(req.Name),
		Amount:      amount,
		Category:    sanitizeInput(req.Category),
		Frequency:   core.Frequency(sanitizeInput(req.Frequency)),
		NextDueDate: nextDue,
		Active:      true,
	}

	added, err := s.registry.AddSubscription(r.Context(), sub)
	if err != nil {
		writeError(w, r, http.StatusUnprocessableEntity, err)
		return
	}

	s.invalidate()
	writeJSON(w, http.StatusCreated, added)
}

func (s *Server) handleToggleSubscription(w http.ResponseWriter, r *http.Request) {
	toggled, err := s.registry.ToggleSubscription(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			writeError(w, r, http.StatusNotFound, err)
			return
		}
		writeError(w, r, http.StatusInternalServerError, err)
		return
	}
	s.invalidate()
	writeJSON(w, http.StatusOK, toggled)
}

func (s *Server) handleDeleteSubscription(w http.ResponseWriter, r *http.Request) {
	if err := s.registry.DeleteSubscription(r.Context(), r.PathValue("id")); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			writeError(w, r, http.StatusNotFound, err)
			return
		}
		writeError(w, r, http.StatusInternalServerError, err)
		return
	}
	s.invalidate()
	w.WriteHeader(http.StatusNoContent)
}
