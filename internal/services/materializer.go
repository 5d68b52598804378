// Package services orchestrates ledger mutations and the recurring income
// and projection logic on top of the pure core functions.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"budget/internal/core"
	"budget/internal/storage"
)

// Per-month rule states. A rule is PENDING until its day of month is
// reached, DUE once it is reached with no matching entry this month, and
// SATISFIED once a matching entry exists.
type RuleState string

const (
	StatePending   RuleState = "pending"
	StateDue       RuleState = "due"
	StateSatisfied RuleState = "satisfied"
)

// scheduledPrefix is the reserved description marker that identifies an
// entry as auto-generated from a scheduled income rule. Matching relies on
// it; user-entered descriptions never carry it.
const scheduledPrefix = "Scheduled income: "

// ScheduledDescription returns the marked description an emitted entry
// carries for the given rule.
func ScheduledDescription(rule core.ScheduledIncomeRule) string {
	return scheduledPrefix + rule.Description
}

// MaterializedEntryID derives the deterministic entry ID for a rule and
// month, so repeated materialization attempts are detectable by ID as well
// as by description.
func MaterializedEntryID(ruleID string, ym core.YearMonth) string {
	return fmt.Sprintf("sched-%s-%04d-%02d", ruleID, ym.Year, ym.Month)
}

// matchesRuleMonth reports whether an existing entry satisfies the rule for
// the given month: it carries the rule's marked description and falls in
// the same calendar month.
func matchesRuleMonth(e core.Entry, rule core.ScheduledIncomeRule, ym core.YearMonth) bool {
	if !strings.HasPrefix(e.Description, scheduledPrefix) {
		return false
	}
	if e.Description != ScheduledDescription(rule) {
		return false
	}
	return core.YearMonthOf(e.Date) == ym
}

// EvaluateRule computes the rule's state for the month of now against a
// ledger snapshot. Inactive rules never leave PENDING regardless of date.
func EvaluateRule(rule core.ScheduledIncomeRule, now time.Time, entries []core.Entry) RuleState {
	if !rule.Active {
		return StatePending
	}

	ym := core.YearMonth{Year: now.Year(), Month: int(now.Month())}
	for _, e := range entries {
		if matchesRuleMonth(e, rule, ym) {
			return StateSatisfied
		}
	}

	if now.Day() >= rule.DayOfMonth {
		return StateDue
	}
	return StatePending
}

// Materialize returns the entries that must be appended so every due rule
// is satisfied for the month of now. It never mutates existing entries, and
// re-invoking with the returned entries appended yields nothing: the whole
// decision is recomputed from (rules, now, existing) on every call, which
// is what makes the operation idempotent.
func Materialize(rules []core.ScheduledIncomeRule, now time.Time, existing []core.Entry) []core.Entry {
	ym := core.YearMonth{Year: now.Year(), Month: int(now.Month())}

	var out []core.Entry
	for _, rule := range rules {
		if EvaluateRule(rule, now, existing) != StateDue {
			continue
		}
		out = append(out, core.Entry{
			ID:          MaterializedEntryID(rule.ID, ym),
			Kind:        core.Income,
			Category:    rule.Category,
			Amount:      rule.Amount,
			Description: ScheduledDescription(rule),
			Date:        core.NewDate(ym.Year, ym.Month, rule.DayOfMonth),
		})
	}
	return out
}

// Materializer loads the rule registry and materializes due scheduled
// income through the ledger service. Safe to run on any trigger (timer,
// registry change, manual) because the underlying decision is idempotent.
type Materializer struct {
	repo   *storage.Repository
	ledger *LedgerService
}

func NewMaterializer(repo *storage.Repository, ledger *LedgerService) *Materializer {
	return &Materializer{repo: repo, ledger: ledger}
}

// Run materializes all due rules for now and returns how many entries were
// created.
func (m *Materializer) Run(ctx context.Context, now time.Time) (int, error) {
	if m.repo == nil || m.ledger == nil {
		return 0, fmt.Errorf("materializer not properly initialized")
	}

	rules, err := m.repo.ScheduledIncomeRules(ctx)
	if err != nil {
		return 0, fmt.Errorf("load scheduled income rules: %w", err)
	}

	slog.InfoContext(ctx, "Materializing scheduled income",
		"total_rules", len(rules),
		"processing_date", now.Format("2006-01-02"))

	created, err := m.ledger.MaterializeScheduled(ctx, rules, now)
	if err != nil {
		return 0, fmt.Errorf("materialize scheduled income: %w", err)
	}

	slog.InfoContext(ctx, "Scheduled income processing complete",
		"created", len(created),
		"total_rules", len(rules))

	return len(created), nil
}
