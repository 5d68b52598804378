package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/shopspring/decimal"

	"budget/internal/core"
	"budget/internal/storage"
)

// RegistryService owns the three registries next to the ledger:
// subscriptions, scheduled income rules, and savings goals. Mutations are
// serialized the same way the ledger's are.
type RegistryService struct {
	mu   sync.Mutex
	repo *storage.Repository
}

func NewRegistryService(repo *storage.Repository) *RegistryService {
	return &RegistryService{repo: repo}
}

func (s *RegistryService) Subscriptions(ctx context.Context) ([]core.Subscription, error) {
	return s.repo.Subscriptions(ctx)
}

func (s *RegistryService) AddSubscription(ctx context.Context, sub core.Subscription) (core.Subscription, error) {
	if sub.ID == "" {
		sub.ID = newEntryID()
	}
	if err := sub.Validate(); err != nil {
		return core.Subscription{}, fmt.Errorf("validate subscription: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	subs, err := s.repo.Subscriptions(ctx)
	if err != nil {
		return core.Subscription{}, err
	}
	if err := s.repo.SaveSubscriptions(ctx, append(subs, sub)); err != nil {
		return core.Subscription{}, err
	}

	slog.InfoContext(ctx, "Subscription added",
		"id", sub.ID,
		"name", sub.Name,
		"frequency", string(sub.Frequency))
	return sub, nil
}

// ToggleSubscription flips the active flag and returns the updated record.
func (s *RegistryService) ToggleSubscription(ctx context.Context, id string) (core.Subscription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	subs, err := s.repo.Subscriptions(ctx)
	if err != nil {
		return core.Subscription{}, err
	}
	for i := range subs {
		if subs[i].ID != id {
			continue
		}
		subs[i].Active = !subs[i].Active
		if err := s.repo.SaveSubscriptions(ctx, subs); err != nil {
			return core.Subscription{}, err
		}
		return subs[i], nil
	}
	return core.Subscription{}, fmt.Errorf("subscription %s: %w", id, ErrNotFound)
}

func (s *RegistryService) DeleteSubscription(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	subs, err := s.repo.Subscriptions(ctx)
	if err != nil {
		return err
	}
	kept, found := removeSubscription(subs, id)
	if !found {
		return fmt.Errorf("subscription %s: %w", id, ErrNotFound)
	}
	return s.repo.SaveSubscriptions(ctx, kept)
}

// MonthlyRecurringTotal returns the normalized monthly cost of all active
// subscriptions.
func (s *RegistryService) MonthlyRecurringTotal(ctx context.Context) (decimal.Decimal, error) {
	subs, err := s.repo.Subscriptions(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	return core.MonthlyRecurringTotal(subs)
}

func (s *RegistryService) ScheduledIncomeRules(ctx context.Context) ([]core.ScheduledIncomeRule, error) {
	return s.repo.ScheduledIncomeRules(ctx)
}

func (s *RegistryService) AddScheduledIncomeRule(ctx context.Context, rule core.ScheduledIncomeRule) (core.ScheduledIncomeRule, error) {
	if rule.ID == "" {
		rule.ID = newEntryID()
	}
	if err := rule.Validate(); err != nil {
		return core.ScheduledIncomeRule{}, fmt.Errorf("validate scheduled income rule: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rules, err := s.repo.ScheduledIncomeRules(ctx)
	if err != nil {
		return core.ScheduledIncomeRule{}, err
	}
	if err := s.repo.SaveScheduledIncomeRules(ctx, append(rules, rule)); err != nil {
		return core.ScheduledIncomeRule{}, err
	}

	slog.InfoContext(ctx, "Scheduled income rule added",
		"rule_id", rule.ID,
		"description", rule.Description,
		"day_of_month", rule.DayOfMonth)
	return rule, nil
}

func (s *RegistryService) ToggleScheduledIncomeRule(ctx context.Context, id string) (core.ScheduledIncomeRule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rules, err := s.repo.ScheduledIncomeRules(ctx)
	if err != nil {
		return core.ScheduledIncomeRule{}, err
	}
	for i := range rules {
		if rules[i].ID != id {
			continue
		}
		rules[i].Active = !rules[i].Active
		if err := s.repo.SaveScheduledIncomeRules(ctx, rules); err != nil {
			return core.ScheduledIncomeRule{}, err
		}
		return rules[i], nil
	}
	return core.ScheduledIncomeRule{}, fmt.Errorf("scheduled income rule %s: %w", id, ErrNotFound)
}

func (s *RegistryService) DeleteScheduledIncomeRule(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rules, err := s.repo.ScheduledIncomeRules(ctx)
	if err != nil {
		return err
	}
	kept := rules[:0:0]
	found := false
	for _, r := range rules {
		if r.ID == id {
			found = true
			continue
		}
		kept = append(kept, r)
	}
	if !found {
		return fmt.Errorf("scheduled income rule %s: %w", id, ErrNotFound)
	}
	return s.repo.SaveScheduledIncomeRules(ctx, kept)
}

func (s *RegistryService) SavingsGoals(ctx context.Context) ([]core.SavingsGoal, error) {
	return s.repo.SavingsGoals(ctx)
}

func (s *RegistryService) AddSavingsGoal(ctx context.Context, goal core.SavingsGoal) (core.SavingsGoal, error) {
	if goal.ID == "" {
		goal.ID = newEntryID()
	}
	if err := goal.Validate(); err != nil {
		return core.SavingsGoal{}, fmt.Errorf("validate savings goal: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	goals, err := s.repo.SavingsGoals(ctx)
	if err != nil {
		return core.SavingsGoal{}, err
	}
	if err := s.repo.SaveSavingsGoals(ctx, append(goals, goal)); err != nil {
		return core.SavingsGoal{}, err
	}
	return goal, nil
}

// AddGoalFunds raises a goal's current amount. Goal progress is
// user-maintained; it is never derived from savings-kind ledger entries.
func (s *RegistryService) AddGoalFunds(ctx context.Context, id string, amount decimal.Decimal) (core.SavingsGoal, error) {
	if amount.IsNegative() {
		return core.SavingsGoal{}, core.ErrInvalidAmount
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	goals, err := s.repo.SavingsGoals(ctx)
	if err != nil {
		return core.SavingsGoal{}, err
	}
	for i := range goals {
		if goals[i].ID != id {
			continue
		}
		goals[i].CurrentAmount = goals[i].CurrentAmount.Add(amount)
		if err := s.repo.SaveSavingsGoals(ctx, goals); err != nil {
			return core.SavingsGoal{}, err
		}
		return goals[i], nil
	}
	return core.SavingsGoal{}, fmt.Errorf("savings goal %s: %w", id, ErrNotFound)
}

func (s *RegistryService) DeleteSavingsGoal(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	goals, err := s.repo.SavingsGoals(ctx)
	if err != nil {
		return err
	}
	kept := goals[:0:0]
	found := false
	for _, g := range goals {
		if g.ID == id {
			found = true
			continue
		}
		kept = append(kept, g)
	}
	if !found {
		return fmt.Errorf("savings goal %s: %w", id, ErrNotFound)
	}
	return s.repo.SaveSavingsGoals(ctx, kept)
}

func removeSubscription(subs []core.Subscription, id string) ([]core.Subscription, bool) {
	kept := subs[:0:0]
	found := false
	for _, sub := range subs {
		if sub.ID == id {
			found = true
			continue
		}
		kept = append(kept, sub)
	}
	return kept, found
}
