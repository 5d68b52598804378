package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"budget/internal/core"
)

// Repository reads and writes the typed registries over a Store. Absent
// keys come back as empty sequences; no schema versioning is applied.
type Repository struct {
	store Store
}

func NewRepository(store Store) *Repository {
	return &Repository{store: store}
}

// Store exposes the underlying key-value store.
func (r *Repository) Store() Store {
	return r.store
}

func (r *Repository) Close() error {
	return r.store.Close()
}

// Entries returns the full ledger snapshot.
func (r *Repository) Entries(ctx context.Context) ([]core.Entry, error) {
	var entries []core.Entry
	if err := r.load(ctx, KeyLedger, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *Repository) SaveEntries(ctx context.Context, entries []core.Entry) error {
	return r.save(ctx, KeyLedger, entries)
}

func (r *Repository) Subscriptions(ctx context.Context) ([]core.Subscription, error) {
	var subs []core.Subscription
	if err := r.load(ctx, KeySubscriptions, &subs); err != nil {
		return nil, err
	}
	return subs, nil
}

func (r *Repository) SaveSubscriptions(ctx context.Context, subs []core.Subscription) error {
	return r.save(ctx, KeySubscriptions, subs)
}

func (r *Repository) ScheduledIncomeRules(ctx context.Context) ([]core.ScheduledIncomeRule, error) {
	var rules []core.ScheduledIncomeRule
	if err := r.load(ctx, KeyScheduledIncome, &rules); err != nil {
		return nil, err
	}
	return rules, nil
}

func (r *Repository) SaveScheduledIncomeRules(ctx context.Context, rules []core.ScheduledIncomeRule) error {
	return r.save(ctx, KeyScheduledIncome, rules)
}

func (r *Repository) SavingsGoals(ctx context.Context) ([]core.SavingsGoal, error) {
	var goals []core.SavingsGoal
	if err := r.load(ctx, KeySavingsGoals, &goals); err != nil {
		return nil, err
	}
	return goals, nil
}

func (r *Repository) SaveSavingsGoals(ctx context.Context, goals []core.SavingsGoal) error {
	return r.save(ctx, KeySavingsGoals, goals)
}

func (r *Repository) load(ctx context.Context, key string, out any) error {
	blob, err := r.store.Load(ctx, key)
	if err != nil {
		return fmt.Errorf("load %s: %w", key, err)
	}
	if blob == nil {
		return nil
	}
	if err := json.Unmarshal(blob, out); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

func (r *Repository) save(ctx context.Context, key string, in any) error {
	blob, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := r.store.Save(ctx, key, blob); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}
