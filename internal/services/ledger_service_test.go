package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"budget/internal/amqp"
	"budget/internal/core"
	"budget/internal/storage"
)

type recordingPublisher struct {
	events []*amqp.LedgerEventMessage
}

func (p *recordingPublisher) PublishLedgerEvent(_ context.Context, msg *amqp.LedgerEventMessage) error {
	p.events = append(p.events, msg)
	return nil
}

func newTestLedger(t *testing.T) (*LedgerService, *storage.Repository, *recordingPublisher) {
	t.Helper()
	repo := storage.NewRepository(storage.NewMemoryStore())
	pub := &recordingPublisher{}
	return NewLedgerService(repo, pub), repo, pub
}

func TestLedgerService_AddEntry(t *testing.T) {
	svc, repo, pub := newTestLedger(t)
	ctx := context.Background()

	added, err := svc.AddEntry(ctx, core.Entry{
		Kind:        core.Expense,
		Category:    "food",
		Amount:      decimal.RequireFromString("23.50"),
		Description: "lunch",
		Date:        core.NewDate(2024, 3, 12),
	})
	if err != nil {
		t.Fatalf("AddEntry() error = %v", err)
	}
	if added.ID == "" {
		t.Error("AddEntry() did not assign an ID")
	}

	entries, err := repo.Entries(ctx)
	if err != nil {
		t.Fatalf("Entries() error = %v", err)
	}
	if len(entries) != 1 || entries[0].ID != added.ID {
		t.Errorf("persisted entries = %+v, want the added entry", entries)
	}

	if len(pub.events) != 1 || pub.events[0].Action != amqp.ActionCreated {
		t.Errorf("published events = %+v, want one created event", pub.events)
	}
}

func TestLedgerService_AddEntry_RejectsInvalid(t *testing.T) {
	svc, repo, _ := newTestLedger(t)
	ctx := context.Background()

	_, err := svc.AddEntry(ctx, core.Entry{
		Kind:        core.Expense,
		Category:    "food",
		Amount:      decimal.NewFromInt(-10),
		Description: "bad",
		Date:        core.NewDate(2024, 3, 12),
	})
	if !errors.Is(err, core.ErrInvalidAmount) {
		t.Fatalf("AddEntry() error = %v, want ErrInvalidAmount", err)
	}

	entries, _ := repo.Entries(ctx)
	if len(entries) != 0 {
		t.Errorf("rejected entry was persisted: %+v", entries)
	}
}

func TestLedgerService_DeleteEntry(t *testing.T) {
	svc, _, pub := newTestLedger(t)
	ctx := context.Background()

	added, err := svc.AddEntry(ctx, core.Entry{
		Kind:        core.Income,
		Category:    "salary",
		Amount:      decimal.NewFromInt(3000),
		Description: "pay",
		Date:        core.NewDate(2024, 3, 25),
	})
	if err != nil {
		t.Fatalf("AddEntry() error = %v", err)
	}

	if err := svc.DeleteEntry(ctx, added.ID); err != nil {
		t.Fatalf("DeleteEntry() error = %v", err)
	}

	entries, err := svc.Entries(ctx)
	if err != nil {
		t.Fatalf("Entries() error = %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("ledger has %d entries after delete, want 0", len(entries))
	}

	if got := pub.events[len(pub.events)-1].Action; got != amqp.ActionDeleted {
		t.Errorf("last event action = %s, want deleted", got)
	}
}

func TestLedgerService_DeleteEntry_NotFound(t *testing.T) {
	svc, _, _ := newTestLedger(t)

	err := svc.DeleteEntry(context.Background(), "nope")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("DeleteEntry() error = %v, want ErrNotFound", err)
	}
}

func TestLedgerService_ImportEntries(t *testing.T) {
	svc, _, pub := newTestLedger(t)
	ctx := context.Background()

	drafts := []core.Entry{
		{
			Kind: core.Expense, Category: "food",
			Amount: decimal.RequireFromString("40.10"), Description: "grocery run",
			Date: core.NewDate(2024, 3, 2),
		},
		{
			Kind: core.Income, Category: "salary",
			Amount: decimal.NewFromInt(3000), Description: "payroll deposit",
			Date: core.NewDate(2024, 3, 1),
		},
	}

	n, err := svc.ImportEntries(ctx, drafts)
	if err != nil {
		t.Fatalf("ImportEntries() error = %v", err)
	}
	if n != 2 {
		t.Errorf("ImportEntries() = %d, want 2", n)
	}

	entries, _ := svc.Entries(ctx)
	if len(entries) != 2 {
		t.Fatalf("ledger has %d entries, want 2", len(entries))
	}
	if entries[0].ID == entries[1].ID {
		t.Error("imported entries share an ID")
	}

	for _, ev := range pub.events {
		if ev.Action != amqp.ActionImported {
			t.Errorf("event action = %s, want imported", ev.Action)
		}
	}
}

func TestLedgerService_ImportEntries_InvalidDraftFailsBatch(t *testing.T) {
	svc, _, _ := newTestLedger(t)
	ctx := context.Background()

	drafts := []core.Entry{
		{
			Kind: core.Expense, Category: "food",
			Amount: decimal.NewFromInt(10), Description: "ok",
			Date: core.NewDate(2024, 3, 2),
		},
		{
			Kind: "transfer", Category: "food",
			Amount: decimal.NewFromInt(10), Description: "bad kind",
			Date: core.NewDate(2024, 3, 2),
		},
	}

	if _, err := svc.ImportEntries(ctx, drafts); err == nil {
		t.Fatal("ImportEntries() error = nil, want validation error")
	}

	entries, _ := svc.Entries(ctx)
	if len(entries) != 0 {
		t.Errorf("partial batch persisted: %d entries", len(entries))
	}
}

func TestLedgerService_OnMutation(t *testing.T) {
	svc, _, _ := newTestLedger(t)
	ctx := context.Background()

	var notified int
	svc.OnMutation(func() { notified++ })

	added, err := svc.AddEntry(ctx, core.Entry{
		Kind:        core.Income,
		Category:    "salary",
		Amount:      decimal.NewFromInt(100),
		Description: "pay",
		Date:        core.NewDate(2024, 3, 1),
	})
	if err != nil {
		t.Fatalf("AddEntry() error = %v", err)
	}
	if notified != 1 {
		t.Fatalf("notified = %d after add, want 1", notified)
	}

	rules := []core.ScheduledIncomeRule{
		{ID: "r1", Description: "Salary", Amount: decimal.NewFromInt(500), Category: "salary", DayOfMonth: 1, Active: true},
	}
	if _, err := svc.MaterializeScheduled(ctx, rules, time.Date(2024, 4, 15, 0, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("MaterializeScheduled() error = %v", err)
	}
	if notified != 2 {
		t.Fatalf("notified = %d after materialize, want 2", notified)
	}

	if err := svc.DeleteEntry(ctx, added.ID); err != nil {
		t.Fatalf("DeleteEntry() error = %v", err)
	}
	if notified != 3 {
		t.Errorf("notified = %d after delete, want 3", notified)
	}

	// A no-op materialization run persists nothing and must not notify.
	if _, err := svc.MaterializeScheduled(ctx, rules, time.Date(2024, 4, 15, 0, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("MaterializeScheduled() error = %v", err)
	}
	if notified != 3 {
		t.Errorf("notified = %d after idle run, want 3", notified)
	}
}

func TestNewEntryID_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := newEntryID()
		if seen[id] {
			t.Fatalf("duplicate ID %s", id)
		}
		seen[id] = true
	}
}
