package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"budget/internal/amqp"
	"budget/internal/core"
	"budget/internal/storage"
)

// ErrNotFound is returned when an ID does not exist in its registry.
var ErrNotFound = errors.New("not found")

// EventPublisher emits ledger change events. Satisfied by *amqp.Client;
// nil disables publishing.
type EventPublisher interface {
	PublishLedgerEvent(ctx context.Context, msg *amqp.LedgerEventMessage) error
}

// LedgerService owns all ledger mutations. Every update is a pure
// transition over the loaded snapshot followed by an explicit save; the
// mutex serializes them so no two writers interleave. Events are published
// after the save and never fail the mutation.
type LedgerService struct {
	mu     sync.Mutex
	repo   *storage.Repository
	events EventPublisher

	// onMutation runs after every persisted ledger change, whichever path
	// triggered it. The HTTP layer subscribes its cache invalidation here so
	// background writes, not just request handlers, drop stale aggregates.
	onMutation func()
}

func NewLedgerService(repo *storage.Repository, events EventPublisher) *LedgerService {
	return &LedgerService{repo: repo, events: events}
}

// OnMutation registers a callback invoked after every persisted change.
// Must be called before the service is shared across goroutines.
func (s *LedgerService) OnMutation(fn func()) {
	s.onMutation = fn
}

func (s *LedgerService) notifyMutation() {
	if s.onMutation != nil {
		s.onMutation()
	}
}

// Entries returns the current ledger snapshot.
func (s *LedgerService) Entries(ctx context.Context) ([]core.Entry, error) {
	return s.repo.Entries(ctx)
}

// AddEntry validates and appends one entry. A blank ID gets a fresh
// process-unique one.
func (s *LedgerService) AddEntry(ctx context.Context, e core.Entry) (core.Entry, error) {
	if e.ID == "" {
		e.ID = newEntryID()
	}
	if err := e.Validate(); err != nil {
		return core.Entry{}, fmt.Errorf("validate entry: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.repo.Entries(ctx)
	if err != nil {
		return core.Entry{}, err
	}
	if err := s.repo.SaveEntries(ctx, append(entries, e)); err != nil {
		return core.Entry{}, err
	}
	s.notifyMutation()

	slog.InfoContext(ctx, "Entry added",
		"entry_id", e.ID,
		"kind", string(e.Kind),
		"category", e.Category,
		"amount", e.Amount.String())

	s.publish(ctx, e.ID, amqp.ActionCreated)
	return e, nil
}

// DeleteEntry removes the entry with the given ID.
func (s *LedgerService) DeleteEntry(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.repo.Entries(ctx)
	if err != nil {
		return err
	}

	kept := entries[:0:0]
	found := false
	for _, e := range entries {
		if e.ID == id {
			found = true
			continue
		}
		kept = append(kept, e)
	}
	if !found {
		return fmt.Errorf("entry %s: %w", id, ErrNotFound)
	}

	if err := s.repo.SaveEntries(ctx, kept); err != nil {
		return err
	}
	s.notifyMutation()

	slog.InfoContext(ctx, "Entry deleted", "entry_id", id)
	s.publish(ctx, id, amqp.ActionDeleted)
	return nil
}

// ImportEntries appends a batch of already-parsed entries, such as the
// importer's output. Invalid drafts fail the whole batch: the import
// collaborator is responsible for dropping bad rows before this point.
func (s *LedgerService) ImportEntries(ctx context.Context, drafts []core.Entry) (int, error) {
	for i := range drafts {
		if drafts[i].ID == "" {
			drafts[i].ID = newEntryID()
		}
		if err := drafts[i].Validate(); err != nil {
			return 0, fmt.Errorf("validate imported entry %d: %w", i, err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.repo.Entries(ctx)
	if err != nil {
		return 0, err
	}
	if err := s.repo.SaveEntries(ctx, append(entries, drafts...)); err != nil {
		return 0, err
	}
	s.notifyMutation()

	slog.InfoContext(ctx, "Entries imported", "count", len(drafts))
	for _, e := range drafts {
		s.publish(ctx, e.ID, amqp.ActionImported)
	}
	return len(drafts), nil
}

// MaterializeScheduled applies the pure materialization decision under the
// ledger lock so no concurrent trigger can double-emit, then persists and
// publishes the created entries.
func (s *LedgerService) MaterializeScheduled(ctx context.Context, rules []core.ScheduledIncomeRule, now time.Time) ([]core.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.repo.Entries(ctx)
	if err != nil {
		return nil, err
	}

	created := Materialize(rules, now, entries)
	if len(created) == 0 {
		return nil, nil
	}

	if err := s.repo.SaveEntries(ctx, append(entries, created...)); err != nil {
		return nil, err
	}
	s.notifyMutation()

	for _, e := range created {
		slog.InfoContext(ctx, "Created entry from scheduled income rule",
			"entry_id", e.ID,
			"description", e.Description,
			"amount", e.Amount.String(),
			"date", e.Date.Format("2006-01-02"))
		s.publish(ctx, e.ID, amqp.ActionMaterialized)
	}
	return created, nil
}

func (s *LedgerService) publish(ctx context.Context, entryID, action string) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishLedgerEvent(ctx, amqp.NewLedgerEventMessage(entryID, action)); err != nil {
		// The mutation is already persisted; a lost event only delays the
		// external mirror.
		slog.ErrorContext(ctx, "Failed to publish ledger event",
			"entry_id", entryID,
			"action", action,
			"error", err)
	}
}

var (
	idMu   sync.Mutex
	lastID int64
)

// newEntryID returns a process-unique, time-ordered entry ID.
func newEntryID() string {
	idMu.Lock()
	defer idMu.Unlock()
	now := time.Now().UnixNano()
	if now <= lastID {
		now = lastID + 1
	}
	lastID = now
	return fmt.Sprintf("txn-%d", now)
}
