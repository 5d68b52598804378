// Package worker mirrors ledger changes to the external spreadsheet.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"budget/internal/amqp"
	"budget/internal/export"
	"budget/internal/storage"
)

// SyncWorker consumes ledger events and appends the referenced entries to
// the spreadsheet mirror. The mirror is append-only: deletions only leave
// a log line, reconciling the sheet is a manual operation.
type SyncWorker struct {
	repo   *storage.Repository
	writer export.EntryWriter
}

func NewSyncWorker(repo *storage.Repository, writer export.EntryWriter) *SyncWorker {
	return &SyncWorker{repo: repo, writer: writer}
}

// HandleEvent processes one ledger event. Returning an error requeues the
// message.
func (w *SyncWorker) HandleEvent(ctx context.Context, msg *amqp.LedgerEventMessage) error {
	slog.InfoContext(ctx, "Processing ledger event",
		"entry_id", msg.EntryID,
		"action", msg.Action)

	if msg.Action == amqp.ActionDeleted {
		slog.InfoContext(ctx, "Entry deleted, mirror row left in place",
			"entry_id", msg.EntryID)
		return nil
	}

	entries, err := w.repo.Entries(ctx)
	if err != nil {
		return fmt.Errorf("load ledger: %w", err)
	}

	for _, e := range entries {
		if e.ID != msg.EntryID {
			continue
		}
		ref, err := w.writer.Append(ctx, e)
		if err != nil {
			return fmt.Errorf("append to mirror: %w", err)
		}
		slog.InfoContext(ctx, "Entry mirrored",
			"entry_id", e.ID,
			"row_ref", ref,
			"amount", e.Amount.String())
		return nil
	}

	// The entry may have been deleted between publish and consume; the
	// event is acked so it does not requeue forever.
	slog.WarnContext(ctx, "Entry from event no longer in ledger",
		"entry_id", msg.EntryID,
		"action", msg.Action)
	return nil
}
