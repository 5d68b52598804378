package storage

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
)

func TestSQLiteStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "budget.db")
	store, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("NewSQLiteStore() error = %v", err)
	}
	defer store.Close()

	ctx := context.Background()

	got, err := store.Load(ctx, "ledger")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got != nil {
		t.Errorf("Load() on absent key = %q, want nil", got)
	}

	body := []byte(`{"entries":[]}`)
	if err := store.Save(ctx, "ledger", body); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	got, err = store.Load(ctx, "ledger")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !bytes.Equal(got, body) {
		t.Errorf("Load() = %s, want %s", got, body)
	}

	// Overwrite replaces, not appends.
	updated := []byte(`{"entries":[{"id":"1"}]}`)
	if err := store.Save(ctx, "ledger", updated); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	got, err = store.Load(ctx, "ledger")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !bytes.Equal(got, updated) {
		t.Errorf("Load() after overwrite = %s, want %s", got, updated)
	}
}

// Reopening the same file must see the persisted data and tolerate the
// already-applied schema.
func TestSQLiteStore_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "budget.db")
	ctx := context.Background()

	store, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("NewSQLiteStore() error = %v", err)
	}
	if err := store.Save(ctx, "subscriptions", []byte(`[]`)); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	reopened, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("NewSQLiteStore() on existing file error = %v", err)
	}
	defer reopened.Close()

	got, err := reopened.Load(ctx, "subscriptions")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !bytes.Equal(got, []byte(`[]`)) {
		t.Errorf("Load() after reopen = %s, want []", got)
	}
}
