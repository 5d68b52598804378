// Package storage persists the ledger and its registries as JSON documents
// in an opaque key-value store.
package storage

import "context"

// Document keys. Each registry is one ordered JSON sequence under its key.
const (
	KeyLedger          = "ledger"
	KeySubscriptions   = "subscriptions"
	KeyScheduledIncome = "scheduled-income"
	KeySavingsGoals    = "savings-goals"
)

// Store is the opaque key-value collaborator. Load returns (nil, nil) for
// an absent key; callers treat that as an empty sequence.
type Store interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, blob []byte) error
	Close() error
}
