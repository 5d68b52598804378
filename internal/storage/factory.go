package storage

import (
	"fmt"
	"log/slog"
)

// BackendType selects the Store implementation.
type BackendType string

const (
	MemoryBackend BackendType = "memory"
	SQLiteBackend BackendType = "sqlite"
)

// IsValid returns true if the backend type is known.
func (bt BackendType) IsValid() bool {
	switch bt {
	case MemoryBackend, SQLiteBackend:
		return true
	default:
		return false
	}
}

func (bt BackendType) String() string {
	return string(bt)
}

// Open creates the Store for the configured backend.
func Open(backend BackendType, dbPath string, logger *slog.Logger) (Store, error) {
	if logger == nil {
		logger = slog.Default()
	}

	switch backend {
	case SQLiteBackend:
		store, err := NewSQLiteStore(dbPath)
		if err != nil {
			return nil, fmt.Errorf("initialize sqlite store: %w", err)
		}
		logger.Info("Initialized SQLite store", "db_path", dbPath)
		return store, nil
	case MemoryBackend:
		logger.Info("Initialized memory store")
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("invalid backend type: %s", backend)
	}
}
