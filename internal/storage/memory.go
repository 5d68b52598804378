package storage

import (
	"context"
	"sync"
)

// MemoryStore is an in-process Store used as the default backend and in
// tests.
type MemoryStore struct {
	mu   sync.Mutex
	docs map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string][]byte)}
}

func (s *MemoryStore) Load(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	blob, ok := s.docs[key]
	if !ok {
		return nil, nil
	}
	out := make([]byte, len(blob))
	copy(out, blob)
	return out, nil
}

func (s *MemoryStore) Save(_ context.Context, key string, blob []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := make([]byte, len(blob))
	copy(kept, blob)
	s.docs[key] = kept
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}
