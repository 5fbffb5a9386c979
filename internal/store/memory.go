package store

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is an in-process KVStore. It is used when persistence is
// disabled and in tests.
type MemoryStore struct {
	mu      sync.RWMutex
	values  map[string]string
	updated map[string]time.Time
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		values:  make(map[string]string),
		updated: make(map[string]time.Time),
	}
}

func (m *MemoryStore) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *MemoryStore) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	m.updated[key] = time.Now()
	return nil
}

func (m *MemoryStore) UpdatedAt(ctx context.Context, key string) (time.Time, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.updated[key], nil
}

func (m *MemoryStore) Close() error {
	return nil
}
