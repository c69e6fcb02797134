package cartstore

import (
	"context"
	"sync"
)

// keyPrefix namespaces cart entries in shared stores.
const keyPrefix = "cart-storage:"

// Storage persists cart items per session. Only the item list is
// stored; transient UI state never reaches the storage layer.
type Storage interface {
	Save(ctx context.Context, sessionID string, items []Item) error
	Load(ctx context.Context, sessionID string) ([]Item, error)
}

// MemoryStorage is a mutex-guarded in-process store, suitable for tests
// and single-instance deployments.
type MemoryStorage struct {
	mu    sync.RWMutex
	store map[string][]Item
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{store: make(map[string][]Item)}
}

func (m *MemoryStorage) Save(_ context.Context, sessionID string, items []Item) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := make([]Item, len(items))
	copy(copied, items)
	m.store[keyPrefix+sessionID] = copied
	return nil
}

func (m *MemoryStorage) Load(_ context.Context, sessionID string) ([]Item, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	items, ok := m.store[keyPrefix+sessionID]
	if !ok {
		return nil, nil
	}
	copied := make([]Item, len(items))
	copy(copied, items)
	return copied, nil
}
