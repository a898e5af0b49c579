package cache

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryStore is a process-local Store backed by a mutex-guarded map.
// It has no size bound.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     Clock
}

type memoryEntry struct {
	value    []byte
	storedAt time.Time
}

// NewMemoryStore creates an empty store. A nil clock means time.Now.
func NewMemoryStore(clock Clock) *MemoryStore {
	if clock == nil {
		clock = time.Now
	}
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		now:     clock,
	}
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, time.Duration, bool, error) {
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()

	if !ok {
		return nil, 0, false, nil
	}
	return e.value, s.now().Sub(e.storedAt), true, nil
}

func (s *MemoryStore) Put(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	s.entries[key] = memoryEntry{
		value:    value,
		storedAt: s.now(),
	}
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	s.entries = make(map[string]memoryEntry)
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Size(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries), nil
}

func (s *MemoryStore) Keys(_ context.Context) ([]string, error) {
	s.mu.RLock()
	keys := make([]string, 0, len(s.entries))
	for k := range s.entries {
		keys = append(keys, k)
	}
	s.mu.RUnlock()

	sort.Strings(keys)
	return keys, nil
}

var _ Store = (*MemoryStore)(nil)
