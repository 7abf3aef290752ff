package session

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore keeps instances in process memory.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	max      int
}

// NewMemoryStore creates a store holding at most max instances.
// A max of zero or less means unlimited.
func NewMemoryStore(max int) *MemoryStore {
	return &MemoryStore{sessions: make(map[string]*Session), max: max}
}

func (m *MemoryStore) Get(ctx context.Context, id string) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	if s.IsExpired() {
		_ = m.Delete(ctx, id)
		return nil, ErrExpired
	}
	return s, nil
}

// Set stores s. Replacing an existing ID never fails on capacity.
func (m *MemoryStore) Set(ctx context.Context, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.sessions[s.ID]; !exists && m.max > 0 && len(m.sessions) >= m.max {
		return ErrFull
	}
	m.sessions[s.ID] = s
	return nil
}

func (m *MemoryStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

func (m *MemoryStore) Cleanup(ctx context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var removed []string
	for id, s := range m.sessions {
		if s.IsExpired() {
			delete(m.sessions, id)
			removed = append(removed, id)
		}
	}
	sort.Strings(removed)
	return removed, nil
}

func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

var _ Store = (*MemoryStore)(nil)
