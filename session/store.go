package session

import (
	"context"
	"sync"

	"github.com/0xletuss/67foodstreet/core"
)

// Store persists the session between runs. Load returns
// core.ErrSessionMissing when nothing is saved.
type Store interface {
	Save(ctx context.Context, s *Session) error
	Load(ctx context.Context) (*Session, error)
	Clear(ctx context.Context) error
}

// MemoryStore keeps the session in process memory. Used by tests and by
// short-lived invocations that do not want persistence.
type MemoryStore struct {
	mu      sync.RWMutex
	current *Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Save(ctx context.Context, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *s
	m.current = &copied
	return nil
}

func (m *MemoryStore) Load(ctx context.Context) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.current == nil {
		return nil, core.ErrSessionMissing
	}
	copied := *m.current
	return &copied, nil
}

func (m *MemoryStore) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = nil
	return nil
}
