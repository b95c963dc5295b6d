package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps the session in process memory.
type MemoryStore struct {
	mu      sync.RWMutex
	session *Session
	now     func() time.Time
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{now: time.Now}
}

// Get returns the stored session. An expired session is dropped.
func (m *MemoryStore) Get(ctx context.Context) (*Session, error) {
	m.mu.RLock()
	s := m.session
	m.mu.RUnlock()

	if s == nil {
		return nil, ErrNoSession
	}
	if !s.usable(m.now()) {
		m.mu.Lock()
		if m.session == s {
			m.session = nil
		}
		m.mu.Unlock()
		return nil, ErrNoSession
	}

	cp := *s
	return &cp, nil
}

// Set stores a copy of s.
func (m *MemoryStore) Set(ctx context.Context, s *Session) error {
	if s == nil || s.Token == "" {
		return errInvalidSession()
	}
	cp := *s

	m.mu.Lock()
	m.session = &cp
	m.mu.Unlock()
	return nil
}

// Clear drops the stored session.
func (m *MemoryStore) Clear(ctx context.Context) error {
	m.mu.Lock()
	m.session = nil
	m.mu.Unlock()
	return nil
}
