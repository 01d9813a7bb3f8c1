package credentials

import (
	"context"
	"sync"
)

// NewMemoryStore returns a Store backed by an in-memory value, for tests and
// throwaway sessions.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// MemoryStore implements Store without touching the filesystem.
type MemoryStore struct {
	mu    sync.RWMutex
	creds Credentials
	set   bool
}

// Load returns the held credential or ErrNotFound.
func (s *MemoryStore) Load(_ context.Context) (Credentials, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.set {
		return Credentials{}, ErrNotFound
	}
	return s.creds, nil
}

// Save replaces the held credential.
func (s *MemoryStore) Save(_ context.Context, creds Credentials) error {
	s.mu.Lock()
	s.creds = creds
	s.set = true
	s.mu.Unlock()
	return nil
}

// Clear drops the held credential.
func (s *MemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	s.creds = Credentials{}
	s.set = false
	s.mu.Unlock()
	return nil
}

// Has reports whether a credential is currently held. Useful for tests.
func (s *MemoryStore) Has() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.set
}
