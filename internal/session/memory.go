// internal/session/memory.go
package session

import (
	"context"
	"sync"
)

// MemoryStore is an in-process Store, used when Redis is not configured.
type MemoryStore struct {
	mu       sync.RWMutex
	profiles map[string][]byte
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{profiles: make(map[string][]byte)}
}

func (s *MemoryStore) Save(_ context.Context, token string, profile []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := make([]byte, len(profile))
	copy(cp, profile)
	s.profiles[token] = cp
	return nil
}

func (s *MemoryStore) Load(_ context.Context, token string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.profiles[token]
	if !ok {
		return nil, false, nil
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	return cp, true, nil
}

func (s *MemoryStore) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.profiles, token)
	return nil
}
