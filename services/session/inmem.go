package session

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"glambook/models"
)

// InMemStore is a map-backed Store used in tests and local development.
type InMemStore struct {
	mu       sync.RWMutex
	sessions map[string]*models.ConversationMemory
	TTL      time.Duration
}

// NewInMemStore builds an empty in-memory store.
func NewInMemStore(ttl time.Duration) *InMemStore {
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	return &InMemStore{sessions: make(map[string]*models.ConversationMemory), TTL: ttl}
}

func (s *InMemStore) Get(ctx context.Context, sessionID string) (*models.ConversationMemory, error) {
	s.mu.RLock()
	mem, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	if time.Since(mem.UpdatedAt) > s.TTL {
		s.mu.Lock()
		delete(s.sessions, sessionID)
		s.mu.Unlock()
		return nil, ErrNotFound
	}
	// Return a deep copy so callers can't mutate the stored session
	// without going through Save.
	return clone(mem), nil
}

func (s *InMemStore) Save(ctx context.Context, mem *models.ConversationMemory) error {
	s.mu.Lock()
	s.sessions[mem.SessionID] = clone(mem)
	s.mu.Unlock()
	return nil
}

func clone(mem *models.ConversationMemory) *models.ConversationMemory {
	raw, err := json.Marshal(mem)
	if err != nil {
		c := *mem
		return &c
	}
	var out models.ConversationMemory
	if err := json.Unmarshal(raw, &out); err != nil {
		c := *mem
		return &c
	}
	return &out
}

func (s *InMemStore) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()
	return nil
}
