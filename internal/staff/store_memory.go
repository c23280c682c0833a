package staff

import (
	"context"
	"strings"
	"sync"
	"time"

	"tallyboard/pkg/platform/sentinel"
)

// InMemory is a map-backed Store for unit tests and local development.
type InMemory struct {
	mu      sync.RWMutex
	nextID  int64
	members map[string]*Member // keyed by lowercase username
}

func NewInMemory() *InMemory {
	return &InMemory{nextID: 1, members: make(map[string]*Member)}
}

func (s *InMemory) Create(_ context.Context, m *Member) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.ToLower(m.Username)
	if _, exists := s.members[key]; exists {
		return sentinel.ErrConflict
	}
	m.ID = s.nextID
	s.nextID++
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	cp := *m
	s.members[key] = &cp
	return nil
}

func (s *InMemory) FindByUsername(_ context.Context, username string) (*Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.members[strings.ToLower(username)]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *m
	return &cp, nil
}

func (s *InMemory) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.members), nil
}
