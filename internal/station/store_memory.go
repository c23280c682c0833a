package station

import (
	"context"
	"sort"
	"sync"

	"tallyboard/pkg/platform/sentinel"
)

// InMemory is a map-backed Store for unit tests and local development.
type InMemory struct {
	mu       sync.RWMutex
	nextID   int64
	stations map[int64]*Station
}

func NewInMemory() *InMemory {
	return &InMemory{nextID: 1, stations: make(map[int64]*Station)}
}

func (s *InMemory) Create(_ context.Context, st *Station) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if st.ID == 0 {
		st.ID = s.nextID
	}
	if st.ID >= s.nextID {
		s.nextID = st.ID + 1
	}
	if _, exists := s.stations[st.ID]; exists {
		return sentinel.ErrConflict
	}
	cp := *st
	s.stations[st.ID] = &cp
	return nil
}

func (s *InMemory) FindByID(_ context.Context, id int64) (*Station, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, ok := s.stations[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *st
	return &cp, nil
}

func (s *InMemory) List(_ context.Context) ([]*Station, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Station, 0, len(s.stations))
	for _, st := range s.stations {
		cp := *st
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *InMemory) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.stations), nil
}
