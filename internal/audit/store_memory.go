package audit

import (
	"context"
	"sync"

	"tallyboard/pkg/requestcontext"
)

// InMemory is a slice-backed Store for unit tests and local development.
type InMemory struct {
	mu      sync.RWMutex
	nextID  int64
	entries []*Entry
}

func NewInMemory() *InMemory {
	return &InMemory{nextID: 1}
}

func (s *InMemory) Append(ctx context.Context, entry *Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry.ID = s.nextID
	s.nextID++
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = requestcontext.Now(ctx)
	}
	cp := *entry
	s.entries = append(s.entries, &cp)
	return nil
}

func (s *InMemory) ListByStation(_ context.Context, stationID int64) ([]*Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*Entry
	for _, e := range s.entries {
		if e.StationID == stationID {
			cp := *e
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *InMemory) ListRecent(_ context.Context, limit int) ([]*Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*Entry
	for i := len(s.entries) - 1; i >= 0 && len(out) < limit; i-- {
		cp := *s.entries[i]
		out = append(out, &cp)
	}
	return out, nil
}

func (s *InMemory) ListAfter(_ context.Context, afterID int64, limit int) ([]*Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*Entry
	for _, e := range s.entries {
		if e.ID > afterID {
			cp := *e
			out = append(out, &cp)
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

// Snapshot captures the store state for later Restore.
func (s *InMemory) Snapshot() []*Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := make([]*Entry, len(s.entries))
	for i, e := range s.entries {
		cp := *e
		snap[i] = &cp
	}
	return snap
}

// Restore replaces the store state with a previously captured snapshot.
func (s *InMemory) Restore(snap []*Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = make([]*Entry, len(snap))
	for i, e := range snap {
		cp := *e
		s.entries[i] = &cp
	}
}
