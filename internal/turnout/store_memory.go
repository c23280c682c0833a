package turnout

import (
	"context"
	"sort"
	"sync"

	"tallyboard/pkg/platform/sentinel"
	"tallyboard/pkg/requestcontext"
)

// InMemory is a map-backed Store for unit tests and local development.
//
// Snapshot/Restore give the in-memory transaction boundary a way to roll back
// mutations, mirroring what a database transaction provides for PostgresStore.
type InMemory struct {
	mu      sync.RWMutex
	nextID  int64
	records map[int64]*Record // keyed by record ID

	// knownStations optionally emulates the station foreign key. Nil means
	// any station ID is accepted.
	knownStations func(stationID int64) bool
}

func NewInMemory() *InMemory {
	return &InMemory{nextID: 1, records: make(map[int64]*Record)}
}

// RestrictStations makes Insert reject station IDs the probe rejects,
// emulating the stations foreign key for tests.
func (s *InMemory) RestrictStations(probe func(stationID int64) bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.knownStations = probe
}

func (s *InMemory) Insert(ctx context.Context, rec *Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.knownStations != nil && !s.knownStations(rec.StationID) {
		return sentinel.ErrNotFound
	}
	rec.ID = s.nextID
	s.nextID++
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = requestcontext.Now(ctx)
	}
	cp := *rec
	s.records[rec.ID] = &cp
	return nil
}

func (s *InMemory) ListByStation(_ context.Context, stationID int64) ([]*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*Record
	for _, rec := range s.records {
		if rec.StationID == stationID {
			cp := *rec
			out = append(out, &cp)
		}
	}
	sortRecords(out)
	return out, nil
}

func (s *InMemory) ListAll(_ context.Context) ([]*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Record, 0, len(s.records))
	for _, rec := range s.records {
		cp := *rec
		out = append(out, &cp)
	}
	sortRecords(out)
	return out, nil
}

func (s *InMemory) DeleteByStation(_ context.Context, stationID int64) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var deleted int
	for id, rec := range s.records {
		if rec.StationID == stationID {
			delete(s.records, id)
			deleted++
		}
	}
	return deleted, nil
}

// Snapshot captures the store state for later Restore.
func (s *InMemory) Snapshot() map[int64]*Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := make(map[int64]*Record, len(s.records))
	for id, rec := range s.records {
		cp := *rec
		snap[id] = &cp
	}
	return snap
}

// Restore replaces the store state with a previously captured snapshot.
func (s *InMemory) Restore(snap map[int64]*Record) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = make(map[int64]*Record, len(snap))
	for id, rec := range snap {
		cp := *rec
		s.records[id] = &cp
	}
}

func sortRecords(recs []*Record) {
	sort.Slice(recs, func(i, j int) bool {
		ti, tj := recs[i].EffectiveTime(), recs[j].EffectiveTime()
		if !ti.Equal(tj) {
			return ti.Before(tj)
		}
		return recs[i].ID < recs[j].ID
	})
}
