package turnout

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"tallyboard/pkg/platform/sentinel"
	"tallyboard/pkg/requestcontext"
)

type InMemoryStoreSuite struct {
	suite.Suite
	ctx   context.Context
	store *InMemory
}

func TestInMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(InMemoryStoreSuite))
}

func (s *InMemoryStoreSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = NewInMemory()
}

func (s *InMemoryStoreSuite) TestInsertAssignsIDAndTimestamp() {
	rec := &Record{StationID: 1, VoterCount: 10}

	s.Require().NoError(s.store.Insert(s.ctx, rec))

	s.Equal(int64(1), rec.ID)
	s.False(rec.CreatedAt.IsZero())
}

func (s *InMemoryStoreSuite) TestInsertUsesRequestTime() {
	now := time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)
	ctx := requestcontext.WithTime(s.ctx, now)

	rec := &Record{StationID: 1, VoterCount: 10}
	s.Require().NoError(s.store.Insert(ctx, rec))

	s.True(rec.CreatedAt.Equal(now))
}

func (s *InMemoryStoreSuite) TestInsertRejectsUnknownStation() {
	s.store.RestrictStations(func(stationID int64) bool { return stationID == 1 })

	s.Require().NoError(s.store.Insert(s.ctx, &Record{StationID: 1, VoterCount: 5}))
	s.ErrorIs(s.store.Insert(s.ctx, &Record{StationID: 99, VoterCount: 5}), sentinel.ErrNotFound)
}

func (s *InMemoryStoreSuite) TestListByStation() {
	s.Require().NoError(s.store.Insert(s.ctx, &Record{StationID: 1, VoterCount: 10}))
	s.Require().NoError(s.store.Insert(s.ctx, &Record{StationID: 2, VoterCount: 20}))
	s.Require().NoError(s.store.Insert(s.ctx, &Record{StationID: 1, VoterCount: 30}))

	records, err := s.store.ListByStation(s.ctx, 1)

	s.Require().NoError(err)
	s.Len(records, 2)
	for _, rec := range records {
		s.Equal(int64(1), rec.StationID)
	}
}

func (s *InMemoryStoreSuite) TestDeleteByStationReportsCount() {
	s.Require().NoError(s.store.Insert(s.ctx, &Record{StationID: 1, VoterCount: 10}))
	s.Require().NoError(s.store.Insert(s.ctx, &Record{StationID: 1, VoterCount: 20}))
	s.Require().NoError(s.store.Insert(s.ctx, &Record{StationID: 2, VoterCount: 30}))

	deleted, err := s.store.DeleteByStation(s.ctx, 1)

	s.Require().NoError(err)
	s.Equal(2, deleted)

	remaining, err := s.store.ListAll(s.ctx)
	s.Require().NoError(err)
	s.Len(remaining, 1)
	s.Equal(int64(2), remaining[0].StationID)
}

func (s *InMemoryStoreSuite) TestDeleteByStationEmptyIsNoop() {
	deleted, err := s.store.DeleteByStation(s.ctx, 1)

	s.Require().NoError(err)
	s.Zero(deleted)
}

func (s *InMemoryStoreSuite) TestSnapshotRestoreRollsBackMutations() {
	s.Require().NoError(s.store.Insert(s.ctx, &Record{StationID: 1, VoterCount: 10}))
	snap := s.store.Snapshot()

	_, err := s.store.DeleteByStation(s.ctx, 1)
	s.Require().NoError(err)
	s.Require().NoError(s.store.Insert(s.ctx, &Record{StationID: 1, VoterCount: 99}))

	s.store.Restore(snap)

	records, err := s.store.ListByStation(s.ctx, 1)
	s.Require().NoError(err)
	s.Require().Len(records, 1)
	s.Equal(10, records[0].VoterCount)
}

func (s *InMemoryStoreSuite) TestListReturnsCopies() {
	s.Require().NoError(s.store.Insert(s.ctx, &Record{StationID: 1, VoterCount: 10}))

	records, err := s.store.ListAll(s.ctx)
	s.Require().NoError(err)
	records[0].VoterCount = 999

	again, err := s.store.ListAll(s.ctx)
	s.Require().NoError(err)
	s.Equal(10, again[0].VoterCount)
}
