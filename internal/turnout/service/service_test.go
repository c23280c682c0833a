package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"tallyboard/internal/audit"
	"tallyboard/internal/station"
	"tallyboard/internal/turnout"
	"tallyboard/internal/turnout/service/mocks"
	dErrors "tallyboard/pkg/domain-errors"
	"tallyboard/pkg/requestcontext"
)

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks SnapshotCache

// =============================================================================
// Turnout Service Test Suite
// =============================================================================
// Justification for unit tests: the service owns the update transaction, the
// zero-default read semantics, and the audit trail contract. The in-memory
// stores plus InMemoryTx give real rollback behavior, so the atomicity
// properties are observable without a database.

type ServiceSuite struct {
	suite.Suite
	ctx      context.Context
	stations *station.InMemory
	turnouts *turnout.InMemory
	audits   *audit.InMemory
	service  *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.stations = station.NewInMemory()
	s.turnouts = turnout.NewInMemory()
	s.audits = audit.NewInMemory()

	for i := 1; i <= 3; i++ {
		s.Require().NoError(s.stations.Create(s.ctx, &station.Station{
			Name:     station.DefaultName(i),
			Location: station.DefaultLocation(i),
		}))
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.service = New(s.stations, s.turnouts, NewInMemoryTx(s.turnouts, s.audits), nil, nil, logger)
}

// =============================================================================
// Read Semantics
// =============================================================================

func (s *ServiceSuite) TestGetCurrentTurnout_ZeroDefaultForUncountedStation() {
	cur, err := s.service.GetCurrentTurnout(s.ctx, 3)

	s.Require().NoError(err)
	s.Equal(int64(3), cur.StationID)
	s.Zero(cur.VoterCount)
	s.Nil(cur.UpdatedAt)
}

func (s *ServiceSuite) TestGetCurrentTurnout_UnknownStation() {
	_, err := s.service.GetCurrentTurnout(s.ctx, 999)

	s.Require().Error(err)
	s.True(dErrors.Is(err, dErrors.CodeNotFound))
}

func (s *ServiceSuite) TestUpdateThenGet_ReadYourWrite() {
	_, err := s.service.UpdateTurnout(s.ctx, 1, 120, "desk-1")
	s.Require().NoError(err)

	cur, err := s.service.GetCurrentTurnout(s.ctx, 1)

	s.Require().NoError(err)
	s.Equal(120, cur.VoterCount)
	s.Equal("desk-1", cur.UpdatedBy)
	s.NotNil(cur.UpdatedAt)
}

func (s *ServiceSuite) TestListCurrentTurnouts_CoversEveryStation() {
	_, err := s.service.UpdateTurnout(s.ctx, 1, 100, "desk-1")
	s.Require().NoError(err)
	_, err = s.service.UpdateTurnout(s.ctx, 2, 50, "desk-2")
	s.Require().NoError(err)

	snapshot, err := s.service.ListCurrentTurnouts(s.ctx)

	s.Require().NoError(err)
	s.Require().Len(snapshot, 3)
	s.Equal(int64(1), snapshot[0].StationID)
	s.Equal(100, snapshot[0].VoterCount)
	s.Equal(50, snapshot[1].VoterCount)
	s.Zero(snapshot[2].VoterCount, "never-counted station defaults to zero")
}

func (s *ServiceSuite) TestTotalTurnout_SumsAllStations() {
	_, err := s.service.UpdateTurnout(s.ctx, 1, 100, "desk-1")
	s.Require().NoError(err)
	_, err = s.service.UpdateTurnout(s.ctx, 2, 50, "desk-2")
	s.Require().NoError(err)

	total, err := s.service.TotalTurnout(s.ctx)

	s.Require().NoError(err)
	s.Equal(int64(150), total)
}

func (s *ServiceSuite) TestTotalTurnout_EmptyIsZero() {
	total, err := s.service.TotalTurnout(s.ctx)

	s.Require().NoError(err)
	s.Zero(total)
}

// =============================================================================
// Update Transaction
// =============================================================================

func (s *ServiceSuite) TestUpdateTurnout_RejectsNegativeCount() {
	_, err := s.service.UpdateTurnout(s.ctx, 1, -1, "desk-1")

	s.Require().Error(err)
	s.True(dErrors.Is(err, dErrors.CodeBadRequest))
}

func (s *ServiceSuite) TestUpdateTurnout_UnknownStation() {
	_, err := s.service.UpdateTurnout(s.ctx, 999, 10, "desk-1")

	s.Require().Error(err)
	s.True(dErrors.Is(err, dErrors.CodeNotFound))
}

func (s *ServiceSuite) TestUpdateTurnout_ZeroCountIsValid() {
	rec, err := s.service.UpdateTurnout(s.ctx, 1, 0, "desk-1")

	s.Require().NoError(err)
	s.Zero(rec.VoterCount)
}

func (s *ServiceSuite) TestUpdateTurnout_ReplacesPriorRecords() {
	_, err := s.service.UpdateTurnout(s.ctx, 1, 100, "desk-1")
	s.Require().NoError(err)
	_, err = s.service.UpdateTurnout(s.ctx, 1, 80, "desk-2")
	s.Require().NoError(err)

	records, err := s.turnouts.ListByStation(s.ctx, 1)
	s.Require().NoError(err)
	s.Require().Len(records, 1, "a station holds exactly one record after an update")
	s.Equal(80, records[0].VoterCount)
}

func (s *ServiceSuite) TestUpdateTurnout_AuditTrailCreateThenUpdate() {
	_, err := s.service.UpdateTurnout(s.ctx, 1, 100, "desk-1")
	s.Require().NoError(err)
	_, err = s.service.UpdateTurnout(s.ctx, 1, 80, "desk-2")
	s.Require().NoError(err)

	entries, err := s.audits.ListByStation(s.ctx, 1)
	s.Require().NoError(err)
	s.Require().Len(entries, 2)

	s.Equal(audit.ActionCreate, entries[0].Action)
	s.Nil(entries[0].PreviousValue)
	s.Equal(100, entries[0].NewValue)

	s.Equal(audit.ActionUpdate, entries[1].Action)
	s.Require().NotNil(entries[1].PreviousValue)
	s.Equal(100, *entries[1].PreviousValue)
	s.Equal(80, entries[1].NewValue)
}

func (s *ServiceSuite) TestUpdateTurnout_RollsBackOnInsertFailure() {
	_, err := s.service.UpdateTurnout(s.ctx, 1, 100, "desk-1")
	s.Require().NoError(err)

	// Make the next insert fail mid-transaction, after the delete succeeded.
	s.turnouts.RestrictStations(func(stationID int64) bool { return false })

	_, err = s.service.UpdateTurnout(s.ctx, 1, 80, "desk-2")
	s.Require().Error(err)

	s.turnouts.RestrictStations(nil)

	cur, err := s.service.GetCurrentTurnout(s.ctx, 1)
	s.Require().NoError(err)
	s.Equal(100, cur.VoterCount, "failed update must leave the prior value visible")

	entries, err := s.audits.ListByStation(s.ctx, 1)
	s.Require().NoError(err)
	s.Len(entries, 1, "failed update must not leave an audit entry")
}

func (s *ServiceSuite) TestUpdateTurnout_OperatorFallsBackToContext() {
	ctx := requestcontext.WithOperator(s.ctx, "field-agent")

	rec, err := s.service.UpdateTurnout(ctx, 1, 10, "")

	s.Require().NoError(err)
	s.Equal("field-agent", rec.UpdatedBy)
}

func (s *ServiceSuite) TestUpdateTurnout_UsesRequestTime() {
	now := time.Date(2026, 8, 31, 14, 0, 0, 0, time.UTC)
	ctx := requestcontext.WithTime(s.ctx, now)

	rec, err := s.service.UpdateTurnout(ctx, 1, 10, "desk-1")

	s.Require().NoError(err)
	s.True(rec.CreatedAt.Equal(now))
}

func (s *ServiceSuite) TestUpdateTurnout_CancelledContext() {
	ctx, cancel := context.WithCancel(s.ctx)
	cancel()

	_, err := s.service.UpdateTurnout(ctx, 1, 10, "desk-1")

	s.Require().Error(err)
	s.True(dErrors.Is(err, dErrors.CodeTimeout))
}

// =============================================================================
// Snapshot Cache
// =============================================================================
// Justification: cache interactions are side effects the in-memory stores
// cannot observe, so the cache port is mocked.

type ServiceCacheSuite struct {
	suite.Suite
	ctx       context.Context
	ctrl      *gomock.Controller
	mockCache *mocks.MockSnapshotCache
	stations  *station.InMemory
	turnouts  *turnout.InMemory
	audits    *audit.InMemory
	service   *Service
}

func TestServiceCacheSuite(t *testing.T) {
	suite.Run(t, new(ServiceCacheSuite))
}

func (s *ServiceCacheSuite) SetupTest() {
	s.ctx = context.Background()
	s.ctrl = gomock.NewController(s.T())
	s.mockCache = mocks.NewMockSnapshotCache(s.ctrl)
	s.stations = station.NewInMemory()
	s.turnouts = turnout.NewInMemory()
	s.audits = audit.NewInMemory()

	s.Require().NoError(s.stations.Create(s.ctx, &station.Station{Name: "Station 1", Location: "Location 1"}))

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.service = New(s.stations, s.turnouts, NewInMemoryTx(s.turnouts, s.audits), s.mockCache, nil, logger)
}

func (s *ServiceCacheSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *ServiceCacheSuite) TestList_CacheHitSkipsStores() {
	cached := []turnout.Current{{StationID: 1, VoterCount: 77}}
	s.mockCache.EXPECT().Get(gomock.Any()).Return(cached, true, nil)

	snapshot, err := s.service.ListCurrentTurnouts(s.ctx)

	s.Require().NoError(err)
	s.Equal(cached, snapshot)
}

func (s *ServiceCacheSuite) TestList_CacheMissPopulatesCache() {
	s.mockCache.EXPECT().Get(gomock.Any()).Return(nil, false, nil)
	s.mockCache.EXPECT().Set(gomock.Any(), gomock.Len(1)).Return(nil)

	snapshot, err := s.service.ListCurrentTurnouts(s.ctx)

	s.Require().NoError(err)
	s.Require().Len(snapshot, 1)
	s.Zero(snapshot[0].VoterCount)
}

func (s *ServiceCacheSuite) TestList_CacheFailureIsTolerated() {
	s.mockCache.EXPECT().Get(gomock.Any()).Return(nil, false, context.DeadlineExceeded)
	s.mockCache.EXPECT().Set(gomock.Any(), gomock.Any()).Return(context.DeadlineExceeded)

	snapshot, err := s.service.ListCurrentTurnouts(s.ctx)

	s.Require().NoError(err, "cache failures must not fail reads")
	s.Len(snapshot, 1)
}

func (s *ServiceCacheSuite) TestUpdate_InvalidatesCache() {
	s.mockCache.EXPECT().Invalidate(gomock.Any()).Return(nil)

	_, err := s.service.UpdateTurnout(s.ctx, 1, 42, "desk-1")

	s.Require().NoError(err)
}

func (s *ServiceCacheSuite) TestRefreshSnapshot_WritesThrough() {
	s.mockCache.EXPECT().Set(gomock.Any(), gomock.Len(1)).Return(nil)

	s.Require().NoError(s.service.RefreshSnapshot(s.ctx))
}
