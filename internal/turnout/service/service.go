// Package service orchestrates turnout reads, the transactional update path,
// and the dashboard snapshot cache.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"tallyboard/internal/audit"
	"tallyboard/internal/station"
	"tallyboard/internal/turnout"
	"tallyboard/internal/turnout/metrics"
	dErrors "tallyboard/pkg/domain-errors"
	"tallyboard/pkg/platform/sentinel"
	"tallyboard/pkg/requestcontext"
)

// SnapshotCache caches the resolved all-station turnout list. Get reports a
// miss with ok=false; cache failures are advisory and never fail a request.
type SnapshotCache interface {
	Get(ctx context.Context) ([]turnout.Current, bool, error)
	Set(ctx context.Context, snapshot []turnout.Current) error
	Invalidate(ctx context.Context) error
}

// Service exposes the turnout operations to transport and workers.
//
// Reads across stations take no consistent snapshot relative to concurrent
// updates: a list or total may mix before/after states of different stations
// observed within the same pass. That read skew is an accepted bound for a
// near-real-time dashboard. Concurrent updates to the same station are
// last-committed-wins under the store's default isolation.
type Service struct {
	stations station.Store
	turnouts turnout.Store
	tx       Tx
	cache    SnapshotCache
	metrics  *metrics.Metrics
	logger   *slog.Logger
	tracer   trace.Tracer
}

// New constructs the turnout service. cache and m may be nil.
func New(stations station.Store, turnouts turnout.Store, tx Tx, cache SnapshotCache, m *metrics.Metrics, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		stations: stations,
		turnouts: turnouts,
		tx:       tx,
		cache:    cache,
		metrics:  m,
		logger:   logger,
		tracer:   otel.Tracer("tallyboard/turnout"),
	}
}

// GetCurrentTurnout returns the current turnout for one station. A station
// with no records resolves to a synthesized zero count with no timestamp; an
// unknown station is a not-found error.
func (s *Service) GetCurrentTurnout(ctx context.Context, stationID int64) (turnout.Current, error) {
	ctx, span := s.tracer.Start(ctx, "turnout.GetCurrentTurnout")
	defer span.End()

	if _, err := s.stations.FindByID(ctx, stationID); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return turnout.Current{}, dErrors.New(dErrors.CodeNotFound, fmt.Sprintf("unknown station %d", stationID))
		}
		return turnout.Current{}, dErrors.Wrap(err, dErrors.CodeInternal, "station lookup failed")
	}

	records, err := s.turnouts.ListByStation(ctx, stationID)
	if err != nil {
		return turnout.Current{}, dErrors.Wrap(err, dErrors.CodeInternal, "turnout lookup failed")
	}
	if rec, ok := turnout.Resolve(records)[stationID]; ok {
		return rec.Current(), nil
	}
	return turnout.ZeroCurrent(stationID), nil
}

// ListCurrentTurnouts returns the current turnout for every known station,
// ordered by station ID, with a zero default for stations that have never
// been counted. Served from the snapshot cache when fresh.
func (s *Service) ListCurrentTurnouts(ctx context.Context) ([]turnout.Current, error) {
	ctx, span := s.tracer.Start(ctx, "turnout.ListCurrentTurnouts")
	defer span.End()

	if s.cache != nil {
		snapshot, ok, err := s.cache.Get(ctx)
		if err != nil {
			s.logger.WarnContext(ctx, "snapshot cache read failed", "error", err)
		} else if ok {
			s.metrics.RecordCacheHit()
			return snapshot, nil
		}
		s.metrics.RecordCacheMiss()
	}

	snapshot, err := s.resolveAll(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, snapshot); err != nil {
			s.logger.WarnContext(ctx, "snapshot cache write failed", "error", err)
		}
	}
	return snapshot, nil
}

// TotalTurnout sums the current turnout across all stations. The total equals
// the sum over ListCurrentTurnouts at the instant it was computed.
func (s *Service) TotalTurnout(ctx context.Context) (int64, error) {
	ctx, span := s.tracer.Start(ctx, "turnout.TotalTurnout")
	defer span.End()

	snapshot, err := s.ListCurrentTurnouts(ctx)
	if err != nil {
		return 0, err
	}
	var total int64
	for _, cur := range snapshot {
		total += int64(cur.VoterCount)
	}
	s.metrics.SetTotalVoters(total)
	return total, nil
}

// UpdateTurnout atomically replaces the current turnout for one station and
// appends one audit entry. A failure anywhere rolls the whole unit back and
// leaves the prior value visible.
func (s *Service) UpdateTurnout(ctx context.Context, stationID int64, voterCount int, updatedBy string) (*turnout.Record, error) {
	ctx, span := s.tracer.Start(ctx, "turnout.UpdateTurnout")
	defer span.End()

	if voterCount < 0 {
		return nil, dErrors.New(dErrors.CodeBadRequest, "voter count must be a non-negative integer")
	}
	if _, err := s.stations.FindByID(ctx, stationID); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, fmt.Sprintf("unknown station %d", stationID))
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "station lookup failed")
	}
	if updatedBy == "" {
		updatedBy = requestcontext.Operator(ctx)
	}

	now := requestcontext.Now(ctx)
	rec := &turnout.Record{
		StationID:  stationID,
		VoterCount: voterCount,
		UpdatedBy:  updatedBy,
		CreatedAt:  now,
	}

	var action audit.Action
	err := s.tx.RunInTx(ctx, func(stores Stores) error {
		records, err := stores.Turnouts.ListByStation(ctx, stationID)
		if err != nil {
			return fmt.Errorf("resolve prior turnout: %w", err)
		}
		prior, hadPrior := turnout.Resolve(records)[stationID]

		if _, err := stores.Turnouts.DeleteByStation(ctx, stationID); err != nil {
			return fmt.Errorf("delete prior turnout: %w", err)
		}
		if err := stores.Turnouts.Insert(ctx, rec); err != nil {
			return fmt.Errorf("insert turnout: %w", err)
		}

		entry := &audit.Entry{
			StationID: stationID,
			Action:    audit.ActionCreate,
			NewValue:  voterCount,
			CreatedAt: now,
		}
		if hadPrior {
			prev := prior.VoterCount
			entry.Action = audit.ActionUpdate
			entry.PreviousValue = &prev
		}
		if err := stores.Audit.Append(ctx, entry); err != nil {
			return fmt.Errorf("append audit entry: %w", err)
		}
		action = entry.Action
		return nil
	})
	if err != nil {
		if dErrors.Is(err, dErrors.CodeTimeout) {
			return nil, err
		}
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, fmt.Sprintf("unknown station %d", stationID))
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "turnout update failed")
	}

	s.metrics.RecordUpdate(string(action))
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			s.logger.WarnContext(ctx, "snapshot cache invalidation failed", "error", err)
		}
	}

	s.logger.InfoContext(ctx, "turnout updated",
		"request_id", requestcontext.RequestID(ctx),
		"station_id", stationID,
		"voter_count", voterCount,
		"action", action,
		"updated_by", updatedBy,
	)
	return rec, nil
}

// RefreshSnapshot recomputes the all-station snapshot and stores it in the
// cache, bypassing any cached copy. The background refresher calls this on
// its poll interval.
func (s *Service) RefreshSnapshot(ctx context.Context) error {
	ctx, span := s.tracer.Start(ctx, "turnout.RefreshSnapshot")
	defer span.End()

	if s.cache == nil {
		return nil
	}
	snapshot, err := s.resolveAll(ctx)
	if err != nil {
		return err
	}
	if err := s.cache.Set(ctx, snapshot); err != nil {
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "snapshot cache write failed")
	}
	return nil
}

// resolveAll reads the full record set and resolves one current value per
// known station, zero-defaulted and ordered by station ID.
func (s *Service) resolveAll(ctx context.Context) ([]turnout.Current, error) {
	stations, err := s.stations.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "station list failed")
	}
	records, err := s.turnouts.ListAll(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "turnout list failed")
	}

	current := turnout.Resolve(records)
	snapshot := make([]turnout.Current, 0, len(stations))
	for _, st := range stations {
		if rec, ok := current[st.ID]; ok {
			snapshot = append(snapshot, rec.Current())
		} else {
			snapshot = append(snapshot, turnout.ZeroCurrent(st.ID))
		}
	}
	return snapshot, nil
}
