package cache

import (
	"context"
	"log/slog"
	"time"
)

// Refreshable is the slice of the turnout service the refresher needs.
type Refreshable interface {
	RefreshSnapshot(ctx context.Context) error
}

// Refresher repopulates the snapshot cache on a fixed poll interval so
// dashboards keep serving warm reads even without write traffic.
type Refresher struct {
	service  Refreshable
	interval time.Duration
	logger   *slog.Logger
}

func NewRefresher(service Refreshable, interval time.Duration, logger *slog.Logger) *Refresher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Refresher{service: service, interval: interval, logger: logger}
}

// Run refreshes the snapshot until ctx is cancelled. Refresh failures are
// logged and retried on the next tick; the cache is a convenience, not a
// correctness requirement.
func (r *Refresher) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := r.service.RefreshSnapshot(ctx); err != nil {
				r.logger.WarnContext(ctx, "snapshot refresh failed", "error", err)
			}
		}
	}
}
