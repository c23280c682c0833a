package stream

import (
	"context"
	"log/slog"
	"time"

	"tallyboard/internal/audit"
)

// EntryPublisher abstracts the Kafka producer so the relay's cursor logic is
// testable without a broker.
type EntryPublisher interface {
	Publish(ctx context.Context, entries []*audit.Entry) error
}

// Relay tails the audit store and publishes new entries in ID order. The
// cursor is in-memory: after a restart the relay re-reads from the beginning
// and consumers deduplicate on entry ID.
type Relay struct {
	store     audit.Store
	publisher EntryPublisher
	interval  time.Duration
	batchSize int
	logger    *slog.Logger

	cursor int64
}

func NewRelay(store audit.Store, publisher EntryPublisher, interval time.Duration, logger *slog.Logger) *Relay {
	if logger == nil {
		logger = slog.Default()
	}
	return &Relay{
		store:     store,
		publisher: publisher,
		interval:  interval,
		batchSize: 500,
		logger:    logger,
	}
}

// Run tails the audit store until ctx is cancelled. A failed publish leaves
// the cursor in place so the batch is retried on the next tick.
func (r *Relay) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := r.drain(ctx); err != nil {
				r.logger.WarnContext(ctx, "audit relay pass failed", "error", err, "cursor", r.cursor)
			}
		}
	}
}

// drain publishes all entries past the cursor, batch by batch.
func (r *Relay) drain(ctx context.Context) error {
	for {
		entries, err := r.store.ListAfter(ctx, r.cursor, r.batchSize)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			return nil
		}
		if err := r.publisher.Publish(ctx, entries); err != nil {
			return err
		}
		r.cursor = entries[len(entries)-1].ID
	}
}
