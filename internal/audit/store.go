package audit

import "context"

// Store is the append-only audit trail. Append assigns ID and CreatedAt.
//
// ListAfter exists for the Kafka relay: it returns entries with IDs greater
// than afterID in ascending ID order, up to limit.
type Store interface {
	Append(ctx context.Context, entry *Entry) error
	ListByStation(ctx context.Context, stationID int64) ([]*Entry, error)
	ListRecent(ctx context.Context, limit int) ([]*Entry, error)
	ListAfter(ctx context.Context, afterID int64, limit int) ([]*Entry, error)
}
