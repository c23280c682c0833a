package turnout

import "context"

// Store persists turnout observations. The write path never updates rows in
// place: an update deletes the station's prior records and inserts a fresh
// one, inside one transaction (see the service Tx boundary).
//
// Insert assigns ID and CreatedAt. Insert returns sentinel.ErrNotFound when
// the station does not exist.
type Store interface {
	Insert(ctx context.Context, rec *Record) error
	ListByStation(ctx context.Context, stationID int64) ([]*Record, error)
	ListAll(ctx context.Context) ([]*Record, error)
	DeleteByStation(ctx context.Context, stationID int64) (int, error)
}
