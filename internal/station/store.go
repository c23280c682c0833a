package station

import "context"

// Store persists the station roster.
//
// Create assigns the station ID. FindByID returns sentinel.ErrNotFound for
// unknown stations; List returns the roster ordered by ID.
type Store interface {
	Create(ctx context.Context, st *Station) error
	FindByID(ctx context.Context, id int64) (*Station, error)
	List(ctx context.Context) ([]*Station, error)
	Count(ctx context.Context) (int, error)
}
