package staff

import "context"

// Store persists the staff roster. Create returns sentinel.ErrConflict for a
// duplicate username; FindByUsername returns sentinel.ErrNotFound.
type Store interface {
	Create(ctx context.Context, m *Member) error
	FindByUsername(ctx context.Context, username string) (*Member, error)
	Count(ctx context.Context) (int, error)
}
