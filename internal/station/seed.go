package station

import (
	"context"
	"fmt"
)

// NameFn derives a station attribute from its 1-based roster position.
type NameFn func(n int) string

// DefaultName and DefaultLocation produce the deterministic bootstrap roster.
func DefaultName(n int) string     { return fmt.Sprintf("Station %d", n) }
func DefaultLocation(n int) string { return fmt.Sprintf("Location %d", n) }

// Seed idempotently ensures the fixed roster exists. If zero stations exist it
// creates exactly count stations; otherwise it is a no-op. It does not top up
// to count and does not detect partial seeding. Returns whether stations were
// created.
func Seed(ctx context.Context, store Store, count int, name, location NameFn) (bool, error) {
	if count <= 0 {
		return false, fmt.Errorf("station count must be positive, got %d", count)
	}
	if name == nil {
		name = DefaultName
	}
	if location == nil {
		location = DefaultLocation
	}

	existing, err := store.Count(ctx)
	if err != nil {
		return false, fmt.Errorf("count stations: %w", err)
	}
	if existing > 0 {
		return false, nil
	}

	for n := 1; n <= count; n++ {
		st := &Station{Name: name(n), Location: location(n)}
		if err := store.Create(ctx, st); err != nil {
			return false, fmt.Errorf("seed station %d: %w", n, err)
		}
	}
	return true, nil
}
