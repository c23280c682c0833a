package station

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeed_CreatesFullRoster(t *testing.T) {
	ctx := context.Background()
	store := NewInMemory()

	seeded, err := Seed(ctx, store, 82, DefaultName, DefaultLocation)

	require.NoError(t, err)
	assert.True(t, seeded)

	stations, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, stations, 82)

	assert.Equal(t, "Station 1", stations[0].Name)
	assert.Equal(t, "Location 1", stations[0].Location)
	assert.Equal(t, "Station 82", stations[81].Name)
	assert.Equal(t, int64(82), stations[81].ID)
}

func TestSeed_IdempotentWhenStationsExist(t *testing.T) {
	ctx := context.Background()
	store := NewInMemory()
	require.NoError(t, store.Create(ctx, &Station{Name: "Pre-existing", Location: "Somewhere"}))

	seeded, err := Seed(ctx, store, 82, DefaultName, DefaultLocation)

	require.NoError(t, err)
	assert.False(t, seeded, "seed must be a no-op when any station exists")

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestSeed_RejectsNonPositiveCount(t *testing.T) {
	ctx := context.Background()
	store := NewInMemory()

	_, err := Seed(ctx, store, 0, DefaultName, DefaultLocation)
	assert.Error(t, err)

	_, err = Seed(ctx, store, -5, DefaultName, DefaultLocation)
	assert.Error(t, err)
}

func TestInMemory_FindByID(t *testing.T) {
	ctx := context.Background()
	store := NewInMemory()
	require.NoError(t, store.Create(ctx, &Station{Name: "Station 1", Location: "Location 1"}))

	st, err := store.FindByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Station 1", st.Name)

	_, err = store.FindByID(ctx, 999)
	assert.Error(t, err)
}
