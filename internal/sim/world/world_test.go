package world

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"spacestation.ai/internal/protocol"
	"spacestation.ai/internal/sim/envres"
	"spacestation.ai/internal/sim/geom"
	"spacestation.ai/internal/sim/resource"
	"spacestation.ai/internal/sim/rng"
)

func testConfig() Config {
	return Config{
		PlayArea:         100,
		SpawnResources:   5,
		ResourceMaxCap:   50,
		ConsumptionRate:  1,
		RechargeRate:     1,
		RechargeInterval: 200,
		GameTick:         2,
		MiningReach:      1,
	}
}

func TestNewSpawnsArena(t *testing.T) {
	w, err := New(testConfig(), rng.New(1), nil)
	require.NoError(t, err)

	require.Equal(t, 6, w.Len(), "amount=5 spawns ids 0..5")
	require.Equal(t, geom.WorldSize{Min: -100, Max: 100}, w.Size())
	_, err = uuid.Parse(w.RunID())
	require.NoError(t, err)

	all := w.Resources()
	require.Len(t, all, 6)
	for i, r := range all {
		require.Equal(t, int32(i), r.ID())
		require.True(t, r.Coordinates().WithinBounds(nil))
		require.GreaterOrEqual(t, r.Kind().Amount, resource.MinSpawnAmount)
		require.LessOrEqual(t, r.Kind().Amount, 50)
	}
}

func TestNewRejectsBadConfig(t *testing.T) {
	cfg := testConfig()
	cfg.ResourceMaxCap = 2
	_, err := New(cfg, rng.New(1), nil)
	require.True(t, errors.Is(err, protocol.Code(protocol.ErrInvalidRange)))

	cfg = testConfig()
	cfg.ConsumptionRate = -1
	_, err = New(cfg, rng.New(1), nil)
	require.Error(t, err)
}

func TestSameSeedSameWorld(t *testing.T) {
	a, err := New(testConfig(), rng.New(77), nil)
	require.NoError(t, err)
	b, err := New(testConfig(), rng.New(77), nil)
	require.NoError(t, err)
	require.Equal(t, a.Resources(), b.Resources())
}

func TestMineIsTheMutationPath(t *testing.T) {
	w, err := New(testConfig(), rng.New(2), nil)
	require.NoError(t, err)

	before, ok := w.Resource(0)
	require.True(t, ok)

	// Copies handed out do not alias the arena.
	copyOf := before
	require.NoError(t, copyOf.GiveResources(copyOf.Kind().Kind, copyOf.Kind().Amount))
	again, _ := w.Resource(0)
	require.Equal(t, before, again)

	err = w.Mine(0, func(r *envres.EnvResource) error {
		return r.GiveResources(r.Kind().Kind, 3)
	})
	require.NoError(t, err)
	after, _ := w.Resource(0)
	require.Equal(t, before.Kind().Amount-3, after.Kind().Amount)
	require.Equal(t, before.Coordinates(), after.Coordinates())

	err = w.Mine(99, func(*envres.EnvResource) error { return nil })
	require.Equal(t, protocol.ErrNotFound, protocol.CodeOf(err))
}

func TestRemove(t *testing.T) {
	w, err := New(testConfig(), rng.New(3), nil)
	require.NoError(t, err)
	require.True(t, w.Remove(2))
	require.False(t, w.Remove(2))
	_, ok := w.Resource(2)
	require.False(t, ok)
	require.Equal(t, 5, w.Len())
}

func TestNearbyOrdersByDistance(t *testing.T) {
	w, err := New(testConfig(), rng.New(4), nil)
	require.NoError(t, err)

	origin := geom.NewCoordinates(0, 0, w.Size())
	all := w.Nearby(origin, 1000)
	require.Len(t, all, w.Len())
	for i := 1; i < len(all); i++ {
		require.LessOrEqual(t, all[i-1].Distance, all[i].Distance)
	}

	first, _ := w.Resource(0)
	at := w.Nearby(first.Coordinates(), 0)
	require.NotEmpty(t, at)
	require.Equal(t, 0, at[0].Distance)
}

func TestRandomize(t *testing.T) {
	w, err := Randomize(rng.New(5), nil)
	require.NoError(t, err)
	require.Equal(t, 101, w.Len())
	require.GreaterOrEqual(t, w.Size().Min, 100)
	require.Less(t, w.Size().Max, 200)
	require.LessOrEqual(t, w.Size().Min, w.Size().Max)
	require.GreaterOrEqual(t, w.GameTick(), uint8(1))
	require.Less(t, w.GameTick(), uint8(5))
	require.GreaterOrEqual(t, w.RechargeInterval(), 100)
	require.Less(t, w.RechargeInterval(), 500)
	require.Equal(t, 1, w.ConsumptionRate())
	require.Equal(t, 1, w.RechargeRate())
}

func TestStep(t *testing.T) {
	w, err := New(testConfig(), rng.New(6), nil)
	require.NoError(t, err)
	require.Equal(t, uint64(0), w.Steps())
	require.Equal(t, uint64(1), w.Step())
	require.Equal(t, uint64(2), w.Step())
	require.Equal(t, uint64(2), w.Steps())
}
