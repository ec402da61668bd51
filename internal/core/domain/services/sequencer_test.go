package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aliaga23/SIG-Backend/internal/core/domain/model/kernel"
	"github.com/Aliaga23/SIG-Backend/internal/core/domain/services"
)

func waypointAt(t *testing.T, lat, lon float64) services.Waypoint {
	t.Helper()
	point, err := kernel.NewGeoPoint(lat, lon)
	require.NoError(t, err)
	return services.Waypoint{Key: kernel.NewUUID(), Point: &point}
}

func keysOf(waypoints []services.Waypoint) []kernel.UUID {
	keys := make([]kernel.UUID, len(waypoints))
	for i, wp := range waypoints {
		keys[i] = wp.Key
	}
	return keys
}

func TestSequencer_Sequence(t *testing.T) {
	sequencer := services.NewSequencer()
	start, err := kernel.NewGeoPoint(0, 0)
	require.NoError(t, err)

	t.Run("orders by repeated nearest neighbor", func(t *testing.T) {
		// Given destinations at increasing longitude, shuffled
		far := waypointAt(t, 0, 3)
		near := waypointAt(t, 0, 1)
		mid := waypointAt(t, 0, 2)

		// When sequencing from the origin
		got, err := sequencer.Sequence(start, []services.Waypoint{far, near, mid})
		require.NoError(t, err)

		// Then the visiting order walks outward
		require.Len(t, got, 3)
		assert.True(t, got[0].Key.IsEqual(near.Key))
		assert.True(t, got[1].Key.IsEqual(mid.Key))
		assert.True(t, got[2].Key.IsEqual(far.Key))
	})

	t.Run("greedy choice follows the path, not the start", func(t *testing.T) {
		// Nearest to start first, then nearest to that point, even when a
		// different destination is closer to the start.
		a := waypointAt(t, 0, 1)
		b := waypointAt(t, 0, 1.9)
		c := waypointAt(t, 0, -1.5)

		got, err := sequencer.Sequence(start, []services.Waypoint{a, b, c})
		require.NoError(t, err)

		assert.True(t, got[0].Key.IsEqual(a.Key))
		assert.True(t, got[1].Key.IsEqual(b.Key))
		assert.True(t, got[2].Key.IsEqual(c.Key))
	})

	t.Run("ties break by encounter order", func(t *testing.T) {
		first := waypointAt(t, 0, 1)
		second := waypointAt(t, 0, -1)

		got, err := sequencer.Sequence(start, []services.Waypoint{first, second})
		require.NoError(t, err)

		assert.True(t, got[0].Key.IsEqual(first.Key))
		assert.True(t, got[1].Key.IsEqual(second.Key))
	})

	t.Run("invalid coordinates go to the tail in original order", func(t *testing.T) {
		noPoint := services.Waypoint{Key: kernel.NewUUID()}
		badPoint := services.Waypoint{Key: kernel.NewUUID(), Point: &kernel.GeoPoint{}}
		valid := waypointAt(t, 0, 1)

		got, err := sequencer.Sequence(start, []services.Waypoint{noPoint, valid, badPoint})
		require.NoError(t, err)

		require.Len(t, got, 3)
		assert.True(t, got[0].Key.IsEqual(valid.Key))
		assert.True(t, got[1].Key.IsEqual(noPoint.Key))
		assert.True(t, got[2].Key.IsEqual(badPoint.Key))
	})

	t.Run("output is a permutation of the input", func(t *testing.T) {
		input := []services.Waypoint{
			waypointAt(t, -17.78, -63.18),
			waypointAt(t, -17.75, -63.15),
			{Key: kernel.NewUUID()},
			waypointAt(t, -17.80, -63.21),
			waypointAt(t, -17.77, -63.19),
		}

		got, err := sequencer.Sequence(start, input)
		require.NoError(t, err)

		require.Len(t, got, len(input))

		seen := make(map[string]int)
		for _, wp := range got {
			seen[wp.Key.String()]++
		}
		for _, wp := range input {
			assert.Equal(t, 1, seen[wp.Key.String()])
		}
	})

	t.Run("empty input", func(t *testing.T) {
		got, err := sequencer.Sequence(start, nil)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("unconstructed start", func(t *testing.T) {
		_, err := sequencer.Sequence(kernel.GeoPoint{}, []services.Waypoint{waypointAt(t, 0, 1)})
		assert.Error(t, err)
	})
}
