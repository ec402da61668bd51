package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aliaga23/SIG-Backend/internal/core/domain/model/kernel"
	"github.com/Aliaga23/SIG-Backend/internal/core/domain/services"
	"github.com/Aliaga23/SIG-Backend/internal/core/ports"
)

type stubRouter struct {
	leg       ports.RouteLeg
	legErr    error
	optimized ports.OptimizedRoute
	optErr    error
}

func (s *stubRouter) EstimateLeg(context.Context, kernel.GeoPoint, kernel.GeoPoint) (ports.RouteLeg, error) {
	return s.leg, s.legErr
}

func (s *stubRouter) OptimizeRoute(context.Context, kernel.GeoPoint, []kernel.GeoPoint) (ports.OptimizedRoute, error) {
	return s.optimized, s.optErr
}

func TestRouteEstimator_EstimateLeg(t *testing.T) {
	origin, err := kernel.NewGeoPoint(0, 0)
	require.NoError(t, err)
	destination, err := kernel.NewGeoPoint(1, 0)
	require.NoError(t, err)

	t.Run("prefers the external estimate", func(t *testing.T) {
		router := &stubRouter{leg: ports.RouteLeg{DistanceKm: 150, Minutes: 200}}
		estimator := services.NewRouteEstimator(router, nil)

		leg, err := estimator.EstimateLeg(context.Background(), origin, destination)
		require.NoError(t, err)

		assert.InDelta(t, 150, leg.DistanceKm, 1e-9)
		assert.InDelta(t, 200, leg.Minutes, 1e-9)
	})

	t.Run("falls back to geodesic heuristic on router error", func(t *testing.T) {
		router := &stubRouter{legErr: errors.New("quota exceeded")}
		estimator := services.NewRouteEstimator(router, nil)

		leg, err := estimator.EstimateLeg(context.Background(), origin, destination)
		require.NoError(t, err)

		assert.InDelta(t, 111.2, leg.DistanceKm, 0.1)
		assert.InDelta(t, leg.DistanceKm*services.FallbackMinutesPerKm, leg.Minutes, 1e-9)
	})

	t.Run("works without a configured router", func(t *testing.T) {
		estimator := services.NewRouteEstimator(nil, nil)

		leg, err := estimator.EstimateLeg(context.Background(), origin, destination)
		require.NoError(t, err)
		assert.Greater(t, leg.DistanceKm, 0.0)
	})

	t.Run("fails only on unconstructed points", func(t *testing.T) {
		estimator := services.NewRouteEstimator(nil, nil)

		_, err := estimator.EstimateLeg(context.Background(), kernel.GeoPoint{}, destination)
		assert.Error(t, err)
	})
}

func TestRouteEstimator_OptimizeOrder(t *testing.T) {
	origin, err := kernel.NewGeoPoint(0, 0)
	require.NoError(t, err)

	destinations := make([]kernel.GeoPoint, 3)
	for i := range destinations {
		point, err := kernel.NewGeoPoint(float64(i), float64(i))
		require.NoError(t, err)
		destinations[i] = point
	}

	t.Run("returns the external visiting order", func(t *testing.T) {
		router := &stubRouter{optimized: ports.OptimizedRoute{
			DistanceKm: 42, Minutes: 60, VisitOrder: []int{2, 0, 1},
		}}
		estimator := services.NewRouteEstimator(router, nil)

		optimized, ok := estimator.OptimizeOrder(context.Background(), origin, destinations)
		require.True(t, ok)
		assert.Equal(t, []int{2, 0, 1}, optimized.VisitOrder)
	})

	t.Run("not ok without a configured router", func(t *testing.T) {
		estimator := services.NewRouteEstimator(nil, nil)

		_, ok := estimator.OptimizeOrder(context.Background(), origin, destinations)
		assert.False(t, ok)
	})

	t.Run("not ok on router error", func(t *testing.T) {
		router := &stubRouter{optErr: errors.New("timeout")}
		estimator := services.NewRouteEstimator(router, nil)

		_, ok := estimator.OptimizeOrder(context.Background(), origin, destinations)
		assert.False(t, ok)
	})

	t.Run("not ok when visit order is not a permutation", func(t *testing.T) {
		cases := [][]int{
			{0, 1},       // too short
			{0, 1, 1},    // repeated index
			{0, 1, 3},    // out of range
			{0, 1, 2, 0}, // too long
		}

		for _, visitOrder := range cases {
			router := &stubRouter{optimized: ports.OptimizedRoute{VisitOrder: visitOrder}}
			estimator := services.NewRouteEstimator(router, nil)

			_, ok := estimator.OptimizeOrder(context.Background(), origin, destinations)
			assert.False(t, ok)
		}
	})

	t.Run("not ok with no destinations", func(t *testing.T) {
		router := &stubRouter{}
		estimator := services.NewRouteEstimator(router, nil)

		_, ok := estimator.OptimizeOrder(context.Background(), origin, nil)
		assert.False(t, ok)
	})
}
