package geo_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aliaga23/SIG-Backend/internal/adapters/out/geo"
	"github.com/Aliaga23/SIG-Backend/internal/core/domain/model/kernel"
	"github.com/Aliaga23/SIG-Backend/internal/core/ports"
)

// countingRouter records how many times the external API would be hit.
type countingRouter struct {
	leg       ports.RouteLeg
	err       error
	legCalls  int
	optimized ports.OptimizedRoute
	optCalls  int
}

func (r *countingRouter) EstimateLeg(_ context.Context, _ kernel.GeoPoint, _ kernel.GeoPoint) (ports.RouteLeg, error) {
	r.legCalls++
	return r.leg, r.err
}

func (r *countingRouter) OptimizeRoute(_ context.Context, _ kernel.GeoPoint, _ []kernel.GeoPoint) (ports.OptimizedRoute, error) {
	r.optCalls++
	return r.optimized, r.err
}

func newCacheFixture(t *testing.T, inner ports.ExternalRouter, ttl time.Duration) *geo.CachedRouter {
	t.Helper()

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return geo.NewCachedRouter(inner, client, ttl, nil)
}

func TestCachedRouter_EstimateLeg_CachesResult(t *testing.T) {
	inner := &countingRouter{leg: ports.RouteLeg{DistanceKm: 4.2, Minutes: 10.5}}
	cached := newCacheFixture(t, inner, time.Minute)

	origin := mustPoint(t, -17.78, -63.18)
	destination := mustPoint(t, -17.80, -63.17)

	first, err := cached.EstimateLeg(t.Context(), origin, destination)
	require.NoError(t, err)
	second, err := cached.EstimateLeg(t.Context(), origin, destination)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, inner.legCalls, "second lookup should be served from cache")
}

func TestCachedRouter_EstimateLeg_DistinctLegsMiss(t *testing.T) {
	inner := &countingRouter{leg: ports.RouteLeg{DistanceKm: 4.2, Minutes: 10.5}}
	cached := newCacheFixture(t, inner, time.Minute)

	origin := mustPoint(t, -17.78, -63.18)

	_, err := cached.EstimateLeg(t.Context(), origin, mustPoint(t, -17.80, -63.17))
	require.NoError(t, err)
	_, err = cached.EstimateLeg(t.Context(), origin, mustPoint(t, -17.75, -63.20))
	require.NoError(t, err)

	assert.Equal(t, 2, inner.legCalls)
}

func TestCachedRouter_EstimateLeg_InnerErrorNotCached(t *testing.T) {
	inner := &countingRouter{err: errors.New("quota exceeded")}
	cached := newCacheFixture(t, inner, time.Minute)

	origin := mustPoint(t, -17.78, -63.18)
	destination := mustPoint(t, -17.80, -63.17)

	_, err := cached.EstimateLeg(t.Context(), origin, destination)
	require.Error(t, err)

	inner.err = nil
	inner.leg = ports.RouteLeg{DistanceKm: 4.2, Minutes: 10.5}

	leg, err := cached.EstimateLeg(t.Context(), origin, destination)
	require.NoError(t, err)
	assert.InDelta(t, 4.2, leg.DistanceKm, 0.001)
	assert.Equal(t, 2, inner.legCalls)
}

func TestCachedRouter_OptimizeRoute_PassesThrough(t *testing.T) {
	inner := &countingRouter{optimized: ports.OptimizedRoute{DistanceKm: 6.0, Minutes: 15, VisitOrder: []int{0}}}
	cached := newCacheFixture(t, inner, time.Minute)

	destinations := []kernel.GeoPoint{mustPoint(t, -17.80, -63.17)}

	_, err := cached.OptimizeRoute(t.Context(), mustPoint(t, -17.78, -63.18), destinations)
	require.NoError(t, err)
	_, err = cached.OptimizeRoute(t.Context(), mustPoint(t, -17.78, -63.18), destinations)
	require.NoError(t, err)

	assert.Equal(t, 2, inner.optCalls, "optimization is never cached")
}
