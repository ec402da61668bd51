package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Aliaga23/SIG-Backend/internal/core/domain/model/kernel"
	"github.com/Aliaga23/SIG-Backend/internal/core/ports"
)

const (
	// legCacheKeyPrefix namespaces leg estimates in Redis.
	legCacheKeyPrefix = "route:leg:"

	// DefaultLegCacheTTL keeps traffic-aware estimates fresh enough for
	// proposal scoring without hammering the external API.
	DefaultLegCacheTTL = 10 * time.Minute
)

// CachedRouter decorates an ExternalRouter with a Redis cache for leg
// estimates. Cache failures are logged and treated as misses so Redis
// never takes the routing path down with it.
//
// OptimizeRoute is deliberately not cached: the visit order depends on the
// full destination set, which rarely repeats within a TTL.
type CachedRouter struct {
	inner  ports.ExternalRouter
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewCachedRouter wraps router with a Redis leg-estimate cache. A
// non-positive ttl selects DefaultLegCacheTTL.
func NewCachedRouter(router ports.ExternalRouter, client *redis.Client, ttl time.Duration, logger *slog.Logger) *CachedRouter {
	if ttl <= 0 {
		ttl = DefaultLegCacheTTL
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &CachedRouter{
		inner:  router,
		client: client,
		ttl:    ttl,
		logger: logger.With("component", "geo.CachedRouter"),
	}
}

// EstimateLeg returns the cached estimate when present, otherwise delegates
// to the wrapped router and stores the result.
func (c *CachedRouter) EstimateLeg(ctx context.Context, origin kernel.GeoPoint, destination kernel.GeoPoint) (ports.RouteLeg, error) {
	key := legCacheKey(origin, destination)

	data, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		var leg ports.RouteLeg
		if unmarshalErr := json.Unmarshal(data, &leg); unmarshalErr == nil {
			return leg, nil
		}
		c.logger.WarnContext(ctx, "discarding malformed cache entry", "key", key)
	} else if !errors.Is(err, redis.Nil) {
		c.logger.WarnContext(ctx, "leg cache read failed", "error", err)
	}

	leg, err := c.inner.EstimateLeg(ctx, origin, destination)
	if err != nil {
		return ports.RouteLeg{}, err
	}

	if data, marshalErr := json.Marshal(leg); marshalErr == nil {
		if setErr := c.client.Set(ctx, key, data, c.ttl).Err(); setErr != nil {
			c.logger.WarnContext(ctx, "leg cache write failed", "error", setErr)
		}
	}

	return leg, nil
}

// OptimizeRoute delegates to the wrapped router.
func (c *CachedRouter) OptimizeRoute(ctx context.Context, origin kernel.GeoPoint, destinations []kernel.GeoPoint) (ports.OptimizedRoute, error) {
	return c.inner.OptimizeRoute(ctx, origin, destinations)
}

// legCacheKey rounds coordinates to five decimals (about one meter) so
// couriers reporting from the same spot share an entry.
func legCacheKey(origin kernel.GeoPoint, destination kernel.GeoPoint) string {
	return fmt.Sprintf("%s%.5f,%.5f:%.5f,%.5f",
		legCacheKeyPrefix,
		origin.Latitude(), origin.Longitude(),
		destination.Latitude(), destination.Longitude(),
	)
}
