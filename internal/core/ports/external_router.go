package ports

import (
	"context"

	"github.com/Aliaga23/SIG-Backend/internal/core/domain/model/kernel"
)

// RouteLeg is a distance/time estimate for travel between two points.
type RouteLeg struct {
	DistanceKm float64
	Minutes    float64
}

// OptimizedRoute is the result of an external multi-waypoint optimization:
// total distance, total time, and the visiting order as indices into the
// destinations slice passed to OptimizeRoute.
type OptimizedRoute struct {
	DistanceKm float64
	Minutes    float64
	VisitOrder []int
}

// ExternalRouter is the optional external routing capability. Adapters may
// be unconfigured or unreachable; callers must treat every error as a signal
// to fall back to local geodesic computation, never as a request failure.
type ExternalRouter interface {
	// EstimateLeg returns a distance/time-with-traffic estimate between two
	// points.
	EstimateLeg(ctx context.Context, origin kernel.GeoPoint, destination kernel.GeoPoint) (RouteLeg, error)

	// OptimizeRoute returns an externally optimized visiting order over the
	// destinations starting from origin.
	OptimizeRoute(ctx context.Context, origin kernel.GeoPoint, destinations []kernel.GeoPoint) (OptimizedRoute, error)
}
