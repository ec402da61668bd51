package services

import (
	"context"
	"log/slog"

	"github.com/Aliaga23/SIG-Backend/internal/core/domain/model/kernel"
	"github.com/Aliaga23/SIG-Backend/internal/core/ports"
)

// FallbackMinutesPerKm is the fixed speed heuristic applied when no external
// traffic estimate is available.
const FallbackMinutesPerKm = 2.5

// RouteEstimator is a domain service wrapping the optional external routing
// capability with a local geodesic fallback.
//
// EstimateLeg never fails because of the external service: any router error,
// timeout or absence downgrades silently to haversine distance at the fixed
// speed heuristic. OptimizeOrder reports ok=false on any failure so callers
// use the local nearest-neighbor sequencer instead.
type RouteEstimator struct {
	router ports.ExternalRouter
	logger *slog.Logger
}

// NewRouteEstimator creates a RouteEstimator. Router may be nil when no
// external routing service is configured.
func NewRouteEstimator(router ports.ExternalRouter, logger *slog.Logger) RouteEstimator {
	if logger == nil {
		logger = slog.Default()
	}

	return RouteEstimator{
		router: router,
		logger: logger.With("component", "route_estimator"),
	}
}

// EstimateLeg returns a distance/time estimate between two points. The
// external router is preferred; on any failure the estimate downgrades to
// great-circle distance at FallbackMinutesPerKm. Only invalid input points
// produce an error.
func (e RouteEstimator) EstimateLeg(ctx context.Context, origin kernel.GeoPoint, destination kernel.GeoPoint) (ports.RouteLeg, error) {
	if e.router != nil {
		leg, err := e.router.EstimateLeg(ctx, origin, destination)
		if err == nil {
			return leg, nil
		}
		e.logger.InfoContext(ctx, "external estimate unavailable, using geodesic fallback", "error", err)
	}

	distance, err := origin.DistanceKm(destination)
	if err != nil {
		return ports.RouteLeg{}, err
	}

	return ports.RouteLeg{
		DistanceKm: distance,
		Minutes:    distance * FallbackMinutesPerKm,
	}, nil
}

// OptimizeOrder asks the external router for an optimized visiting order
// over the destinations. It returns ok=false when the router is not
// configured, fails, or answers with an order that is not a permutation of
// the destinations; the caller then falls back to the local sequencer.
func (e RouteEstimator) OptimizeOrder(ctx context.Context, origin kernel.GeoPoint, destinations []kernel.GeoPoint) (ports.OptimizedRoute, bool) {
	if e.router == nil || len(destinations) == 0 {
		return ports.OptimizedRoute{}, false
	}

	optimized, err := e.router.OptimizeRoute(ctx, origin, destinations)
	if err != nil {
		e.logger.InfoContext(ctx, "external optimization unavailable, using local sequencer", "error", err)
		return ports.OptimizedRoute{}, false
	}

	if !isPermutation(optimized.VisitOrder, len(destinations)) {
		e.logger.WarnContext(ctx, "external optimization returned malformed visit order",
			"expected", len(destinations), "got", len(optimized.VisitOrder))
		return ports.OptimizedRoute{}, false
	}

	return optimized, true
}

func isPermutation(order []int, n int) bool {
	if len(order) != n {
		return false
	}

	seen := make([]bool, n)
	for _, idx := range order {
		if idx < 0 || idx >= n || seen[idx] {
			return false
		}
		seen[idx] = true
	}
	return true
}
