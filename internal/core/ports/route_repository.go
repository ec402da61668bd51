package ports

import (
	"context"

	"github.com/Aliaga23/SIG-Backend/internal/core/domain/model/kernel"
	"github.com/Aliaga23/SIG-Backend/internal/core/domain/model/route"
)

// RouteRepository defines the persistence contract for route headers and
// their stops. Stops live under the route aggregate and are traversed via
// query rather than in-memory pointers.
type RouteRepository interface {
	// Add persists a new route header to storage.
	Add(ctx context.Context, aggregate *route.Route) error

	// Update persists changes to an existing route header.
	Update(ctx context.Context, aggregate *route.Route) error

	// Get retrieves a route header by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*route.Route, error)

	// AddStop persists a new stop.
	AddStop(ctx context.Context, stop *route.Stop) error

	// UpdateStop persists changes to an existing stop.
	UpdateStop(ctx context.Context, stop *route.Stop) error

	// GetStop retrieves a stop by its unique identifier.
	GetStop(ctx context.Context, id kernel.UUID) (*route.Stop, error)

	// GetStopByOrderID retrieves the stop linked to an order, if any.
	// Returns nil without error when no stop exists; acceptance uses this
	// to create stops idempotently.
	GetStopByOrderID(ctx context.Context, orderID kernel.UUID) (*route.Stop, error)

	// GetStopsByRoute retrieves a route's stops ordered by sequence.
	GetStopsByRoute(ctx context.Context, routeID kernel.UUID) ([]*route.Stop, error)

	// GetStopsByAssignment retrieves an assignment's stops ordered by sequence.
	GetStopsByAssignment(ctx context.Context, assignmentID kernel.UUID) ([]*route.Stop, error)

	// DeleteStopsByOrderIDs removes the stops linked to the given orders.
	// Used when the capacity split detaches orders whose stops were already
	// created.
	DeleteStopsByOrderIDs(ctx context.Context, orderIDs []kernel.UUID) error

	// GetOpenStopsByCourier retrieves the open (pending or en_ruta) stops
	// across the courier's accepted assignments, ordered by sequence.
	GetOpenStopsByCourier(ctx context.Context, courierID kernel.UUID) ([]*route.Stop, error)

	// CountOpenStopsByCourier counts the open stops across the courier's
	// accepted assignments. This count drives work status recomputation.
	CountOpenStopsByCourier(ctx context.Context, courierID kernel.UUID) (int, error)
}
