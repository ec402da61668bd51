package ports

import (
	"context"
	"time"

	"github.com/Aliaga23/SIG-Backend/internal/core/domain/model/assignment"
	"github.com/Aliaga23/SIG-Backend/internal/core/domain/model/kernel"
)

// AssignmentRepository defines the persistence contract for assignment
// aggregates, including their order links.
type AssignmentRepository interface {
	// Add persists a new assignment aggregate with its order links.
	Add(ctx context.Context, aggregate *assignment.Assignment) error

	// Update persists changes to an existing assignment aggregate.
	// Order links removed from the aggregate are removed from storage.
	Update(ctx context.Context, aggregate *assignment.Assignment) error

	// Get retrieves an assignment aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*assignment.Assignment, error)

	// GetByCourier retrieves a courier's assignments, newest first.
	GetByCourier(ctx context.Context, courierID kernel.UUID) ([]*assignment.Assignment, error)

	// GetPendingByCourier retrieves a courier's pending proposals.
	GetPendingByCourier(ctx context.Context, courierID kernel.UUID) ([]*assignment.Assignment, error)

	// GetPendingByRoute retrieves every pending proposal competing for a
	// route. Used for the first-accept-wins sibling rejection.
	GetPendingByRoute(ctx context.Context, routeID kernel.UUID) ([]*assignment.Assignment, error)

	// GetAllPendingOlderThan retrieves pending proposals created before the
	// cutoff. Used by the expiry sweep.
	GetAllPendingOlderThan(ctx context.Context, cutoff time.Time) ([]*assignment.Assignment, error)

	// AcceptIfPending atomically flips the assignment to accepted only if it
	// is still pending, reporting whether this call won the transition.
	// This is the first-accept-wins guard for competing proposals.
	AcceptIfPending(ctx context.Context, id kernel.UUID) (bool, error)
}
