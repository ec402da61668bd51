package queries

import (
	"errors"
	"time"

	"github.com/Aliaga23/SIG-Backend/internal/core/domain/model/kernel"
	"github.com/Aliaga23/SIG-Backend/internal/pkg/guard"
)

var ErrGetPendingAssignmentsQueryIsNotConstructed = errors.New(
	"GetPendingAssignmentsQuery must be created via NewGetPendingAssignmentsQuery constructor",
)

// GetPendingAssignmentsQuery retrieves the open proposals a courier can still
// act on. Proposals whose route was already accepted by a competing courier
// are excluded, since accepting them would lose the race anyway.
type GetPendingAssignmentsQuery struct {
	courierID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetPendingAssignmentsQuery creates a query for a courier's actionable
// pending proposals.
func NewGetPendingAssignmentsQuery(courierID kernel.UUID) (GetPendingAssignmentsQuery, error) {
	if err := courierID.Validate(); err != nil {
		return GetPendingAssignmentsQuery{}, err
	}

	return GetPendingAssignmentsQuery{
		courierID: courierID,

		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetPendingAssignmentsQuery) Validate() error {
	return q.guard.Validate(ErrGetPendingAssignmentsQueryIsNotConstructed)
}

// CourierID returns the courier whose pending proposals are requested.
func (q GetPendingAssignmentsQuery) CourierID() kernel.UUID {
	return q.courierID
}

// GetPendingAssignmentsQueryResponse is one actionable proposal in the read
// model, carrying the route estimates the courier decides on.
type GetPendingAssignmentsQueryResponse struct {
	ID               kernel.UUID
	CreatedAt        time.Time
	RouteID          *kernel.UUID
	DistanceKm       float64
	EstimatedMinutes float64
	OrderIDs         []kernel.UUID
}
