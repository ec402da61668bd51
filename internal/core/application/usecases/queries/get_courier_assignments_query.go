// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases.
package queries

import (
	"errors"
	"time"

	"github.com/Aliaga23/SIG-Backend/internal/core/domain/model/kernel"
	"github.com/Aliaga23/SIG-Backend/internal/pkg/guard"
)

var ErrGetCourierAssignmentsQueryIsNotConstructed = errors.New(
	"GetCourierAssignmentsQuery must be created via NewGetCourierAssignmentsQuery constructor",
)

// GetCourierAssignmentsQuery retrieves the assignment history of one courier,
// newest first, with the linked order IDs of each assignment.
type GetCourierAssignmentsQuery struct {
	courierID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetCourierAssignmentsQuery creates a query for a courier's assignments.
func NewGetCourierAssignmentsQuery(courierID kernel.UUID) (GetCourierAssignmentsQuery, error) {
	if err := courierID.Validate(); err != nil {
		return GetCourierAssignmentsQuery{}, err
	}

	return GetCourierAssignmentsQuery{
		courierID: courierID,

		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetCourierAssignmentsQuery) Validate() error {
	return q.guard.Validate(ErrGetCourierAssignmentsQueryIsNotConstructed)
}

// CourierID returns the courier whose assignments are requested.
func (q GetCourierAssignmentsQuery) CourierID() kernel.UUID {
	return q.courierID
}

// GetCourierAssignmentsQueryResponse is one assignment in the courier's
// history read model, with its stops in sequence order and the first still
// open stop called out as the next destination.
type GetCourierAssignmentsQueryResponse struct {
	ID         kernel.UUID
	Status     string
	CreatedAt  time.Time
	RouteID    *kernel.UUID
	OrderIDs   []kernel.UUID
	Stops      []CourierStopResponse
	NextStopID *kernel.UUID
}

// CourierStopResponse is one stop of an assignment in the read model.
type CourierStopResponse struct {
	ID       kernel.UUID
	OrderID  *kernel.UUID
	Sequence int
	Status   string
}
