package assignment

import (
	"errors"
	"time"

	"github.com/Aliaga23/SIG-Backend/internal/core/domain/model/kernel"
	"github.com/Aliaga23/SIG-Backend/internal/pkg/errs"
)

var (
	// ErrAssignmentIsNotConstructed is returned when an Assignment instance was not
	// created through the NewAssignment factory method.
	ErrAssignmentIsNotConstructed = errors.New("Assignment must be created via NewAssignment constructor")
)

// Assignment represents a proposed or confirmed pairing of one courier to a
// batch of orders on one route. It is the aggregate root of the assignment
// engine's state machine.
//
// Assignment follows these invariants:
//   - Must have a valid unique identifier and at least one linked order
//   - Courier and route references are nullable: deleting a courier orphans
//     its assignments instead of cascading
//   - Status transitions only along pending -> accepted | rejected | expired
//   - Capacity against the courier's vehicle is enforced at accept time, not
//     at creation, since proposals may over-allocate and defer the split
type Assignment struct {
	id        kernel.UUID
	courierID *kernel.UUID
	routeID   *kernel.UUID
	status    Status
	createdAt time.Time
	orderIDs  []kernel.UUID

	isConstructed bool
}

// NewAssignment creates a new pending Assignment proposing the given orders
// to a courier on a route.
func NewAssignment(id kernel.UUID, courierID kernel.UUID, routeID kernel.UUID, orderIDs []kernel.UUID) (*Assignment, error) {
	assignment := &Assignment{
		status:        Pending,
		createdAt:     time.Now().UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		assignment.setID(id),
		assignment.setCourierID(&courierID),
		assignment.setRouteID(&routeID),
		assignment.setOrderIDs(orderIDs),
	); err != nil {
		return nil, err
	}

	return assignment, nil
}

// RestoreAssignment reconstructs an Assignment from persisted state.
// Courier and route references may be nil for orphaned rows.
func RestoreAssignment(
	id kernel.UUID,
	courierID *kernel.UUID,
	routeID *kernel.UUID,
	status Status,
	createdAt time.Time,
	orderIDs []kernel.UUID,
) (*Assignment, error) {
	assignment := &Assignment{
		createdAt:     createdAt,
		isConstructed: true,
	}

	if err := errors.Join(
		assignment.setID(id),
		assignment.setCourierID(courierID),
		assignment.setRouteID(routeID),
		assignment.setOrderIDs(orderIDs),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	assignment.status = status
	return assignment, nil
}

// Validate ensures the Assignment instance was properly constructed.
func (a *Assignment) Validate() error {
	if a == nil || !a.isConstructed {
		return ErrAssignmentIsNotConstructed
	}

	return nil
}

// IsEqual compares two assignments by their unique identifiers.
func (a *Assignment) IsEqual(other *Assignment) bool {
	return other != nil && a.id.IsEqual(other.id)
}

// ID returns the assignment's unique identifier.
func (a *Assignment) ID() kernel.UUID {
	return a.id
}

// CourierID returns the proposed courier's ID, or nil if orphaned.
func (a *Assignment) CourierID() *kernel.UUID {
	return a.courierID
}

// RouteID returns the linked route's ID, or nil if orphaned.
func (a *Assignment) RouteID() *kernel.UUID {
	return a.routeID
}

// Status returns the current status of the assignment.
func (a *Assignment) Status() Status {
	return a.status
}

// CreatedAt returns when the proposal was created.
func (a *Assignment) CreatedAt() time.Time {
	return a.createdAt
}

// OrderIDs returns a copy of the linked order IDs in link order.
func (a *Assignment) OrderIDs() []kernel.UUID {
	ids := make([]kernel.UUID, len(a.orderIDs))
	copy(ids, a.orderIDs)
	return ids
}

// IsOwnedBy reports whether the assignment is proposed to the given courier.
func (a *Assignment) IsOwnedBy(courierID kernel.UUID) bool {
	return a.courierID != nil && a.courierID.IsEqual(courierID)
}

// IsOlderThan reports whether the proposal was created before the cutoff.
func (a *Assignment) IsOlderThan(cutoff time.Time) bool {
	return a.createdAt.Before(cutoff)
}

// Accept transitions the assignment to Accepted.
func (a *Assignment) Accept() error {
	newStatus, err := a.status.Accept()
	if err != nil {
		return err
	}

	a.status = newStatus
	return nil
}

// Reject transitions the assignment to Rejected.
func (a *Assignment) Reject() error {
	newStatus, err := a.status.Reject()
	if err != nil {
		return err
	}

	a.status = newStatus
	return nil
}

// Expire transitions the assignment to Expired.
func (a *Assignment) Expire() error {
	newStatus, err := a.status.Expire()
	if err != nil {
		return err
	}

	a.status = newStatus
	return nil
}

// RetainOrders keeps only the given prefix of linked orders and returns the
// detached remainder, preserving link order on both sides. Used by the
// capacity split at accept time. The retained set must be a non-empty prefix
// of the current links.
func (a *Assignment) RetainOrders(keep int) ([]kernel.UUID, error) {
	if keep <= 0 || keep > len(a.orderIDs) {
		return nil, errs.NewValueIsOutOfRangeError("keep", keep, 1, len(a.orderIDs))
	}

	detached := make([]kernel.UUID, len(a.orderIDs)-keep)
	copy(detached, a.orderIDs[keep:])
	a.orderIDs = a.orderIDs[:keep]

	return detached, nil
}

func (a *Assignment) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	a.id = id
	return nil
}

func (a *Assignment) setCourierID(courierID *kernel.UUID) error {
	if courierID == nil {
		return nil
	}
	if err := courierID.Validate(); err != nil {
		return err
	}
	id := *courierID
	a.courierID = &id
	return nil
}

func (a *Assignment) setRouteID(routeID *kernel.UUID) error {
	if routeID == nil {
		return nil
	}
	if err := routeID.Validate(); err != nil {
		return err
	}
	id := *routeID
	a.routeID = &id
	return nil
}

func (a *Assignment) setOrderIDs(orderIDs []kernel.UUID) error {
	if len(orderIDs) == 0 {
		return errs.NewValueIsRequiredError("orderIDs")
	}
	for _, id := range orderIDs {
		if err := id.Validate(); err != nil {
			return err
		}
	}
	a.orderIDs = make([]kernel.UUID, len(orderIDs))
	copy(a.orderIDs, orderIDs)
	return nil
}
