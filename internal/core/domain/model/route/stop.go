package route

import (
	"errors"
	"fmt"
	"time"

	"github.com/Aliaga23/SIG-Backend/internal/core/domain/model/kernel"
	"github.com/Aliaga23/SIG-Backend/internal/pkg/errs"
)

var (
	// ErrStopIsNotConstructed is returned when a Stop instance was not created
	// through the NewStop factory method.
	ErrStopIsNotConstructed = errors.New("Stop must be created via NewStop constructor")
)

// Stop represents one physical delivery visit within a route. Stops are
// batch-created from an assignment's orders when the courier accepts, one
// stop per order, sequenced 1..N.
//
// Stop follows these invariants:
//   - Must reference its assignment; route, order and customer references
//     tie it back to the rest of the graph
//   - Sequence positions are 1-based and unique within a route (enforced by
//     the store; rewritten wholesale on re-optimization)
//   - Destination coordinates may be absent; such stops are sequenced at the
//     tail of the route
type Stop struct {
	id           kernel.UUID
	registeredAt time.Time
	assignmentID kernel.UUID
	routeID      kernel.UUID
	orderID      *kernel.UUID
	customerID   *kernel.UUID
	destination  *kernel.GeoPoint
	status       StopStatus
	notes        string
	sequence     int

	isConstructed bool
}

// NewStop creates a new EnRoute Stop for an order on an accepted
// assignment's route.
func NewStop(
	id kernel.UUID,
	assignmentID kernel.UUID,
	routeID kernel.UUID,
	orderID *kernel.UUID,
	customerID *kernel.UUID,
	destination *kernel.GeoPoint,
	sequence int,
) (*Stop, error) {
	stop := &Stop{
		registeredAt:  time.Now().UTC(),
		status:        StopEnRoute,
		isConstructed: true,
	}

	if err := errors.Join(
		stop.setID(id),
		stop.setAssignmentID(assignmentID),
		stop.setRouteID(routeID),
		stop.setOrderID(orderID),
		stop.setCustomerID(customerID),
		stop.setDestination(destination),
		stop.setSequence(sequence),
	); err != nil {
		return nil, err
	}

	return stop, nil
}

// RestoreStop reconstructs a Stop from persisted state.
func RestoreStop(
	id kernel.UUID,
	registeredAt time.Time,
	assignmentID kernel.UUID,
	routeID kernel.UUID,
	orderID *kernel.UUID,
	customerID *kernel.UUID,
	destination *kernel.GeoPoint,
	status StopStatus,
	notes string,
	sequence int,
) (*Stop, error) {
	stop := &Stop{
		registeredAt:  registeredAt,
		notes:         notes,
		isConstructed: true,
	}

	if err := errors.Join(
		stop.setID(id),
		stop.setAssignmentID(assignmentID),
		stop.setRouteID(routeID),
		stop.setOrderID(orderID),
		stop.setCustomerID(customerID),
		stop.setDestination(destination),
		stop.setSequence(sequence),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	stop.status = status
	return stop, nil
}

// Validate ensures the Stop instance was properly constructed.
func (s *Stop) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrStopIsNotConstructed
	}

	return nil
}

// IsEqual compares two stops by their unique identifiers.
func (s *Stop) IsEqual(other *Stop) bool {
	return other != nil && s.id.IsEqual(other.id)
}

// ID returns the stop's unique identifier.
func (s *Stop) ID() kernel.UUID {
	return s.id
}

// RegisteredAt returns when the stop was created.
func (s *Stop) RegisteredAt() time.Time {
	return s.registeredAt
}

// AssignmentID returns the owning assignment's identifier.
func (s *Stop) AssignmentID() kernel.UUID {
	return s.assignmentID
}

// RouteID returns the owning route's identifier.
func (s *Stop) RouteID() kernel.UUID {
	return s.routeID
}

// OrderID returns the linked order's identifier, or nil.
func (s *Stop) OrderID() *kernel.UUID {
	return s.orderID
}

// CustomerID returns the linked customer's identifier, or nil.
func (s *Stop) CustomerID() *kernel.UUID {
	return s.customerID
}

// Destination returns the visit coordinates, or nil when unknown.
func (s *Stop) Destination() *kernel.GeoPoint {
	return s.destination
}

// Status returns the current status of the stop.
func (s *Stop) Status() StopStatus {
	return s.status
}

// Notes returns the free-text notes recorded on the stop.
func (s *Stop) Notes() string {
	return s.notes
}

// Sequence returns the 1-based position within the route.
func (s *Stop) Sequence() int {
	return s.sequence
}

// IsOpen reports whether the stop still awaits a delivery outcome.
func (s *Stop) IsOpen() bool {
	return s.status.IsOpen()
}

// Complete records a delivery outcome with the reported coordinates and
// notes. Completion always overwrites coordinates, notes and status, even on
// re-entry; the caller decides whether side effects fire by inspecting the
// prior status.
func (s *Stop) Complete(outcome StopStatus, finalDestination *kernel.GeoPoint, notes string) error {
	if outcome != StopDelivered && outcome != StopFailed {
		return errs.NewValueIsInvalidErrorWithCause("outcome is invalid",
			fmt.Errorf("%s is not a delivery outcome", outcome.String()))
	}
	if err := s.setDestination(finalDestination); err != nil {
		return err
	}

	s.status = outcome
	s.notes = notes
	return nil
}

// Resequence rewrites the stop's 1-based position within its route.
func (s *Stop) Resequence(sequence int) error {
	return s.setSequence(sequence)
}

func (s *Stop) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *Stop) setAssignmentID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("assignmentID", err)
	}
	s.assignmentID = id
	return nil
}

func (s *Stop) setRouteID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("routeID", err)
	}
	s.routeID = id
	return nil
}

func (s *Stop) setOrderID(id *kernel.UUID) error {
	if id == nil {
		return nil
	}
	if err := id.Validate(); err != nil {
		return err
	}
	v := *id
	s.orderID = &v
	return nil
}

func (s *Stop) setCustomerID(id *kernel.UUID) error {
	if id == nil {
		return nil
	}
	if err := id.Validate(); err != nil {
		return err
	}
	v := *id
	s.customerID = &v
	return nil
}

func (s *Stop) setDestination(point *kernel.GeoPoint) error {
	if point == nil {
		return nil
	}
	if err := point.Validate(); err != nil {
		return err
	}
	v := *point
	s.destination = &v
	return nil
}

func (s *Stop) setSequence(sequence int) error {
	if sequence < 1 {
		return errs.NewValueIsInvalidErrorWithCause("sequence is invalid",
			fmt.Errorf("%d is not a 1-based position", sequence))
	}
	s.sequence = sequence
	return nil
}
