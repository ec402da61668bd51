package order

import (
	"fmt"

	"github.com/Aliaga23/SIG-Backend/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions to ensure
// orders follow the correct business workflow.
//
// State transitions:
//
//	Pending ──> Assigned ──> Accepted ──> InDelivery ──┬──> Delivered
//	                │            │            │        │
//	                └────────────┴────────────┴────────┴──> Failed
//
// A delivery outcome (Delivered or Failed) is reachable from any state
// after assignment; Delivered and Failed are final.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status when an order is first created.
	// Orders in this status are waiting to be proposed to a courier.
	Pending

	// Assigned indicates the order belongs to an accepted assignment.
	Assigned

	// Accepted indicates the courier confirmed the individual order.
	Accepted

	// InDelivery indicates the order is on an active route.
	InDelivery

	// Delivered indicates the order reached the customer. Final state.
	Delivered

	// Failed indicates the delivery could not be completed. Final state.
	Failed
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "unknown",
		Pending:    "pending",
		Assigned:   "assigned",
		Accepted:   "accepted",
		InDelivery: "in_delivery",
		Delivered:  "delivered",
		Failed:     "failed",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:    "pending",
		Assigned:   "assigned",
		Accepted:   "accepted",
		InDelivery: "in_delivery",
		Delivered:  "delivered",
		Failed:     "failed",
	}
}

// StatusFromString parses the persisted string representation of a status.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid",
		fmt.Errorf("%q is not a valid order status", s))
}

// Validate checks if the Status value is valid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the persisted name of the status.
// It implements fmt.Stringer and is safe on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether the status admits no further transitions.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Failed
}

// Assign transitions the status to Assigned.
//
// Valid transitions:
//   - Pending -> Assigned (assignment accepted by a courier)
//   - Assigned -> Assigned (reassignment after expiry or rejection)
func (s Status) Assign() (Status, error) {
	if s != Pending && s != Assigned {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to assign", s.String()),
		)
	}

	return Assigned, nil
}

// Accept transitions the status from Assigned to Accepted.
func (s Status) Accept() (Status, error) {
	if s != Assigned {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to accept", s.String()),
		)
	}

	return Accepted, nil
}

// StartDelivery transitions the status to InDelivery.
func (s Status) StartDelivery() (Status, error) {
	if s != Assigned && s != Accepted {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to start delivery", s.String()),
		)
	}

	return InDelivery, nil
}

// Deliver transitions the status to Delivered.
// Allowed from any post-assignment non-terminal state.
func (s Status) Deliver() (Status, error) {
	if err := s.validateOutcome("deliver"); err != nil {
		return 0, err
	}

	return Delivered, nil
}

// Fail transitions the status to Failed.
// Allowed from any post-assignment non-terminal state.
func (s Status) Fail() (Status, error) {
	if err := s.validateOutcome("fail"); err != nil {
		return 0, err
	}

	return Failed, nil
}

func (s Status) validateOutcome(verb string) error {
	if s != Assigned && s != Accepted && s != InDelivery {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to %s", s.String(), verb),
		)
	}
	return nil
}
