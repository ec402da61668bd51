package order

import (
	"errors"
	"time"

	"github.com/Aliaga23/SIG-Backend/internal/core/domain/model/kernel"
	"github.com/Aliaga23/SIG-Backend/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// the NewOrder factory method. This ensures all orders are properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Order represents a customer purchase in the system. It is the aggregate root
// that manages the order lifecycle from creation through assignment to a final
// delivery outcome.
//
// Order follows these invariants:
//   - Must have a valid unique identifier and customer reference
//   - Must carry at least one line item
//   - Total equals the sum of line item subtotals
//   - Status transitions follow the defined state machine; Delivered and
//     Failed are final
//   - Can only be created through NewOrder or RestoreOrder
type Order struct {
	id           kernel.UUID
	customerID   kernel.UUID
	placedAt     time.Time
	status       Status
	total        float64
	instructions string
	items        []LineItem

	isConstructed bool
}

// NewOrder creates a new pending Order from validated line items.
// The total is computed from the items, not supplied by the caller.
//
// Example:
//
//	item, _ := order.NewLineItem(productID, 2, 15.50)
//	o, err := order.NewOrder(kernel.NewUUID(), customerID, "leave at the gate", []order.LineItem{item})
//	if err != nil {
//	    // handle validation error
//	}
func NewOrder(id kernel.UUID, customerID kernel.UUID, instructions string, items []LineItem) (*Order, error) {
	order := &Order{
		status:        Pending,
		placedAt:      time.Now().UTC(),
		instructions:  instructions,
		isConstructed: true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setCustomerID(customerID),
		order.setItems(items),
	); err != nil {
		return nil, err
	}

	order.total = 0
	for _, item := range order.items {
		order.total += item.Subtotal()
	}

	return order, nil
}

// RestoreOrder reconstructs an Order from persisted state.
// Used by repositories when mapping database rows back to the domain;
// unlike NewOrder it accepts any valid status and a stored total.
func RestoreOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	placedAt time.Time,
	status Status,
	total float64,
	instructions string,
	items []LineItem,
) (*Order, error) {
	order := &Order{
		placedAt:      placedAt,
		total:         total,
		instructions:  instructions,
		isConstructed: true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setCustomerID(customerID),
		order.setItems(items),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	order.status = status
	return order, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// CustomerID returns the ordering customer's identifier.
func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

// PlacedAt returns when the order was created.
func (o *Order) PlacedAt() time.Time {
	return o.placedAt
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// Total returns the monetary total of the order.
func (o *Order) Total() float64 {
	return o.total
}

// Instructions returns the free-text delivery instructions.
func (o *Order) Instructions() string {
	return o.instructions
}

// Items returns a copy of the order's line items.
func (o *Order) Items() []LineItem {
	items := make([]LineItem, len(o.items))
	copy(items, o.items)
	return items
}

// UnitCount returns the total number of physical units across all line
// items. This is the quantity compared against vehicle capacity during
// assignment acceptance.
func (o *Order) UnitCount() int {
	count := 0
	for _, item := range o.items {
		count += item.Quantity()
	}
	return count
}

// Assign marks the order as belonging to an accepted assignment.
// Reassignment of an already assigned order is allowed so that orders
// released by expired or rejected assignments can be proposed again.
func (o *Order) Assign() error {
	newStatus, err := o.status.Assign()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// Accept records the courier's confirmation of the individual order.
func (o *Order) Accept() error {
	newStatus, err := o.status.Accept()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// StartDelivery marks the order as on an active route.
func (o *Order) StartDelivery() error {
	newStatus, err := o.status.StartDelivery()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// Deliver marks the order as delivered. Final state.
func (o *Order) Deliver() error {
	newStatus, err := o.status.Deliver()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// Fail marks the order's delivery as failed. Final state.
func (o *Order) Fail() error {
	newStatus, err := o.status.Fail()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("customerID", err)
	}
	o.customerID = customerID
	return nil
}

func (o *Order) setItems(items []LineItem) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	o.items = make([]LineItem, len(items))
	copy(o.items, items)
	return nil
}
