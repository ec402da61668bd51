package commands

import (
	"errors"

	"github.com/Aliaga23/SIG-Backend/internal/core/domain/model/kernel"
	"github.com/Aliaga23/SIG-Backend/internal/pkg/errs"
	"github.com/Aliaga23/SIG-Backend/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// OrderItemRequest is one requested product line of a new order. The unit
// price is not part of the request; it is resolved from the catalog when the
// order is created.
type OrderItemRequest struct {
	ProductID kernel.UUID
	Quantity  int
}

// CreateOrderCommand places a new order for a customer.
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	customerID   kernel.UUID
	instructions string
	items        []OrderItemRequest

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates an order placement command.
func NewCreateOrderCommand(customerID kernel.UUID, instructions string, items []OrderItemRequest) (CreateOrderCommand, error) {
	command := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setCustomerID(customerID),
		command.setItems(items),
	); err != nil {
		return CreateOrderCommand{}, err
	}
	command.instructions = instructions

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// CustomerID returns the ordering customer.
func (c CreateOrderCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// Instructions returns the delivery instructions.
func (c CreateOrderCommand) Instructions() string {
	return c.instructions
}

// Items returns the requested product lines.
func (c CreateOrderCommand) Items() []OrderItemRequest {
	items := make([]OrderItemRequest, len(c.items))
	copy(items, c.items)
	return items
}

func (c *CreateOrderCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	c.customerID = customerID
	return nil
}

func (c *CreateOrderCommand) setItems(items []OrderItemRequest) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	for _, item := range items {
		if err := item.ProductID.Validate(); err != nil {
			return err
		}
		if item.Quantity <= 0 {
			return errs.NewValueIsInvalidError("quantity")
		}
	}
	c.items = make([]OrderItemRequest, len(items))
	copy(c.items, items)
	return nil
}
