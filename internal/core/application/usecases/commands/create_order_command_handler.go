package commands

import (
	"context"

	"github.com/Aliaga23/SIG-Backend/internal/core/domain/model/kernel"
	"github.com/Aliaga23/SIG-Backend/internal/core/domain/model/order"
)

// CreateOrderCommandHandler places a new order. The customer must exist and
// every requested product must be in the catalog; unit prices are snapshotted
// from the catalog at placement time, so later price changes do not affect
// the order total.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewCreateOrderCommandHandler creates a handler for order placement.
func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{uowFactory: uowFactory}
}

// Handle processes the placement command and returns the new order's ID.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, command CreateOrderCommand) (kernel.UUID, error) {
	if err := command.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return kernel.UUID{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if _, err := uow.CustomerRepository().Get(ctx, command.CustomerID()); err != nil {
		return kernel.UUID{}, err
	}

	items := make([]order.LineItem, 0, len(command.Items()))
	for _, requested := range command.Items() {
		listed, err := uow.ProductRepository().Get(ctx, requested.ProductID)
		if err != nil {
			return kernel.UUID{}, err
		}

		item, err := order.NewLineItem(listed.ID(), requested.Quantity, listed.Price())
		if err != nil {
			return kernel.UUID{}, err
		}
		items = append(items, item)
	}

	placed, err := order.NewOrder(kernel.NewUUID(), command.CustomerID(), command.Instructions(), items)
	if err != nil {
		return kernel.UUID{}, err
	}

	if err := uow.OrderRepository().Add(ctx, placed); err != nil {
		return kernel.UUID{}, err
	}

	if err := uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}

	return placed.ID(), nil
}
