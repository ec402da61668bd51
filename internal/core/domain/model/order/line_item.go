package order

import (
	"fmt"

	"github.com/Aliaga23/SIG-Backend/internal/core/domain/model/kernel"
	"github.com/Aliaga23/SIG-Backend/internal/pkg/errs"
	"github.com/Aliaga23/SIG-Backend/internal/pkg/guard"
)

// ErrLineItemIsNotConstructed is returned when attempting to use an improperly
// initialized LineItem.
var ErrLineItemIsNotConstructed = errs.NewValueIsRequiredError(
	"line item must be created via NewLineItem constructor")

// LineItem is a value object representing one product entry on an order.
// The quantity contributes to the order's unit count, which is what the
// capacity check compares against a vehicle's cargo capacity.
type LineItem struct {
	productID kernel.UUID
	quantity  int
	unitPrice float64
	guard     guard.ConstructorGuard
}

// NewLineItem creates a LineItem with a positive quantity and a non-negative
// unit price.
func NewLineItem(productID kernel.UUID, quantity int, unitPrice float64) (LineItem, error) {
	if err := productID.Validate(); err != nil {
		return LineItem{}, err
	}
	if quantity <= 0 {
		return LineItem{}, errs.NewValueIsInvalidErrorWithCause("quantity is invalid",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	if unitPrice < 0 {
		return LineItem{}, errs.NewValueIsInvalidErrorWithCause("unit price is invalid",
			fmt.Errorf("%g is negative", unitPrice))
	}

	return LineItem{
		productID: productID,
		quantity:  quantity,
		unitPrice: unitPrice,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the LineItem was created through NewLineItem.
func (li LineItem) Validate() error {
	return li.guard.Validate(ErrLineItemIsNotConstructed)
}

// ProductID returns the referenced product's identifier.
func (li LineItem) ProductID() kernel.UUID {
	return li.productID
}

// Quantity returns the number of units ordered.
func (li LineItem) Quantity() int {
	return li.quantity
}

// UnitPrice returns the price per unit at the time the order was placed.
func (li LineItem) UnitPrice() float64 {
	return li.unitPrice
}

// Subtotal returns quantity times unit price.
func (li LineItem) Subtotal() float64 {
	return float64(li.quantity) * li.unitPrice
}
