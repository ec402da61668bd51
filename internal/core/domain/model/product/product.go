// Package product provides the Product aggregate root. Stock deduction on
// delivery clamps at zero so completing a stop can never drive inventory
// negative.
package product

import (
	"errors"
	"fmt"

	"github.com/Aliaga23/SIG-Backend/internal/core/domain/model/kernel"
	"github.com/Aliaga23/SIG-Backend/internal/pkg/errs"
)

var (
	// ErrProductIsNotConstructed is returned when a Product instance was not created
	// through the NewProduct factory method.
	ErrProductIsNotConstructed = errors.New("Product must be created via NewProduct constructor")
)

// Product represents an item of inventory.
type Product struct {
	id    kernel.UUID
	name  string
	price float64
	stock int

	isConstructed bool
}

// NewProduct creates a new Product.
func NewProduct(id kernel.UUID, name string, price float64, stock int) (*Product, error) {
	product := &Product{
		isConstructed: true,
	}

	if err := errors.Join(
		product.setID(id),
		product.setName(name),
		product.setPrice(price),
		product.setStock(stock),
	); err != nil {
		return nil, err
	}

	return product, nil
}

// RestoreProduct reconstructs a Product from persisted state.
func RestoreProduct(id kernel.UUID, name string, price float64, stock int) (*Product, error) {
	return NewProduct(id, name, price, stock)
}

// Validate ensures the Product instance was properly constructed.
func (p *Product) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrProductIsNotConstructed
	}

	return nil
}

// ID returns the product's unique identifier.
func (p *Product) ID() kernel.UUID {
	return p.id
}

// Name returns the product's display name.
func (p *Product) Name() string {
	return p.name
}

// Price returns the current unit price.
func (p *Product) Price() float64 {
	return p.price
}

// Stock returns the units currently in inventory.
func (p *Product) Stock() int {
	return p.stock
}

// DeductStock removes up to quantity units from inventory, clamping at zero.
// Returns the number of units actually deducted.
func (p *Product) DeductStock(quantity int) (int, error) {
	if quantity < 0 {
		return 0, errs.NewValueIsInvalidErrorWithCause("quantity is invalid",
			fmt.Errorf("%d is negative", quantity))
	}

	deducted := quantity
	if deducted > p.stock {
		deducted = p.stock
	}
	p.stock -= deducted

	return deducted, nil
}

// Restock adds units back to inventory.
func (p *Product) Restock(quantity int) error {
	if quantity < 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity is invalid",
			fmt.Errorf("%d is negative", quantity))
	}

	p.stock += quantity
	return nil
}

func (p *Product) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Product) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	p.name = name
	return nil
}

func (p *Product) setPrice(price float64) error {
	if price < 0 {
		return errs.NewValueIsInvalidErrorWithCause("price is invalid",
			fmt.Errorf("%g is negative", price))
	}
	p.price = price
	return nil
}

func (p *Product) setStock(stock int) error {
	if stock < 0 {
		return errs.NewValueIsInvalidErrorWithCause("stock is invalid",
			fmt.Errorf("%d is negative", stock))
	}
	p.stock = stock
	return nil
}
