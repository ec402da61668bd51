// Package customer provides the Customer aggregate root. Customer
// coordinates are courier-facing data quality territory: they may be absent
// or unparsable, in which case proposal skips the customer's orders rather
// than failing the batch.
package customer

import (
	"errors"

	"github.com/Aliaga23/SIG-Backend/internal/core/domain/model/kernel"
	"github.com/Aliaga23/SIG-Backend/internal/pkg/errs"
)

var (
	// ErrCustomerIsNotConstructed is returned when a Customer instance was not created
	// through the NewCustomer factory method.
	ErrCustomerIsNotConstructed = errors.New("Customer must be created via NewCustomer constructor")
)

// Customer represents a buyer with an optional delivery position.
type Customer struct {
	id       kernel.UUID
	name     string
	address  string
	phone    string
	location *kernel.GeoPoint

	isConstructed bool
}

// NewCustomer creates a new Customer. Location may be nil.
func NewCustomer(id kernel.UUID, name string, address string, phone string, location *kernel.GeoPoint) (*Customer, error) {
	customer := &Customer{
		address:       address,
		phone:         phone,
		isConstructed: true,
	}

	if err := errors.Join(
		customer.setID(id),
		customer.setName(name),
		customer.setLocation(location),
	); err != nil {
		return nil, err
	}

	return customer, nil
}

// RestoreCustomer reconstructs a Customer from persisted state.
func RestoreCustomer(id kernel.UUID, name string, address string, phone string, location *kernel.GeoPoint) (*Customer, error) {
	return NewCustomer(id, name, address, phone, location)
}

// Validate ensures the Customer instance was properly constructed.
func (c *Customer) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrCustomerIsNotConstructed
	}

	return nil
}

// ID returns the customer's unique identifier.
func (c *Customer) ID() kernel.UUID {
	return c.id
}

// Name returns the customer's display name.
func (c *Customer) Name() string {
	return c.name
}

// Address returns the customer's street address.
func (c *Customer) Address() string {
	return c.address
}

// Phone returns the customer's contact number.
func (c *Customer) Phone() string {
	return c.phone
}

// Location returns the customer's delivery coordinates, or nil when unknown.
func (c *Customer) Location() *kernel.GeoPoint {
	return c.location
}

// HasLocation reports whether the customer's orders can be routed.
func (c *Customer) HasLocation() bool {
	return c.location != nil
}

func (c *Customer) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Customer) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	c.name = name
	return nil
}

func (c *Customer) setLocation(location *kernel.GeoPoint) error {
	if location == nil {
		return nil
	}
	if err := location.Validate(); err != nil {
		return err
	}
	point := *location
	c.location = &point
	return nil
}
