// Package store provides the Store aggregate root. Stores are the pickup
// points routes start from; proposal picks the store nearest the selected
// courier. Stores without coordinates are skipped by that search.
package store

import (
	"errors"

	"github.com/Aliaga23/SIG-Backend/internal/core/domain/model/kernel"
	"github.com/Aliaga23/SIG-Backend/internal/pkg/errs"
)

var (
	// ErrStoreIsNotConstructed is returned when a Store instance was not created
	// through the NewStore factory method.
	ErrStoreIsNotConstructed = errors.New("Store must be created via NewStore constructor")
)

// Store represents a pickup location.
type Store struct {
	id       kernel.UUID
	name     string
	address  string
	location *kernel.GeoPoint

	isConstructed bool
}

// NewStore creates a new Store. Location may be nil when the store's
// coordinates are not yet registered.
func NewStore(id kernel.UUID, name string, address string, location *kernel.GeoPoint) (*Store, error) {
	store := &Store{
		address:       address,
		isConstructed: true,
	}

	if err := errors.Join(
		store.setID(id),
		store.setName(name),
		store.setLocation(location),
	); err != nil {
		return nil, err
	}

	return store, nil
}

// RestoreStore reconstructs a Store from persisted state.
func RestoreStore(id kernel.UUID, name string, address string, location *kernel.GeoPoint) (*Store, error) {
	return NewStore(id, name, address, location)
}

// Validate ensures the Store instance was properly constructed.
func (s *Store) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrStoreIsNotConstructed
	}

	return nil
}

// ID returns the store's unique identifier.
func (s *Store) ID() kernel.UUID {
	return s.id
}

// Name returns the store's display name.
func (s *Store) Name() string {
	return s.name
}

// Address returns the store's street address.
func (s *Store) Address() string {
	return s.address
}

// Location returns the store's coordinates, or nil when unregistered.
func (s *Store) Location() *kernel.GeoPoint {
	return s.location
}

// HasLocation reports whether the store can serve as a route start.
func (s *Store) HasLocation() bool {
	return s.location != nil
}

func (s *Store) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *Store) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	s.name = name
	return nil
}

func (s *Store) setLocation(location *kernel.GeoPoint) error {
	if location == nil {
		return nil
	}
	if err := location.Validate(); err != nil {
		return err
	}
	point := *location
	s.location = &point
	return nil
}
