package courier

import (
	"errors"

	"github.com/Aliaga23/SIG-Backend/internal/core/domain/model/kernel"
	"github.com/Aliaga23/SIG-Backend/internal/pkg/errs"
)

var (
	// ErrCourierIsNotConstructed is returned when a Courier instance was not created
	// through the NewCourier factory method.
	ErrCourierIsNotConstructed = errors.New("Courier must be created via NewCourier constructor")
)

// Courier represents a delivery agent. It is an aggregate root holding the
// courier's identity, activity flag, last reported coordinates, and derived
// work status.
//
// Courier follows these invariants:
//   - Must have a valid unique identifier and a non-empty name
//   - Coordinates are optional: couriers that never reported a position have
//     a nil location and are skipped by proximity search
//   - Work status is always the value RefreshWorkStatus would derive from the
//     active flag and the open stop count at the last mutation
type Courier struct {
	id         kernel.UUID
	name       string
	phone      string
	active     bool
	location   *kernel.GeoPoint
	workStatus WorkStatus

	isConstructed bool
}

// NewCourier creates a new active Courier with no reported location.
// New couriers start Available.
func NewCourier(id kernel.UUID, name string, phone string) (*Courier, error) {
	courier := &Courier{
		phone:         phone,
		active:        true,
		workStatus:    Available,
		isConstructed: true,
	}

	if err := errors.Join(
		courier.setID(id),
		courier.setName(name),
	); err != nil {
		return nil, err
	}

	return courier, nil
}

// RestoreCourier reconstructs a Courier from persisted state.
func RestoreCourier(
	id kernel.UUID,
	name string,
	phone string,
	active bool,
	location *kernel.GeoPoint,
	workStatus WorkStatus,
) (*Courier, error) {
	courier := &Courier{
		phone:         phone,
		active:        active,
		isConstructed: true,
	}

	if err := errors.Join(
		courier.setID(id),
		courier.setName(name),
		courier.setLocation(location),
		workStatus.Validate(),
	); err != nil {
		return nil, err
	}

	courier.workStatus = workStatus
	return courier, nil
}

// Validate ensures the Courier instance was properly constructed.
func (c *Courier) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrCourierIsNotConstructed
	}

	return nil
}

// IsEqual compares two couriers by their unique identifiers.
func (c *Courier) IsEqual(other *Courier) bool {
	return other != nil && c.id.IsEqual(other.id)
}

// ID returns the courier's unique identifier.
func (c *Courier) ID() kernel.UUID {
	return c.id
}

// Name returns the courier's display name.
func (c *Courier) Name() string {
	return c.name
}

// Phone returns the courier's contact number.
func (c *Courier) Phone() string {
	return c.phone
}

// IsActive reports whether the courier is currently working.
func (c *Courier) IsActive() bool {
	return c.active
}

// Location returns the courier's last reported coordinates.
// Returns nil if the courier has never reported a position.
func (c *Courier) Location() *kernel.GeoPoint {
	return c.location
}

// WorkStatus returns the courier's derived availability.
func (c *Courier) WorkStatus() WorkStatus {
	return c.workStatus
}

// ReportLocation records the courier's current coordinates.
func (c *Courier) ReportLocation(location kernel.GeoPoint) error {
	if err := location.Validate(); err != nil {
		return err
	}

	c.location = &location
	return nil
}

// Activate marks the courier as working and recomputes availability.
func (c *Courier) Activate(openStops int) {
	c.active = true
	c.RefreshWorkStatus(openStops)
}

// Deactivate marks the courier as not working.
func (c *Courier) Deactivate() {
	c.active = false
	c.RefreshWorkStatus(0)
}

// RefreshWorkStatus is the single authoritative derivation of the courier's
// work status. Every mutation site that changes the open stop count calls it
// with the current count instead of toggling the flag by hand.
func (c *Courier) RefreshWorkStatus(openStops int) {
	switch {
	case !c.active:
		c.workStatus = Inactive
	case openStops > 0:
		c.workStatus = Busy
	default:
		c.workStatus = Available
	}
}

func (c *Courier) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Courier) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	c.name = name
	return nil
}

func (c *Courier) setLocation(location *kernel.GeoPoint) error {
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
