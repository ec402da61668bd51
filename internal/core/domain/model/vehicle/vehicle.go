// Package vehicle provides the Vehicle aggregate root. A vehicle carries the
// cargo capacity (in units) that assignment acceptance checks order batches
// against. A courier has at most one vehicle at a time.
package vehicle

import (
	"errors"
	"fmt"

	"github.com/Aliaga23/SIG-Backend/internal/core/domain/model/kernel"
	"github.com/Aliaga23/SIG-Backend/internal/pkg/errs"
)

var (
	// ErrVehicleIsNotConstructed is returned when a Vehicle instance was not created
	// through the NewVehicle factory method.
	ErrVehicleIsNotConstructed = errors.New("Vehicle must be created via NewVehicle constructor")
)

// Vehicle represents a delivery vehicle with a cargo capacity in integer units.
type Vehicle struct {
	id          kernel.UUID
	plate       string
	vehicleType string
	capacity    int
	courierID   *kernel.UUID

	isConstructed bool
}

// NewVehicle creates a new unassigned Vehicle.
func NewVehicle(id kernel.UUID, plate string, vehicleType string, capacity int) (*Vehicle, error) {
	vehicle := &Vehicle{
		vehicleType:   vehicleType,
		isConstructed: true,
	}

	if err := errors.Join(
		vehicle.setID(id),
		vehicle.setPlate(plate),
		vehicle.setCapacity(capacity),
	); err != nil {
		return nil, err
	}

	return vehicle, nil
}

// RestoreVehicle reconstructs a Vehicle from persisted state.
func RestoreVehicle(
	id kernel.UUID,
	plate string,
	vehicleType string,
	capacity int,
	courierID *kernel.UUID,
) (*Vehicle, error) {
	vehicle, err := NewVehicle(id, plate, vehicleType, capacity)
	if err != nil {
		return nil, err
	}

	if courierID != nil {
		if err := vehicle.AssignToCourier(*courierID); err != nil {
			return nil, err
		}
	}

	return vehicle, nil
}

// Validate ensures the Vehicle instance was properly constructed.
func (v *Vehicle) Validate() error {
	if v == nil || !v.isConstructed {
		return ErrVehicleIsNotConstructed
	}

	return nil
}

// ID returns the vehicle's unique identifier.
func (v *Vehicle) ID() kernel.UUID {
	return v.id
}

// Plate returns the registration plate.
func (v *Vehicle) Plate() string {
	return v.plate
}

// Type returns the vehicle type (motorcycle, van, ...).
func (v *Vehicle) Type() string {
	return v.vehicleType
}

// Capacity returns the cargo capacity in units.
func (v *Vehicle) Capacity() int {
	return v.capacity
}

// CourierID returns the assigned courier's ID, or nil if unassigned.
func (v *Vehicle) CourierID() *kernel.UUID {
	return v.courierID
}

// AssignToCourier links the vehicle to a courier.
func (v *Vehicle) AssignToCourier(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	v.courierID = &courierID
	return nil
}

// Unassign detaches the vehicle from its courier.
func (v *Vehicle) Unassign() {
	v.courierID = nil
}

func (v *Vehicle) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	v.id = id
	return nil
}

func (v *Vehicle) setPlate(plate string) error {
	if plate == "" {
		return errs.NewValueIsRequiredError("plate")
	}
	v.plate = plate
	return nil
}

func (v *Vehicle) setCapacity(capacity int) error {
	if capacity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("capacity is invalid",
			fmt.Errorf("%d is not greater than 0", capacity))
	}
	v.capacity = capacity
	return nil
}
