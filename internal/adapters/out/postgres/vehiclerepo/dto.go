// Package vehiclerepo provides data transfer objects and mapping functions
// for vehicle persistence.
package vehiclerepo

import (
	"github.com/google/uuid"

	"github.com/Aliaga23/SIG-Backend/internal/core/domain/model/kernel"
	"github.com/Aliaga23/SIG-Backend/internal/core/domain/model/vehicle"
)

// VehicleDTO represents the database structure for persisting vehicle
// aggregates. The unique index on the courier reference enforces the
// one-vehicle-per-courier rule at the storage level.
type VehicleDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Plate       string    `gorm:"uniqueIndex"`
	VehicleType string    `gorm:"type:varchar(32)"`
	Capacity    int
	CourierID   *uuid.UUID `gorm:"type:uuid;uniqueIndex"`
}

// TableName specifies the database table name for vehicle entities.
func (VehicleDTO) TableName() string {
	return "vehicles"
}

// fromDomain converts a vehicle domain aggregate to its database representation.
func fromDomain(aggregate *vehicle.Vehicle) VehicleDTO {
	var courierID *uuid.UUID
	if id := aggregate.CourierID(); id != nil {
		raw := id.Bytes()
		courierID = &raw
	}

	return VehicleDTO{
		ID:          aggregate.ID().Bytes(),
		Plate:       aggregate.Plate(),
		VehicleType: aggregate.Type(),
		Capacity:    aggregate.Capacity(),
		CourierID:   courierID,
	}
}

// toDomain converts a database DTO to a vehicle domain aggregate.
func toDomain(dto VehicleDTO) (*vehicle.Vehicle, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var courierID *kernel.UUID
	if dto.CourierID != nil {
		cID, courierErr := kernel.UUIDFromBytes((*dto.CourierID)[:])
		if courierErr != nil {
			return nil, courierErr
		}
		courierID = &cID
	}

	return vehicle.RestoreVehicle(id, dto.Plate, dto.VehicleType, dto.Capacity, courierID)
}
