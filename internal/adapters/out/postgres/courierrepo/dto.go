// Package courierrepo provides data transfer objects and mapping functions
// for courier persistence. A courier's last reported location is stored as a
// nullable coordinate pair because new couriers have no location yet.
package courierrepo

import (
	"github.com/google/uuid"

	"github.com/Aliaga23/SIG-Backend/internal/core/domain/model/courier"
	"github.com/Aliaga23/SIG-Backend/internal/core/domain/model/kernel"
)

// CourierDTO represents the database structure for persisting courier aggregates.
type CourierDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string
	Phone       string
	Active      bool `gorm:"index"`
	LocationLat *float64
	LocationLon *float64
	WorkStatus  string `gorm:"type:varchar(16)"`
}

// TableName specifies the database table name for courier entities.
func (CourierDTO) TableName() string {
	return "couriers"
}

// fromDomain converts a courier domain aggregate to its database representation.
func fromDomain(aggregate *courier.Courier) CourierDTO {
	dto := CourierDTO{
		ID:         aggregate.ID().Bytes(),
		Name:       aggregate.Name(),
		Phone:      aggregate.Phone(),
		Active:     aggregate.IsActive(),
		WorkStatus: aggregate.WorkStatus().String(),
	}

	if location := aggregate.Location(); location != nil {
		lat := location.Latitude()
		lon := location.Longitude()
		dto.LocationLat = &lat
		dto.LocationLon = &lon
	}

	return dto
}

// toDomain converts a database DTO to a courier domain aggregate.
func toDomain(dto CourierDTO) (*courier.Courier, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	workStatus, err := courier.WorkStatusFromString(dto.WorkStatus)
	if err != nil {
		return nil, err
	}

	var location *kernel.GeoPoint
	if dto.LocationLat != nil && dto.LocationLon != nil {
		point, pointErr := kernel.NewGeoPoint(*dto.LocationLat, *dto.LocationLon)
		if pointErr != nil {
			return nil, pointErr
		}
		location = &point
	}

	return courier.RestoreCourier(id, dto.Name, dto.Phone, dto.Active, location, workStatus)
}
