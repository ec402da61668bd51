// Package storerepo provides data transfer objects and mapping functions for
// store persistence.
package storerepo

import (
	"github.com/google/uuid"

	"github.com/Aliaga23/SIG-Backend/internal/core/domain/model/kernel"
	"github.com/Aliaga23/SIG-Backend/internal/core/domain/model/store"
)

// StoreDTO represents the database structure for persisting store aggregates.
type StoreDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string
	Address     string
	LocationLat *float64
	LocationLon *float64
}

// TableName specifies the database table name for store entities.
func (StoreDTO) TableName() string {
	return "stores"
}

// fromDomain converts a store domain aggregate to its database representation.
func fromDomain(aggregate *store.Store) StoreDTO {
	dto := StoreDTO{
		ID:      aggregate.ID().Bytes(),
		Name:    aggregate.Name(),
		Address: aggregate.Address(),
	}

	if location := aggregate.Location(); location != nil {
		lat := location.Latitude()
		lon := location.Longitude()
		dto.LocationLat = &lat
		dto.LocationLon = &lon
	}

	return dto
}

// toDomain converts a database DTO to a store domain aggregate.
func toDomain(dto StoreDTO) (*store.Store, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
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

	return store.RestoreStore(id, dto.Name, dto.Address, location)
}
