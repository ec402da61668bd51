// Package routerepo provides data transfer objects and mapping functions for
// route and stop persistence. Route headers and stops share one repository:
// stops belong to a route, and the open-stop queries that drive courier work
// status join the two tables with assignments.
package routerepo

import (
	"time"

	"github.com/google/uuid"

	"github.com/Aliaga23/SIG-Backend/internal/core/domain/model/kernel"
	"github.com/Aliaga23/SIG-Backend/internal/core/domain/model/route"
)

// RouteDTO represents the database structure for persisting route headers.
type RouteDTO struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	StartLat         float64
	StartLon         float64
	EndLat           float64
	EndLon           float64
	DistanceKm       float64
	EstimatedMinutes float64
	Stops            []StopDTO `gorm:"foreignKey:RouteID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for route entities.
func (RouteDTO) TableName() string {
	return "routes"
}

// StopDTO represents the database structure for persisting stops. Order,
// customer and destination are nullable: a stop can be registered manually
// before it is tied to an order. At most one stop may reference an order;
// the unique index is the backstop when two accepts race past the
// application-level lookup.
type StopDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	RegisteredAt   time.Time
	AssignmentID   uuid.UUID  `gorm:"type:uuid;index"`
	RouteID        uuid.UUID  `gorm:"type:uuid;index"`
	OrderID        *uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	CustomerID     *uuid.UUID `gorm:"type:uuid"`
	DestinationLat *float64
	DestinationLon *float64
	Status         string `gorm:"type:varchar(16);index"`
	Notes          string
	Sequence       int
}

// TableName specifies the database table name for stop entities.
func (StopDTO) TableName() string {
	return "stops"
}

// fromDomain converts a route domain aggregate to its database representation.
func fromDomain(aggregate *route.Route) RouteDTO {
	return RouteDTO{
		ID:               aggregate.ID().Bytes(),
		StartLat:         aggregate.StartPoint().Latitude(),
		StartLon:         aggregate.StartPoint().Longitude(),
		EndLat:           aggregate.EndPoint().Latitude(),
		EndLon:           aggregate.EndPoint().Longitude(),
		DistanceKm:       aggregate.DistanceKm(),
		EstimatedMinutes: aggregate.EstimatedMinutes(),
	}
}

// toDomain converts a database DTO to a route domain aggregate.
func toDomain(dto RouteDTO) (*route.Route, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	startPoint, err := kernel.NewGeoPoint(dto.StartLat, dto.StartLon)
	if err != nil {
		return nil, err
	}

	endPoint, err := kernel.NewGeoPoint(dto.EndLat, dto.EndLon)
	if err != nil {
		return nil, err
	}

	return route.RestoreRoute(id, startPoint, endPoint, dto.DistanceKm, dto.EstimatedMinutes)
}

// stopFromDomain converts a stop domain entity to its database representation.
func stopFromDomain(stop *route.Stop) StopDTO {
	dto := StopDTO{
		ID:           stop.ID().Bytes(),
		RegisteredAt: stop.RegisteredAt(),
		AssignmentID: stop.AssignmentID().Bytes(),
		RouteID:      stop.RouteID().Bytes(),
		Status:       stop.Status().String(),
		Notes:        stop.Notes(),
		Sequence:     stop.Sequence(),
	}

	if id := stop.OrderID(); id != nil {
		raw := id.Bytes()
		dto.OrderID = &raw
	}

	if id := stop.CustomerID(); id != nil {
		raw := id.Bytes()
		dto.CustomerID = &raw
	}

	if destination := stop.Destination(); destination != nil {
		lat := destination.Latitude()
		lon := destination.Longitude()
		dto.DestinationLat = &lat
		dto.DestinationLon = &lon
	}

	return dto
}

// stopToDomain converts a database DTO to a stop domain entity.
func stopToDomain(dto StopDTO) (*route.Stop, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	assignmentID, err := kernel.UUIDFromBytes(dto.AssignmentID[:])
	if err != nil {
		return nil, err
	}

	routeID, err := kernel.UUIDFromBytes(dto.RouteID[:])
	if err != nil {
		return nil, err
	}

	status, err := route.StopStatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	var orderID *kernel.UUID
	if dto.OrderID != nil {
		oID, orderErr := kernel.UUIDFromBytes((*dto.OrderID)[:])
		if orderErr != nil {
			return nil, orderErr
		}
		orderID = &oID
	}

	var customerID *kernel.UUID
	if dto.CustomerID != nil {
		cID, customerErr := kernel.UUIDFromBytes((*dto.CustomerID)[:])
		if customerErr != nil {
			return nil, customerErr
		}
		customerID = &cID
	}

	var destination *kernel.GeoPoint
	if dto.DestinationLat != nil && dto.DestinationLon != nil {
		point, pointErr := kernel.NewGeoPoint(*dto.DestinationLat, *dto.DestinationLon)
		if pointErr != nil {
			return nil, pointErr
		}
		destination = &point
	}

	return route.RestoreStop(
		id,
		dto.RegisteredAt,
		assignmentID,
		routeID,
		orderID,
		customerID,
		destination,
		status,
		dto.Notes,
		dto.Sequence,
	)
}
