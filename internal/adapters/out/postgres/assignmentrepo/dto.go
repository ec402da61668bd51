// Package assignmentrepo provides data transfer objects and mapping
// functions for assignment persistence. An assignment is stored as a header
// row plus one link row per bundled order; link rows carry a position so the
// bundle keeps its route-visiting order across reloads.
package assignmentrepo

import (
	"time"

	"github.com/google/uuid"

	"github.com/Aliaga23/SIG-Backend/internal/adapters/out/postgres/routerepo"
	"github.com/Aliaga23/SIG-Backend/internal/core/domain/model/assignment"
	"github.com/Aliaga23/SIG-Backend/internal/core/domain/model/kernel"
)

// AssignmentDTO represents the database structure for persisting assignment
// aggregates.
type AssignmentDTO struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CourierID *uuid.UUID `gorm:"type:uuid;index"`
	RouteID   *uuid.UUID `gorm:"type:uuid;index"`
	Status    string     `gorm:"type:varchar(16);index"`
	CreatedAt time.Time
	Orders    []OrderAssignmentDTO `gorm:"foreignKey:AssignmentID;constraint:OnDelete:CASCADE"`
	Stops     []routerepo.StopDTO  `gorm:"foreignKey:AssignmentID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for assignment entities.
func (AssignmentDTO) TableName() string {
	return "assignments"
}

// OrderAssignmentDTO represents one order link row within an assignment.
type OrderAssignmentDTO struct {
	ID           uint      `gorm:"primaryKey;autoIncrement"`
	AssignmentID uuid.UUID `gorm:"type:uuid;index"`
	OrderID      uuid.UUID `gorm:"type:uuid;index"`
	Position     int
}

// TableName specifies the database table name for assignment order links.
func (OrderAssignmentDTO) TableName() string {
	return "order_assignments"
}

// fromDomain converts an assignment domain aggregate to its database representation.
func fromDomain(aggregate *assignment.Assignment) AssignmentDTO {
	var courierID *uuid.UUID
	if id := aggregate.CourierID(); id != nil {
		raw := id.Bytes()
		courierID = &raw
	}

	var routeID *uuid.UUID
	if id := aggregate.RouteID(); id != nil {
		raw := id.Bytes()
		routeID = &raw
	}

	links := make([]OrderAssignmentDTO, 0, len(aggregate.OrderIDs()))
	for position, orderID := range aggregate.OrderIDs() {
		links = append(links, OrderAssignmentDTO{
			AssignmentID: aggregate.ID().Bytes(),
			OrderID:      orderID.Bytes(),
			Position:     position,
		})
	}

	return AssignmentDTO{
		ID:        aggregate.ID().Bytes(),
		CourierID: courierID,
		RouteID:   routeID,
		Status:    aggregate.Status().String(),
		CreatedAt: aggregate.CreatedAt(),
		Orders:    links,
	}
}

// toDomain converts a database DTO to an assignment domain aggregate.
// Order links must be preloaded sorted by position.
func toDomain(dto AssignmentDTO) (*assignment.Assignment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	status, err := assignment.StatusFromString(dto.Status)
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

	var routeID *kernel.UUID
	if dto.RouteID != nil {
		rID, routeErr := kernel.UUIDFromBytes((*dto.RouteID)[:])
		if routeErr != nil {
			return nil, routeErr
		}
		routeID = &rID
	}

	orderIDs := make([]kernel.UUID, 0, len(dto.Orders))
	for _, link := range dto.Orders {
		orderID, linkErr := kernel.UUIDFromBytes(link.OrderID[:])
		if linkErr != nil {
			return nil, linkErr
		}
		orderIDs = append(orderIDs, orderID)
	}

	return assignment.RestoreAssignment(id, courierID, routeID, status, dto.CreatedAt, orderIDs)
}
