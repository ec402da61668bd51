package queries

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Aliaga23/SIG-Backend/internal/core/domain/model/kernel"
)

// GetCourierAssignmentsQueryHandler reads a courier's assignment history
// straight from the database, bypassing the aggregates.
type GetCourierAssignmentsQueryHandler struct {
	db *gorm.DB
}

// NewGetCourierAssignmentsQueryHandler creates a handler for courier
// assignment history queries.
func NewGetCourierAssignmentsQueryHandler(db *gorm.DB) GetCourierAssignmentsQueryHandler {
	return GetCourierAssignmentsQueryHandler{db: db}
}

// Handle executes the query. Assignments come back newest first, each with
// its linked order IDs in link order.
func (h GetCourierAssignmentsQueryHandler) Handle(
	ctx context.Context,
	query GetCourierAssignmentsQuery,
) ([]GetCourierAssignmentsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			a.id,
			a.status,
			a.created_at,
			a.route_id,
			oa.order_id
		FROM assignments a
		LEFT JOIN order_assignments oa ON oa.assignment_id = a.id
		WHERE a.courier_id = ?
		ORDER BY a.created_at DESC, a.id, oa.position
	`, query.CourierID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	assignments := make([]GetCourierAssignmentsQueryResponse, 0)
	index := make(map[string]int)

	for rows.Next() {
		var (
			id        uuid.UUID
			status    string
			createdAt time.Time
			routeID   *uuid.UUID
			orderID   *uuid.UUID
		)

		if err = rows.Scan(&id, &status, &createdAt, &routeID, &orderID); err != nil {
			return nil, err
		}

		assignmentID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}

		pos, seen := index[assignmentID.String()]
		if !seen {
			response := GetCourierAssignmentsQueryResponse{
				ID:        assignmentID,
				Status:    status,
				CreatedAt: createdAt,
			}
			if routeID != nil {
				converted, convErr := kernel.UUIDFromBytes(routeID[:])
				if convErr != nil {
					return nil, convErr
				}
				response.RouteID = &converted
			}
			assignments = append(assignments, response)
			pos = len(assignments) - 1
			index[assignmentID.String()] = pos
		}

		if orderID != nil {
			converted, convErr := kernel.UUIDFromBytes(orderID[:])
			if convErr != nil {
				return nil, convErr
			}
			assignments[pos].OrderIDs = append(assignments[pos].OrderIDs, converted)
		}
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	if err = h.attachStops(ctx, query.CourierID(), assignments, index); err != nil {
		return nil, err
	}

	return assignments, nil
}

// attachStops loads each assignment's stops in sequence order and marks the
// first still open one as the next destination.
func (h GetCourierAssignmentsQueryHandler) attachStops(
	ctx context.Context,
	courierID kernel.UUID,
	assignments []GetCourierAssignmentsQueryResponse,
	index map[string]int,
) error {
	if len(assignments) == 0 {
		return nil
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			s.assignment_id,
			s.id,
			s.order_id,
			s.sequence,
			s.status
		FROM stops s
		JOIN assignments a ON a.id = s.assignment_id
		WHERE a.courier_id = ?
		ORDER BY s.assignment_id, s.sequence
	`, courierID.Bytes()).Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			assignmentID uuid.UUID
			stopID       uuid.UUID
			orderID      *uuid.UUID
			sequence     int
			status       string
		)

		if err = rows.Scan(&assignmentID, &stopID, &orderID, &sequence, &status); err != nil {
			return err
		}

		ownerID, idErr := kernel.UUIDFromBytes(assignmentID[:])
		if idErr != nil {
			return idErr
		}
		pos, seen := index[ownerID.String()]
		if !seen {
			continue
		}

		stop := CourierStopResponse{Sequence: sequence, Status: status}
		if stop.ID, err = kernel.UUIDFromBytes(stopID[:]); err != nil {
			return err
		}
		if orderID != nil {
			converted, convErr := kernel.UUIDFromBytes(orderID[:])
			if convErr != nil {
				return convErr
			}
			stop.OrderID = &converted
		}

		assignments[pos].Stops = append(assignments[pos].Stops, stop)
		if assignments[pos].NextStopID == nil && (status == "pending" || status == "en_ruta") {
			next := stop.ID
			assignments[pos].NextStopID = &next
		}
	}

	return rows.Err()
}
