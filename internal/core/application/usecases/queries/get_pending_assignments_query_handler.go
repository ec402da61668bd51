package queries

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Aliaga23/SIG-Backend/internal/core/domain/model/kernel"
)

// GetPendingAssignmentsQueryHandler reads a courier's actionable proposals
// straight from the database.
type GetPendingAssignmentsQueryHandler struct {
	db *gorm.DB
}

// NewGetPendingAssignmentsQueryHandler creates a handler for pending
// proposal queries.
func NewGetPendingAssignmentsQueryHandler(db *gorm.DB) GetPendingAssignmentsQueryHandler {
	return GetPendingAssignmentsQueryHandler{db: db}
}

// Handle executes the query. A proposal is actionable while it is pending
// and no competing proposal on the same route has been accepted.
func (h GetPendingAssignmentsQueryHandler) Handle(
	ctx context.Context,
	query GetPendingAssignmentsQuery,
) ([]GetPendingAssignmentsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			a.id,
			a.created_at,
			a.route_id,
			COALESCE(r.distance_km, 0),
			COALESCE(r.estimated_minutes, 0),
			oa.order_id
		FROM assignments a
		LEFT JOIN routes r ON r.id = a.route_id
		LEFT JOIN order_assignments oa ON oa.assignment_id = a.id
		WHERE a.courier_id = ?
		  AND a.status = 'pending'
		  AND NOT EXISTS (
			SELECT 1 FROM assignments won
			WHERE won.route_id = a.route_id
			  AND won.status = 'accepted'
		  )
		ORDER BY a.created_at DESC, a.id, oa.position
	`, query.CourierID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	proposals := make([]GetPendingAssignmentsQueryResponse, 0)
	index := make(map[string]int)

	for rows.Next() {
		var (
			id         uuid.UUID
			createdAt  time.Time
			routeID    *uuid.UUID
			distanceKm float64
			minutes    float64
			orderID    *uuid.UUID
		)

		if err = rows.Scan(&id, &createdAt, &routeID, &distanceKm, &minutes, &orderID); err != nil {
			return nil, err
		}

		proposalID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}

		pos, seen := index[proposalID.String()]
		if !seen {
			response := GetPendingAssignmentsQueryResponse{
				ID:               proposalID,
				CreatedAt:        createdAt,
				DistanceKm:       distanceKm,
				EstimatedMinutes: minutes,
			}
			if routeID != nil {
				converted, convErr := kernel.UUIDFromBytes(routeID[:])
				if convErr != nil {
					return nil, convErr
				}
				response.RouteID = &converted
			}
			proposals = append(proposals, response)
			pos = len(proposals) - 1
			index[proposalID.String()] = pos
		}

		if orderID != nil {
			converted, convErr := kernel.UUIDFromBytes(orderID[:])
			if convErr != nil {
				return nil, convErr
			}
			proposals[pos].OrderIDs = append(proposals[pos].OrderIDs, converted)
		}
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return proposals, nil
}
