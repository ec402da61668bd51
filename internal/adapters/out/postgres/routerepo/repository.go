package routerepo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Aliaga23/SIG-Backend/internal/core/domain/model/assignment"
	"github.com/Aliaga23/SIG-Backend/internal/core/domain/model/kernel"
	"github.com/Aliaga23/SIG-Backend/internal/core/domain/model/route"
	"github.com/Aliaga23/SIG-Backend/internal/pkg/errs"
)

// GormRouteRepository implements RouteRepository using GORM.
type GormRouteRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormRouteRepository creates a new GORM route repository.
func NewGormRouteRepository(db *gorm.DB, tracker aggregateTracker) *GormRouteRepository {
	return &GormRouteRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new route header to the database.
func (r *GormRouteRepository) Add(ctx context.Context, aggregate *route.Route) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing route header to the database.
func (r *GormRouteRepository) Update(ctx context.Context, aggregate *route.Route) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&RouteDTO{}).
		Where("id = ?", dto.ID).
		Select("start_lat", "start_lon", "end_lat", "end_lon", "distance_km", "estimated_minutes").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a route header by ID.
func (r *GormRouteRepository) Get(ctx context.Context, id kernel.UUID) (*route.Route, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto RouteDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("route", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// AddStop saves a new stop to the database.
func (r *GormRouteRepository) AddStop(ctx context.Context, stop *route.Stop) error {
	if err := stop.Validate(); err != nil {
		return err
	}

	dto := stopFromDomain(stop)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(stop.ID(), stop)
	return nil
}

// UpdateStop saves an existing stop to the database. Nullable columns are
// selected explicitly so a cleared destination or note is written.
func (r *GormRouteRepository) UpdateStop(ctx context.Context, stop *route.Stop) error {
	if err := stop.Validate(); err != nil {
		return err
	}

	dto := stopFromDomain(stop)
	result := r.db.WithContext(ctx).
		Model(&StopDTO{}).
		Where("id = ?", dto.ID).
		Select("destination_lat", "destination_lon", "status", "notes", "sequence").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(stop.ID(), stop)
	return nil
}

// GetStop retrieves a stop by ID.
func (r *GormRouteRepository) GetStop(ctx context.Context, id kernel.UUID) (*route.Stop, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto StopDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("stop", id.String())
		}
		return nil, err
	}

	return stopToDomain(dto)
}

// GetStopByOrderID retrieves the stop linked to an order. A missing stop is
// not an error: acceptance uses the nil result to create stops idempotently.
func (r *GormRouteRepository) GetStopByOrderID(ctx context.Context, orderID kernel.UUID) (*route.Stop, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dto StopDTO
	if err := r.db.WithContext(ctx).First(&dto, "order_id = ?", orderID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return stopToDomain(dto)
}

// GetStopsByRoute retrieves a route's stops ordered by sequence.
func (r *GormRouteRepository) GetStopsByRoute(ctx context.Context, routeID kernel.UUID) ([]*route.Stop, error) {
	if err := routeID.Validate(); err != nil {
		return nil, err
	}

	var dtos []StopDTO
	err := r.db.WithContext(ctx).
		Order("sequence").
		Find(&dtos, "route_id = ?", routeID.Bytes()).Error
	if err != nil {
		return nil, err
	}

	return stopsToDomain(dtos)
}

// GetStopsByAssignment retrieves an assignment's stops ordered by sequence.
func (r *GormRouteRepository) GetStopsByAssignment(ctx context.Context, assignmentID kernel.UUID) ([]*route.Stop, error) {
	if err := assignmentID.Validate(); err != nil {
		return nil, err
	}

	var dtos []StopDTO
	err := r.db.WithContext(ctx).
		Order("sequence").
		Find(&dtos, "assignment_id = ?", assignmentID.Bytes()).Error
	if err != nil {
		return nil, err
	}

	return stopsToDomain(dtos)
}

// DeleteStopsByOrderIDs removes the stops linked to the given orders.
func (r *GormRouteRepository) DeleteStopsByOrderIDs(ctx context.Context, orderIDs []kernel.UUID) error {
	if len(orderIDs) == 0 {
		return nil
	}

	raw := make([]uuid.UUID, 0, len(orderIDs))
	for _, id := range orderIDs {
		if err := id.Validate(); err != nil {
			return err
		}
		raw = append(raw, id.Bytes())
	}

	return r.db.WithContext(ctx).Delete(&StopDTO{}, "order_id IN ?", raw).Error
}

// GetOpenStopsByCourier retrieves the open stops across the courier's
// accepted assignments, ordered by sequence.
func (r *GormRouteRepository) GetOpenStopsByCourier(ctx context.Context, courierID kernel.UUID) ([]*route.Stop, error) {
	if err := courierID.Validate(); err != nil {
		return nil, err
	}

	var dtos []StopDTO
	err := r.openStopsByCourier(ctx, courierID).
		Order("stops.sequence").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return stopsToDomain(dtos)
}

// CountOpenStopsByCourier counts the open stops across the courier's
// accepted assignments.
func (r *GormRouteRepository) CountOpenStopsByCourier(ctx context.Context, courierID kernel.UUID) (int, error) {
	if err := courierID.Validate(); err != nil {
		return 0, err
	}

	var count int64
	if err := r.openStopsByCourier(ctx, courierID).Count(&count).Error; err != nil {
		return 0, err
	}

	return int(count), nil
}

func (r *GormRouteRepository) openStopsByCourier(ctx context.Context, courierID kernel.UUID) *gorm.DB {
	openStatuses := []string{route.StopPending.String(), route.StopEnRoute.String()}

	return r.db.WithContext(ctx).
		Model(&StopDTO{}).
		Joins("JOIN assignments ON assignments.id = stops.assignment_id").
		Where("assignments.courier_id = ?", courierID.Bytes()).
		Where("assignments.status = ?", assignment.Accepted.String()).
		Where("stops.status IN ?", openStatuses)
}

func stopsToDomain(dtos []StopDTO) ([]*route.Stop, error) {
	stops := make([]*route.Stop, 0, len(dtos))
	for _, dto := range dtos {
		s, err := stopToDomain(dto)
		if err != nil {
			return nil, err
		}
		stops = append(stops, s)
	}

	return stops, nil
}
