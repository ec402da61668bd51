package assignmentrepo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Aliaga23/SIG-Backend/internal/core/domain/model/assignment"
	"github.com/Aliaga23/SIG-Backend/internal/core/domain/model/kernel"
	"github.com/Aliaga23/SIG-Backend/internal/pkg/errs"
)

// GormAssignmentRepository implements AssignmentRepository using GORM.
type GormAssignmentRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormAssignmentRepository creates a new GORM assignment repository.
func NewGormAssignmentRepository(db *gorm.DB, tracker aggregateTracker) *GormAssignmentRepository {
	return &GormAssignmentRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new assignment with its order links to the database.
func (r *GormAssignmentRepository) Add(ctx context.Context, aggregate *assignment.Assignment) error {
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

// Update saves an existing assignment to the database. Order links are
// replaced wholesale so a capacity split that detached orders is reflected.
func (r *GormAssignmentRepository) Update(ctx context.Context, aggregate *assignment.Assignment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&AssignmentDTO{}).
		Where("id = ?", dto.ID).
		Select("courier_id", "route_id", "status").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	if err := r.db.WithContext(ctx).Delete(&OrderAssignmentDTO{}, "assignment_id = ?", dto.ID).Error; err != nil {
		return err
	}

	if len(dto.Orders) > 0 {
		if err := r.db.WithContext(ctx).Create(&dto.Orders).Error; err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an assignment by ID.
func (r *GormAssignmentRepository) Get(ctx context.Context, id kernel.UUID) (*assignment.Assignment, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto AssignmentDTO
	err := r.db.WithContext(ctx).
		Preload("Orders", orderedLinks).
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("assignment", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByCourier retrieves a courier's assignments, newest first.
func (r *GormAssignmentRepository) GetByCourier(ctx context.Context, courierID kernel.UUID) ([]*assignment.Assignment, error) {
	if err := courierID.Validate(); err != nil {
		return nil, err
	}

	var dtos []AssignmentDTO
	err := r.db.WithContext(ctx).
		Preload("Orders", orderedLinks).
		Order("created_at DESC").
		Find(&dtos, "courier_id = ?", courierID.Bytes()).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// GetPendingByCourier retrieves a courier's pending proposals.
func (r *GormAssignmentRepository) GetPendingByCourier(ctx context.Context, courierID kernel.UUID) ([]*assignment.Assignment, error) {
	if err := courierID.Validate(); err != nil {
		return nil, err
	}

	var dtos []AssignmentDTO
	err := r.db.WithContext(ctx).
		Preload("Orders", orderedLinks).
		Order("created_at").
		Find(&dtos, "courier_id = ? AND status = ?", courierID.Bytes(), assignment.Pending.String()).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// GetPendingByRoute retrieves every pending proposal competing for a route.
func (r *GormAssignmentRepository) GetPendingByRoute(ctx context.Context, routeID kernel.UUID) ([]*assignment.Assignment, error) {
	if err := routeID.Validate(); err != nil {
		return nil, err
	}

	var dtos []AssignmentDTO
	err := r.db.WithContext(ctx).
		Preload("Orders", orderedLinks).
		Order("created_at").
		Find(&dtos, "route_id = ? AND status = ?", routeID.Bytes(), assignment.Pending.String()).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// GetAllPendingOlderThan retrieves pending proposals created before the cutoff.
func (r *GormAssignmentRepository) GetAllPendingOlderThan(ctx context.Context, cutoff time.Time) ([]*assignment.Assignment, error) {
	var dtos []AssignmentDTO
	err := r.db.WithContext(ctx).
		Preload("Orders", orderedLinks).
		Order("created_at").
		Find(&dtos, "status = ? AND created_at < ?", assignment.Pending.String(), cutoff).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// AcceptIfPending atomically flips the assignment to accepted only if it is
// still pending. The conditional update is the serialization point: of all
// couriers racing to accept proposals for the same route, exactly one call
// observes an affected row.
func (r *GormAssignmentRepository) AcceptIfPending(ctx context.Context, id kernel.UUID) (bool, error) {
	if err := id.Validate(); err != nil {
		return false, err
	}

	result := r.db.WithContext(ctx).
		Model(&AssignmentDTO{}).
		Where("id = ? AND status = ?", id.Bytes(), assignment.Pending.String()).
		Update("status", assignment.Accepted.String())
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}

func orderedLinks(db *gorm.DB) *gorm.DB {
	return db.Order("position")
}

func toDomainSlice(dtos []AssignmentDTO) ([]*assignment.Assignment, error) {
	assignments := make([]*assignment.Assignment, 0, len(dtos))
	for _, dto := range dtos {
		a, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, a)
	}

	return assignments, nil
}
