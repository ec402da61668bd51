package route

import (
	"errors"
	"fmt"

	"github.com/Aliaga23/SIG-Backend/internal/core/domain/model/kernel"
	"github.com/Aliaga23/SIG-Backend/internal/pkg/errs"
)

var (
	// ErrRouteIsNotConstructed is returned when a Route instance was not created
	// through the NewRoute factory method.
	ErrRouteIsNotConstructed = errors.New("Route must be created via NewRoute constructor")
)

// Route is the header record for an ordered set of stops: the endpoints of
// the trip plus its estimated totals. Stops reference their route by ID and
// are traversed via query, never through in-memory back-pointers.
type Route struct {
	id               kernel.UUID
	startPoint       kernel.GeoPoint
	endPoint         kernel.GeoPoint
	distanceKm       float64
	estimatedMinutes float64

	isConstructed bool
}

// NewRoute creates a new Route between the given endpoints with estimated
// totals.
func NewRoute(
	id kernel.UUID,
	startPoint kernel.GeoPoint,
	endPoint kernel.GeoPoint,
	distanceKm float64,
	estimatedMinutes float64,
) (*Route, error) {
	route := &Route{
		isConstructed: true,
	}

	if err := errors.Join(
		route.setID(id),
		route.setStartPoint(startPoint),
		route.setEndPoint(endPoint),
		route.setEstimates(distanceKm, estimatedMinutes),
	); err != nil {
		return nil, err
	}

	return route, nil
}

// RestoreRoute reconstructs a Route from persisted state.
func RestoreRoute(
	id kernel.UUID,
	startPoint kernel.GeoPoint,
	endPoint kernel.GeoPoint,
	distanceKm float64,
	estimatedMinutes float64,
) (*Route, error) {
	return NewRoute(id, startPoint, endPoint, distanceKm, estimatedMinutes)
}

// Validate ensures the Route instance was properly constructed.
func (r *Route) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRouteIsNotConstructed
	}

	return nil
}

// ID returns the route's unique identifier.
func (r *Route) ID() kernel.UUID {
	return r.id
}

// StartPoint returns the route's current starting coordinates.
func (r *Route) StartPoint() kernel.GeoPoint {
	return r.startPoint
}

// EndPoint returns the route's final coordinates.
func (r *Route) EndPoint() kernel.GeoPoint {
	return r.endPoint
}

// DistanceKm returns the estimated total distance.
func (r *Route) DistanceKm() float64 {
	return r.distanceKm
}

// EstimatedMinutes returns the estimated total travel time.
func (r *Route) EstimatedMinutes() float64 {
	return r.estimatedMinutes
}

// AdvanceStart moves the route's recorded start to the given point.
// Called after each completed stop so subsequent distance queries reflect
// the courier's current position.
func (r *Route) AdvanceStart(point kernel.GeoPoint) error {
	if err := point.Validate(); err != nil {
		return err
	}

	r.startPoint = point
	return nil
}

// UpdateEstimates overwrites the route's estimated totals.
func (r *Route) UpdateEstimates(distanceKm float64, estimatedMinutes float64) error {
	return r.setEstimates(distanceKm, estimatedMinutes)
}

func (r *Route) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *Route) setStartPoint(point kernel.GeoPoint) error {
	if err := point.Validate(); err != nil {
		return err
	}
	r.startPoint = point
	return nil
}

func (r *Route) setEndPoint(point kernel.GeoPoint) error {
	if err := point.Validate(); err != nil {
		return err
	}
	r.endPoint = point
	return nil
}

func (r *Route) setEstimates(distanceKm float64, estimatedMinutes float64) error {
	if distanceKm < 0 {
		return errs.NewValueIsInvalidErrorWithCause("distanceKm is invalid",
			fmt.Errorf("%g is negative", distanceKm))
	}
	if estimatedMinutes < 0 {
		return errs.NewValueIsInvalidErrorWithCause("estimatedMinutes is invalid",
			fmt.Errorf("%g is negative", estimatedMinutes))
	}
	r.distanceKm = distanceKm
	r.estimatedMinutes = estimatedMinutes
	return nil
}
