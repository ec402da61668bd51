package services

import (
	"fmt"
	"sort"

	"github.com/Aliaga23/SIG-Backend/internal/core/domain/model/courier"
	"github.com/Aliaga23/SIG-Backend/internal/core/domain/model/kernel"
	"github.com/Aliaga23/SIG-Backend/internal/core/domain/model/vehicle"
	"github.com/Aliaga23/SIG-Backend/internal/pkg/errs"
)

// CourierCandidate pairs a courier with their assigned vehicle for proximity
// evaluation. Candidates without a vehicle never match.
type CourierCandidate struct {
	Courier *courier.Courier
	Vehicle *vehicle.Vehicle
}

// CourierMatch is a candidate that passed the proximity filter, carrying the
// computed distance to the search center.
type CourierMatch struct {
	Courier    *courier.Courier
	Vehicle    *vehicle.Vehicle
	DistanceKm float64
}

// CourierLocator is a domain service selecting couriers near a point.
//
// A candidate matches when the courier is active, has reported coordinates,
// has an assigned vehicle, and lies within the search radius. Matches come
// back sorted ascending by distance. An empty result is not an error;
// callers decide whether that empties a required set.
type CourierLocator struct{}

// NewCourierLocator creates a new CourierLocator instance.
func NewCourierLocator() CourierLocator {
	return CourierLocator{}
}

// FindNearby filters and sorts the candidates around the center.
func (l CourierLocator) FindNearby(
	center kernel.GeoPoint,
	radiusKm float64,
	candidates []CourierCandidate,
) ([]CourierMatch, error) {
	if err := center.Validate(); err != nil {
		return nil, err
	}
	if radiusKm <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("radiusKm is invalid",
			fmt.Errorf("%g is not greater than 0", radiusKm))
	}

	matches := make([]CourierMatch, 0, len(candidates))
	for _, candidate := range candidates {
		if candidate.Courier == nil || candidate.Courier.Validate() != nil {
			continue
		}
		if !candidate.Courier.IsActive() {
			continue
		}
		if candidate.Courier.Location() == nil {
			continue
		}
		if candidate.Vehicle == nil || candidate.Vehicle.Validate() != nil {
			continue
		}

		distance, err := candidate.Courier.Location().DistanceKm(center)
		if err != nil {
			continue
		}
		if distance > radiusKm {
			continue
		}

		matches = append(matches, CourierMatch{
			Courier:    candidate.Courier,
			Vehicle:    candidate.Vehicle,
			DistanceKm: distance,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].DistanceKm < matches[j].DistanceKm
	})

	return matches, nil
}
