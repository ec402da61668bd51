package commands

import (
	"context"
	"errors"

	"github.com/Aliaga23/SIG-Backend/internal/core/domain/model/assignment"
	"github.com/Aliaga23/SIG-Backend/internal/core/domain/model/kernel"
	"github.com/Aliaga23/SIG-Backend/internal/core/domain/model/order"
	"github.com/Aliaga23/SIG-Backend/internal/core/domain/model/route"
	"github.com/Aliaga23/SIG-Backend/internal/core/domain/model/store"
	"github.com/Aliaga23/SIG-Backend/internal/core/domain/services"
	"github.com/Aliaga23/SIG-Backend/internal/pkg/errs"
)

const (
	// DefaultSearchRadiusKm is the courier search radius applied when the
	// caller does not supply one.
	DefaultSearchRadiusKm = 5.0

	// maxCompetingProposals caps how many nearby couriers receive a pending
	// proposal for the same overflow route.
	maxCompetingProposals = 3
)

// Proposal describes one pending assignment produced by the planner.
type Proposal struct {
	AssignmentID     kernel.UUID
	CourierID        kernel.UUID
	RouteID          kernel.UUID
	OrderIDs         []kernel.UUID
	DistanceKm       float64
	EstimatedMinutes float64
}

// proposalPlanner builds a route and pending assignments for a batch of
// orders: resolve destinations, locate couriers around the batch centroid,
// pick the pickup store nearest the best courier, sequence the stops, and
// persist one route with up to maxCouriers competing proposals on it.
//
// Orders whose customers lack resolvable coordinates are skipped; the
// planner fails with a NoCandidatesError only when skipping empties the
// batch, when no courier is in range, or when no store has coordinates.
type proposalPlanner struct {
	sequencer services.Sequencer
	locator   services.CourierLocator
	estimator services.RouteEstimator
}

func newProposalPlanner(estimator services.RouteEstimator) proposalPlanner {
	return proposalPlanner{
		sequencer: services.NewSequencer(),
		locator:   services.NewCourierLocator(),
		estimator: estimator,
	}
}

func (p proposalPlanner) plan(
	ctx context.Context,
	uow EngineUoW,
	orders []*order.Order,
	radiusKm float64,
	maxCouriers int,
) ([]Proposal, error) {
	validOrders, destinations, err := p.resolveDestinations(ctx, uow, orders)
	if err != nil {
		return nil, err
	}

	centroid, err := kernel.Centroid(destinations)
	if err != nil {
		return nil, err
	}

	// The search doubles the requested radius around the centroid, matching
	// the wider net used for batch proposals.
	matches, err := p.locateCouriers(ctx, uow, centroid, radiusKm*2)
	if err != nil {
		return nil, err
	}

	pickup, err := p.nearestStore(ctx, uow, *matches[0].Courier.Location())
	if err != nil {
		return nil, err
	}

	sequenced, totalKm, totalMinutes, err := p.sequenceOrders(ctx, *pickup.Location(), validOrders, destinations)
	if err != nil {
		return nil, err
	}

	endPoint := *pickup.Location()
	if last := sequenced[len(sequenced)-1]; last.location != nil {
		endPoint = *last.location
	}

	newRoute, err := buildRoute(*pickup.Location(), endPoint, totalKm, totalMinutes)
	if err != nil {
		return nil, err
	}
	if err := uow.RouteRepository().Add(ctx, newRoute); err != nil {
		return nil, err
	}

	orderIDs := make([]kernel.UUID, len(sequenced))
	for i, entry := range sequenced {
		orderIDs[i] = entry.order.ID()
	}

	if maxCouriers > len(matches) {
		maxCouriers = len(matches)
	}

	proposals := make([]Proposal, 0, maxCouriers)
	for _, match := range matches[:maxCouriers] {
		proposed, err := assignment.NewAssignment(kernel.NewUUID(), match.Courier.ID(), newRoute.ID(), orderIDs)
		if err != nil {
			return nil, err
		}
		if err := uow.AssignmentRepository().Add(ctx, proposed); err != nil {
			return nil, err
		}

		proposals = append(proposals, Proposal{
			AssignmentID:     proposed.ID(),
			CourierID:        match.Courier.ID(),
			RouteID:          newRoute.ID(),
			OrderIDs:         proposed.OrderIDs(),
			DistanceKm:       newRoute.DistanceKm(),
			EstimatedMinutes: newRoute.EstimatedMinutes(),
		})
	}

	return proposals, nil
}

type sequencedOrder struct {
	order    *order.Order
	location *kernel.GeoPoint
}

// resolveDestinations maps each order to its customer's coordinates,
// skipping orders whose customers are missing or unlocated.
func (p proposalPlanner) resolveDestinations(
	ctx context.Context,
	uow EngineUoW,
	orders []*order.Order,
) ([]*order.Order, []kernel.GeoPoint, error) {
	customerIDs := make([]kernel.UUID, 0, len(orders))
	for _, o := range orders {
		customerIDs = append(customerIDs, o.CustomerID())
	}

	customers, err := uow.CustomerRepository().GetByIDs(ctx, customerIDs)
	if err != nil {
		return nil, nil, err
	}

	locationByCustomer := make(map[string]*kernel.GeoPoint, len(customers))
	for _, c := range customers {
		locationByCustomer[c.ID().String()] = c.Location()
	}

	validOrders := make([]*order.Order, 0, len(orders))
	destinations := make([]kernel.GeoPoint, 0, len(orders))
	for _, o := range orders {
		location := locationByCustomer[o.CustomerID().String()]
		if location == nil {
			continue
		}
		validOrders = append(validOrders, o)
		destinations = append(destinations, *location)
	}

	if len(validOrders) == 0 {
		return nil, nil, errs.NewNoCandidatesError("orders with resolvable customer coordinates")
	}

	return validOrders, destinations, nil
}

func (p proposalPlanner) locateCouriers(
	ctx context.Context,
	uow EngineUoW,
	center kernel.GeoPoint,
	radiusKm float64,
) ([]services.CourierMatch, error) {
	couriers, err := uow.CourierRepository().GetAllActive(ctx)
	if err != nil {
		return nil, err
	}

	candidates := make([]services.CourierCandidate, 0, len(couriers))
	for _, c := range couriers {
		v, err := uow.VehicleRepository().GetByCourierID(ctx, c.ID())
		if errors.Is(err, errs.ErrObjectNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, services.CourierCandidate{Courier: c, Vehicle: v})
	}

	matches, err := p.locator.FindNearby(center, radiusKm, candidates)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, errs.NewNoCandidatesError("couriers within search radius")
	}

	return matches, nil
}

func (p proposalPlanner) nearestStore(
	ctx context.Context,
	uow EngineUoW,
	courierLocation kernel.GeoPoint,
) (*store.Store, error) {
	stores, err := uow.StoreRepository().GetAllWithLocation(ctx)
	if err != nil {
		return nil, err
	}
	if len(stores) == 0 {
		return nil, errs.NewNoCandidatesError("stores with registered coordinates")
	}

	var nearest *store.Store
	bestDistance := 0.0
	for _, s := range stores {
		if !s.HasLocation() {
			continue
		}
		distance, err := courierLocation.DistanceKm(*s.Location())
		if err != nil {
			return nil, err
		}
		if nearest == nil || distance < bestDistance {
			nearest = s
			bestDistance = distance
		}
	}

	if nearest == nil {
		return nil, errs.NewNoCandidatesError("stores with registered coordinates")
	}

	return nearest, nil
}

// sequenceOrders produces the visiting order from the pickup point, using
// the external optimizer when available and the local nearest-neighbor
// sequencer otherwise, and totals the leg estimates.
func (p proposalPlanner) sequenceOrders(
	ctx context.Context,
	pickup kernel.GeoPoint,
	orders []*order.Order,
	destinations []kernel.GeoPoint,
) ([]sequencedOrder, float64, float64, error) {
	if optimized, ok := p.estimator.OptimizeOrder(ctx, pickup, destinations); ok {
		sequenced := make([]sequencedOrder, len(orders))
		for i, idx := range optimized.VisitOrder {
			point := destinations[idx]
			sequenced[i] = sequencedOrder{order: orders[idx], location: &point}
		}
		return sequenced, optimized.DistanceKm, optimized.Minutes, nil
	}

	waypoints := make([]services.Waypoint, len(orders))
	byKey := make(map[string]sequencedOrder, len(orders))
	for i, o := range orders {
		point := destinations[i]
		waypoints[i] = services.Waypoint{Key: o.ID(), Point: &point}
		byKey[o.ID().String()] = sequencedOrder{order: o, location: &point}
	}

	ordered, err := p.sequencer.Sequence(pickup, waypoints)
	if err != nil {
		return nil, 0, 0, err
	}

	sequenced := make([]sequencedOrder, len(ordered))
	current := pickup
	totalKm := 0.0
	totalMinutes := 0.0
	for i, wp := range ordered {
		entry := byKey[wp.Key.String()]
		sequenced[i] = entry

		leg, err := p.estimator.EstimateLeg(ctx, current, *entry.location)
		if err != nil {
			return nil, 0, 0, err
		}
		totalKm += leg.DistanceKm
		totalMinutes += leg.Minutes
		current = *entry.location
	}

	return sequenced, totalKm, totalMinutes, nil
}

func buildRoute(start kernel.GeoPoint, end kernel.GeoPoint, distanceKm float64, minutes float64) (*route.Route, error) {
	return route.NewRoute(kernel.NewUUID(), start, end, distanceKm, minutes)
}
