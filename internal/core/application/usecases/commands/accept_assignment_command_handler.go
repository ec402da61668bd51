package commands

import (
	"context"
	"log/slog"

	"github.com/Aliaga23/SIG-Backend/internal/core/domain/model/assignment"
	"github.com/Aliaga23/SIG-Backend/internal/core/domain/model/kernel"
	"github.com/Aliaga23/SIG-Backend/internal/core/domain/model/order"
	"github.com/Aliaga23/SIG-Backend/internal/core/domain/model/route"
	"github.com/Aliaga23/SIG-Backend/internal/core/domain/services"
	"github.com/Aliaga23/SIG-Backend/internal/pkg/errs"
)

// AcceptAssignmentResult reports what acceptance did: which orders stayed on
// the assignment, which were split off for a secondary proposal round, and
// the stops created on the route.
type AcceptAssignmentResult struct {
	AssignmentID       kernel.UUID
	RouteID            kernel.UUID
	StopIDs            []kernel.UUID
	AcceptedOrderIDs   []kernel.UUID
	DetachedOrderIDs   []kernel.UUID
	CompetingProposals []Proposal
}

// AcceptAssignmentCommandHandler executes the rich acceptance flow:
//
//  1. The proposal must be pending and owned by the accepting courier.
//  2. The batch is trimmed to the capacity-respecting prefix of its orders
//     (in link order, cumulative unit count <= vehicle capacity); detached
//     orders lose their stops and go to a secondary proposal round that
//     creates up to three competing pending assignments on a fresh route.
//  3. The status flip is a conditional update so concurrent accepts of
//     competing proposals cannot both win; the losers' siblings on the same
//     route are rejected in the same transaction.
//  4. One stop per kept order is created en_ruta, sequenced in link order,
//     skipping orders that already have a stop so re-entry is idempotent.
//  5. Kept orders become assigned and the courier's work status is
//     recomputed from their open stop count.
//
// The secondary proposal round runs in its own transaction once the accept
// has committed; its failure never rolls back the acceptance.
type AcceptAssignmentCommandHandler struct {
	uowFactory EngineUoWFactory
	planner    proposalPlanner
	logger     *slog.Logger
}

// NewAcceptAssignmentCommandHandler creates a handler for assignment acceptance.
func NewAcceptAssignmentCommandHandler(
	uowFactory EngineUoWFactory,
	estimator services.RouteEstimator,
	logger *slog.Logger,
) AcceptAssignmentCommandHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return AcceptAssignmentCommandHandler{
		uowFactory: uowFactory,
		planner:    newProposalPlanner(estimator),
		logger:     logger.With("component", "accept_assignment"),
	}
}

// Handle processes the acceptance command.
func (h AcceptAssignmentCommandHandler) Handle(ctx context.Context, command AcceptAssignmentCommand) (*AcceptAssignmentResult, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	accepted, err := uow.AssignmentRepository().Get(ctx, command.AssignmentID())
	if err != nil {
		return nil, err
	}

	if accepted.Status() != assignment.Pending || !accepted.IsOwnedBy(command.CourierID()) {
		return nil, errs.NewInvalidStateError("assignment", "not found or already processed")
	}
	if accepted.RouteID() == nil {
		return nil, errs.NewInvalidStateError("assignment", "proposal has no route")
	}
	routeID := *accepted.RouteID()

	acceptingCourier, err := uow.CourierRepository().Get(ctx, command.CourierID())
	if err != nil {
		return nil, err
	}

	courierVehicle, err := uow.VehicleRepository().GetByCourierID(ctx, command.CourierID())
	if err != nil {
		return nil, errs.NewInvalidStateErrorWithCause("courier", "courier has no assigned vehicle", err)
	}

	linkedOrders, err := h.loadLinkedOrders(ctx, uow, accepted)
	if err != nil {
		return nil, err
	}

	detachedIDs, err := h.splitToCapacity(ctx, uow, accepted, linkedOrders, courierVehicle.Capacity())
	if err != nil {
		return nil, err
	}

	// Conditional flip: only the first accept of the competing proposals on
	// this route gets RowsAffected = 1.
	won, err := uow.AssignmentRepository().AcceptIfPending(ctx, accepted.ID())
	if err != nil {
		return nil, err
	}
	if !won {
		return nil, errs.NewInvalidStateError("assignment", "not found or already processed")
	}
	if err := accepted.Accept(); err != nil {
		return nil, err
	}
	if err := uow.AssignmentRepository().Update(ctx, accepted); err != nil {
		return nil, err
	}

	stopIDs, err := h.createStops(ctx, uow, accepted, routeID, linkedOrders)
	if err != nil {
		return nil, err
	}

	for _, id := range accepted.OrderIDs() {
		kept := linkedOrders[id.String()]
		if kept == nil {
			continue
		}
		if err := kept.Assign(); err != nil {
			return nil, err
		}
		if err := uow.OrderRepository().Update(ctx, kept); err != nil {
			return nil, err
		}
	}

	if err := h.rejectSiblings(ctx, uow, accepted); err != nil {
		return nil, err
	}

	openStops, err := uow.RouteRepository().CountOpenStopsByCourier(ctx, command.CourierID())
	if err != nil {
		return nil, err
	}
	acceptingCourier.RefreshWorkStatus(openStops)
	if err := uow.CourierRepository().Update(ctx, acceptingCourier); err != nil {
		return nil, err
	}

	if err := uow.Commit(ctx); err != nil {
		return nil, err
	}

	// The secondary round runs in its own transaction after the accept has
	// committed: its failure cannot roll back the acceptance, and a planning
	// failure discards its route and partial proposals instead of committing
	// them alongside the accept.
	competing := h.proposeDetached(ctx, detachedIDs)

	return &AcceptAssignmentResult{
		AssignmentID:       accepted.ID(),
		RouteID:            routeID,
		StopIDs:            stopIDs,
		AcceptedOrderIDs:   accepted.OrderIDs(),
		DetachedOrderIDs:   detachedIDs,
		CompetingProposals: competing,
	}, nil
}

// loadLinkedOrders fetches the assignment's orders keyed by ID. Links whose
// order row disappeared are tolerated and simply skipped downstream.
func (h AcceptAssignmentCommandHandler) loadLinkedOrders(
	ctx context.Context,
	uow EngineUoW,
	accepted *assignment.Assignment,
) (map[string]*order.Order, error) {
	loaded, err := uow.OrderRepository().GetByIDs(ctx, accepted.OrderIDs())
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*order.Order, len(loaded))
	for _, o := range loaded {
		byID[o.ID().String()] = o
	}
	return byID, nil
}

// splitToCapacity trims the assignment to the longest prefix of its order
// links whose cumulative unit count stays within the vehicle capacity.
// Detached orders lose any stops that were already created for them.
func (h AcceptAssignmentCommandHandler) splitToCapacity(
	ctx context.Context,
	uow EngineUoW,
	accepted *assignment.Assignment,
	linkedOrders map[string]*order.Order,
	capacity int,
) ([]kernel.UUID, error) {
	linkIDs := accepted.OrderIDs()

	keep := 0
	cumulative := 0
	for _, id := range linkIDs {
		linked := linkedOrders[id.String()]
		if linked == nil {
			keep++
			continue
		}
		if cumulative+linked.UnitCount() > capacity {
			break
		}
		cumulative += linked.UnitCount()
		keep++
	}

	if keep == 0 {
		return nil, errs.NewInvalidStateError("assignment",
			"vehicle capacity cannot carry the first linked order")
	}
	if keep == len(linkIDs) {
		return nil, nil
	}

	detached, err := accepted.RetainOrders(keep)
	if err != nil {
		return nil, err
	}

	if err := uow.RouteRepository().DeleteStopsByOrderIDs(ctx, detached); err != nil {
		return nil, err
	}

	return detached, nil
}

// createStops creates one en_ruta stop per kept order, sequenced in link
// order. Orders that already have a stop are skipped, which makes re-entry
// after a partial failure idempotent.
func (h AcceptAssignmentCommandHandler) createStops(
	ctx context.Context,
	uow EngineUoW,
	accepted *assignment.Assignment,
	routeID kernel.UUID,
	linkedOrders map[string]*order.Order,
) ([]kernel.UUID, error) {
	linkIDs := accepted.OrderIDs()

	customerIDs := make([]kernel.UUID, 0, len(linkIDs))
	for _, id := range linkIDs {
		if linked := linkedOrders[id.String()]; linked != nil {
			customerIDs = append(customerIDs, linked.CustomerID())
		}
	}
	customers, err := uow.CustomerRepository().GetByIDs(ctx, customerIDs)
	if err != nil {
		return nil, err
	}
	locationByCustomer := make(map[string]*kernel.GeoPoint, len(customers))
	for _, c := range customers {
		locationByCustomer[c.ID().String()] = c.Location()
	}

	stopIDs := make([]kernel.UUID, 0, len(linkIDs))
	for i, id := range linkIDs {
		existing, err := uow.RouteRepository().GetStopByOrderID(ctx, id)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			stopIDs = append(stopIDs, existing.ID())
			continue
		}

		linked := linkedOrders[id.String()]
		if linked == nil {
			continue
		}

		orderID := id
		customerID := linked.CustomerID()
		destination := locationByCustomer[customerID.String()]

		stop, err := route.NewStop(kernel.NewUUID(), accepted.ID(), routeID,
			&orderID, &customerID, destination, i+1)
		if err != nil {
			return nil, err
		}
		if err := uow.RouteRepository().AddStop(ctx, stop); err != nil {
			return nil, err
		}

		stopIDs = append(stopIDs, stop.ID())
	}

	return stopIDs, nil
}

// rejectSiblings applies first-accept-wins: every other pending proposal on
// the same route is rejected inside the accepting transaction.
func (h AcceptAssignmentCommandHandler) rejectSiblings(
	ctx context.Context,
	uow EngineUoW,
	accepted *assignment.Assignment,
) error {
	siblings, err := uow.AssignmentRepository().GetPendingByRoute(ctx, *accepted.RouteID())
	if err != nil {
		return err
	}

	for _, sibling := range siblings {
		if sibling.IsEqual(accepted) {
			continue
		}
		if err := sibling.Reject(); err != nil {
			return err
		}
		if err := uow.AssignmentRepository().Update(ctx, sibling); err != nil {
			return err
		}
	}

	return nil
}

// proposeDetached runs the secondary proposal round over the orders split
// off by the capacity check, in a transaction of its own. Its failure is
// logged, never surfaced: the primary acceptance stands on its own, and the
// rollback discards whatever the failed round had written.
func (h AcceptAssignmentCommandHandler) proposeDetached(
	ctx context.Context,
	detachedIDs []kernel.UUID,
) []Proposal {
	if len(detachedIDs) == 0 {
		return nil
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		h.logger.ErrorContext(ctx, "could not start secondary proposal transaction", "error", err)
		return nil
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	detachedOrders, err := uow.OrderRepository().GetByIDs(ctx, detachedIDs)
	if err != nil {
		h.logger.ErrorContext(ctx, "could not load detached orders for secondary proposal", "error", err)
		return nil
	}

	proposals, err := h.planner.plan(ctx, uow, detachedOrders, DefaultSearchRadiusKm, maxCompetingProposals)
	if err != nil {
		h.logger.InfoContext(ctx, "secondary proposal round produced no assignments", "error", err)
		return nil
	}

	if err := uow.Commit(ctx); err != nil {
		h.logger.ErrorContext(ctx, "could not commit secondary proposals", "error", err)
		return nil
	}

	return proposals
}
