package commands

import (
	"context"

	"github.com/Aliaga23/SIG-Backend/internal/core/domain/model/order"
	"github.com/Aliaga23/SIG-Backend/internal/core/domain/services"
	"github.com/Aliaga23/SIG-Backend/internal/pkg/errs"
)

// ProposeAssignmentsCommandHandler builds a pending assignment proposal for
// a batch of pending orders: centroid search for the nearest courier, pickup
// at the store nearest that courier, destinations sequenced by the external
// optimizer or the local nearest-neighbor heuristic.
//
// The proposal only reserves the orders logically; capacity is checked and
// stops are created when the courier accepts.
type ProposeAssignmentsCommandHandler struct {
	uowFactory EngineUoWFactory
	planner    proposalPlanner
}

// NewProposeAssignmentsCommandHandler creates a handler for assignment proposals.
func NewProposeAssignmentsCommandHandler(uowFactory EngineUoWFactory, estimator services.RouteEstimator) ProposeAssignmentsCommandHandler {
	return ProposeAssignmentsCommandHandler{
		uowFactory: uowFactory,
		planner:    newProposalPlanner(estimator),
	}
}

// Handle selects the pending orders, plans one route, and persists a single
// pending assignment for the nearest courier. Fails with a NoCandidatesError
// when there are no pending orders, none has resolvable coordinates, no
// courier is within the radius, or no store has coordinates.
func (h ProposeAssignmentsCommandHandler) Handle(ctx context.Context, command ProposeAssignmentsCommand) (*Proposal, error) {
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

	orders, err := h.selectPendingOrders(ctx, uow, command)
	if err != nil {
		return nil, err
	}

	proposals, err := h.planner.plan(ctx, uow, orders, command.RadiusKm(), 1)
	if err != nil {
		return nil, err
	}

	if err := uow.Commit(ctx); err != nil {
		return nil, err
	}

	return &proposals[0], nil
}

func (h ProposeAssignmentsCommandHandler) selectPendingOrders(
	ctx context.Context,
	uow EngineUoW,
	command ProposeAssignmentsCommand,
) ([]*order.Order, error) {
	var (
		orders []*order.Order
		err    error
	)

	if ids := command.OrderIDs(); len(ids) > 0 {
		orders, err = uow.OrderRepository().GetByIDs(ctx, ids)
	} else {
		orders, err = uow.OrderRepository().GetAllInPendingStatus(ctx)
	}
	if err != nil {
		return nil, err
	}

	pending := make([]*order.Order, 0, len(orders))
	for _, o := range orders {
		if o.Status() == order.Pending {
			pending = append(pending, o)
		}
	}

	if len(pending) == 0 {
		return nil, errs.NewNoCandidatesError("pending orders")
	}

	return pending, nil
}
