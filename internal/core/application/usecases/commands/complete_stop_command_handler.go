package commands

import (
	"context"
	"log/slog"

	"github.com/Aliaga23/SIG-Backend/internal/core/domain/model/kernel"
	"github.com/Aliaga23/SIG-Backend/internal/core/domain/model/route"
	"github.com/Aliaga23/SIG-Backend/internal/core/domain/services"
)

// CompleteStopResult reports the effects of completing a stop.
type CompleteStopResult struct {
	StopID           kernel.UUID
	OrderID          *kernel.UUID
	Outcome          route.StopStatus
	DeductedUnits    int
	ResequencedStops int
}

// CompleteStopCommandHandler records a stop outcome and fans out its
// consequences: a first delivery deducts inventory and marks the order
// delivered, a failure marks it failed without touching stock, a reported
// final location re-optimizes the courier's remaining stops from that point,
// and the courier's work status is recomputed from the open stops left.
//
// Completion may be re-entered with a corrected outcome; the stock and order
// side effects fire only on the first transition into delivered.
type CompleteStopCommandHandler struct {
	uowFactory EngineUoWFactory
	sequencer  services.Sequencer
	logger     *slog.Logger
}

// NewCompleteStopCommandHandler creates a handler for stop completion.
func NewCompleteStopCommandHandler(uowFactory EngineUoWFactory, logger *slog.Logger) CompleteStopCommandHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return CompleteStopCommandHandler{
		uowFactory: uowFactory,
		sequencer:  services.NewSequencer(),
		logger:     logger.With("component", "complete_stop"),
	}
}

// Handle processes the completion command.
func (h CompleteStopCommandHandler) Handle(ctx context.Context, command CompleteStopCommand) (*CompleteStopResult, error) {
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

	stop, err := uow.RouteRepository().GetStop(ctx, command.StopID())
	if err != nil {
		return nil, err
	}

	wasDelivered := stop.Status() == route.StopDelivered

	if err := stop.Complete(command.Outcome(), command.FinalLocation(), command.Notes()); err != nil {
		return nil, err
	}
	if err := uow.RouteRepository().UpdateStop(ctx, stop); err != nil {
		return nil, err
	}

	result := &CompleteStopResult{
		StopID:  stop.ID(),
		OrderID: stop.OrderID(),
		Outcome: command.Outcome(),
	}

	if stop.OrderID() != nil {
		deducted, err := h.settleOrder(ctx, uow, *stop.OrderID(), command.Outcome(), wasDelivered)
		if err != nil {
			return nil, err
		}
		result.DeductedUnits = deducted
	}

	owner, err := uow.AssignmentRepository().Get(ctx, stop.AssignmentID())
	if err != nil {
		return nil, err
	}

	if courierID := owner.CourierID(); courierID != nil {
		if command.Outcome() == route.StopDelivered && command.FinalLocation() != nil {
			resequenced, err := h.reoptimizeFrom(ctx, uow, *courierID, stop.RouteID(), *command.FinalLocation())
			if err != nil {
				return nil, err
			}
			result.ResequencedStops = resequenced
		}

		if err := h.refreshCourier(ctx, uow, *courierID); err != nil {
			return nil, err
		}
	}

	if err := uow.Commit(ctx); err != nil {
		return nil, err
	}

	return result, nil
}

// settleOrder applies the order-side consequences of a stop outcome. Stock
// is deducted per line item, clamping at zero, and only on the first
// transition into delivered so re-entry never double-deducts.
func (h CompleteStopCommandHandler) settleOrder(
	ctx context.Context,
	uow EngineUoW,
	orderID kernel.UUID,
	outcome route.StopStatus,
	wasDelivered bool,
) (int, error) {
	settled, err := uow.OrderRepository().Get(ctx, orderID)
	if err != nil {
		return 0, err
	}

	if outcome == route.StopFailed {
		if settled.Status().IsTerminal() {
			return 0, nil
		}
		if err := settled.Fail(); err != nil {
			return 0, err
		}
		return 0, uow.OrderRepository().Update(ctx, settled)
	}

	if wasDelivered {
		return 0, nil
	}

	deducted := 0
	for _, item := range settled.Items() {
		stocked, err := uow.ProductRepository().Get(ctx, item.ProductID())
		if err != nil {
			return 0, err
		}
		taken, err := stocked.DeductStock(item.Quantity())
		if err != nil {
			return 0, err
		}
		if taken < item.Quantity() {
			h.logger.WarnContext(ctx, "stock underflow clamped during delivery",
				"product_id", item.ProductID().String(),
				"requested", item.Quantity(), "deducted", taken)
		}
		if err := uow.ProductRepository().Update(ctx, stocked); err != nil {
			return 0, err
		}
		deducted += taken
	}

	if !settled.Status().IsTerminal() {
		if err := settled.Deliver(); err != nil {
			return 0, err
		}
		if err := uow.OrderRepository().Update(ctx, settled); err != nil {
			return 0, err
		}
	}

	return deducted, nil
}

// reoptimizeFrom re-sequences the courier's remaining open stops by nearest
// neighbor from the reported final location and advances the route start to
// that point.
func (h CompleteStopCommandHandler) reoptimizeFrom(
	ctx context.Context,
	uow EngineUoW,
	courierID kernel.UUID,
	routeID kernel.UUID,
	from kernel.GeoPoint,
) (int, error) {
	open, err := uow.RouteRepository().GetOpenStopsByCourier(ctx, courierID)
	if err != nil {
		return 0, err
	}
	if len(open) == 0 {
		return 0, nil
	}

	byID := make(map[string]*route.Stop, len(open))
	waypoints := make([]services.Waypoint, 0, len(open))
	for _, s := range open {
		byID[s.ID().String()] = s
		waypoints = append(waypoints, services.Waypoint{Key: s.ID(), Point: s.Destination()})
	}

	ordered, err := h.sequencer.Sequence(from, waypoints)
	if err != nil {
		return 0, err
	}

	for i, waypoint := range ordered {
		reordered := byID[waypoint.Key.String()]
		if err := reordered.Resequence(i + 1); err != nil {
			return 0, err
		}
		if err := uow.RouteRepository().UpdateStop(ctx, reordered); err != nil {
			return 0, err
		}
	}

	traveled, err := uow.RouteRepository().Get(ctx, routeID)
	if err != nil {
		return 0, err
	}
	if err := traveled.AdvanceStart(from); err != nil {
		return 0, err
	}
	if err := uow.RouteRepository().Update(ctx, traveled); err != nil {
		return 0, err
	}

	return len(ordered), nil
}

// refreshCourier recomputes the courier's work status from their open stops.
func (h CompleteStopCommandHandler) refreshCourier(ctx context.Context, uow EngineUoW, courierID kernel.UUID) error {
	courierAgg, err := uow.CourierRepository().Get(ctx, courierID)
	if err != nil {
		return err
	}

	openStops, err := uow.RouteRepository().CountOpenStopsByCourier(ctx, courierID)
	if err != nil {
		return err
	}

	courierAgg.RefreshWorkStatus(openStops)

	return uow.CourierRepository().Update(ctx, courierAgg)
}
