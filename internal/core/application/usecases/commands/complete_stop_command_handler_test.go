package commands_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Aliaga23/SIG-Backend/internal/core/application/usecases/commands"
	"github.com/Aliaga23/SIG-Backend/internal/core/domain/model/courier"
	"github.com/Aliaga23/SIG-Backend/internal/core/domain/model/kernel"
	"github.com/Aliaga23/SIG-Backend/internal/core/domain/model/order"
	"github.com/Aliaga23/SIG-Backend/internal/core/domain/model/route"
)

// deliveryFixture wires the aggregates one stop completion touches.
type deliveryFixture struct {
	courier  *courier.Courier
	order    *order.Order
	stop     *route.Stop
	uow      *MockEngineUoW
	factory  *MockEngineUoWFactory
	routeAgg *route.Route
}

func newDeliveryFixture(t *testing.T, productStock int, orderUnits int) *deliveryFixture {
	t.Helper()

	testCourier := mustCourierAt(t, "Carlos", -17.78, -63.18)
	testCustomer := mustCustomerAt(t, kernel.NewUUID(), -17.79, -63.17)

	productID := kernel.NewUUID()
	item, err := order.NewLineItem(productID, orderUnits, 12.5)
	require.NoError(t, err)
	testOrder, err := order.NewOrder(kernel.NewUUID(), testCustomer.ID(), "", []order.LineItem{item})
	require.NoError(t, err)
	require.NoError(t, testOrder.Assign())

	testRoute := mustRoute(t)
	proposal := mustAssignment(t, testCourier.ID(), testRoute.ID(), []kernel.UUID{testOrder.ID()})

	orderID := testOrder.ID()
	customerID := testCustomer.ID()
	destination := testCustomer.Location()
	stop, err := route.NewStop(kernel.NewUUID(), proposal.ID(), testRoute.ID(),
		&orderID, &customerID, destination, 1)
	require.NoError(t, err)

	uow := NewMockEngineUoW()
	uow.On("Begin", mock.Anything).Return(nil).Once()
	uow.On("Rollback", mock.Anything).Return(nil).Once()

	uow.Routes.On("GetStop", mock.Anything, stop.ID()).Return(stop, nil).Once()
	uow.Assignments.On("Get", mock.Anything, proposal.ID()).Return(proposal, nil).Once()

	factory := new(MockEngineUoWFactory)
	factory.On("Create").Return(uow).Once()

	f := &deliveryFixture{
		courier:  testCourier,
		order:    testOrder,
		stop:     stop,
		uow:      uow,
		factory:  factory,
		routeAgg: testRoute,
	}

	if productStock >= 0 {
		stocked := mustProduct(t, productID, productStock)
		uow.Products.On("Get", mock.Anything, productID).Return(stocked, nil).Once()
		uow.Products.On("Update", mock.Anything, stocked).Return(nil).Once()
	}

	return f
}

func (f *deliveryFixture) expectCourierRefresh(openStops int) {
	f.uow.Couriers.On("Get", mock.Anything, f.courier.ID()).Return(f.courier, nil).Once()
	f.uow.Routes.On("CountOpenStopsByCourier", mock.Anything, f.courier.ID()).
		Return(openStops, nil).Once()
	f.uow.Couriers.On("Update", mock.Anything, f.courier).Return(nil).Once()
}

func TestCompleteStopCommandHandler_Handle_DeliveredDeductsStockOnce(t *testing.T) {
	ctx := t.Context()

	f := newDeliveryFixture(t, 5, 2)
	f.uow.On("Commit", ctx).Return(nil).Once()
	f.uow.Routes.On("UpdateStop", ctx, f.stop).Return(nil).Once()
	f.uow.Orders.On("Get", ctx, f.order.ID()).Return(f.order, nil).Once()
	f.uow.Orders.On("Update", ctx, f.order).Return(nil).Once()
	f.expectCourierRefresh(0)

	cmd, err := commands.NewCompleteStopCommand(f.stop.ID(), route.StopDelivered, nil, "entregado")
	require.NoError(t, err)

	handler := commands.NewCompleteStopCommandHandler(f.factory, nil)
	result, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, 2, result.DeductedUnits)
	assert.Equal(t, route.StopDelivered, f.stop.Status())
	assert.Equal(t, "entregado", f.stop.Notes())
	assert.Equal(t, order.Delivered, f.order.Status())
	assert.Equal(t, courier.Available, f.courier.WorkStatus())
	f.uow.AssertAll(t)
}

func TestCompleteStopCommandHandler_Handle_RedeliveryDoesNotDeductAgain(t *testing.T) {
	ctx := t.Context()

	// No product expectations: a re-entered delivered outcome must not
	// touch stock.
	f := newDeliveryFixture(t, -1, 2)
	require.NoError(t, f.stop.Complete(route.StopDelivered, nil, ""))
	require.NoError(t, f.order.Deliver())

	f.uow.On("Commit", ctx).Return(nil).Once()
	f.uow.Routes.On("UpdateStop", ctx, f.stop).Return(nil).Once()
	f.uow.Orders.On("Get", ctx, f.order.ID()).Return(f.order, nil).Once()
	f.expectCourierRefresh(0)

	cmd, err := commands.NewCompleteStopCommand(f.stop.ID(), route.StopDelivered, nil, "segunda visita")
	require.NoError(t, err)

	result, err := commands.NewCompleteStopCommandHandler(f.factory, nil).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, 0, result.DeductedUnits)
	assert.Equal(t, "segunda visita", f.stop.Notes())
	f.uow.AssertAll(t)
}

func TestCompleteStopCommandHandler_Handle_FailedNeverDeducts(t *testing.T) {
	ctx := t.Context()

	f := newDeliveryFixture(t, -1, 2)
	f.uow.On("Commit", ctx).Return(nil).Once()
	f.uow.Routes.On("UpdateStop", ctx, f.stop).Return(nil).Once()
	f.uow.Orders.On("Get", ctx, f.order.ID()).Return(f.order, nil).Once()
	f.uow.Orders.On("Update", ctx, f.order).Return(nil).Once()
	f.expectCourierRefresh(0)

	cmd, err := commands.NewCompleteStopCommand(f.stop.ID(), route.StopFailed, nil, "cliente ausente")
	require.NoError(t, err)

	result, err := commands.NewCompleteStopCommandHandler(f.factory, nil).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, 0, result.DeductedUnits)
	assert.Equal(t, route.StopFailed, f.stop.Status())
	assert.Equal(t, order.Failed, f.order.Status())
	f.uow.Products.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	f.uow.AssertAll(t)
}

func TestCompleteStopCommandHandler_Handle_StockClampedAtZero(t *testing.T) {
	ctx := t.Context()

	f := newDeliveryFixture(t, 1, 3)
	f.uow.On("Commit", ctx).Return(nil).Once()
	f.uow.Routes.On("UpdateStop", ctx, f.stop).Return(nil).Once()
	f.uow.Orders.On("Get", ctx, f.order.ID()).Return(f.order, nil).Once()
	f.uow.Orders.On("Update", ctx, f.order).Return(nil).Once()
	f.expectCourierRefresh(0)

	cmd, err := commands.NewCompleteStopCommand(f.stop.ID(), route.StopDelivered, nil, "")
	require.NoError(t, err)

	result, err := commands.NewCompleteStopCommandHandler(f.factory, nil).Handle(ctx, cmd)

	// Only the single unit in stock comes off; the order still completes
	require.NoError(t, err)
	assert.Equal(t, 1, result.DeductedUnits)
	assert.Equal(t, order.Delivered, f.order.Status())
	f.uow.AssertAll(t)
}

func TestCompleteStopCommandHandler_Handle_FinalLocationResequencesOpenStops(t *testing.T) {
	ctx := t.Context()

	f := newDeliveryFixture(t, 5, 2)
	f.uow.On("Commit", ctx).Return(nil).Once()
	f.uow.Routes.On("UpdateStop", ctx, f.stop).Return(nil).Once()
	f.uow.Orders.On("Get", ctx, f.order.ID()).Return(f.order, nil).Once()
	f.uow.Orders.On("Update", ctx, f.order).Return(nil).Once()

	finalPoint := mustGeoPoint(t, -17.80, -63.16)

	// Two remaining stops; the one stored second is nearer the final point
	farDest := mustGeoPoint(t, -17.70, -63.25)
	nearDest := mustGeoPoint(t, -17.80, -63.161)
	farID, nearID := kernel.NewUUID(), kernel.NewUUID()
	farStop, err := route.NewStop(kernel.NewUUID(), f.stop.AssignmentID(), f.stop.RouteID(),
		&farID, nil, &farDest, 2)
	require.NoError(t, err)
	nearStop, err := route.NewStop(kernel.NewUUID(), f.stop.AssignmentID(), f.stop.RouteID(),
		&nearID, nil, &nearDest, 3)
	require.NoError(t, err)

	f.uow.Routes.On("GetOpenStopsByCourier", ctx, f.courier.ID()).
		Return([]*route.Stop{farStop, nearStop}, nil).Once()
	f.uow.Routes.On("UpdateStop", ctx, farStop).Return(nil).Once()
	f.uow.Routes.On("UpdateStop", ctx, nearStop).Return(nil).Once()
	f.uow.Routes.On("Get", ctx, f.stop.RouteID()).Return(f.routeAgg, nil).Once()
	f.uow.Routes.On("Update", ctx, f.routeAgg).Return(nil).Once()
	f.expectCourierRefresh(2)

	cmd, err := commands.NewCompleteStopCommand(f.stop.ID(), route.StopDelivered, &finalPoint, "")
	require.NoError(t, err)

	result, err := commands.NewCompleteStopCommandHandler(f.factory, nil).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, 2, result.ResequencedStops)
	assert.Equal(t, 1, nearStop.Sequence())
	assert.Equal(t, 2, farStop.Sequence())
	equal, err := f.routeAgg.StartPoint().IsEqual(finalPoint)
	require.NoError(t, err)
	assert.True(t, equal)
	assert.Equal(t, courier.Busy, f.courier.WorkStatus())
	f.uow.AssertAll(t)
}
