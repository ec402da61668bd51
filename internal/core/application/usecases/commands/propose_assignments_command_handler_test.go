package commands_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Aliaga23/SIG-Backend/internal/core/application/usecases/commands"
	"github.com/Aliaga23/SIG-Backend/internal/core/domain/model/assignment"
	"github.com/Aliaga23/SIG-Backend/internal/core/domain/model/courier"
	"github.com/Aliaga23/SIG-Backend/internal/core/domain/model/customer"
	"github.com/Aliaga23/SIG-Backend/internal/core/domain/model/kernel"
	"github.com/Aliaga23/SIG-Backend/internal/core/domain/model/order"
	"github.com/Aliaga23/SIG-Backend/internal/core/domain/model/route"
	"github.com/Aliaga23/SIG-Backend/internal/core/domain/model/store"
	"github.com/Aliaga23/SIG-Backend/internal/core/domain/services"
	"github.com/Aliaga23/SIG-Backend/internal/pkg/errs"
)

func newProposeHandler(factory *MockEngineUoWFactory) commands.ProposeAssignmentsCommandHandler {
	return commands.NewProposeAssignmentsCommandHandler(factory, services.NewRouteEstimator(nil, nil))
}

func TestProposeAssignmentsCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()

	// Given: one pending order, one nearby courier with a vehicle, one store
	testCustomer := mustCustomerAt(t, kernel.NewUUID(), -17.79, -63.17)
	pendingOrder := mustOrder(t, testCustomer.ID(), 2)
	testCourier := mustCourierAt(t, "Carlos", -17.78, -63.18)
	testVehicle := mustVehicle(t, 10)
	pickupStore := mustStoreAt(t, -17.77, -63.19)

	uow := NewMockEngineUoW()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	uow.Orders.On("GetAllInPendingStatus", ctx).Return([]*order.Order{pendingOrder}, nil).Once()
	uow.Customers.On("GetByIDs", ctx, []kernel.UUID{testCustomer.ID()}).
		Return([]*customer.Customer{testCustomer}, nil).Once()
	uow.Couriers.On("GetAllActive", ctx).Return([]*courier.Courier{testCourier}, nil).Once()

	var persistedRoute *route.Route
	uow.Routes.On("Add", ctx, mock.AnythingOfType("*route.Route")).
		Run(func(args mock.Arguments) { persistedRoute = args.Get(1).(*route.Route) }).
		Return(nil).Once()

	var persistedAssignment *assignment.Assignment
	uow.Assignments.On("Add", ctx, mock.AnythingOfType("*assignment.Assignment")).
		Run(func(args mock.Arguments) {
			persistedAssignment = args.Get(1).(*assignment.Assignment)
		}).Return(nil).Once()

	uow.Vehicles.On("GetByCourierID", ctx, testCourier.ID()).Return(testVehicle, nil).Once()
	uow.Stores.On("GetAllWithLocation", ctx).Return([]*store.Store{pickupStore}, nil).Once()

	factory := new(MockEngineUoWFactory)
	factory.On("Create").Return(uow).Once()

	cmd, err := commands.NewProposeAssignmentsCommand(nil, 0)
	require.NoError(t, err)
	assert.Equal(t, commands.DefaultSearchRadiusKm, cmd.RadiusKm())

	// When
	proposal, err := newProposeHandler(factory).Handle(ctx, cmd)

	// Then: one pending assignment for the nearest courier on a fresh route
	require.NoError(t, err)
	assert.True(t, proposal.CourierID.IsEqual(testCourier.ID()))
	assert.Equal(t, []kernel.UUID{pendingOrder.ID()}, proposal.OrderIDs)
	require.NotNil(t, persistedRoute)
	assert.True(t, proposal.RouteID.IsEqual(persistedRoute.ID()))
	assert.Positive(t, proposal.DistanceKm)
	assert.Positive(t, proposal.EstimatedMinutes)
	require.NotNil(t, persistedAssignment)
	assert.Equal(t, assignment.Pending, persistedAssignment.Status())
	uow.AssertAll(t)
}

func TestProposeAssignmentsCommandHandler_Handle_NoPendingOrders(t *testing.T) {
	ctx := t.Context()

	uow := NewMockEngineUoW()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	uow.Orders.On("GetAllInPendingStatus", ctx).Return([]*order.Order{}, nil).Once()

	factory := new(MockEngineUoWFactory)
	factory.On("Create").Return(uow).Once()

	cmd, err := commands.NewProposeAssignmentsCommand(nil, 0)
	require.NoError(t, err)

	_, err = newProposeHandler(factory).Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrNoCandidates)
	uow.AssertAll(t)
}

func TestProposeAssignmentsCommandHandler_Handle_NoCourierInRange(t *testing.T) {
	ctx := t.Context()

	// Courier roughly 550km away from the order cluster
	testCustomer := mustCustomerAt(t, kernel.NewUUID(), -17.79, -63.17)
	pendingOrder := mustOrder(t, testCustomer.ID(), 2)
	farCourier := mustCourierAt(t, "Carlos", -16.50, -68.15)
	testVehicle := mustVehicle(t, 10)

	uow := NewMockEngineUoW()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	uow.Orders.On("GetAllInPendingStatus", ctx).Return([]*order.Order{pendingOrder}, nil).Once()
	uow.Customers.On("GetByIDs", ctx, mock.Anything).
		Return([]*customer.Customer{testCustomer}, nil).Once()
	uow.Couriers.On("GetAllActive", ctx).Return([]*courier.Courier{farCourier}, nil).Once()
	uow.Vehicles.On("GetByCourierID", ctx, farCourier.ID()).Return(testVehicle, nil).Once()

	factory := new(MockEngineUoWFactory)
	factory.On("Create").Return(uow).Once()

	cmd, err := commands.NewProposeAssignmentsCommand(nil, 0)
	require.NoError(t, err)

	_, err = newProposeHandler(factory).Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrNoCandidates)
	uow.AssertAll(t)
}
