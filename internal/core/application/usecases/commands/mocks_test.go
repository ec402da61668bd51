package commands_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/Aliaga23/SIG-Backend/internal/core/application/usecases/commands"
	"github.com/Aliaga23/SIG-Backend/internal/core/domain/model/assignment"
	"github.com/Aliaga23/SIG-Backend/internal/core/domain/model/courier"
	"github.com/Aliaga23/SIG-Backend/internal/core/domain/model/customer"
	"github.com/Aliaga23/SIG-Backend/internal/core/domain/model/kernel"
	"github.com/Aliaga23/SIG-Backend/internal/core/domain/model/order"
	"github.com/Aliaga23/SIG-Backend/internal/core/domain/model/product"
	"github.com/Aliaga23/SIG-Backend/internal/core/domain/model/route"
	"github.com/Aliaga23/SIG-Backend/internal/core/domain/model/store"
	"github.com/Aliaga23/SIG-Backend/internal/core/domain/model/vehicle"
	"github.com/Aliaga23/SIG-Backend/internal/core/ports"
)

// Shared testify mocks for every handler test in this package.

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByIDs(ctx context.Context, ids []kernel.UUID) ([]*order.Order, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllInPendingStatus(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockCourierRepository struct{ mock.Mock }

func (m *MockCourierRepository) Add(ctx context.Context, aggregate *courier.Courier) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockCourierRepository) Update(ctx context.Context, aggregate *courier.Courier) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockCourierRepository) Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*courier.Courier), args.Error(1)
}

func (m *MockCourierRepository) GetAllActive(ctx context.Context) ([]*courier.Courier, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*courier.Courier), args.Error(1)
}

type MockVehicleRepository struct{ mock.Mock }

func (m *MockVehicleRepository) Add(ctx context.Context, aggregate *vehicle.Vehicle) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockVehicleRepository) Update(ctx context.Context, aggregate *vehicle.Vehicle) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockVehicleRepository) Get(ctx context.Context, id kernel.UUID) (*vehicle.Vehicle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*vehicle.Vehicle), args.Error(1)
}

func (m *MockVehicleRepository) GetByCourierID(ctx context.Context, courierID kernel.UUID) (*vehicle.Vehicle, error) {
	args := m.Called(ctx, courierID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*vehicle.Vehicle), args.Error(1)
}

type MockAssignmentRepository struct{ mock.Mock }

func (m *MockAssignmentRepository) Add(ctx context.Context, aggregate *assignment.Assignment) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockAssignmentRepository) Update(ctx context.Context, aggregate *assignment.Assignment) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockAssignmentRepository) Get(ctx context.Context, id kernel.UUID) (*assignment.Assignment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*assignment.Assignment), args.Error(1)
}

func (m *MockAssignmentRepository) GetByCourier(ctx context.Context, courierID kernel.UUID) ([]*assignment.Assignment, error) {
	args := m.Called(ctx, courierID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*assignment.Assignment), args.Error(1)
}

func (m *MockAssignmentRepository) GetPendingByCourier(ctx context.Context, courierID kernel.UUID) ([]*assignment.Assignment, error) {
	args := m.Called(ctx, courierID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*assignment.Assignment), args.Error(1)
}

func (m *MockAssignmentRepository) GetPendingByRoute(ctx context.Context, routeID kernel.UUID) ([]*assignment.Assignment, error) {
	args := m.Called(ctx, routeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*assignment.Assignment), args.Error(1)
}

func (m *MockAssignmentRepository) GetAllPendingOlderThan(ctx context.Context, cutoff time.Time) ([]*assignment.Assignment, error) {
	args := m.Called(ctx, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*assignment.Assignment), args.Error(1)
}

func (m *MockAssignmentRepository) AcceptIfPending(ctx context.Context, id kernel.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type MockRouteRepository struct{ mock.Mock }

func (m *MockRouteRepository) Add(ctx context.Context, aggregate *route.Route) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockRouteRepository) Update(ctx context.Context, aggregate *route.Route) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockRouteRepository) Get(ctx context.Context, id kernel.UUID) (*route.Route, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*route.Route), args.Error(1)
}

func (m *MockRouteRepository) AddStop(ctx context.Context, stop *route.Stop) error {
	args := m.Called(ctx, stop)
	return args.Error(0)
}

func (m *MockRouteRepository) UpdateStop(ctx context.Context, stop *route.Stop) error {
	args := m.Called(ctx, stop)
	return args.Error(0)
}

func (m *MockRouteRepository) GetStop(ctx context.Context, id kernel.UUID) (*route.Stop, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*route.Stop), args.Error(1)
}

func (m *MockRouteRepository) GetStopByOrderID(ctx context.Context, orderID kernel.UUID) (*route.Stop, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*route.Stop), args.Error(1)
}

func (m *MockRouteRepository) GetStopsByRoute(ctx context.Context, routeID kernel.UUID) ([]*route.Stop, error) {
	args := m.Called(ctx, routeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*route.Stop), args.Error(1)
}

func (m *MockRouteRepository) GetStopsByAssignment(ctx context.Context, assignmentID kernel.UUID) ([]*route.Stop, error) {
	args := m.Called(ctx, assignmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*route.Stop), args.Error(1)
}

func (m *MockRouteRepository) DeleteStopsByOrderIDs(ctx context.Context, orderIDs []kernel.UUID) error {
	args := m.Called(ctx, orderIDs)
	return args.Error(0)
}

func (m *MockRouteRepository) GetOpenStopsByCourier(ctx context.Context, courierID kernel.UUID) ([]*route.Stop, error) {
	args := m.Called(ctx, courierID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*route.Stop), args.Error(1)
}

func (m *MockRouteRepository) CountOpenStopsByCourier(ctx context.Context, courierID kernel.UUID) (int, error) {
	args := m.Called(ctx, courierID)
	return args.Int(0), args.Error(1)
}

type MockStoreRepository struct{ mock.Mock }

func (m *MockStoreRepository) Add(ctx context.Context, aggregate *store.Store) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockStoreRepository) Get(ctx context.Context, id kernel.UUID) (*store.Store, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.Store), args.Error(1)
}

func (m *MockStoreRepository) GetAllWithLocation(ctx context.Context) ([]*store.Store, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*store.Store), args.Error(1)
}

type MockProductRepository struct{ mock.Mock }

func (m *MockProductRepository) Add(ctx context.Context, aggregate *product.Product) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockProductRepository) Update(ctx context.Context, aggregate *product.Product) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockProductRepository) Get(ctx context.Context, id kernel.UUID) (*product.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

type MockCustomerRepository struct{ mock.Mock }

func (m *MockCustomerRepository) Add(ctx context.Context, aggregate *customer.Customer) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockCustomerRepository) Get(ctx context.Context, id kernel.UUID) (*customer.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customer.Customer), args.Error(1)
}

func (m *MockCustomerRepository) GetByIDs(ctx context.Context, ids []kernel.UUID) ([]*customer.Customer, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*customer.Customer), args.Error(1)
}

// MockEngineUoW bundles the repository mocks behind the engine unit of work.
// Repository getters are wired directly instead of being mock expectations,
// which keeps the tests focused on the data calls.
type MockEngineUoW struct {
	mock.Mock

	Orders      *MockOrderRepository
	Couriers    *MockCourierRepository
	Vehicles    *MockVehicleRepository
	Assignments *MockAssignmentRepository
	Routes      *MockRouteRepository
	Stores      *MockStoreRepository
	Products    *MockProductRepository
	Customers   *MockCustomerRepository
}

func NewMockEngineUoW() *MockEngineUoW {
	return &MockEngineUoW{
		Orders:      new(MockOrderRepository),
		Couriers:    new(MockCourierRepository),
		Vehicles:    new(MockVehicleRepository),
		Assignments: new(MockAssignmentRepository),
		Routes:      new(MockRouteRepository),
		Stores:      new(MockStoreRepository),
		Products:    new(MockProductRepository),
		Customers:   new(MockCustomerRepository),
	}
}

func (m *MockEngineUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockEngineUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockEngineUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockEngineUoW) OrderRepository() ports.OrderRepository         { return m.Orders }
func (m *MockEngineUoW) CourierRepository() ports.CourierRepository     { return m.Couriers }
func (m *MockEngineUoW) VehicleRepository() ports.VehicleRepository     { return m.Vehicles }
func (m *MockEngineUoW) AssignmentRepository() ports.AssignmentRepository {
	return m.Assignments
}
func (m *MockEngineUoW) RouteRepository() ports.RouteRepository       { return m.Routes }
func (m *MockEngineUoW) StoreRepository() ports.StoreRepository       { return m.Stores }
func (m *MockEngineUoW) ProductRepository() ports.ProductRepository   { return m.Products }
func (m *MockEngineUoW) CustomerRepository() ports.CustomerRepository { return m.Customers }

// AssertAll checks the unit of work and every repository mock.
func (m *MockEngineUoW) AssertAll(t mock.TestingT) {
	m.Mock.AssertExpectations(t)
	m.Orders.AssertExpectations(t)
	m.Couriers.AssertExpectations(t)
	m.Vehicles.AssertExpectations(t)
	m.Assignments.AssertExpectations(t)
	m.Routes.AssertExpectations(t)
	m.Stores.AssertExpectations(t)
	m.Products.AssertExpectations(t)
	m.Customers.AssertExpectations(t)
}

type MockEngineUoWFactory struct{ mock.Mock }

func (m *MockEngineUoWFactory) Create() commands.EngineUoW {
	args := m.Called()
	return args.Get(0).(commands.EngineUoW)
}

// MockOrderUoW is the narrower unit of work used by order intake.
type MockOrderUoW struct {
	mock.Mock

	Orders    *MockOrderRepository
	Products  *MockProductRepository
	Customers *MockCustomerRepository
}

func NewMockOrderUoW() *MockOrderUoW {
	return &MockOrderUoW{
		Orders:    new(MockOrderRepository),
		Products:  new(MockProductRepository),
		Customers: new(MockCustomerRepository),
	}
}

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository         { return m.Orders }
func (m *MockOrderUoW) ProductRepository() ports.ProductRepository     { return m.Products }
func (m *MockOrderUoW) CustomerRepository() ports.CustomerRepository   { return m.Customers }

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}
