package commands_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Aliaga23/SIG-Backend/internal/core/domain/model/assignment"
	"github.com/Aliaga23/SIG-Backend/internal/core/domain/model/courier"
	"github.com/Aliaga23/SIG-Backend/internal/core/domain/model/customer"
	"github.com/Aliaga23/SIG-Backend/internal/core/domain/model/kernel"
	"github.com/Aliaga23/SIG-Backend/internal/core/domain/model/order"
	"github.com/Aliaga23/SIG-Backend/internal/core/domain/model/product"
	"github.com/Aliaga23/SIG-Backend/internal/core/domain/model/route"
	"github.com/Aliaga23/SIG-Backend/internal/core/domain/model/store"
	"github.com/Aliaga23/SIG-Backend/internal/core/domain/model/vehicle"
)

func mustGeoPoint(t *testing.T, lat, lon float64) kernel.GeoPoint {
	t.Helper()
	point, err := kernel.NewGeoPoint(lat, lon)
	require.NoError(t, err)
	return point
}

// mustOrder builds a pending order for the customer with a single line of
// the given unit count.
func mustOrder(t *testing.T, customerID kernel.UUID, units int) *order.Order {
	t.Helper()
	item, err := order.NewLineItem(kernel.NewUUID(), units, 10.0)
	require.NoError(t, err)
	built, err := order.NewOrder(kernel.NewUUID(), customerID, "", []order.LineItem{item})
	require.NoError(t, err)
	return built
}

func mustCourierAt(t *testing.T, name string, lat, lon float64) *courier.Courier {
	t.Helper()
	built, err := courier.NewCourier(kernel.NewUUID(), name, "777-0001")
	require.NoError(t, err)
	require.NoError(t, built.ReportLocation(mustGeoPoint(t, lat, lon)))
	return built
}

func mustVehicle(t *testing.T, capacity int) *vehicle.Vehicle {
	t.Helper()
	built, err := vehicle.NewVehicle(kernel.NewUUID(), "ABC-123", "moto", capacity)
	require.NoError(t, err)
	return built
}

func mustCustomerAt(t *testing.T, id kernel.UUID, lat, lon float64) *customer.Customer {
	t.Helper()
	point := mustGeoPoint(t, lat, lon)
	built, err := customer.NewCustomer(id, "Ana", "Av. Banzer 123", "777-0002", &point)
	require.NoError(t, err)
	return built
}

func mustStoreAt(t *testing.T, lat, lon float64) *store.Store {
	t.Helper()
	point := mustGeoPoint(t, lat, lon)
	built, err := store.NewStore(kernel.NewUUID(), "Central", "Av. Cristo Redentor", &point)
	require.NoError(t, err)
	return built
}

func mustAssignment(t *testing.T, courierID, routeID kernel.UUID, orderIDs []kernel.UUID) *assignment.Assignment {
	t.Helper()
	built, err := assignment.NewAssignment(kernel.NewUUID(), courierID, routeID, orderIDs)
	require.NoError(t, err)
	return built
}

func mustRoute(t *testing.T) *route.Route {
	t.Helper()
	built, err := route.NewRoute(kernel.NewUUID(),
		mustGeoPoint(t, -17.78, -63.18), mustGeoPoint(t, -17.80, -63.17), 4.2, 10.5)
	require.NoError(t, err)
	return built
}

func mustProduct(t *testing.T, id kernel.UUID, stock int) *product.Product {
	t.Helper()
	built, err := product.NewProduct(id, "Coca 2L", 12.5, stock)
	require.NoError(t, err)
	return built
}
