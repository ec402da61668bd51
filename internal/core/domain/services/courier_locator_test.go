package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aliaga23/SIG-Backend/internal/core/domain/model/courier"
	"github.com/Aliaga23/SIG-Backend/internal/core/domain/model/kernel"
	"github.com/Aliaga23/SIG-Backend/internal/core/domain/model/vehicle"
	"github.com/Aliaga23/SIG-Backend/internal/core/domain/services"
)

func courierAt(t *testing.T, lat, lon float64) *courier.Courier {
	t.Helper()
	c, err := courier.NewCourier(kernel.NewUUID(), "courier", "")
	require.NoError(t, err)

	point, err := kernel.NewGeoPoint(lat, lon)
	require.NoError(t, err)
	require.NoError(t, c.ReportLocation(point))
	return c
}

func vehicleWithCapacity(t *testing.T, capacity int) *vehicle.Vehicle {
	t.Helper()
	v, err := vehicle.NewVehicle(kernel.NewUUID(), "1234-ABC", "motorcycle", capacity)
	require.NoError(t, err)
	return v
}

func TestCourierLocator_FindNearby(t *testing.T) {
	locator := services.NewCourierLocator()
	center, err := kernel.NewGeoPoint(0, 0)
	require.NoError(t, err)

	t.Run("sorts matches ascending by distance", func(t *testing.T) {
		far := services.CourierCandidate{Courier: courierAt(t, 0, 0.5), Vehicle: vehicleWithCapacity(t, 10)}
		near := services.CourierCandidate{Courier: courierAt(t, 0, 0.1), Vehicle: vehicleWithCapacity(t, 5)}

		matches, err := locator.FindNearby(center, 100, []services.CourierCandidate{far, near})
		require.NoError(t, err)

		require.Len(t, matches, 2)
		assert.True(t, matches[0].Courier.IsEqual(near.Courier))
		assert.True(t, matches[1].Courier.IsEqual(far.Courier))
		assert.Less(t, matches[0].DistanceKm, matches[1].DistanceKm)
	})

	t.Run("excludes couriers outside the radius", func(t *testing.T) {
		inside := services.CourierCandidate{Courier: courierAt(t, 0, 0.05), Vehicle: vehicleWithCapacity(t, 10)}
		outside := services.CourierCandidate{Courier: courierAt(t, 0, 2), Vehicle: vehicleWithCapacity(t, 10)}

		matches, err := locator.FindNearby(center, 10, []services.CourierCandidate{inside, outside})
		require.NoError(t, err)

		require.Len(t, matches, 1)
		assert.True(t, matches[0].Courier.IsEqual(inside.Courier))
	})

	t.Run("excludes inactive couriers", func(t *testing.T) {
		c := courierAt(t, 0, 0.05)
		c.Deactivate()

		matches, err := locator.FindNearby(center, 10, []services.CourierCandidate{
			{Courier: c, Vehicle: vehicleWithCapacity(t, 10)},
		})
		require.NoError(t, err)
		assert.Empty(t, matches)
	})

	t.Run("excludes couriers without reported coordinates", func(t *testing.T) {
		c, err := courier.NewCourier(kernel.NewUUID(), "no-gps", "")
		require.NoError(t, err)

		matches, err := locator.FindNearby(center, 10, []services.CourierCandidate{
			{Courier: c, Vehicle: vehicleWithCapacity(t, 10)},
		})
		require.NoError(t, err)
		assert.Empty(t, matches)
	})

	t.Run("excludes couriers without a vehicle", func(t *testing.T) {
		matches, err := locator.FindNearby(center, 10, []services.CourierCandidate{
			{Courier: courierAt(t, 0, 0.05), Vehicle: nil},
		})
		require.NoError(t, err)
		assert.Empty(t, matches)
	})

	t.Run("empty result is not an error", func(t *testing.T) {
		matches, err := locator.FindNearby(center, 10, nil)
		require.NoError(t, err)
		assert.Empty(t, matches)
	})

	t.Run("invalid radius", func(t *testing.T) {
		_, err := locator.FindNearby(center, 0, nil)
		assert.Error(t, err)
	})

	t.Run("unconstructed center", func(t *testing.T) {
		_, err := locator.FindNearby(kernel.GeoPoint{}, 10, nil)
		assert.Error(t, err)
	})
}
