package vehicle_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aliaga23/SIG-Backend/internal/core/domain/model/kernel"
	"github.com/Aliaga23/SIG-Backend/internal/core/domain/model/vehicle"
)

func TestNewVehicle(t *testing.T) {
	t.Run("valid vehicle starts unassigned", func(t *testing.T) {
		v, err := vehicle.NewVehicle(kernel.NewUUID(), "4123-ABC", "motorcycle", 8)
		require.NoError(t, err)

		assert.NoError(t, v.Validate())
		assert.Equal(t, "4123-ABC", v.Plate())
		assert.Equal(t, "motorcycle", v.Type())
		assert.Equal(t, 8, v.Capacity())
		assert.Nil(t, v.CourierID())
	})

	t.Run("zero capacity", func(t *testing.T) {
		v, err := vehicle.NewVehicle(kernel.NewUUID(), "4123-ABC", "van", 0)
		assert.Error(t, err)
		assert.Nil(t, v)
	})

	t.Run("empty plate", func(t *testing.T) {
		v, err := vehicle.NewVehicle(kernel.NewUUID(), "", "van", 10)
		assert.Error(t, err)
		assert.Nil(t, v)
	})
}

func TestVehicle_CourierAssignment(t *testing.T) {
	v, err := vehicle.NewVehicle(kernel.NewUUID(), "4123-ABC", "van", 10)
	require.NoError(t, err)

	courierID := kernel.NewUUID()
	require.NoError(t, v.AssignToCourier(courierID))
	require.NotNil(t, v.CourierID())
	assert.True(t, v.CourierID().IsEqual(courierID))

	v.Unassign()
	assert.Nil(t, v.CourierID())

	assert.Error(t, v.AssignToCourier(kernel.UUID{}))
}

func TestRestoreVehicle(t *testing.T) {
	courierID := kernel.NewUUID()

	v, err := vehicle.RestoreVehicle(kernel.NewUUID(), "4123-ABC", "van", 10, &courierID)
	require.NoError(t, err)
	require.NotNil(t, v.CourierID())
	assert.True(t, v.CourierID().IsEqual(courierID))
}
