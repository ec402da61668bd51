package commands_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aliaga23/SIG-Backend/internal/core/application/usecases/commands"
	"github.com/Aliaga23/SIG-Backend/internal/core/domain/model/assignment"
	"github.com/Aliaga23/SIG-Backend/internal/core/domain/model/kernel"
)

func restorePendingAt(t *testing.T, courierID kernel.UUID, age time.Duration) *assignment.Assignment {
	t.Helper()
	routeID := kernel.NewUUID()
	restored, err := assignment.RestoreAssignment(
		kernel.NewUUID(), &courierID, &routeID, assignment.Pending,
		time.Now().UTC().Add(-age), []kernel.UUID{kernel.NewUUID()})
	require.NoError(t, err)
	return restored
}

func TestCleanupStaleAssignmentsCommandHandler_Handle_RejectsOnlyStale(t *testing.T) {
	ctx := t.Context()

	courierID := kernel.NewUUID()
	stale := restorePendingAt(t, courierID, 40*time.Hour)
	fresh := restorePendingAt(t, courierID, time.Hour)

	uow := NewMockEngineUoW()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	uow.Assignments.On("GetPendingByCourier", ctx, courierID).
		Return([]*assignment.Assignment{stale, fresh}, nil).Once()
	uow.Assignments.On("Update", ctx, stale).Return(nil).Once()

	factory := new(MockEngineUoWFactory)
	factory.On("Create").Return(uow).Once()

	cmd, err := commands.NewCleanupStaleAssignmentsCommand(courierID, 24)
	require.NoError(t, err)

	rejected, err := commands.NewCleanupStaleAssignmentsCommandHandler(factory).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, 1, rejected)
	assert.Equal(t, assignment.Rejected, stale.Status())
	assert.Equal(t, assignment.Pending, fresh.Status())
	uow.AssertAll(t)
}

func TestCleanupStaleAssignmentsCommandHandler_Handle_DefaultWindow(t *testing.T) {
	cmd, err := commands.NewCleanupStaleAssignmentsCommand(kernel.NewUUID(), 0)
	require.NoError(t, err)
	assert.Equal(t, commands.DefaultCleanupHours, cmd.OlderThanHours())
}
