package commands_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aliaga23/SIG-Backend/internal/core/application/usecases/commands"
	"github.com/Aliaga23/SIG-Backend/internal/core/domain/model/assignment"
	"github.com/Aliaga23/SIG-Backend/internal/core/domain/model/kernel"
	"github.com/Aliaga23/SIG-Backend/internal/core/domain/model/order"
	"github.com/Aliaga23/SIG-Backend/internal/pkg/errs"
)

func TestRejectAssignmentCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()

	courierID := kernel.NewUUID()
	linked := mustOrder(t, kernel.NewUUID(), 2)
	proposal := mustAssignment(t, courierID, kernel.NewUUID(), []kernel.UUID{linked.ID()})

	uow := NewMockEngineUoW()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	uow.Assignments.On("Get", ctx, proposal.ID()).Return(proposal, nil).Once()
	uow.Assignments.On("Update", ctx, proposal).Return(nil).Once()

	factory := new(MockEngineUoWFactory)
	factory.On("Create").Return(uow).Once()

	cmd, err := commands.NewRejectAssignmentCommand(proposal.ID(), courierID)
	require.NoError(t, err)

	handler := commands.NewRejectAssignmentCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	// The linked order is untouched and stays eligible for re-proposal
	require.NoError(t, err)
	assert.Equal(t, assignment.Rejected, proposal.Status())
	assert.Equal(t, order.Pending, linked.Status())
	uow.AssertAll(t)
}

func TestRejectAssignmentCommandHandler_Handle_NotOwned(t *testing.T) {
	ctx := t.Context()

	proposal := mustAssignment(t, kernel.NewUUID(), kernel.NewUUID(), []kernel.UUID{kernel.NewUUID()})

	uow := NewMockEngineUoW()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	uow.Assignments.On("Get", ctx, proposal.ID()).Return(proposal, nil).Once()

	factory := new(MockEngineUoWFactory)
	factory.On("Create").Return(uow).Once()

	cmd, err := commands.NewRejectAssignmentCommand(proposal.ID(), kernel.NewUUID())
	require.NoError(t, err)

	handler := commands.NewRejectAssignmentCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrInvalidState)
	assert.Equal(t, assignment.Pending, proposal.Status())
	uow.AssertAll(t)
}

func TestRejectAssignmentCommandHandler_Handle_AlreadyProcessed(t *testing.T) {
	ctx := t.Context()

	courierID := kernel.NewUUID()
	proposal := mustAssignment(t, courierID, kernel.NewUUID(), []kernel.UUID{kernel.NewUUID()})
	require.NoError(t, proposal.Accept())

	uow := NewMockEngineUoW()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	uow.Assignments.On("Get", ctx, proposal.ID()).Return(proposal, nil).Once()

	factory := new(MockEngineUoWFactory)
	factory.On("Create").Return(uow).Once()

	cmd, err := commands.NewRejectAssignmentCommand(proposal.ID(), courierID)
	require.NoError(t, err)

	err = commands.NewRejectAssignmentCommandHandler(factory).Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrInvalidState)
	uow.AssertAll(t)
}
