package commands_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Aliaga23/SIG-Backend/internal/core/application/usecases/commands"
	"github.com/Aliaga23/SIG-Backend/internal/core/domain/model/assignment"
	"github.com/Aliaga23/SIG-Backend/internal/core/domain/model/kernel"
)

func TestExpireAssignmentsCommandHandler_Handle_ExpiresStaleProposals(t *testing.T) {
	ctx := t.Context()

	first := mustAssignment(t, kernel.NewUUID(), kernel.NewUUID(), []kernel.UUID{kernel.NewUUID()})
	second := mustAssignment(t, kernel.NewUUID(), kernel.NewUUID(), []kernel.UUID{kernel.NewUUID()})

	uow := NewMockEngineUoW()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	// The repository applies the cutoff; verify the handler derives it from
	// the command window.
	uow.Assignments.On("GetAllPendingOlderThan", ctx, mock.MatchedBy(func(cutoff time.Time) bool {
		expected := time.Now().UTC().Add(-40 * time.Minute)
		return cutoff.Sub(expected).Abs() < 5*time.Second
	})).Return([]*assignment.Assignment{first, second}, nil).Once()
	uow.Assignments.On("Update", ctx, first).Return(nil).Once()
	uow.Assignments.On("Update", ctx, second).Return(nil).Once()

	factory := new(MockEngineUoWFactory)
	factory.On("Create").Return(uow).Once()

	cmd, err := commands.NewExpireAssignmentsCommand(40)
	require.NoError(t, err)

	handler := commands.NewExpireAssignmentsCommandHandler(factory, nil)
	expired, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, []kernel.UUID{first.ID(), second.ID()}, expired)
	assert.Equal(t, assignment.Expired, first.Status())
	assert.Equal(t, assignment.Expired, second.Status())
	uow.AssertAll(t)
}

func TestExpireAssignmentsCommandHandler_Handle_NothingStale(t *testing.T) {
	ctx := t.Context()

	uow := NewMockEngineUoW()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	uow.Assignments.On("GetAllPendingOlderThan", ctx, mock.Anything).
		Return([]*assignment.Assignment{}, nil).Once()

	factory := new(MockEngineUoWFactory)
	factory.On("Create").Return(uow).Once()

	cmd, err := commands.NewExpireAssignmentsCommand(0)
	require.NoError(t, err)
	assert.Equal(t, commands.DefaultExpiryMinutes, cmd.OlderThanMinutes())

	expired, err := commands.NewExpireAssignmentsCommandHandler(factory, nil).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Empty(t, expired)
	uow.AssertAll(t)
}
