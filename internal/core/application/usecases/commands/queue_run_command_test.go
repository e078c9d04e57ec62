package commands_test

import (
	"testing"

	"dronedelivery/internal/core/application/usecases/commands"
	"dronedelivery/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustLimits(t *testing.T) kernel.Limits {
	t.Helper()
	l, err := kernel.NewLimits(2, 10, 60)
	require.NoError(t, err)
	return l
}

func TestNewQueueRunCommand_ValidInput(t *testing.T) {
	id := kernel.NewUUID()
	cmd, err := commands.NewQueueRunCommand(id, exampleScenario, mustLimits(t))
	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	assert.Equal(t, id, cmd.RunID())
	assert.Equal(t, exampleScenario, cmd.Scenario())
	assert.Equal(t, 2, cmd.Limits().MaxCapacity())
}

func TestNewQueueRunCommand_InvalidInput(t *testing.T) {
	_, err := commands.NewQueueRunCommand(kernel.UUID{}, "", kernel.Limits{})
	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	assert.ErrorIs(t, err, commands.ErrScenarioIsRequired)
	assert.ErrorIs(t, err, kernel.ErrLimitsIsNotConstructed)
}

func TestQueueRunCommand_ZeroValue(t *testing.T) {
	var cmd commands.QueueRunCommand
	require.ErrorIs(t, cmd.Validate(), commands.ErrQueueRunCommandIsNotConstructed)
}

func TestNewProcessQueuedRunsCommand(t *testing.T) {
	cmd, err := commands.NewProcessQueuedRunsCommand(5)
	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	assert.Equal(t, 5, cmd.BatchSize())

	_, err = commands.NewProcessQueuedRunsCommand(0)
	require.Error(t, err)

	var zero commands.ProcessQueuedRunsCommand
	require.ErrorIs(t, zero.Validate(), commands.ErrProcessQueuedRunsCommandIsNotConstructed)
}
