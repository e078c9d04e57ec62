package commands

import (
	"errors"

	"dronedelivery/internal/core/domain/model/kernel"
	"dronedelivery/internal/pkg/guard"
)

var (
	ErrQueueRunCommandIsNotConstructed = errors.New(
		"QueueRunCommand must be created via NewQueueRunCommand constructor",
	)
	ErrScenarioIsRequired = errors.New("scenario is required")
)

// QueueRunCommand represents a request to simulate a scenario later.
//
// Example:
//
//	limits, _ := kernel.NewLimits(4, 40, 0)
//	cmd, err := NewQueueRunCommand(kernel.NewUUID(), input, limits)
//	if err != nil {
//	    return fmt.Errorf("invalid run: %w", err)
//	}
//
//	handler := NewQueueRunCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to queue run: %w", err)
//	}
type QueueRunCommand struct { //nolint:recvcheck //using for validation
	runID    kernel.UUID
	scenario string
	limits   kernel.Limits

	guard guard.ConstructorGuard
}

// NewQueueRunCommand creates a command to register a scenario for simulation.
// The scenario text itself is parsed by the Run aggregate.
func NewQueueRunCommand(runID kernel.UUID, scenario string, limits kernel.Limits) (QueueRunCommand, error) {
	cmd := QueueRunCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setRunID(runID),
		cmd.setScenario(scenario),
		cmd.setLimits(limits),
	); err != nil {
		return QueueRunCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c QueueRunCommand) Validate() error {
	return c.guard.Validate(ErrQueueRunCommandIsNotConstructed)
}

// RunID returns the identifier the run will be stored under.
func (c QueueRunCommand) RunID() kernel.UUID {
	return c.runID
}

// Scenario returns the scenario text.
func (c QueueRunCommand) Scenario() string {
	return c.scenario
}

// Limits returns the capacity and autonomy ratio to simulate with.
func (c QueueRunCommand) Limits() kernel.Limits {
	return c.limits
}

func (c *QueueRunCommand) setRunID(runID kernel.UUID) error {
	if err := runID.Validate(); err != nil {
		return err
	}
	c.runID = runID
	return nil
}

func (c *QueueRunCommand) setScenario(scenario string) error {
	if scenario == "" {
		return ErrScenarioIsRequired
	}
	c.scenario = scenario
	return nil
}

func (c *QueueRunCommand) setLimits(limits kernel.Limits) error {
	if err := limits.Validate(); err != nil {
		return err
	}
	c.limits = limits
	return nil
}
