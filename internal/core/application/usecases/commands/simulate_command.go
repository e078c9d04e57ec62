package commands

import (
	"errors"
	"slices"

	"dronedelivery/internal/core/domain/model/kernel"
	"dronedelivery/internal/core/domain/model/scenario"
	"dronedelivery/internal/core/domain/services/pathfinding"
	"dronedelivery/internal/pkg/guard"
)

var (
	ErrSimulateCommandIsNotConstructed = errors.New(
		"SimulateCommand must be created via NewSimulateCommand constructor",
	)
)

// SimulateOptions tunes the planner of a SimulateCommand.
type SimulateOptions struct {
	// Policies replaces the default fallback list when not empty.
	Policies []pathfinding.Policy
	// SingleTarget plans one closest packet per drone instead of bubble itineraries.
	SingleTarget bool
	// RetryMissing runs a second planning pass over packets given up in the first one.
	RetryMissing bool
}

// SimulateCommand plans and plays a scenario without persistence.
//
// Example:
//
//	sc, _ := scenario.Parse(file)
//	limits, _ := kernel.NewLimits(4, 40, sc.MaxDistance())
//	cmd, _ := NewSimulateCommand(sc, limits, SimulateOptions{})
//	result, err := handler.Handle(ctx, cmd)
type SimulateCommand struct { //nolint:recvcheck //using for validation
	scenario scenario.Scenario
	limits   kernel.Limits
	options  SimulateOptions

	guard guard.ConstructorGuard
}

// NewSimulateCommand creates a simulation request.
func NewSimulateCommand(sc scenario.Scenario, limits kernel.Limits, options SimulateOptions) (SimulateCommand, error) {
	if err := errors.Join(sc.Validate(), limits.Validate()); err != nil {
		return SimulateCommand{}, err
	}

	options.Policies = slices.Clone(options.Policies)
	return SimulateCommand{
		scenario: sc,
		limits:   limits,
		options:  options,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c SimulateCommand) Validate() error {
	return c.guard.Validate(ErrSimulateCommandIsNotConstructed)
}

// Scenario returns the scenario to simulate.
func (c SimulateCommand) Scenario() scenario.Scenario {
	return c.scenario
}

// Limits returns the capacity and autonomy ratio.
func (c SimulateCommand) Limits() kernel.Limits {
	return c.limits
}

// Options returns the planner options.
func (c SimulateCommand) Options() SimulateOptions {
	o := c.options
	o.Policies = slices.Clone(o.Policies)
	return o
}
