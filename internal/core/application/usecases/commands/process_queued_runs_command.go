package commands

import (
	"errors"
	"math"

	"dronedelivery/internal/pkg/errs"
	"dronedelivery/internal/pkg/guard"
)

var (
	ErrProcessQueuedRunsCommandIsNotConstructed = errors.New(
		"ProcessQueuedRunsCommand must be created via NewProcessQueuedRunsCommand constructor",
	)
)

// ProcessQueuedRunsCommand simulates up to batchSize Queued runs.
//
// Example:
//
//	cmd, _ := NewProcessQueuedRunsCommand(10)
//	handler := NewProcessQueuedRunsCommandHandler(uowFactory, simulator, metrics, logger)
//
//	// Run periodically from the processing job
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    logger.ErrorContext(ctx, "processing failed", "error", err)
//	}
type ProcessQueuedRunsCommand struct {
	batchSize int

	guard guard.ConstructorGuard
}

// NewProcessQueuedRunsCommand creates the command. batchSize must be at least 1.
func NewProcessQueuedRunsCommand(batchSize int) (ProcessQueuedRunsCommand, error) {
	if batchSize < 1 {
		return ProcessQueuedRunsCommand{}, errs.NewValueIsOutOfRangeError("batchSize", batchSize, 1, math.MaxInt)
	}
	return ProcessQueuedRunsCommand{
		batchSize: batchSize,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c *ProcessQueuedRunsCommand) Validate() error {
	return c.guard.Validate(ErrProcessQueuedRunsCommandIsNotConstructed)
}

// BatchSize returns the maximum number of runs processed by one invocation.
func (c *ProcessQueuedRunsCommand) BatchSize() int {
	return c.batchSize
}
