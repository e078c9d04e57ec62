// Package ports defines the contracts between the application core and its adapters:
// persistence of runs, transaction control, move log export and run metrics.
package ports

import (
	"context"

	"dronedelivery/internal/core/domain/model/kernel"
	"dronedelivery/internal/core/domain/model/run"
)

// RunRepository defines the persistence contract for run aggregates.
type RunRepository interface {
	// Add persists a new run aggregate to storage.
	// The run must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *run.Run) error

	// Update persists changes to an existing run aggregate.
	// Returns an error when the run does not exist.
	Update(ctx context.Context, aggregate *run.Run) error

	// Get retrieves a run aggregate by its unique identifier.
	// Returns errs.ObjectNotFoundError when no run has that identifier.
	Get(ctx context.Context, id kernel.UUID) (*run.Run, error)

	// GetQueued retrieves at most limit Queued runs, oldest first.
	GetQueued(ctx context.Context, limit int) ([]*run.Run, error)
}
