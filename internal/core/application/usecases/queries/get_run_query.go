package queries

import (
	"errors"
	"time"

	"dronedelivery/internal/core/domain/model/kernel"
	"dronedelivery/internal/pkg/guard"
)

var (
	ErrGetRunQueryIsNotConstructed = errors.New(
		"GetRunQuery must be created via NewGetRunQuery constructor",
	)
)

// GetRunQuery retrieves one simulation run with its outcome and move log.
//
// Example:
//
//	query, err := NewGetRunQuery(runID)
//	if err != nil {
//	    return err
//	}
//
//	view, err := NewGetRunQueryHandler(db).Handle(ctx, query)
//	if errors.Is(err, errs.ErrObjectNotFound) {
//	    // unknown run
//	}
type GetRunQuery struct {
	runID kernel.UUID
	guard guard.ConstructorGuard
}

// NewGetRunQuery creates a query for the run with the given identifier.
func NewGetRunQuery(runID kernel.UUID) (GetRunQuery, error) {
	if err := runID.Validate(); err != nil {
		return GetRunQuery{}, err
	}

	return GetRunQuery{
		runID: runID,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetRunQuery) Validate() error {
	return q.guard.Validate(ErrGetRunQueryIsNotConstructed)
}

// RunID returns the requested run identifier.
func (q GetRunQuery) RunID() kernel.UUID {
	return q.runID
}

// RunLimitsResponse mirrors the planner limits a run was submitted with.
type RunLimitsResponse struct {
	MaxCapacity   int
	AutonomyRatio int
	MaxDistance   int
}

// GetRunQueryResponse is the full read model of a run.
// MoveLines is empty until the run is Completed.
type GetRunQueryResponse struct {
	ID            kernel.UUID
	Status        string
	Scenario      string
	Limits        RunLimitsResponse
	Score         int
	Delivered     int
	Missing       int
	MoveLines     []string
	FailureReason string
	CreatedAt     time.Time
	FinishedAt    *time.Time
}
