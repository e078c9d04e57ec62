package run

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"dronedelivery/internal/core/domain/model/kernel"
	"dronedelivery/internal/core/domain/model/scenario"
	"dronedelivery/internal/pkg/errs"
)

var (
	// ErrRunIsNotConstructed is returned when a Run was not created through NewRun or Restore.
	ErrRunIsNotConstructed = errors.New("Run must be created via NewRun constructor")
)

// Outcome is the result of a finished simulation.
type Outcome struct {
	Score     int
	Delivered int
	Missing   int
	MoveLines []string
}

// Run is the aggregate root of one submitted scenario. It keeps the scenario text,
// the limits chosen at submission and, once processed, the outcome or the failure.
//
// Example:
//
//	r, err := run.NewRun(kernel.NewUUID(), input, limits, time.Now())
//	if err != nil {
//	    return err
//	}
//	// later, in the processing job
//	err = r.Complete(run.Outcome{Score: 355, Delivered: 5, MoveLines: lines}, time.Now())
type Run struct {
	id            kernel.UUID
	scenarioText  string
	limits        kernel.Limits
	status        Status
	outcome       Outcome
	failureReason string
	createdAt     time.Time
	finishedAt    *time.Time

	isConstructed bool
}

// NewRun creates a Queued run.
//
// Parameters:
//   - id: unique identifier (must be constructed)
//   - scenarioText: the scenario in the challenge text format (must parse)
//   - limits: capacity and autonomy ratio; the base autonomy comes from the scenario
//   - createdAt: submission time
//
// Returns:
//   - *Run: the Queued run
//   - error: every validation failure, joined
func NewRun(id kernel.UUID, scenarioText string, limits kernel.Limits, createdAt time.Time) (*Run, error) {
	r := &Run{
		status:        Queued,
		createdAt:     createdAt,
		isConstructed: true,
	}

	if err := errors.Join(
		r.setID(id),
		r.setScenarioText(scenarioText),
		r.setLimits(limits),
	); err != nil {
		return nil, err
	}

	return r, nil
}

// Restore rebuilds a run from storage. The outcome is ignored unless the status is
// Completed, and the failure reason unless the status is Failed.
func Restore(
	id kernel.UUID,
	scenarioText string,
	limits kernel.Limits,
	status Status,
	outcome Outcome,
	failureReason string,
	createdAt time.Time,
	finishedAt *time.Time,
) (*Run, error) {
	r, err := NewRun(id, scenarioText, limits, createdAt)
	if err != nil {
		return nil, err
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}
	if outcome.Score < 0 {
		return nil, errs.NewValueIsOutOfRangeError("score", outcome.Score, 0, math.MaxInt)
	}

	r.status = status
	switch status {
	case Completed:
		r.outcome = cloneOutcome(outcome)
	case Failed:
		r.failureReason = failureReason
	}
	if status.IsFinal() && finishedAt != nil {
		at := *finishedAt
		r.finishedAt = &at
	}
	return r, nil
}

// Validate ensures the run was created through NewRun or Restore.
func (r *Run) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRunIsNotConstructed
	}
	return nil
}

// IsEqual compares runs by identity.
func (r *Run) IsEqual(other *Run) bool {
	return other != nil && r.id.IsEqual(other.id)
}

// ID returns the run identifier.
func (r *Run) ID() kernel.UUID {
	return r.id
}

// ScenarioText returns the submitted scenario.
func (r *Run) ScenarioText() string {
	return r.scenarioText
}

// Scenario parses the submitted scenario.
func (r *Run) Scenario() (scenario.Scenario, error) {
	return scenario.ParseString(r.scenarioText)
}

// Limits returns the limits chosen at submission.
func (r *Run) Limits() kernel.Limits {
	return r.limits
}

// Status returns the lifecycle state.
func (r *Run) Status() Status {
	return r.status
}

// Outcome returns the simulation result. It is the zero Outcome unless the run is Completed.
func (r *Run) Outcome() Outcome {
	return cloneOutcome(r.outcome)
}

// FailureReason returns why a Failed run stopped.
func (r *Run) FailureReason() string {
	return r.failureReason
}

// CreatedAt returns the submission time.
func (r *Run) CreatedAt() time.Time {
	return r.createdAt
}

// FinishedAt returns when the run reached a final status, or nil.
func (r *Run) FinishedAt() *time.Time {
	if r.finishedAt == nil {
		return nil
	}
	at := *r.finishedAt
	return &at
}

// Complete records the outcome and moves the run to Completed.
func (r *Run) Complete(outcome Outcome, at time.Time) error {
	if outcome.Score < 0 {
		return errs.NewValueIsOutOfRangeError("score", outcome.Score, 0, math.MaxInt)
	}
	if outcome.Delivered < 0 || outcome.Missing < 0 {
		return errs.NewValueIsInvalidErrorWithCause("outcome is invalid",
			fmt.Errorf("delivered %d and missing %d must not be negative", outcome.Delivered, outcome.Missing))
	}

	newStatus, err := r.status.Complete()
	if err != nil {
		return err
	}

	r.status = newStatus
	r.outcome = cloneOutcome(outcome)
	r.finishedAt = &at
	return nil
}

// Fail records the reason and moves the run to Failed.
func (r *Run) Fail(reason string, at time.Time) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return errs.NewValueIsRequiredError("reason")
	}

	newStatus, err := r.status.Fail()
	if err != nil {
		return err
	}

	r.status = newStatus
	r.failureReason = reason
	r.finishedAt = &at
	return nil
}

func (r *Run) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *Run) setScenarioText(text string) error {
	if strings.TrimSpace(text) == "" {
		return errs.NewValueIsRequiredError("scenario")
	}
	if _, err := scenario.ParseString(text); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("scenario", err)
	}
	r.scenarioText = text
	return nil
}

func (r *Run) setLimits(limits kernel.Limits) error {
	if err := limits.Validate(); err != nil {
		return err
	}
	r.limits = limits
	return nil
}

func cloneOutcome(o Outcome) Outcome {
	o.MoveLines = slices.Clone(o.MoveLines)
	return o
}
