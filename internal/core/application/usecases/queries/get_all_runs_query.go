package queries

import (
	"errors"
	"strings"
	"time"

	"dronedelivery/internal/core/domain/model/kernel"
	"dronedelivery/internal/core/domain/model/run"
	"dronedelivery/internal/pkg/errs"
	"dronedelivery/internal/pkg/guard"
)

const (
	DefaultRunsLimit = 50
	MaxRunsLimit     = 500
)

var (
	ErrGetAllRunsQueryIsNotConstructed = errors.New(
		"GetAllRunsQuery must be created via NewGetAllRunsQuery constructor",
	)
)

// GetAllRunsQuery lists runs newest first, optionally filtered by status.
//
// An empty status lists every run. A zero limit falls back to DefaultRunsLimit.
//
// Example:
//
//	query, err := NewGetAllRunsQuery("Completed", 20)
//	if err != nil {
//	    return err
//	}
//
//	runs, err := NewGetAllRunsQueryHandler(db).Handle(ctx, query)
type GetAllRunsQuery struct {
	status    run.Status
	hasStatus bool
	limit     int
	guard     guard.ConstructorGuard
}

// NewGetAllRunsQuery validates the status name and the page size.
func NewGetAllRunsQuery(status string, limit int) (GetAllRunsQuery, error) {
	q := GetAllRunsQuery{limit: limit}

	if limit == 0 {
		q.limit = DefaultRunsLimit
	}
	if q.limit < 1 || q.limit > MaxRunsLimit {
		return GetAllRunsQuery{}, errs.NewValueIsOutOfRangeError("limit", limit, 1, MaxRunsLimit)
	}

	if status = strings.TrimSpace(status); status != "" {
		parsed, err := run.ParseStatus(status)
		if err != nil {
			return GetAllRunsQuery{}, err
		}
		q.status = parsed
		q.hasStatus = true
	}

	q.guard = guard.NewConstructorGuard()
	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q GetAllRunsQuery) Validate() error {
	return q.guard.Validate(ErrGetAllRunsQueryIsNotConstructed)
}

// Status returns the status filter and whether one was set.
func (q GetAllRunsQuery) Status() (run.Status, bool) {
	return q.status, q.hasStatus
}

// Limit returns the maximum number of runs to return.
func (q GetAllRunsQuery) Limit() int {
	return q.limit
}

// GetAllRunsQueryResponse is the summary row of a run listing.
type GetAllRunsQueryResponse struct {
	ID         kernel.UUID
	Status     string
	Score      int
	Delivered  int
	Missing    int
	CreatedAt  time.Time
	FinishedAt *time.Time
}
