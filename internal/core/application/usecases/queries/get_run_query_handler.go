package queries

import (
	"context"
	"database/sql"
	"errors"

	"dronedelivery/internal/core/domain/model/kernel"
	"dronedelivery/internal/core/domain/model/run"
	"dronedelivery/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// GetRunQueryHandler reads a single run straight from the runs table.
type GetRunQueryHandler struct {
	db *gorm.DB
}

// NewGetRunQueryHandler creates a handler for run lookups.
func NewGetRunQueryHandler(db *gorm.DB) GetRunQueryHandler {
	return GetRunQueryHandler{db: db}
}

// Handle returns the run or an ObjectNotFoundError for an unknown identifier.
func (h GetRunQueryHandler) Handle(ctx context.Context, query GetRunQuery) (GetRunQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetRunQueryResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			status,
			scenario,
			limits_max_capacity,
			limits_autonomy_ratio,
			limits_max_distance,
			score,
			delivered,
			missing,
			move_lines,
			failure_reason,
			created_at,
			finished_at
		FROM runs
		WHERE id = ?
	`, query.RunID().Google()).Row()

	var (
		resp       GetRunQueryResponse
		id         uuid.UUID
		status     int
		moveLines  pq.StringArray
		finishedAt sql.NullTime
	)

	err := row.Scan(
		&id,
		&status,
		&resp.Scenario,
		&resp.Limits.MaxCapacity,
		&resp.Limits.AutonomyRatio,
		&resp.Limits.MaxDistance,
		&resp.Score,
		&resp.Delivered,
		&resp.Missing,
		&moveLines,
		&resp.FailureReason,
		&resp.CreatedAt,
		&finishedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetRunQueryResponse{}, errs.NewObjectNotFoundError("runId", query.RunID().String())
	}
	if err != nil {
		return GetRunQueryResponse{}, err
	}

	runID, err := kernel.UUIDFromGoogle(id)
	if err != nil {
		return GetRunQueryResponse{}, err
	}
	resp.ID = runID
	resp.Status = run.Status(status).String()
	resp.MoveLines = []string(moveLines)
	if resp.MoveLines == nil {
		resp.MoveLines = make([]string, 0)
	}
	if finishedAt.Valid {
		at := finishedAt.Time
		resp.FinishedAt = &at
	}

	return resp, nil
}
