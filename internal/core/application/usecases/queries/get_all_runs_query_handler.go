package queries

import (
	"context"
	"database/sql"

	"dronedelivery/internal/core/domain/model/kernel"
	"dronedelivery/internal/core/domain/model/run"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetAllRunsQueryHandler lists runs from the runs table.
type GetAllRunsQueryHandler struct {
	db *gorm.DB
}

// NewGetAllRunsQueryHandler creates a handler for run listings.
func NewGetAllRunsQueryHandler(db *gorm.DB) GetAllRunsQueryHandler {
	return GetAllRunsQueryHandler{db: db}
}

// Handle returns at most query.Limit() runs ordered by creation time, newest first.
func (h GetAllRunsQueryHandler) Handle(
	ctx context.Context,
	query GetAllRunsQuery,
) ([]GetAllRunsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sqlText := `
		SELECT
			id,
			status,
			score,
			delivered,
			missing,
			created_at,
			finished_at
		FROM runs`
	args := make([]any, 0, 2)
	if status, ok := query.Status(); ok {
		sqlText += ` WHERE status = ?`
		args = append(args, int(status))
	}
	sqlText += ` ORDER BY created_at DESC, id LIMIT ?`
	args = append(args, query.Limit())

	rows, err := h.db.WithContext(ctx).Raw(sqlText, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	runs := make([]GetAllRunsQueryResponse, 0)
	for rows.Next() {
		var (
			resp       GetAllRunsQueryResponse
			id         uuid.UUID
			status     int
			finishedAt sql.NullTime
		)

		err = rows.Scan(
			&id,
			&status,
			&resp.Score,
			&resp.Delivered,
			&resp.Missing,
			&resp.CreatedAt,
			&finishedAt,
		)
		if err != nil {
			return nil, err
		}

		runID, idErr := kernel.UUIDFromGoogle(id)
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = runID
		resp.Status = run.Status(status).String()
		if finishedAt.Valid {
			at := finishedAt.Time
			resp.FinishedAt = &at
		}

		runs = append(runs, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return runs, nil
}
