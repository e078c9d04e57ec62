// Package runrepo provides data transfer objects and mapping functions for run persistence.
// This package implements the repository pattern for the run aggregate, handling
// the conversion between domain entities and database representations.
package runrepo

import (
	"time"

	"dronedelivery/internal/core/domain/model/kernel"
	"dronedelivery/internal/core/domain/model/run"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// RunDTO represents the database structure for persisting run aggregates.
// Status and creation time are indexed for the processing job and the run listing.
type RunDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	Scenario      string    `gorm:"type:text;not null"`
	Limits        LimitsDTO `gorm:"embedded;embeddedPrefix:limits_"`
	Status        int       `gorm:"index"`
	Score         int
	Delivered     int
	Missing       int
	MoveLines     pq.StringArray `gorm:"type:text[]"`
	FailureReason string         `gorm:"type:text"`
	CreatedAt     time.Time      `gorm:"index"`
	FinishedAt    *time.Time
}

// TableName specifies the database table name for run entities.
func (RunDTO) TableName() string {
	return "runs"
}

// LimitsDTO represents the embedded planner limits of a run.
type LimitsDTO struct {
	MaxCapacity   int `gorm:"type:smallint"`
	AutonomyRatio int
	MaxDistance   int
}

// fromDomain converts a run aggregate to its database representation.
func fromDomain(aggregate *run.Run) RunDTO {
	outcome := aggregate.Outcome()
	limits := aggregate.Limits()

	return RunDTO{
		ID:       aggregate.ID().Google(),
		Scenario: aggregate.ScenarioText(),
		Limits: LimitsDTO{
			MaxCapacity:   limits.MaxCapacity(),
			AutonomyRatio: limits.AutonomyRatio(),
			MaxDistance:   limits.MaxDistance(),
		},
		Status:        int(aggregate.Status()),
		Score:         outcome.Score,
		Delivered:     outcome.Delivered,
		Missing:       outcome.Missing,
		MoveLines:     pq.StringArray(outcome.MoveLines),
		FailureReason: aggregate.FailureReason(),
		CreatedAt:     aggregate.CreatedAt(),
		FinishedAt:    aggregate.FinishedAt(),
	}
}

// toDomain converts a database DTO to a run aggregate using run.Restore.
func toDomain(dto RunDTO) (*run.Run, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}

	limits, err := kernel.NewLimits(dto.Limits.MaxCapacity, dto.Limits.AutonomyRatio, dto.Limits.MaxDistance)
	if err != nil {
		return nil, err
	}

	outcome := run.Outcome{
		Score:     dto.Score,
		Delivered: dto.Delivered,
		Missing:   dto.Missing,
		MoveLines: []string(dto.MoveLines),
	}

	return run.Restore(id, dto.Scenario, limits, run.Status(dto.Status), outcome, dto.FailureReason, dto.CreatedAt, dto.FinishedAt)
}
