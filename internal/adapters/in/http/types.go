package http

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

// NewRun is the body of POST /api/v1/runs.
type NewRun struct {
	Scenario      string  `json:"scenario"`
	Profile       *string `json:"profile,omitempty"`
	MaxCapacity   *int    `json:"maxCapacity,omitempty"`
	AutonomyRatio *int    `json:"autonomyRatio,omitempty"`
}

// SimulationRequest is the body of POST /api/v1/simulate.
type SimulationRequest struct {
	NewRun
	Policies     []string `json:"policies,omitempty"`
	SingleTarget bool     `json:"singleTarget,omitempty"`
	RetryMissing bool     `json:"retryMissing,omitempty"`
}

// ListRunsParams holds the query parameters of GET /api/v1/runs.
type ListRunsParams struct {
	Status *string `form:"status,omitempty" json:"status,omitempty"`
	Limit  *int    `form:"limit,omitempty"  json:"limit,omitempty"`
}

type QueuedRun struct {
	Id openapi_types.UUID `json:"id"`
}

type Limits struct {
	MaxCapacity   int `json:"maxCapacity"`
	AutonomyRatio int `json:"autonomyRatio"`
	MaxDistance   int `json:"maxDistance"`
}

type RunSummary struct {
	Id         openapi_types.UUID `json:"id"`
	Status     string             `json:"status"`
	Score      int                `json:"score"`
	Delivered  int                `json:"delivered"`
	Missing    int                `json:"missing"`
	CreatedAt  time.Time          `json:"createdAt"`
	FinishedAt *time.Time         `json:"finishedAt,omitempty"`
}

type Run struct {
	RunSummary
	Scenario      string   `json:"scenario"`
	Limits        Limits   `json:"limits"`
	Moves         []string `json:"moves"`
	FailureReason *string  `json:"failureReason,omitempty"`
}

type Report struct {
	Routes                int     `json:"routes"`
	AverageDistance       float64 `json:"averageDistance"`
	AveragePackets        float64 `json:"averagePackets"`
	CapturedPackets       int     `json:"capturedPackets"`
	AveragePacketDistance float64 `json:"averagePacketDistance"`
	Duplicates            int     `json:"duplicates"`
	ShippingErrors        int     `json:"shippingErrors"`
	Missing               int     `json:"missing"`
}

type Simulation struct {
	Score     int      `json:"score"`
	Delivered int      `json:"delivered"`
	Missing   []string `json:"missing"`
	Moves     []string `json:"moves"`
	Routes    []string `json:"routes"`
	Report    Report   `json:"report"`
}

type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
