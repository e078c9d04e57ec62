package http

import (
	"context"
	"errors"
	"net/http"

	"dronedelivery/internal/core/application/usecases/commands"
	"dronedelivery/internal/core/application/usecases/queries"
	"dronedelivery/internal/core/domain/model/kernel"
	"dronedelivery/internal/core/domain/model/scenario"
	"dronedelivery/internal/core/domain/services/pathfinding"
	"dronedelivery/internal/pkg/errs"
	"dronedelivery/internal/pkg/tuning"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

type (
	QueueRunHandler interface {
		Handle(ctx context.Context, cmd commands.QueueRunCommand) error
	}
	SimulateHandler interface {
		Handle(ctx context.Context, cmd commands.SimulateCommand) (commands.SimulateResult, error)
	}
	GetRunHandler interface {
		Handle(ctx context.Context, query queries.GetRunQuery) (queries.GetRunQueryResponse, error)
	}
	ListRunsHandler interface {
		Handle(ctx context.Context, query queries.GetAllRunsQuery) ([]queries.GetAllRunsQueryResponse, error)
	}
)

// Server implements the ServerInterface for handling HTTP requests.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	queueRunHandler QueueRunHandler
	simulateHandler SimulateHandler

	// Query handlers
	getRunHandler   GetRunHandler
	listRunsHandler ListRunsHandler

	profiles tuning.Profiles
}

// NewServer creates a new HTTP server with the required command and query handlers.
// Request limits start from profiles and are overridden by explicit body fields.
func NewServer(
	queueRunHandler QueueRunHandler,
	simulateHandler SimulateHandler,
	getRunHandler GetRunHandler,
	listRunsHandler ListRunsHandler,
	profiles tuning.Profiles,
) *Server {
	return &Server{
		queueRunHandler: queueRunHandler,
		simulateHandler: simulateHandler,
		getRunHandler:   getRunHandler,
		listRunsHandler: listRunsHandler,
		profiles:        profiles,
	}
}

// QueueRun handles POST /api/v1/runs - stores a scenario for background simulation.
func (s *Server) QueueRun(ctx echo.Context) error {
	var body NewRun
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	limits, err := s.limits(body)
	if err != nil {
		return badRequest(ctx, "Invalid limits: "+err.Error())
	}

	cmd, err := commands.NewQueueRunCommand(kernel.NewUUID(), body.Scenario, limits)
	if err != nil {
		return badRequest(ctx, "Invalid run: "+err.Error())
	}

	if err = s.queueRunHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		if isValidationError(err) {
			return badRequest(ctx, "Invalid scenario: "+err.Error())
		}
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to queue run",
		})
	}

	return ctx.JSON(http.StatusAccepted, QueuedRun{Id: cmd.RunID().Google()})
}

// ListRuns handles GET /api/v1/runs - lists run summaries, newest first.
func (s *Server) ListRuns(ctx echo.Context, params ListRunsParams) error {
	status, limit := "", 0
	if params.Status != nil {
		status = *params.Status
	}
	if params.Limit != nil {
		limit = *params.Limit
	}

	query, err := queries.NewGetAllRunsQuery(status, limit)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	runs, err := s.listRunsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve runs",
		})
	}

	response := make([]RunSummary, len(runs))
	for i, r := range runs {
		response[i] = RunSummary{
			Id:         r.ID.Google(),
			Status:     r.Status,
			Score:      r.Score,
			Delivered:  r.Delivered,
			Missing:    r.Missing,
			CreatedAt:  r.CreatedAt,
			FinishedAt: r.FinishedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetRun handles GET /api/v1/runs/{runId} - returns one run with its move log.
func (s *Server) GetRun(ctx echo.Context, runId openapi_types.UUID) error {
	id, err := kernel.UUIDFromGoogle(runId)
	if err != nil {
		return badRequest(ctx, "Invalid run id")
	}

	query, err := queries.NewGetRunQuery(id)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	r, err := s.getRunHandler.Handle(ctx.Request().Context(), query)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ctx.JSON(http.StatusNotFound, Error{
			Code:    http.StatusNotFound,
			Message: "Run not found",
		})
	}
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve run",
		})
	}

	response := Run{
		RunSummary: RunSummary{
			Id:         r.ID.Google(),
			Status:     r.Status,
			Score:      r.Score,
			Delivered:  r.Delivered,
			Missing:    r.Missing,
			CreatedAt:  r.CreatedAt,
			FinishedAt: r.FinishedAt,
		},
		Scenario: r.Scenario,
		Limits: Limits{
			MaxCapacity:   r.Limits.MaxCapacity,
			AutonomyRatio: r.Limits.AutonomyRatio,
			MaxDistance:   r.Limits.MaxDistance,
		},
		Moves: r.MoveLines,
	}
	if r.FailureReason != "" {
		reason := r.FailureReason
		response.FailureReason = &reason
	}

	return ctx.JSON(http.StatusOK, response)
}

// Simulate handles POST /api/v1/simulate - plans and plays a scenario in the request.
func (s *Server) Simulate(ctx echo.Context) error {
	var body SimulationRequest
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	sc, err := scenario.ParseString(body.Scenario)
	if err != nil {
		return badRequest(ctx, "Invalid scenario: "+err.Error())
	}

	limits, err := s.limits(body.NewRun)
	if err != nil {
		return badRequest(ctx, "Invalid limits: "+err.Error())
	}

	options := commands.SimulateOptions{
		SingleTarget: body.SingleTarget,
		RetryMissing: body.RetryMissing,
	}
	for _, text := range body.Policies {
		policy, parseErr := pathfinding.ParsePolicy(text)
		if parseErr != nil {
			return badRequest(ctx, "Invalid policy: "+parseErr.Error())
		}
		options.Policies = append(options.Policies, policy)
	}

	cmd, err := commands.NewSimulateCommand(sc, limits, options)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	result, err := s.simulateHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to simulate scenario",
		})
	}

	missing := make([]string, len(result.Missing))
	for i, p := range result.Missing {
		missing[i] = p.String()
	}
	routes := append(make([]string, 0, len(result.Routes)), result.Routes...)
	moves := append(make([]string, 0, len(result.MoveLines)), result.MoveLines...)

	return ctx.JSON(http.StatusOK, Simulation{
		Score:     result.Score,
		Delivered: result.Delivered,
		Missing:   missing,
		Moves:     moves,
		Routes:    routes,
		Report: Report{
			Routes:                result.Report.Routes,
			AverageDistance:       result.Report.AverageDistance,
			AveragePackets:        result.Report.AveragePackets,
			CapturedPackets:       result.Report.CapturedPackets,
			AveragePacketDistance: result.Report.AveragePacketDistance,
			Duplicates:            len(result.Report.Duplicates),
			ShippingErrors:        len(result.Report.ShippingErrors),
			Missing:               result.Report.Missing,
		},
	})
}

// limits resolves the profile named in the request and applies its overrides.
// The base distance stays zero; every scenario brings its own.
func (s *Server) limits(body NewRun) (kernel.Limits, error) {
	name := ""
	if body.Profile != nil {
		name = *body.Profile
	}

	profile, err := s.profiles.Lookup(name)
	if err != nil {
		return kernel.Limits{}, err
	}
	if body.MaxCapacity != nil {
		profile.MaxCapacity = *body.MaxCapacity
	}
	if body.AutonomyRatio != nil {
		profile.AutonomyRatio = *body.AutonomyRatio
	}

	return profile.Limits()
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

func isValidationError(err error) bool {
	return errors.Is(err, errs.ErrValueIsRequired) ||
		errors.Is(err, errs.ErrValueIsInvalid) ||
		errors.Is(err, errs.ErrValueIsOutOfRange)
}
