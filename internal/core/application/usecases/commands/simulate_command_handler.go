package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"dronedelivery/internal/core/domain/model/grid"
	"dronedelivery/internal/core/domain/model/kernel"
	"dronedelivery/internal/core/domain/services"
	"dronedelivery/internal/core/ports"
)

// SimulateResult is the outcome of a simulation.
type SimulateResult struct {
	Score       int
	Delivered   int
	Missing     []kernel.Position
	MoveLines   []string
	Routes      []string
	Report      services.Report
	MoveLogPath string
}

// SimulateCommandHandler plans routes, plays the simulation and optionally exports
// the move log.
type SimulateCommandHandler struct {
	writer ports.MoveLogWriter
	logger *slog.Logger
}

// NewSimulateCommandHandler creates the handler. writer may be nil when the move log
// is not exported; logger may be nil to discard planning traces.
func NewSimulateCommandHandler(writer ports.MoveLogWriter, logger *slog.Logger) SimulateCommandHandler {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return SimulateCommandHandler{
		writer: writer,
		logger: logger,
	}
}

// Handle runs the whole pipeline: build the delivery, map routes, optionally retry
// missing packets, simulate, score and export.
func (h *SimulateCommandHandler) Handle(ctx context.Context, cmd SimulateCommand) (SimulateResult, error) {
	if err := cmd.Validate(); err != nil {
		return SimulateResult{}, err
	}
	if err := ctx.Err(); err != nil {
		return SimulateResult{}, err
	}

	options := cmd.Options()
	delivery, err := services.NewDelivery(cmd.Scenario(), cmd.Limits(),
		services.WithLogger(h.logger),
		services.WithPolicies(options.Policies...),
		services.WithBubbleRoutes(!options.SingleTarget),
	)
	if err != nil {
		return SimulateResult{}, err
	}

	missing := delivery.MapRoutes(ctx)
	if options.RetryMissing && len(missing) > 0 {
		missing = delivery.RetryMissing(ctx)
	}

	if err = ctx.Err(); err != nil {
		return SimulateResult{}, err
	}
	if err = delivery.Start(ctx); err != nil {
		return SimulateResult{}, err
	}

	result := SimulateResult{
		Score:     delivery.Score(),
		Delivered: delivery.Grid().Count(grid.Delivered),
		Missing:   missing,
		MoveLines: delivery.MoveLines(),
		Report:    delivery.Report(),
	}
	for _, r := range delivery.Routes() {
		result.Routes = append(result.Routes, r.String())
	}

	if h.writer != nil {
		path, err := h.writer.Write(ctx, result.Score, result.MoveLines)
		if err != nil {
			return SimulateResult{}, fmt.Errorf("writing move log: %w", err)
		}
		result.MoveLogPath = path
	}

	return result, nil
}
