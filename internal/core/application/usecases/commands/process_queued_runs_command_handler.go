package commands

import (
	"context"
	"io"
	"log/slog"
	"time"

	"dronedelivery/internal/core/domain/model/run"
	"dronedelivery/internal/core/ports"
)

// Simulator runs a SimulateCommand. SimulateCommandHandler is the production implementation.
type Simulator interface {
	Handle(ctx context.Context, cmd SimulateCommand) (SimulateResult, error)
}

// ProcessQueuedRunsCommandHandler takes Queued runs, simulates each one and stores
// the outcome. A run whose simulation fails is marked Failed; the batch goes on.
// All updates of one invocation are committed together.
type ProcessQueuedRunsCommandHandler struct {
	uowFactory RunUoWFactory
	simulator  Simulator
	metrics    ports.RunMetrics
	logger     *slog.Logger
	now        func() time.Time
}

// NewProcessQueuedRunsCommandHandler creates the handler. metrics and logger may be nil.
func NewProcessQueuedRunsCommandHandler(
	uowFactory RunUoWFactory,
	simulator Simulator,
	metrics ports.RunMetrics,
	logger *slog.Logger,
) ProcessQueuedRunsCommandHandler {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return ProcessQueuedRunsCommandHandler{
		uowFactory: uowFactory,
		simulator:  simulator,
		metrics:    metrics,
		logger:     logger,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

type observation struct {
	status  run.Status
	outcome run.Outcome
	elapsed time.Duration
}

// Handle processes one batch of Queued runs.
func (h *ProcessQueuedRunsCommandHandler) Handle(ctx context.Context, cmd ProcessQueuedRunsCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	runRepo := uow.RunRepository()
	runs, err := runRepo.GetQueued(ctx, cmd.BatchSize())
	if err != nil {
		return err
	}

	observations := make([]observation, 0, len(runs))
	for _, aggregate := range runs {
		if err = ctx.Err(); err != nil {
			return err
		}

		started := time.Now()
		if err = h.process(ctx, aggregate); err != nil {
			return err
		}
		if err = runRepo.Update(ctx, aggregate); err != nil {
			return err
		}
		observations = append(observations, observation{
			status:  aggregate.Status(),
			outcome: aggregate.Outcome(),
			elapsed: time.Since(started),
		})
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if h.metrics != nil {
		for _, o := range observations {
			h.metrics.ObserveRun(o.status.String(), o.outcome.Score, o.outcome.Delivered, o.outcome.Missing, o.elapsed)
		}
	}
	return nil
}

func (h *ProcessQueuedRunsCommandHandler) process(ctx context.Context, aggregate *run.Run) error {
	logger := h.logger.With("runId", aggregate.ID().String())

	result, err := h.simulate(ctx, aggregate)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		logger.WarnContext(ctx, "run failed", "error", err)
		return aggregate.Fail(err.Error(), h.now())
	}

	logger.InfoContext(ctx, "run completed", "score", result.Score, "delivered", result.Delivered, "missing", len(result.Missing))
	return aggregate.Complete(run.Outcome{
		Score:     result.Score,
		Delivered: result.Delivered,
		Missing:   len(result.Missing),
		MoveLines: result.MoveLines,
	}, h.now())
}

func (h *ProcessQueuedRunsCommandHandler) simulate(ctx context.Context, aggregate *run.Run) (SimulateResult, error) {
	sc, err := aggregate.Scenario()
	if err != nil {
		return SimulateResult{}, err
	}
	cmd, err := NewSimulateCommand(sc, aggregate.Limits(), SimulateOptions{})
	if err != nil {
		return SimulateResult{}, err
	}
	return h.simulator.Handle(ctx, cmd)
}
