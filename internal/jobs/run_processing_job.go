package jobs

import (
	"context"
	"log/slog"

	"dronedelivery/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// EverySecond is the schedule of RunProcessingJob.
const EverySecond = "* * * * * *"

// RunProcessor handles a batch of Queued runs.
type RunProcessor interface {
	Handle(ctx context.Context, cmd commands.ProcessQueuedRunsCommand) error
}

// RunProcessingJob simulates Queued runs on a schedule.
type RunProcessingJob struct {
	handler RunProcessor
	cmd     commands.ProcessQueuedRunsCommand
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewRunProcessingJob creates a job processing at most batchSize runs per tick.
func NewRunProcessingJob(handler RunProcessor, batchSize int, logger *slog.Logger) (*RunProcessingJob, error) {
	cmd, err := commands.NewProcessQueuedRunsCommand(batchSize)
	if err != nil {
		return nil, err
	}

	return &RunProcessingJob{
		handler: handler,
		cmd:     cmd,
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
		),
		logger: logger.With("component", "run_processing_job"),
	}, nil
}

// RunOnce processes one batch. Start schedules it every second.
func (j *RunProcessingJob) RunOnce(ctx context.Context) error {
	if err := j.handler.Handle(ctx, j.cmd); err != nil {
		j.logger.ErrorContext(ctx, "Run processing job failed", "error", err)
		return err
	}
	return nil
}

// Start begins the run processing job.
func (j *RunProcessingJob) Start() error {
	_, err := j.cron.AddFunc(EverySecond, func() {
		_ = j.RunOnce(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Run processing job started (running every second)",
		"batch_size", j.cmd.BatchSize())
	return nil
}

// Stop stops scheduling and waits for a running batch to finish.
func (j *RunProcessingJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Run processing job stopped")
}
