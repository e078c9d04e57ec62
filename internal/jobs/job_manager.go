package jobs

import (
	"fmt"
	"log/slog"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	runProcessingJob *RunProcessingJob
}

// NewJobManager creates a job manager with all required jobs.
func NewJobManager(processor RunProcessor, batchSize int, logger *slog.Logger) (*JobManager, error) {
	runProcessingJob, err := NewRunProcessingJob(processor, batchSize, logger)
	if err != nil {
		return nil, err
	}

	return &JobManager{runProcessingJob: runProcessingJob}, nil
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.runProcessingJob.Start(); err != nil {
		return fmt.Errorf("failed to start run processing job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.runProcessingJob.Stop()
}
