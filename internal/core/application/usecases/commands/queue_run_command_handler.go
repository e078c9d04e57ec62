package commands

import (
	"context"
	"time"

	"dronedelivery/internal/core/domain/model/run"
)

// QueueRunCommandHandler stores a new Queued run.
type QueueRunCommandHandler struct {
	uowFactory RunUoWFactory
	now        func() time.Time
}

// NewQueueRunCommandHandler creates a handler for run submission.
// Requires a RunUoWFactory for transactional persistence.
func NewQueueRunCommandHandler(uowFactory RunUoWFactory) QueueRunCommandHandler {
	return QueueRunCommandHandler{
		uowFactory: uowFactory,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Handle validates the scenario through the Run aggregate and persists it as Queued.
func (h *QueueRunCommandHandler) Handle(ctx context.Context, cmd QueueRunCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	aggregate, err := run.NewRun(cmd.RunID(), cmd.Scenario(), cmd.Limits(), h.now())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.RunRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
