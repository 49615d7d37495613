package jobs

import (
	"context"
	"errors"
	"log/slog"

	"munchies/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// AutoAcceptJob manages the scheduled auto-accept sweep.
// Runs every second so opted-in restaurants see orders jump to preparing
// almost immediately after placement.
type AutoAcceptJob struct {
	handler commands.AcceptPendingOrdersCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewAutoAcceptJob creates a new job for the auto-accept sweep.
// Uses AcceptPendingOrdersCommandHandler to process eligible pending orders.
func NewAutoAcceptJob(handler commands.AcceptPendingOrdersCommandHandler, logger *slog.Logger) *AutoAcceptJob {
	return &AutoAcceptJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "auto_accept_job"),
	}
}

// Start begins the auto-accept job to run every second.
func (j *AutoAcceptJob) Start() error {
	_, err := j.cron.AddFunc("* * * * * *", func() {
		ctx := context.Background()
		cmd := commands.NewAcceptPendingOrdersCommand()

		if err := j.handler.Handle(ctx, cmd); err != nil {
			// An empty pending queue is the normal case, not a failure.
			if !errors.Is(err, commands.ErrNoPendingOrders) {
				j.logger.ErrorContext(ctx, "Auto-accept job failed", "error", err)
			}
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Auto-accept job started (running every second)")
	return nil
}

// Stop stops the auto-accept job.
func (j *AutoAcceptJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Auto-accept job stopped")
}
