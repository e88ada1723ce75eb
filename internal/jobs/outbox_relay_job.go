package jobs

import (
	"context"
	"log/slog"

	"printshop/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DefaultRelaySchedule runs the relay every second.
const DefaultRelaySchedule = "@every 1s"

type outboxRelayHandler interface {
	Handle(ctx context.Context, cmd commands.RelayOutboxCommand) (int, error)
}

// OutboxRelayJob periodically publishes the order-changed messages written
// by committed units of work. Runs never overlap.
type OutboxRelayJob struct {
	handler   outboxRelayHandler
	schedule  string
	batchSize int
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewOutboxRelayJob creates the relay job. An empty schedule falls back to
// DefaultRelaySchedule; six-field cron expressions are accepted.
func NewOutboxRelayJob(handler outboxRelayHandler, schedule string, logger *slog.Logger) *OutboxRelayJob {
	if schedule == "" {
		schedule = DefaultRelaySchedule
	}
	return &OutboxRelayJob{
		handler:   handler,
		schedule:  schedule,
		batchSize: commands.DefaultRelayBatchSize,
		cron:      cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:    logger.With("component", "outbox_relay_job"),
	}
}

// Start schedules the job.
func (j *OutboxRelayJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() {
		j.RunOnce(context.Background())
	}); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Outbox relay job started", "schedule", j.schedule)
	return nil
}

// RunOnce publishes one batch. Errors are logged; the messages stay pending
// and are picked up by the next run.
func (j *OutboxRelayJob) RunOnce(ctx context.Context) int {
	cmd, err := commands.NewRelayOutboxCommand(j.batchSize)
	if err != nil {
		j.logger.ErrorContext(ctx, "Outbox relay job misconfigured", "error", err)
		return 0
	}

	n, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Outbox relay job failed", "error", err)
		return 0
	}
	if n > 0 {
		j.logger.DebugContext(ctx, "Outbox messages published", "count", n)
	}
	return n
}

// Stop stops scheduling and waits for a running relay to finish.
func (j *OutboxRelayJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Outbox relay job stopped")
}
