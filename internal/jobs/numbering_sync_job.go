package jobs

import (
	"context"
	"fmt"
	"time"

	"workorders/internal/core/domain/model/workorder"
	"workorders/internal/core/ports"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// DefaultNumberingSyncSchedule runs the resync at the top of every hour.
const DefaultNumberingSyncSchedule = "0 0 * * * *"

const numberingSyncTimeout = 30 * time.Second

// NumberingSyncJob periodically realigns the work order numbering counter with the
// numbers already stored, so drift left by manual inserts or restores is repaired before
// a create has to collide with it.
type NumberingSyncJob struct {
	numbering ports.NumberingAuthority
	schedule  string
	cron      *cron.Cron
	logger    *zap.Logger
}

// NewNumberingSyncJob creates the job. schedule is a six-field cron expression (with
// seconds); an empty schedule uses DefaultNumberingSyncSchedule.
func NewNumberingSyncJob(numbering ports.NumberingAuthority, schedule string, logger *zap.Logger) *NumberingSyncJob {
	if schedule == "" {
		schedule = DefaultNumberingSyncSchedule
	}
	return &NumberingSyncJob{
		numbering: numbering,
		schedule:  schedule,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.Named("numbering_sync_job"),
	}
}

// Start schedules the job. An invalid schedule is an error and nothing is started.
func (j *NumberingSyncJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), numberingSyncTimeout)
		defer cancel()

		_ = j.Run(ctx)
	})
	if err != nil {
		return fmt.Errorf("invalid numbering sync schedule %q: %w", j.schedule, err)
	}

	j.cron.Start()
	j.logger.Info("numbering sync job started", zap.String("schedule", j.schedule))
	return nil
}

// Run performs one resync of the work order series.
func (j *NumberingSyncJob) Run(ctx context.Context) error {
	if err := j.numbering.SyncCounter(ctx, workorder.NumberSeries); err != nil {
		j.logger.Error("numbering sync failed", zap.String("series", workorder.NumberSeries), zap.Error(err))
		return err
	}
	j.logger.Debug("numbering counter synchronized", zap.String("series", workorder.NumberSeries))
	return nil
}

// Stop stops scheduling and waits for a running resync to finish.
func (j *NumberingSyncJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("numbering sync job stopped")
}
