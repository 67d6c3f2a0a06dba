package jobs

import (
	"fmt"

	"workorders/internal/core/ports"

	"go.uber.org/zap"
)

// Job is a scheduled background task.
type Job interface {
	Start() error
	Stop()
}

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	jobs []Job
}

// Config selects the schedules of the managed jobs.
type Config struct {
	NumberingSyncSchedule string
}

// NewJobManager creates a job manager with every job of the service.
func NewJobManager(numbering ports.NumberingAuthority, cfg Config, logger *zap.Logger) *JobManager {
	return NewJobManagerWith(NewNumberingSyncJob(numbering, cfg.NumberingSyncSchedule, logger))
}

// NewJobManagerWith creates a job manager over the given jobs, started in order.
func NewJobManagerWith(jobs ...Job) *JobManager {
	return &JobManager{jobs: jobs}
}

// StartAll starts all scheduled jobs. When one fails to start, the jobs already running
// are stopped and the error is returned.
func (jm *JobManager) StartAll() error {
	for i, job := range jm.jobs {
		if err := job.Start(); err != nil {
			for _, started := range jm.jobs[:i] {
				started.Stop()
			}
			return fmt.Errorf("failed to start job %d: %w", i, err)
		}
	}
	return nil
}

// StopAll stops all scheduled jobs, last started first.
func (jm *JobManager) StopAll() {
	for i := len(jm.jobs) - 1; i >= 0; i-- {
		jm.jobs[i].Stop()
	}
}
