// Package jobs provides scheduled background tasks for the work order service.
//
// Jobs are built on github.com/robfig/cron/v3 with second-level schedules.
//
// # Available Jobs
//
// NumberingSyncJob resynchronizes the WORK_ORDER numbering counter with the highest
// number already stored. The counter never moves backwards, so the job is safe to run
// at any time alongside live traffic.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(numbering, jobs.Config{NumberingSyncSchedule: "0 */15 * * * *"}, logger)
//	if err := jobManager.StartAll(); err != nil {
//	    return err
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed run is logged and retried at the next tick. A job that cannot be scheduled
// makes StartAll fail and stops the jobs started before it.
package jobs
