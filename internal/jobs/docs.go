// Package jobs provides scheduled background tasks for the logistics service.
//
// Jobs use github.com/robfig/cron/v3 with second-resolution schedules.
//
// # Available Jobs
//
// 1. AvailabilityAuditJob - compares every driver's availability flag with the
// parcels it holds in flight, logs each mismatch and exports the count as a
// gauge. It only reports; repairs are an admin decision.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(driftHandler, "0 * * * * *", m, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed run is logged and counted; the schedule keeps running. A failed
// start stops any job already started.
package jobs
