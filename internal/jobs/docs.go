// Package jobs provides the scheduled background tasks of the intake console.
//
// Jobs are cron-based, built on github.com/robfig/cron/v3, and managed
// through JobManager which provides a unified start/stop interface:
//
//	jobManager := jobs.NewJobManager(catalog, refreshSpec, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Available Jobs
//
// 1. CatalogRefreshJob - periodically re-fetches the service-type catalog so
// long-lived sessions see matrix changes without a restart. A failed refresh
// keeps the last good catalog and is logged, never escalated.
package jobs
