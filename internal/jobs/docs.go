// Package jobs provides scheduled background tasks for the drone delivery service.
//
// Jobs use github.com/robfig/cron/v3 with a seconds field. RunProcessingJob picks
// up Queued runs every second, simulates them and stores their outcome. A tick is
// skipped while the previous one is still running.
//
// Jobs are managed through JobManager:
//
//	jobManager, err := jobs.NewJobManager(processHandler, 10, logger)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
package jobs
