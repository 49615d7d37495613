// Package jobs provides scheduled background tasks for the order lifecycle
// service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations.
//
// # Available Jobs
//
// 1. AutoAcceptJob - Runs every second to move pending orders of opted-in
// restaurants to preparing
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(acceptPendingOrdersHandler, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// The auto-accept job ignores ErrNoPendingOrders (an empty queue is normal)
// and logs everything else.
package jobs
