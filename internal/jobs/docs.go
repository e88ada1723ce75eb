// Package jobs provides scheduled background tasks for the print shop.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// OutboxRelayJob publishes the order-changed messages that units of work
// store in the outbox table, through the configured ports.EventPublisher.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(relayHandler, "@every 1s", logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed run is logged and leaves its messages pending; the next run
// retries them, so delivery is at least once.
package jobs
