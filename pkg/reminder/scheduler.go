package reminder

import (
	"context"
	"log"

	"github.com/robfig/cron/v3"
)

// Daily at 09:00 server time, matching the reminder check cadence.
const sweepSchedule = "0 9 * * *"

// StartScheduler wires the sweep onto a daily cron trigger. The
// SkipIfStillRunning wrapper guarantees a new sweep never starts while
// the previous one is in flight.
func StartScheduler(service ReminderService) *cron.Cron {
	c := cron.New(cron.WithChain(
		cron.SkipIfStillRunning(cron.DefaultLogger),
		cron.Recover(cron.DefaultLogger),
	))

	_, err := c.AddFunc(sweepSchedule, func() {
		if _, err := service.Sweep(context.Background()); err != nil {
			log.Printf("scheduled reminder sweep failed: %v", err)
		}
	})
	if err != nil {
		log.Fatalf("failed to schedule reminder sweep: %v", err)
	}

	c.Start()
	return c
}
