package tasks

import (
	"context"
	"fmt"
	"time"
)

// newMonthlyDigestTask creates the scheduled task that posts the birthday
// list for the current month. How often it actually fires is entirely up to
// its configured cron schedule.
func newMonthlyDigestTask(deps TaskDeps) ScheduledTaskFunc {
	log := deps.Logger.With("task", "monthly_digest")

	return func(ctx context.Context) error {
		log.InfoContext(ctx, "Starting scheduled monthly digest task...")
		startTime := time.Now()

		err := deps.Service.SendMonthlyDigest(ctx)

		duration := time.Since(startTime)

		if err != nil {
			log.ErrorContext(ctx, "Monthly digest task failed", "error", err, "duration", duration)
			return fmt.Errorf("monthly digest failed: %w", err)
		}

		log.InfoContext(ctx, "Scheduled monthly digest task completed successfully", "duration", duration)
		return nil
	}
}
