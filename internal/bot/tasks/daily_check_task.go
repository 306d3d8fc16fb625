package tasks

import (
	"context"
	"fmt"
	"time"
)

// newDailyCheckTask creates the scheduled task that greets everyone whose
// birthday is today.
func newDailyCheckTask(deps TaskDeps) ScheduledTaskFunc {
	log := deps.Logger.With("task", "daily_check")

	return func(ctx context.Context) error {
		log.InfoContext(ctx, "Starting scheduled daily birthday check...")
		startTime := time.Now()

		err := deps.Service.CheckDaily(ctx)

		duration := time.Since(startTime)

		if err != nil {
			log.ErrorContext(ctx, "Daily birthday check failed", "error", err, "duration", duration)
			return fmt.Errorf("daily birthday check failed: %w", err)
		}

		log.InfoContext(ctx, "Scheduled daily birthday check completed successfully", "duration", duration)
		return nil
	}
}
