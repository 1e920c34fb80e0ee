package jobs

import (
	"context"
	"log/slog"
	"time"

	"social-service/internal/service"
)

// NotificationCleanup periodically purges read notifications past the
// retention window. It is the scheduled-job collaborator from the design:
// the purge itself lives in the notification service.
type NotificationCleanup struct {
	notifications service.NotificationService
	interval      time.Duration
	retention     time.Duration
}

func NewNotificationCleanup(notifications service.NotificationService, interval, retention time.Duration) *NotificationCleanup {
	return &NotificationCleanup{
		notifications: notifications,
		interval:      interval,
		retention:     retention,
	}
}

// Run blocks until ctx is cancelled, purging once per interval.
func (j *NotificationCleanup) Run(ctx context.Context) {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			cutoff := time.Now().Add(-j.retention)
			purged, err := j.notifications.PurgeRead(ctx, cutoff)
			if err != nil {
				slog.Error("notification purge failed", "error", err)
				continue
			}
			if purged > 0 {
				slog.Info("purged read notifications", "count", purged)
			}

		case <-ctx.Done():
			return
		}
	}
}
