package worker

import (
	"context"
	"log"

	"github.com/videolibre/vault-ms-go/internal/port"
)

// ExpirySweepHandler handles an expiry-sweep task.
func ExpirySweepHandler(ctx context.Context, svc port.Sweeper) error {
	count, err := svc.RunExpirySweep(ctx)
	if err != nil {
		log.Printf("❌  Expiry sweep failed: %v", err)
		return err
	}

	log.Printf("✅  Expiry sweep done, %d request(s) expired", count)
	return nil
}

// NotificationRetryHandler handles a notification-retry task.
func NotificationRetryHandler(ctx context.Context, svc port.Sweeper) error {
	if err := svc.RunNotificationRetry(ctx); err != nil {
		log.Printf("❌  Notification retry failed: %v", err)
		return err
	}

	log.Printf("✅  Notification retry done")
	return nil
}
