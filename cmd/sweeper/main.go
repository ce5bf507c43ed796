package main

import (
	"context"
	"log"

	"github.com/videolibre/vault-ms-go/internal/config"
	"github.com/videolibre/vault-ms-go/internal/task"
)

// The sweeper binary is meant to be invoked by an external scheduler (cron,
// Kubernetes CronJob). It only enqueues the two sweep tasks; the worker does
// the actual row movement so retries and visibility stay in one place.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌  Configuration error: %v", err)
	}

	dispatcher := initDispatcher(cfg)

	ctx := context.Background()
	if err := dispatcher.EnqueueExpirySweep(ctx); err != nil {
		log.Fatalf("❌  Could not enqueue expiry sweep: %v", err)
	}
	if err := dispatcher.EnqueueNotificationRetry(ctx); err != nil {
		log.Fatalf("❌  Could not enqueue notification retry: %v", err)
	}

	log.Println("✅  Sweep tasks enqueued")
}

func initDispatcher(cfg *config.Settings) *task.Dispatcher {
	if cfg.RedisAddr == "" {
		log.Fatalf("❌  Redis not configured: this command requires a running Redis instance")
	}
	return task.NewDispatcher(cfg.RedisAddr, cfg.RedisPassword)
}
