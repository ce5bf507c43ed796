package task

import (
	"context"

	"github.com/hibiken/asynq"
	"github.com/videolibre/vault-ms-go/internal/port"
	"github.com/videolibre/vault-ms-go/internal/uuid"
)

type Dispatcher struct {
	client *asynq.Client
}

// compile-time check
var _ port.TaskDispatcher = (*Dispatcher)(nil)

func NewDispatcher(addr, password string) *Dispatcher {
	c := asynq.NewClient(asynq.RedisClientOpt{Addr: addr, Password: password})
	return &Dispatcher{client: c}
}

func (d *Dispatcher) EnqueueProcessDownloadRequest(ctx context.Context, id uuid.UUID) error {
	t, err := NewProcessDownloadRequestTask(id.String())
	if err != nil {
		return err
	}
	if _, err := d.client.EnqueueContext(ctx, t); err != nil {
		return err
	}
	return nil
}

func (d *Dispatcher) EnqueueExpirySweep(ctx context.Context) error {
	if _, err := d.client.EnqueueContext(ctx, NewExpirySweepTask()); err != nil {
		return err
	}
	return nil
}

func (d *Dispatcher) EnqueueNotificationRetry(ctx context.Context) error {
	if _, err := d.client.EnqueueContext(ctx, NewNotificationRetryTask()); err != nil {
		return err
	}
	return nil
}
