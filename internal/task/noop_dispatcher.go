package task

import (
	"context"

	"github.com/videolibre/vault-ms-go/internal/port"
	"github.com/videolibre/vault-ms-go/internal/uuid"
)

type NoopDispatcher struct{}

var _ port.TaskDispatcher = (*NoopDispatcher)(nil)

func NewNoopDispatcher() *NoopDispatcher { return &NoopDispatcher{} }

func (d *NoopDispatcher) EnqueueProcessDownloadRequest(ctx context.Context, id uuid.UUID) error {
	return nil
}

func (d *NoopDispatcher) EnqueueExpirySweep(ctx context.Context) error { return nil }

func (d *NoopDispatcher) EnqueueNotificationRetry(ctx context.Context) error { return nil }
