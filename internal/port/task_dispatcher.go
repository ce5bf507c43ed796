package port

import (
	"context"

	"github.com/videolibre/vault-ms-go/internal/uuid"
)

// TaskDispatcher enqueues asynchronous tasks related to download requests.
type TaskDispatcher interface {
	EnqueueProcessDownloadRequest(ctx context.Context, id uuid.UUID) error
	EnqueueExpirySweep(ctx context.Context) error
	EnqueueNotificationRetry(ctx context.Context) error
}
