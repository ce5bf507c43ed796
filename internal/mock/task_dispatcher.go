package mock

import (
	"context"

	"github.com/videolibre/vault-ms-go/internal/port"
	"github.com/videolibre/vault-ms-go/internal/uuid"
)

// TaskDispatcher implements the dispatcher interface for tests.
type TaskDispatcher struct {
	ProcessErr error
	SweepErr   error
	RetryErr   error

	ProcessCalled bool
	ProcessedID   uuid.UUID
	SweepCalled   bool
	RetryCalled   bool
}

var _ port.TaskDispatcher = (*TaskDispatcher)(nil)

func (m *TaskDispatcher) EnqueueProcessDownloadRequest(ctx context.Context, id uuid.UUID) error {
	m.ProcessCalled = true
	m.ProcessedID = id
	return m.ProcessErr
}

func (m *TaskDispatcher) EnqueueExpirySweep(ctx context.Context) error {
	m.SweepCalled = true
	return m.SweepErr
}

func (m *TaskDispatcher) EnqueueNotificationRetry(ctx context.Context) error {
	m.RetryCalled = true
	return m.RetryErr
}
