package mock

import (
	"context"

	"github.com/videolibre/vault-ms-go/internal/model"
	"github.com/videolibre/vault-ms-go/internal/port"
	"github.com/videolibre/vault-ms-go/internal/uuid"
)

// VideoUploader implements the upload use case for tests.
type VideoUploader struct {
	Err error

	Called bool
	In     port.UploadVideoInput
}

var _ port.VideoUploader = (*VideoUploader)(nil)

func (m *VideoUploader) UploadVideo(ctx context.Context, in port.UploadVideoInput) error {
	m.Called = true
	m.In = in
	return m.Err
}

// StreamingURLIssuer implements the streaming URL use case for tests.
type StreamingURLIssuer struct {
	Out port.IssueStreamingURLOutput
	Err error

	Called bool
	ID     uuid.UUID
}

var _ port.StreamingURLIssuer = (*StreamingURLIssuer)(nil)

func (m *StreamingURLIssuer) IssueStreamingURL(ctx context.Context, id uuid.UUID) (port.IssueStreamingURLOutput, error) {
	m.Called = true
	m.ID = id
	if m.Err != nil {
		return port.IssueStreamingURLOutput{}, m.Err
	}
	return m.Out, nil
}

// VideoStorageDeleter implements the storage deletion use case for tests.
type VideoStorageDeleter struct {
	Err error

	Called bool
	ID     uuid.UUID
}

var _ port.VideoStorageDeleter = (*VideoStorageDeleter)(nil)

func (m *VideoStorageDeleter) DeleteVideoStorage(ctx context.Context, id uuid.UUID) error {
	m.Called = true
	m.ID = id
	return m.Err
}

// DownloadRequester implements the request creation use case for tests.
type DownloadRequester struct {
	Out *model.DownloadRequest
	Err error

	Called bool
	In     port.RequestDownloadInput
}

var _ port.DownloadRequester = (*DownloadRequester)(nil)

func (m *DownloadRequester) RequestDownload(ctx context.Context, in port.RequestDownloadInput) (*model.DownloadRequest, error) {
	m.Called = true
	m.In = in
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Out, nil
}

// DownloadProcessor implements the processing use case for tests.
type DownloadProcessor struct {
	Err error

	Called bool
	ID     uuid.UUID
}

var _ port.DownloadProcessor = (*DownloadProcessor)(nil)

func (m *DownloadProcessor) ProcessDownloadRequest(ctx context.Context, id uuid.UUID) error {
	m.Called = true
	m.ID = id
	return m.Err
}

// Sweeper implements the sweeper use case for tests.
type Sweeper struct {
	SweepOut int64
	SweepErr error
	RetryErr error

	SweepCalled bool
	RetryCalled bool
}

var _ port.Sweeper = (*Sweeper)(nil)

func (m *Sweeper) RunExpirySweep(ctx context.Context) (int64, error) {
	m.SweepCalled = true
	if m.SweepErr != nil {
		return 0, m.SweepErr
	}
	return m.SweepOut, nil
}

func (m *Sweeper) RunNotificationRetry(ctx context.Context) error {
	m.RetryCalled = true
	return m.RetryErr
}
