package port

import (
	"context"
	"io"
	"time"

	"github.com/videolibre/vault-ms-go/internal/model"
	"github.com/videolibre/vault-ms-go/internal/uuid"
)

// VideoUploader streams a local file into object storage as a multipart
// transaction and marks the video stored on success.
type VideoUploader interface {
	UploadVideo(ctx context.Context, in UploadVideoInput) error
}
type UploadVideoInput struct {
	ID          uuid.UUID
	File        io.ReaderAt
	SizeBytes   int64
	ContentType string
}

// StreamingURLIssuer mints a short-lived inline playback URL for a stored video.
type StreamingURLIssuer interface {
	IssueStreamingURL(ctx context.Context, id uuid.UUID) (IssueStreamingURLOutput, error)
}
type IssueStreamingURLOutput struct {
	URL        string    `json:"url"`
	ValidUntil time.Time `json:"valid_until"`
}

// VideoStorageDeleter removes a video's object, clears its storage fields and
// invalidates pending download requests targeting it.
type VideoStorageDeleter interface {
	DeleteVideoStorage(ctx context.Context, id uuid.UUID) error
}

// DownloadRequester creates a download request, returning the existing active
// one for the same (requester, video, email) tuple instead of duplicating.
type DownloadRequester interface {
	RequestDownload(ctx context.Context, in RequestDownloadInput) (*model.DownloadRequest, error)
}
type RequestDownloadInput struct {
	RequesterID uuid.UUID
	VideoID     uuid.UUID
	Email       string
}

// DownloadProcessor orchestrates URL issuance and manager notification for
// one pending or retried download request.
type DownloadProcessor interface {
	ProcessDownloadRequest(ctx context.Context, id uuid.UUID) error
}

// Sweeper reconciles stale rows: bulk-expires overdue requests and retries
// recently failed notifications.
type Sweeper interface {
	RunExpirySweep(ctx context.Context) (int64, error)
	RunNotificationRetry(ctx context.Context) error
}
