package port

import (
	"context"
	"time"

	"github.com/videolibre/vault-ms-go/internal/model"
	"github.com/videolibre/vault-ms-go/internal/uuid"
)

// ErrDuplicateActiveRequest is returned by Create when the unique active-key
// index rejects the insert. Callers resolve it by re-reading the existing
// active row; it never escapes the ledger.
var ErrDuplicateActiveRequest = DuplicateActiveRequestError{}

type DuplicateActiveRequestError struct{}

func (DuplicateActiveRequestError) Error() string { return "active download request already exists" }

// DownloadRequestRepository defines persistence operations for download requests.
type DownloadRequestRepository interface {
	GetByID(ctx context.Context, ID uuid.UUID) (*model.DownloadRequest, error)
	// Create inserts a new request; returns ErrDuplicateActiveRequest when an
	// active row for the same (requester, video, email) tuple already exists.
	Create(ctx context.Context, req *model.DownloadRequest) error
	// FindActive returns the active request for the tuple, or nil when none exists.
	FindActive(ctx context.Context, requesterID, videoID uuid.UUID, email string) (*model.DownloadRequest, error)
	// StoreAccessURL records a minted URL, its correlation id and expiry on a
	// still-pending request, so a later notification failure keeps the URL.
	StoreAccessURL(ctx context.Context, ID uuid.UUID, accessURL, externalRequestID string, expiresAt time.Time) error
	// MarkCompleted sets status, access URL, correlation id, notification flags
	// and expiry in a single atomic update.
	MarkCompleted(ctx context.Context, ID uuid.UUID, accessURL, externalRequestID string, expiresAt time.Time) error
	// MarkFailed sets status and last_error; any previously issued URL is kept.
	MarkFailed(ctx context.Context, ID uuid.UUID, errorMessage string) error
	// MarkExpired moves a single pending/completed request to "expired",
	// releasing its slot in the unique active index.
	MarkExpired(ctx context.Context, ID uuid.UUID) error
	// ExpireStale transitions every pending/completed request whose expiry has
	// passed to "expired" in one statement and returns the number of rows moved.
	ExpireStale(ctx context.Context, now time.Time) (int64, error)
	// ListRetryable returns failed requests updated since the given cutoff that
	// already carry an access URL.
	ListRetryable(ctx context.Context, since time.Time) ([]*model.DownloadRequest, error)
	// InvalidatePendingForVideo fails every pending request targeting the video.
	InvalidatePendingForVideo(ctx context.Context, videoID uuid.UUID, reason string) (int64, error)
}
