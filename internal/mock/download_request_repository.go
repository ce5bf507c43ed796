package mock

import (
	"context"
	"time"

	"github.com/videolibre/vault-ms-go/internal/model"
	"github.com/videolibre/vault-ms-go/internal/port"
	"github.com/videolibre/vault-ms-go/internal/uuid"
)

// DownloadRequestRepo implements ledger operations for tests.
type DownloadRequestRepo struct {
	RequestRecord *model.DownloadRequest
	ActiveRecord  *model.DownloadRequest

	GetErr           error
	CreateErr        error
	FindActiveErr    error
	MarkCompletedErr error
	MarkFailedErr    error
	ExpireErr        error
	ListRetryableErr error
	InvalidateErr    error

	ExpireOut        int64
	ListRetryableOut []*model.DownloadRequest
	InvalidateOut    int64

	GetCalled        bool
	Created          *model.DownloadRequest
	FindActiveCalled bool

	StoreURLErr     error
	StoreURLCalled  bool
	StoredURL       string
	StoredExtID     string
	StoredExpiresAt time.Time

	MarkCompletedCalled bool
	CompletedID         uuid.UUID
	CompletedURL        string
	CompletedExtID      string
	CompletedExpiresAt  time.Time

	MarkFailedCalled bool
	FailedID         uuid.UUID
	FailedMessage    string

	MarkExpiredErr    error
	MarkExpiredCalled bool
	ExpiredID         uuid.UUID

	ExpireCalled        bool
	ExpireNow           time.Time
	ListRetryableCalled bool
	RetryableSince      time.Time
	InvalidateCalled    bool
	InvalidatedVideoID  uuid.UUID
	InvalidateReason    string
}

var _ port.DownloadRequestRepository = (*DownloadRequestRepo)(nil)

func (m *DownloadRequestRepo) GetByID(ctx context.Context, ID uuid.UUID) (*model.DownloadRequest, error) {
	m.GetCalled = true
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	return m.RequestRecord, nil
}

func (m *DownloadRequestRepo) Create(ctx context.Context, req *model.DownloadRequest) error {
	m.Created = req
	return m.CreateErr
}

func (m *DownloadRequestRepo) FindActive(ctx context.Context, requesterID, videoID uuid.UUID, email string) (*model.DownloadRequest, error) {
	m.FindActiveCalled = true
	if m.FindActiveErr != nil {
		return nil, m.FindActiveErr
	}
	return m.ActiveRecord, nil
}

func (m *DownloadRequestRepo) StoreAccessURL(ctx context.Context, ID uuid.UUID, accessURL, externalRequestID string, expiresAt time.Time) error {
	m.StoreURLCalled = true
	m.StoredURL = accessURL
	m.StoredExtID = externalRequestID
	m.StoredExpiresAt = expiresAt
	return m.StoreURLErr
}

func (m *DownloadRequestRepo) MarkCompleted(ctx context.Context, ID uuid.UUID, accessURL, externalRequestID string, expiresAt time.Time) error {
	m.MarkCompletedCalled = true
	m.CompletedID = ID
	m.CompletedURL = accessURL
	m.CompletedExtID = externalRequestID
	m.CompletedExpiresAt = expiresAt
	return m.MarkCompletedErr
}

func (m *DownloadRequestRepo) MarkFailed(ctx context.Context, ID uuid.UUID, errorMessage string) error {
	m.MarkFailedCalled = true
	m.FailedID = ID
	m.FailedMessage = errorMessage
	return m.MarkFailedErr
}

func (m *DownloadRequestRepo) MarkExpired(ctx context.Context, ID uuid.UUID) error {
	m.MarkExpiredCalled = true
	m.ExpiredID = ID
	return m.MarkExpiredErr
}

func (m *DownloadRequestRepo) ExpireStale(ctx context.Context, now time.Time) (int64, error) {
	m.ExpireCalled = true
	m.ExpireNow = now
	if m.ExpireErr != nil {
		return 0, m.ExpireErr
	}
	return m.ExpireOut, nil
}

func (m *DownloadRequestRepo) ListRetryable(ctx context.Context, since time.Time) ([]*model.DownloadRequest, error) {
	m.ListRetryableCalled = true
	m.RetryableSince = since
	if m.ListRetryableErr != nil {
		return nil, m.ListRetryableErr
	}
	return m.ListRetryableOut, nil
}

func (m *DownloadRequestRepo) InvalidatePendingForVideo(ctx context.Context, videoID uuid.UUID, reason string) (int64, error) {
	m.InvalidateCalled = true
	m.InvalidatedVideoID = videoID
	m.InvalidateReason = reason
	if m.InvalidateErr != nil {
		return 0, m.InvalidateErr
	}
	return m.InvalidateOut, nil
}
