package mock

import (
	"context"

	"github.com/videolibre/vault-ms-go/internal/model"
	"github.com/videolibre/vault-ms-go/internal/port"
	"github.com/videolibre/vault-ms-go/internal/uuid"
)

// VideoRepo implements repository operations for tests.
type VideoRepo struct {
	VideoRecord *model.Video

	GetErr          error
	CreateErr       error
	UpdateStatusErr error
	MarkStoredErr   error
	ResetErr        error

	GetCalled         bool
	Created           *model.Video
	UpdatedStatuses   []string
	MarkStoredCalled  bool
	StoredKey         string
	StoredURL         string
	StoredSize        int64
	ResetCalled       bool
	ResetID           uuid.UUID
}

var _ port.VideoRepository = (*VideoRepo)(nil)

func (m *VideoRepo) GetByID(ctx context.Context, ID uuid.UUID) (*model.Video, error) {
	m.GetCalled = true
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	return m.VideoRecord, nil
}

func (m *VideoRepo) Create(ctx context.Context, video *model.Video) error {
	m.Created = video
	return m.CreateErr
}

func (m *VideoRepo) UpdateStorageStatus(ctx context.Context, ID uuid.UUID, status string) error {
	m.UpdatedStatuses = append(m.UpdatedStatuses, status)
	return m.UpdateStatusErr
}

func (m *VideoRepo) MarkStored(ctx context.Context, ID uuid.UUID, storageKey, storageURL string, sizeBytes int64) error {
	m.MarkStoredCalled = true
	m.StoredKey = storageKey
	m.StoredURL = storageURL
	m.StoredSize = sizeBytes
	return m.MarkStoredErr
}

func (m *VideoRepo) ResetStorage(ctx context.Context, ID uuid.UUID) error {
	m.ResetCalled = true
	m.ResetID = ID
	return m.ResetErr
}
