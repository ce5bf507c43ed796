package mock

import (
	"context"
	"time"

	"github.com/videolibre/vault-ms-go/internal/port"
	"github.com/videolibre/vault-ms-go/internal/uuid"
)

// Cache implements the cache interface for tests.
type Cache struct {
	URLOut string
	GetErr error
	DelErr error

	GetCalled    bool
	SetCalled    bool
	SetURL       string
	SetUntil     time.Time
	DeleteCalled bool
	DeletedID    uuid.UUID
}

var _ port.Cache = (*Cache)(nil)

func (m *Cache) GetStreamingURL(ctx context.Context, videoID uuid.UUID) (string, error) {
	m.GetCalled = true
	if m.GetErr != nil {
		return "", m.GetErr
	}
	return m.URLOut, nil
}

func (m *Cache) SetStreamingURL(ctx context.Context, videoID uuid.UUID, url string, validUntil time.Time) {
	m.SetCalled = true
	m.SetURL = url
	m.SetUntil = validUntil
}

func (m *Cache) DeleteStreamingURL(ctx context.Context, videoID uuid.UUID) error {
	m.DeleteCalled = true
	m.DeletedID = videoID
	return m.DelErr
}
