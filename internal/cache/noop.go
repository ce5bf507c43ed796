package cache

import (
	"context"
	"time"

	"github.com/videolibre/vault-ms-go/internal/port"
	"github.com/videolibre/vault-ms-go/internal/uuid"
)

type NoopCache struct{}

// compile-time check: *NoopCache must satisfy port.Cache
var _ port.Cache = (*NoopCache)(nil)

func NewNoop() *NoopCache {
	return &NoopCache{}
}

func (n *NoopCache) GetStreamingURL(ctx context.Context, videoID uuid.UUID) (string, error) {
	return "", nil // always cache miss
}

func (n *NoopCache) SetStreamingURL(ctx context.Context, videoID uuid.UUID, url string, validUntil time.Time) {
}

func (n *NoopCache) DeleteStreamingURL(ctx context.Context, videoID uuid.UUID) error { return nil }
