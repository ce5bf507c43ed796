package port

import (
	"context"
	"time"

	"github.com/videolibre/vault-ms-go/internal/uuid"
)

// Cache stores minted streaming URLs until shortly before they expire, so
// repeated playback requests for the same video reuse one signed URL.
type Cache interface {
	GetStreamingURL(ctx context.Context, videoID uuid.UUID) (string, error)
	SetStreamingURL(ctx context.Context, videoID uuid.UUID, url string, validUntil time.Time)
	DeleteStreamingURL(ctx context.Context, videoID uuid.UUID) error
}
