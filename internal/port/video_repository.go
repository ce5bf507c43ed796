package port

import (
	"context"

	"github.com/videolibre/vault-ms-go/internal/model"
	"github.com/videolibre/vault-ms-go/internal/uuid"
)

// VideoRepository defines persistence operations on the storage fields of videos.
type VideoRepository interface {
	GetByID(ctx context.Context, ID uuid.UUID) (*model.Video, error)
	Create(ctx context.Context, video *model.Video) error
	// UpdateStorageStatus transitions only the storage_status column.
	UpdateStorageStatus(ctx context.Context, ID uuid.UUID, status string) error
	// MarkStored sets status to "stored" together with the object key, public
	// URL pointer and byte size in one statement, preserving the key/status
	// invariant.
	MarkStored(ctx context.Context, ID uuid.UUID, storageKey, storageURL string, sizeBytes int64) error
	// ResetStorage clears the object key and returns the record to "pending".
	ResetStorage(ctx context.Context, ID uuid.UUID) error
}
