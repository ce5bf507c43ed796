package model

import (
	"time"

	"github.com/videolibre/vault-ms-go/internal/uuid"
)

const (
	VideoStatusPending          = "pending"
	VideoStatusUploading        = "uploading"
	VideoStatusStored           = "stored"
	VideoStatusFailed           = "failed"
	VideoStatusProcessing       = "processing"
	VideoStatusProcessingFailed = "processing_failed"
)

// Video carries the storage-related fields of a video record. Title and
// the rest of the catalogue fields are owned by the surrounding platform;
// the title is kept here only because download notifications and the
// attachment filename display it.
type Video struct {
	ID              uuid.UUID `json:"id"`
	LibraryID       uuid.UUID `json:"library_id"`
	Title           string    `json:"title"`
	StorageStatus   string    `json:"storage_status"`
	StorageKey      *string   `json:"storage_key"`
	StorageURL      *string   `json:"storage_url"`
	SizeBytes       *int64    `json:"size_bytes"`
	DurationSeconds *int      `json:"duration_seconds"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// IsStored reports whether the video sits in durable storage with a
// resolvable object key. StorageKey is non-nil iff StorageStatus is
// "stored"; both sides of that invariant are checked anyway.
func (v *Video) IsStored() bool {
	return v.StorageStatus == VideoStatusStored && v.StorageKey != nil && *v.StorageKey != ""
}
