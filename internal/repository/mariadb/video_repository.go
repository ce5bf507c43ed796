package mariadb

import (
	"context"
	"database/sql"
	"log"

	"github.com/videolibre/vault-ms-go/internal/model"
	"github.com/videolibre/vault-ms-go/internal/port"
	"github.com/videolibre/vault-ms-go/internal/uuid"
)

type VideoRepository struct {
	db *sql.DB
}

// compile-time check: *VideoRepository must satisfy port.VideoRepository
var _ port.VideoRepository = (*VideoRepository)(nil)

func NewVideoRepository(db *sql.DB) *VideoRepository {
	return &VideoRepository{db: db}
}

func (r *VideoRepository) GetByID(ctx context.Context, ID uuid.UUID) (*model.Video, error) {
	log.Printf("fetching video #%s from the database...", ID)

	const query = `
      SELECT id, library_id, title, storage_status, storage_key, storage_url, size_bytes, duration_seconds, created_at, updated_at
      FROM videos
      WHERE id = ?
    `
	row := r.db.QueryRowContext(ctx, query, ID)
	var video model.Video
	if err := row.Scan(
		&video.ID, &video.LibraryID, &video.Title,
		&video.StorageStatus, &video.StorageKey, &video.StorageURL,
		&video.SizeBytes, &video.DurationSeconds,
		&video.CreatedAt, &video.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return &video, nil
}

func (r *VideoRepository) Create(ctx context.Context, video *model.Video) error {
	log.Printf("creating database record for video #%s, at storage status %q...", video.ID, video.StorageStatus)

	const query = `
      INSERT INTO videos
        (id, library_id, title, storage_status, storage_key, storage_url, size_bytes, duration_seconds)
      VALUES (?, ?, ?, ?, ?, ?, ?, ?)
    `
	_, err := r.db.ExecContext(ctx, query,
		video.ID, video.LibraryID, video.Title,
		video.StorageStatus, video.StorageKey, video.StorageURL,
		video.SizeBytes, video.DurationSeconds,
	)
	return err
}

func (r *VideoRepository) UpdateStorageStatus(ctx context.Context, ID uuid.UUID, status string) error {
	log.Printf("updating video #%s to storage status %q...", ID, status)

	const query = `
      UPDATE videos
      SET storage_status = ?
      WHERE id = ?
    `
	_, err := r.db.ExecContext(ctx, query, status, ID)
	return err
}

// MarkStored flips the record to "stored" and sets the object key, pointer
// URL and size in the same statement, so the key/status invariant cannot be
// observed half-applied.
func (r *VideoRepository) MarkStored(ctx context.Context, ID uuid.UUID, storageKey, storageURL string, sizeBytes int64) error {
	log.Printf("marking video #%s as stored under key %q...", ID, storageKey)

	const query = `
      UPDATE videos
      SET
        storage_status = 'stored',
        storage_key    = ?,
        storage_url    = ?,
        size_bytes     = ?
      WHERE id = ?
    `
	_, err := r.db.ExecContext(ctx, query, storageKey, storageURL, sizeBytes, ID)
	return err
}

// ResetStorage clears the key and URL and returns the record to "pending",
// e.g. after the stored object has been deleted.
func (r *VideoRepository) ResetStorage(ctx context.Context, ID uuid.UUID) error {
	log.Printf("resetting storage fields for video #%s...", ID)

	const query = `
      UPDATE videos
      SET
        storage_status = 'pending',
        storage_key    = NULL,
        storage_url    = NULL,
        size_bytes     = NULL
      WHERE id = ?
    `
	_, err := r.db.ExecContext(ctx, query, ID)
	return err
}
