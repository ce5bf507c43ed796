package video

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/videolibre/vault-ms-go/internal/port"
	"github.com/videolibre/vault-ms-go/internal/uuid"
)

type deleteStorageSrv struct {
	repo    port.VideoRepository
	reqRepo port.DownloadRequestRepository
	strg    port.Storage
	cache   port.Cache
}

// compile-time check: *deleteStorageSrv must satisfy port.VideoStorageDeleter
var _ port.VideoStorageDeleter = (*deleteStorageSrv)(nil)

// NewVideoStorageDeleter returns the service that removes a video's stored
// object and fails any download request still waiting on it.
func NewVideoStorageDeleter(repo port.VideoRepository, reqRepo port.DownloadRequestRepository, strg port.Storage, cache port.Cache) port.VideoStorageDeleter {
	return &deleteStorageSrv{repo: repo, reqRepo: reqRepo, strg: strg, cache: cache}
}

func (s *deleteStorageSrv) DeleteVideoStorage(ctx context.Context, id uuid.UUID) error {
	video, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("could not fetch video #%s: %w", id, err)
	}
	if video.StorageKey == nil || *video.StorageKey == "" {
		return nil // nothing stored, nothing to do
	}

	if err := s.strg.RemoveFile(ctx, *video.StorageKey); err != nil && !errors.Is(err, ErrObjectNotFound) {
		return fmt.Errorf("could not remove file %q: %w", *video.StorageKey, err)
	}

	if err := s.repo.ResetStorage(ctx, id); err != nil {
		return fmt.Errorf("could not reset storage fields for video #%s: %w", id, err)
	}

	count, err := s.reqRepo.InvalidatePendingForVideo(ctx, id, "video removed")
	if err != nil {
		return fmt.Errorf("could not invalidate pending requests for video #%s: %w", id, err)
	}
	if count > 0 {
		log.Printf("invalidated %d pending download request(s) for removed video #%s", count, id)
	}

	if err := s.cache.DeleteStreamingURL(ctx, id); err != nil {
		// stale cache entries expire on their own
		log.Printf("could not drop cached streaming URL for video #%s: %v", id, err)
	}

	return nil
}
