package video

import (
	"context"
	"fmt"
	"io"
	"log"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/videolibre/vault-ms-go/internal/model"
	"github.com/videolibre/vault-ms-go/internal/objectkey"
	"github.com/videolibre/vault-ms-go/internal/port"
	"github.com/videolibre/vault-ms-go/internal/uuid"
)

// UploaderOptions carries the transfer tuning knobs, resolved from
// configuration by the caller.
type UploaderOptions struct {
	ChunkSizeBytes     int64
	MaxConcurrentParts int
	MaxFileSizeBytes   int64
	PartUploadTimeout  time.Duration
	// PublicBaseURL prefixes object keys to form the stored pointer URL,
	// e.g. "https://storage.example.com/vault".
	PublicBaseURL string
}

type uploadVideoSrv struct {
	repo port.VideoRepository
	strg port.Storage
	keys *objectkey.Allocator
	opts UploaderOptions
}

// compile-time check: *uploadVideoSrv must satisfy port.VideoUploader
var _ port.VideoUploader = (*uploadVideoSrv)(nil)

// NewVideoUploader returns the multipart upload engine.
func NewVideoUploader(repo port.VideoRepository, strg port.Storage, keys *objectkey.Allocator, opts UploaderOptions) port.VideoUploader {
	return &uploadVideoSrv{repo: repo, strg: strg, keys: keys, opts: opts}
}

func (s *uploadVideoSrv) UploadVideo(ctx context.Context, in port.UploadVideoInput) error {
	// The size limit is checked before any network traffic; an oversized
	// file must not cost a single round trip.
	if in.SizeBytes > s.opts.MaxFileSizeBytes {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrFileTooLarge, in.SizeBytes, s.opts.MaxFileSizeBytes)
	}
	if in.SizeBytes <= 0 {
		return fmt.Errorf("invalid file size %d for video #%s", in.SizeBytes, in.ID)
	}

	video, err := s.repo.GetByID(ctx, in.ID)
	if err != nil {
		return fmt.Errorf("could not fetch video #%s: %w", in.ID, err)
	}

	fileKey := s.keys.VideoKey(video.LibraryID, video.ID, in.ContentType)

	if err := s.repo.UpdateStorageStatus(ctx, video.ID, model.VideoStatusUploading); err != nil {
		return fmt.Errorf("could not mark video #%s as uploading: %w", video.ID, err)
	}

	uploadID, err := s.strg.InitiateMultipartUpload(ctx, fileKey, in.ContentType)
	if err != nil {
		s.markFailed(ctx, video.ID)
		return fmt.Errorf("could not initiate multipart upload for video #%s: %w", video.ID, err)
	}

	parts, err := s.uploadParts(ctx, fileKey, uploadID, in)
	if err != nil {
		// One abort for the whole transaction, best-effort: the object
		// store garbage-collects orphaned uploads eventually anyway.
		if abortErr := s.strg.AbortMultipartUpload(context.WithoutCancel(ctx), fileKey, uploadID); abortErr != nil {
			log.Printf("abort of upload %q for video #%s failed: %v", uploadID, video.ID, abortErr)
		}
		s.markFailed(ctx, video.ID)
		return fmt.Errorf("%w: %v", ErrPartUploadFailed, err)
	}

	sort.Slice(parts, func(i, j int) bool { return parts[i].PartNumber < parts[j].PartNumber })

	if err := s.strg.CompleteMultipartUpload(ctx, fileKey, uploadID, parts); err != nil {
		if abortErr := s.strg.AbortMultipartUpload(context.WithoutCancel(ctx), fileKey, uploadID); abortErr != nil {
			log.Printf("abort of upload %q for video #%s failed: %v", uploadID, video.ID, abortErr)
		}
		s.markFailed(ctx, video.ID)
		return fmt.Errorf("could not complete multipart upload for video #%s: %w", video.ID, err)
	}

	storageURL := strings.TrimRight(s.opts.PublicBaseURL, "/") + "/" + fileKey
	if err := s.repo.MarkStored(ctx, video.ID, fileKey, storageURL, in.SizeBytes); err != nil {
		return fmt.Errorf("could not mark video #%s as stored: %w", video.ID, err)
	}

	log.Printf("video #%s stored under key %q (%d parts, %d bytes)", video.ID, fileKey, len(parts), in.SizeBytes)
	return nil
}

// uploadParts streams every chunk of the file through a bounded worker pool.
// The first failing part cancels the group context, so in-flight siblings
// stop instead of finishing a transaction that is already doomed.
func (s *uploadVideoSrv) uploadParts(ctx context.Context, fileKey, uploadID string, in port.UploadVideoInput) ([]port.CompletedPart, error) {
	partCount := int((in.SizeBytes + s.opts.ChunkSizeBytes - 1) / s.opts.ChunkSizeBytes)
	parts := make([]port.CompletedPart, partCount)

	var completed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.MaxConcurrentParts)

	for i := 0; i < partCount; i++ {
		partNumber := i + 1
		offset := int64(i) * s.opts.ChunkSizeBytes
		length := min(s.opts.ChunkSizeBytes, in.SizeBytes-offset)

		g.Go(func() error {
			pctx, cancel := context.WithTimeout(gctx, s.opts.PartUploadTimeout)
			defer cancel()

			section := io.NewSectionReader(in.File, offset, length)
			part, err := s.strg.UploadPart(pctx, fileKey, uploadID, partNumber, section, length)
			if err != nil {
				return fmt.Errorf("part %d/%d: %w", partNumber, partCount, err)
			}
			parts[partNumber-1] = part

			log.Printf("uploaded part %d of %d for file %q (%d/%d done)", partNumber, partCount, fileKey, completed.Add(1), partCount)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return parts, nil
}

func (s *uploadVideoSrv) markFailed(ctx context.Context, id uuid.UUID) {
	if err := s.repo.UpdateStorageStatus(context.WithoutCancel(ctx), id, model.VideoStatusFailed); err != nil {
		log.Printf("could not mark video #%s as failed: %v", id, err)
	}
}
