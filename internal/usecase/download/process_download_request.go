package download

import (
	"context"
	"fmt"
	"log"
	"path"
	"time"

	"github.com/videolibre/vault-ms-go/internal/model"
	"github.com/videolibre/vault-ms-go/internal/port"
	"github.com/videolibre/vault-ms-go/internal/uuid"
)

type processDownloadSrv struct {
	reqRepo   port.DownloadRequestRepository
	videoRepo port.VideoRepository
	strg      port.Storage
	mailer    port.Mailer
	urlTTL    time.Duration
}

// compile-time check: *processDownloadSrv must satisfy port.DownloadProcessor
var _ port.DownloadProcessor = (*processDownloadSrv)(nil)

// NewDownloadProcessor returns the orchestration service run by the worker:
// mint the download URL, notify the manager, settle the row.
func NewDownloadProcessor(reqRepo port.DownloadRequestRepository, videoRepo port.VideoRepository, strg port.Storage, mailer port.Mailer, urlTTL time.Duration) port.DownloadProcessor {
	return &processDownloadSrv{reqRepo: reqRepo, videoRepo: videoRepo, strg: strg, mailer: mailer, urlTTL: urlTTL}
}

func (s *processDownloadSrv) ProcessDownloadRequest(ctx context.Context, id uuid.UUID) error {
	req, err := s.reqRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("could not fetch download request #%s: %w", id, err)
	}

	switch req.Status {
	case model.RequestStatusCompleted:
		log.Printf("download request #%s is already completed, nothing to do", id)
		return nil
	case model.RequestStatusExpired:
		return fmt.Errorf("download request #%s: %w", id, ErrRequestExpired)
	}

	video, err := s.videoRepo.GetByID(ctx, req.VideoID)
	if err != nil || !video.IsStored() {
		s.markFailed(ctx, req.ID, fmt.Sprintf("video #%s is not available", req.VideoID))
		return fmt.Errorf("video #%s: %w", req.VideoID, ErrVideoNotAvailable)
	}

	downloadName := video.Title + path.Ext(*video.StorageKey)
	accessURL, err := s.strg.GeneratePresignedDownloadURL(ctx, *video.StorageKey, s.urlTTL, downloadName, false)
	if err != nil {
		s.markFailed(ctx, req.ID, fmt.Sprintf("could not mint URL: %v", err))
		return fmt.Errorf("could not generate download URL for request #%s: %w", id, err)
	}

	externalRequestID := uuid.NewUUID().String()
	expiresAt := time.Now().Add(s.urlTTL)

	// Persist the URL before attempting the notification, so a failed send
	// leaves a retryable row instead of losing the minted link.
	if err := s.reqRepo.StoreAccessURL(ctx, req.ID, accessURL, externalRequestID, expiresAt); err != nil {
		return fmt.Errorf("could not store access URL on request #%s: %w", id, err)
	}

	summary := port.DownloadSummary{
		RequestID:  req.ID.String(),
		VideoTitle: video.Title,
		Email:      req.Email,
		AccessURL:  accessURL,
	}
	if err := s.mailer.NotifyManager(ctx, []port.DownloadSummary{summary}); err != nil {
		s.markFailed(ctx, req.ID, fmt.Sprintf("notification failed: %v", err))
		return fmt.Errorf("could not notify manager for request #%s: %w", id, err)
	}

	if err := s.reqRepo.MarkCompleted(ctx, req.ID, accessURL, externalRequestID, expiresAt); err != nil {
		return fmt.Errorf("could not mark request #%s as completed: %w", id, err)
	}

	log.Printf("download request #%s completed, link expires %s", id, expiresAt.Format(time.RFC1123))
	return nil
}

func (s *processDownloadSrv) markFailed(ctx context.Context, id uuid.UUID, msg string) {
	if err := s.reqRepo.MarkFailed(context.WithoutCancel(ctx), id, msg); err != nil {
		log.Printf("could not mark download request #%s as failed: %v", id, err)
	}
}
