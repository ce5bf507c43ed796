package download

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/videolibre/vault-ms-go/internal/model"
	"github.com/videolibre/vault-ms-go/internal/port"
	"github.com/videolibre/vault-ms-go/internal/uuid"
)

type requestDownloadSrv struct {
	reqRepo    port.DownloadRequestRepository
	videoRepo  port.VideoRepository
	dispatcher port.TaskDispatcher
}

// compile-time check: *requestDownloadSrv must satisfy port.DownloadRequester
var _ port.DownloadRequester = (*requestDownloadSrv)(nil)

// NewDownloadRequester returns the ledger entry point. Repeated calls for
// the same (requester, video, email) tuple return the existing active
// request; the database's unique active index settles concurrent races.
func NewDownloadRequester(reqRepo port.DownloadRequestRepository, videoRepo port.VideoRepository, dispatcher port.TaskDispatcher) port.DownloadRequester {
	return &requestDownloadSrv{reqRepo: reqRepo, videoRepo: videoRepo, dispatcher: dispatcher}
}

func (s *requestDownloadSrv) RequestDownload(ctx context.Context, in port.RequestDownloadInput) (*model.DownloadRequest, error) {
	video, err := s.videoRepo.GetByID(ctx, in.VideoID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("video #%s: %w", in.VideoID, ErrVideoNotAvailable)
	}
	if err != nil {
		return nil, fmt.Errorf("could not fetch video #%s: %w", in.VideoID, err)
	}
	if !video.IsStored() {
		return nil, fmt.Errorf("video #%s is in status %q: %w", in.VideoID, video.StorageStatus, ErrVideoNotAvailable)
	}

	now := time.Now()
	if existing, err := s.reqRepo.FindActive(ctx, in.RequesterID, in.VideoID, in.Email); err != nil {
		return nil, fmt.Errorf("could not look up active request: %w", err)
	} else if existing != nil {
		if existing.IsActive(now) {
			log.Printf("returning existing active download request #%s", existing.ID)
			return existing, nil
		}
		// The row is past expiry but the sweep has not moved it yet; it
		// still holds the unique slot, so release it before inserting.
		if err := s.expireStaleRow(ctx, existing); err != nil {
			return nil, err
		}
	}

	req := &model.DownloadRequest{
		ID:          uuid.NewUUID(),
		RequesterID: in.RequesterID,
		VideoID:     in.VideoID,
		Email:       in.Email,
		Status:      model.RequestStatusPending,
	}

	err = s.reqRepo.Create(ctx, req)
	if errors.Is(err, port.ErrDuplicateActiveRequest) {
		// Lost the race: another caller inserted the active row first.
		winner, findErr := s.reqRepo.FindActive(ctx, in.RequesterID, in.VideoID, in.Email)
		if findErr != nil {
			return nil, fmt.Errorf("could not re-read winning request: %w", findErr)
		}
		if winner != nil && winner.IsActive(now) {
			return winner, nil
		}
		// The blocking row is itself past expiry (or vanished between the
		// insert and the re-read); free the slot and retry the insert once.
		if winner != nil {
			if expErr := s.expireStaleRow(ctx, winner); expErr != nil {
				return nil, expErr
			}
		}
		err = s.reqRepo.Create(ctx, req)
	}
	if err != nil {
		return nil, fmt.Errorf("could not create download request: %w", err)
	}

	// Processing runs out of band; a lost enqueue leaves the row pending and
	// the synchronous process endpoint can still pick it up.
	if err := s.dispatcher.EnqueueProcessDownloadRequest(ctx, req.ID); err != nil {
		log.Printf("could not enqueue processing of download request #%s: %v", req.ID, err)
	}

	return req, nil
}

func (s *requestDownloadSrv) expireStaleRow(ctx context.Context, req *model.DownloadRequest) error {
	log.Printf("expiring overdue download request #%s ahead of the sweep", req.ID)
	if err := s.reqRepo.MarkExpired(ctx, req.ID); err != nil {
		return fmt.Errorf("could not expire stale request #%s: %w", req.ID, err)
	}
	return nil
}
