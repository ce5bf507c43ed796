package sweeper

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/videolibre/vault-ms-go/internal/port"
)

type sweeperSrv struct {
	reqRepo     port.DownloadRequestRepository
	videoRepo   port.VideoRepository
	mailer      port.Mailer
	retryWindow time.Duration
}

// compile-time check: *sweeperSrv must satisfy port.Sweeper
var _ port.Sweeper = (*sweeperSrv)(nil)

// NewSweeper returns the lifecycle reconciler: one pass bulk-expires
// overdue requests, the other retries notifications that failed recently.
func NewSweeper(reqRepo port.DownloadRequestRepository, videoRepo port.VideoRepository, mailer port.Mailer, retryWindow time.Duration) port.Sweeper {
	return &sweeperSrv{reqRepo: reqRepo, videoRepo: videoRepo, mailer: mailer, retryWindow: retryWindow}
}

// RunExpirySweep moves every overdue pending/completed request to expired.
// The repository does it in a single statement, so a second run right after
// finds nothing left to move.
func (s *sweeperSrv) RunExpirySweep(ctx context.Context) (int64, error) {
	count, err := s.reqRepo.ExpireStale(ctx, time.Now())
	if err != nil {
		return 0, fmt.Errorf("expiry sweep failed: %w", err)
	}
	log.Printf("expiry sweep moved %d download request(s) to expired", count)
	return count, nil
}

// RunNotificationRetry re-sends the manager notification for requests that
// failed inside the retry window and still hold a valid URL. Each request is
// settled individually, so one bad row does not starve the rest.
func (s *sweeperSrv) RunNotificationRetry(ctx context.Context) error {
	since := time.Now().Add(-s.retryWindow)
	retryable, err := s.reqRepo.ListRetryable(ctx, since)
	if err != nil {
		return fmt.Errorf("could not list retryable requests: %w", err)
	}
	if len(retryable) == 0 {
		log.Printf("notification retry: nothing to do")
		return nil
	}

	now := time.Now()
	var retried, settled int
	for _, req := range retryable {
		if req.AccessURL == nil || req.ExpiresAt == nil {
			continue
		}
		if req.ExpiresAt.Before(now) {
			// The link died before we could re-send it; the expiry
			// sweep will move the row to expired.
			continue
		}
		retried++

		var title string
		if v, err := s.videoRepo.GetByID(ctx, req.VideoID); err == nil {
			title = v.Title
		} else {
			log.Printf("could not fetch video #%s for retried notification of request #%s: %v", req.VideoID, req.ID, err)
		}

		summary := port.DownloadSummary{
			RequestID:  req.ID.String(),
			VideoTitle: title,
			Email:      req.Email,
			AccessURL:  *req.AccessURL,
		}
		if err := s.mailer.NotifyManager(ctx, []port.DownloadSummary{summary}); err != nil {
			log.Printf("retry of notification for request #%s failed: %v", req.ID, err)
			continue
		}

		externalRequestID := ""
		if req.ExternalRequestID != nil {
			externalRequestID = *req.ExternalRequestID
		}
		if err := s.reqRepo.MarkCompleted(ctx, req.ID, *req.AccessURL, externalRequestID, *req.ExpiresAt); err != nil {
			log.Printf("could not mark retried request #%s as completed: %v", req.ID, err)
			continue
		}
		settled++
	}

	log.Printf("notification retry: %d attempted, %d settled", retried, settled)
	return nil
}
