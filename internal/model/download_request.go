package model

import (
	"time"

	"github.com/videolibre/vault-ms-go/internal/uuid"
)

const (
	RequestStatusPending   = "pending"
	RequestStatusCompleted = "completed"
	RequestStatusFailed    = "failed"
	RequestStatusExpired   = "expired"
)

// DownloadRequest records one user's request to receive a download link
// for a video. At most one active (pending or completed, not yet expired)
// request exists per (requester, video, email) tuple; the uniqueness is
// enforced by the database, see the download_requests migration.
type DownloadRequest struct {
	ID                 uuid.UUID  `json:"id"`
	RequesterID        uuid.UUID  `json:"requester_id"`
	VideoID            uuid.UUID  `json:"video_id"`
	Email              string     `json:"email"`
	Status             string     `json:"status"`
	ExpiresAt          *time.Time `json:"expires_at"`
	AccessURL          *string    `json:"access_url"`
	ExternalRequestID  *string    `json:"external_request_id"`
	NotificationSent   bool       `json:"notification_sent"`
	NotificationSentAt *time.Time `json:"notification_sent_at"`
	LastError          *string    `json:"last_error"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// IsActive reports whether the request still claims the dedup slot for
// its tuple: pending or completed, and not past expiry.
func (r *DownloadRequest) IsActive(now time.Time) bool {
	if r.Status != RequestStatusPending && r.Status != RequestStatusCompleted {
		return false
	}
	if r.ExpiresAt != nil && r.ExpiresAt.Before(now) {
		return false
	}
	return true
}
