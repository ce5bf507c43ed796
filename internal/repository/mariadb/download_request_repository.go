package mariadb

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/videolibre/vault-ms-go/internal/model"
	"github.com/videolibre/vault-ms-go/internal/port"
	"github.com/videolibre/vault-ms-go/internal/uuid"
)

type DownloadRequestRepository struct {
	db *sql.DB
}

// compile-time check: *DownloadRequestRepository must satisfy port.DownloadRequestRepository
var _ port.DownloadRequestRepository = (*DownloadRequestRepository)(nil)

func NewDownloadRequestRepository(db *sql.DB) *DownloadRequestRepository {
	return &DownloadRequestRepository{db: db}
}

const downloadRequestColumns = `id, requester_id, video_id, email, status, expires_at, access_url, external_request_id, notification_sent, notification_sent_at, last_error, created_at, updated_at`

const mysqlErrDuplicateEntry = 1062

func (r *DownloadRequestRepository) GetByID(ctx context.Context, ID uuid.UUID) (*model.DownloadRequest, error) {
	log.Printf("fetching download request #%s from the database...", ID)

	const query = `
      SELECT ` + downloadRequestColumns + `
      FROM download_requests
      WHERE id = ?
    `
	return scanDownloadRequest(r.db.QueryRowContext(ctx, query, ID))
}

// Create inserts a new request. The uniq_active_request index rejects a
// second active row for the same (requester, video, email) tuple; that
// rejection surfaces as port.ErrDuplicateActiveRequest so the ledger can
// re-read the winner instead of failing the caller.
func (r *DownloadRequestRepository) Create(ctx context.Context, req *model.DownloadRequest) error {
	log.Printf("creating download request #%s for video #%s...", req.ID, req.VideoID)

	const query = `
      INSERT INTO download_requests
        (id, requester_id, video_id, email, status, expires_at, access_url, external_request_id, notification_sent, notification_sent_at, last_error)
      VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    `
	_, err := r.db.ExecContext(ctx, query,
		req.ID, req.RequesterID, req.VideoID, req.Email,
		req.Status, req.ExpiresAt, req.AccessURL, req.ExternalRequestID,
		req.NotificationSent, req.NotificationSentAt, req.LastError,
	)
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlErrDuplicateEntry {
		return port.ErrDuplicateActiveRequest
	}
	return err
}

func (r *DownloadRequestRepository) FindActive(ctx context.Context, requesterID, videoID uuid.UUID, email string) (*model.DownloadRequest, error) {
	log.Printf("looking up active download request for video #%s...", videoID)

	const query = `
      SELECT ` + downloadRequestColumns + `
      FROM download_requests
      WHERE requester_id = ? AND video_id = ? AND email = ? AND is_active = 1
      LIMIT 1
    `
	req, err := scanDownloadRequest(r.db.QueryRowContext(ctx, query, requesterID, videoID, email))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return req, err
}

// StoreAccessURL runs before the notification attempt, so a failed send
// still leaves a retryable row carrying its URL.
func (r *DownloadRequestRepository) StoreAccessURL(ctx context.Context, ID uuid.UUID, accessURL, externalRequestID string, expiresAt time.Time) error {
	log.Printf("storing access URL on download request #%s...", ID)

	const query = `
      UPDATE download_requests
      SET
        access_url          = ?,
        external_request_id = ?,
        expires_at          = ?
      WHERE id = ?
    `
	_, err := r.db.ExecContext(ctx, query, accessURL, externalRequestID, expiresAt, ID)
	return err
}

func (r *DownloadRequestRepository) MarkCompleted(ctx context.Context, ID uuid.UUID, accessURL, externalRequestID string, expiresAt time.Time) error {
	log.Printf("marking download request #%s as completed...", ID)

	const query = `
      UPDATE download_requests
      SET
        status               = 'completed',
        access_url           = ?,
        external_request_id  = ?,
        expires_at           = ?,
        notification_sent    = 1,
        notification_sent_at = NOW(),
        last_error           = NULL
      WHERE id = ?
    `
	_, err := r.db.ExecContext(ctx, query, accessURL, externalRequestID, expiresAt, ID)
	return err
}

// MarkFailed records the failure but keeps any previously issued URL: a
// partially-succeeded flow may still hold a valid link worth retrying.
func (r *DownloadRequestRepository) MarkFailed(ctx context.Context, ID uuid.UUID, errorMessage string) error {
	log.Printf("marking download request #%s as failed...", ID)

	const query = `
      UPDATE download_requests
      SET
        status     = 'failed',
        last_error = ?
      WHERE id = ?
    `
	_, err := r.db.ExecContext(ctx, query, errorMessage, ID)
	return err
}

// MarkExpired moves one overdue row out of the active index. The status
// filter keeps terminal rows untouched even when two callers race on the
// same stale request.
func (r *DownloadRequestRepository) MarkExpired(ctx context.Context, ID uuid.UUID) error {
	log.Printf("expiring download request #%s...", ID)

	const query = `
      UPDATE download_requests
      SET status = 'expired'
      WHERE id = ? AND status IN ('pending', 'completed')
    `
	_, err := r.db.ExecContext(ctx, query, ID)
	return err
}

// ExpireStale is the only bulk mutation in the subsystem. The single UPDATE
// both selects and transitions the rows, so concurrent sweeper runs cannot
// double-process or observe a half-updated batch.
func (r *DownloadRequestRepository) ExpireStale(ctx context.Context, now time.Time) (int64, error) {
	const query = `
      UPDATE download_requests
      SET status = 'expired'
      WHERE status IN ('pending', 'completed')
        AND expires_at IS NOT NULL
        AND expires_at < ?
    `
	res, err := r.db.ExecContext(ctx, query, now)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *DownloadRequestRepository) ListRetryable(ctx context.Context, since time.Time) ([]*model.DownloadRequest, error) {
	log.Printf("listing failed download requests updated since %s...", since.Format(time.RFC3339))

	const query = `
      SELECT ` + downloadRequestColumns + `
      FROM download_requests
      WHERE status = 'failed'
        AND access_url IS NOT NULL
        AND updated_at >= ?
      ORDER BY updated_at ASC
    `
	rows, err := r.db.QueryContext(ctx, query, since)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []*model.DownloadRequest
	for rows.Next() {
		req, err := scanDownloadRequest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, req)
	}
	return out, rows.Err()
}

func (r *DownloadRequestRepository) InvalidatePendingForVideo(ctx context.Context, videoID uuid.UUID, reason string) (int64, error) {
	log.Printf("invalidating pending download requests for video #%s...", videoID)

	const query = `
      UPDATE download_requests
      SET
        status     = 'failed',
        last_error = ?
      WHERE video_id = ? AND status = 'pending'
    `
	res, err := r.db.ExecContext(ctx, query, reason, videoID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDownloadRequest(row rowScanner) (*model.DownloadRequest, error) {
	var req model.DownloadRequest
	if err := row.Scan(
		&req.ID, &req.RequesterID, &req.VideoID, &req.Email,
		&req.Status, &req.ExpiresAt, &req.AccessURL, &req.ExternalRequestID,
		&req.NotificationSent, &req.NotificationSentAt, &req.LastError,
		&req.CreatedAt, &req.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &req, nil
}
