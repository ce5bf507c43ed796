package mock

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/videolibre/vault-ms-go/internal/port"
)

// Storage implements the storage interface for tests. Part uploads are
// recorded under a mutex because the upload engine runs them concurrently.
type Storage struct {
	mu sync.Mutex

	// stored values
	StatInfoOut port.FileInfo
	UploadIDOut string
	DownloadURL string

	// captured inputs
	ObjectKey      string
	TTL            time.Duration
	DownloadName   string
	Inline         bool
	UploadedParts  []int
	UploadedSizes  []int64
	CompletedParts []port.CompletedPart
	AbortedIDs     []string

	// errors
	InitBucketErr           error
	InitiateErr             error
	UploadPartErr           error
	FailPartNumber          int // when non-zero, only this part number fails
	CompleteErr             error
	AbortErr                error
	GenerateDownloadLinkErr error
	StatErr                 error
	RemoveErr               error

	// call flags
	InitBucketCalled           bool
	InitiateCalled             bool
	CompleteCalled             bool
	AbortCalled                int
	GenerateDownloadLinkCalled bool
	StatCalled                 bool
	RemoveCalled               bool
}

var _ port.Storage = (*Storage)(nil)

func (m *Storage) InitBucket(bucket string) error {
	m.InitBucketCalled = true
	return m.InitBucketErr
}

func (m *Storage) InitiateMultipartUpload(ctx context.Context, fileKey, contentType string) (string, error) {
	m.InitiateCalled = true
	m.ObjectKey = fileKey
	if m.InitiateErr != nil {
		return "", m.InitiateErr
	}
	if m.UploadIDOut != "" {
		return m.UploadIDOut, nil
	}
	return "upload-id-1", nil
}

func (m *Storage) UploadPart(ctx context.Context, fileKey, uploadID string, partNumber int, reader io.Reader, size int64) (port.CompletedPart, error) {
	if err := ctx.Err(); err != nil {
		return port.CompletedPart{}, err
	}
	if m.FailPartNumber != 0 && partNumber == m.FailPartNumber {
		return port.CompletedPart{}, m.UploadPartErr
	}
	if m.FailPartNumber == 0 && m.UploadPartErr != nil {
		return port.CompletedPart{}, m.UploadPartErr
	}

	m.mu.Lock()
	m.UploadedParts = append(m.UploadedParts, partNumber)
	m.UploadedSizes = append(m.UploadedSizes, size)
	m.mu.Unlock()

	return port.CompletedPart{PartNumber: partNumber, ETag: fmt.Sprintf("etag-%d", partNumber)}, nil
}

func (m *Storage) CompleteMultipartUpload(ctx context.Context, fileKey, uploadID string, parts []port.CompletedPart) error {
	m.CompleteCalled = true
	m.CompletedParts = parts
	return m.CompleteErr
}

func (m *Storage) AbortMultipartUpload(ctx context.Context, fileKey, uploadID string) error {
	m.mu.Lock()
	m.AbortCalled++
	m.AbortedIDs = append(m.AbortedIDs, uploadID)
	m.mu.Unlock()
	return m.AbortErr
}

func (m *Storage) GeneratePresignedDownloadURL(ctx context.Context, fileKey string, expiry time.Duration, downloadName string, inline bool) (string, error) {
	m.GenerateDownloadLinkCalled = true
	m.ObjectKey = fileKey
	m.TTL = expiry
	m.DownloadName = downloadName
	m.Inline = inline
	if m.GenerateDownloadLinkErr != nil {
		return "", m.GenerateDownloadLinkErr
	}
	if m.DownloadURL != "" {
		return m.DownloadURL, nil
	}
	return "https://example.com/download", nil
}

func (m *Storage) StatFile(ctx context.Context, fileKey string) (port.FileInfo, error) {
	m.StatCalled = true
	if m.StatErr != nil {
		return port.FileInfo{}, m.StatErr
	}
	return m.StatInfoOut, nil
}

func (m *Storage) RemoveFile(ctx context.Context, fileKey string) error {
	m.RemoveCalled = true
	m.ObjectKey = fileKey
	return m.RemoveErr
}
