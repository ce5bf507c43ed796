package port

import (
	"context"
	"io"
	"time"
)

// FileInfo represents metadata about a stored object.
type FileInfo struct {
	SizeBytes   int64
	ContentType string
}

// CompletedPart identifies one successfully uploaded part of a multipart
// transaction. Object stores require the finalize call to list parts in
// ascending part-number order.
type CompletedPart struct {
	PartNumber int
	ETag       string
}

// Storage defines object storage operations, including the low-level
// multipart transaction primitives used by the upload engine.
type Storage interface {
	InitBucket(bucket string) error

	InitiateMultipartUpload(ctx context.Context, fileKey, contentType string) (string, error)
	UploadPart(ctx context.Context, fileKey, uploadID string, partNumber int, reader io.Reader, size int64) (CompletedPart, error)
	CompleteMultipartUpload(ctx context.Context, fileKey, uploadID string, parts []CompletedPart) error
	AbortMultipartUpload(ctx context.Context, fileKey, uploadID string) error

	// GeneratePresignedDownloadURL mints a GET URL; downloadName sets an
	// attachment content-disposition, inline requests inline display.
	GeneratePresignedDownloadURL(ctx context.Context, fileKey string, expiry time.Duration, downloadName string, inline bool) (string, error)

	StatFile(ctx context.Context, fileKey string) (FileInfo, error)
	RemoveFile(ctx context.Context, fileKey string) error
}
