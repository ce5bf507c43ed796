package storage

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/minio/minio-go/v7"
	"github.com/videolibre/vault-ms-go/internal/usecase/video"
)

func mapMinioErr(err error) error {
	if err == nil {
		return nil
	}

	// Network-level failures are retryable at the whole-upload level.
	var netErr net.Error
	if errors.As(err, &netErr) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", video.ErrTransport, err)
	}

	resp := minio.ToErrorResponse(err)
	switch resp.Code {
	case "NoSuchKey":
		return video.ErrObjectNotFound
	case "NoSuchBucket":
		return video.ErrBucketNotFound
	case "AccessDenied", "InvalidAccessKeyId", "SignatureDoesNotMatch":
		return video.ErrUnauthorized
	default:
		// catch everything else
		return fmt.Errorf("%w: %v", video.ErrInternal, err)
	}
}
