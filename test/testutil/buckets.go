package testutil

import (
	"context"
	"fmt"

	"github.com/minio/minio-go/v7"
)

// SetupTestBucket (re)creates the given bucket and returns a cleanup func
// that empties and removes it.
func SetupTestBucket(raw *minio.Client, bucket string) (func() error, error) {
	ctx := context.Background()

	// drop any leftover from a previous run, ignoring not-found errors
	_ = raw.RemoveBucket(ctx, bucket)

	if err := raw.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
		exists, err2 := raw.BucketExists(ctx, bucket)
		if err2 != nil || !exists {
			return nil, fmt.Errorf("could not create bucket %q: %w", bucket, err)
		}
	}

	cleanup := func() error {
		for obj := range raw.ListObjects(ctx, bucket, minio.ListObjectsOptions{Recursive: true}) {
			if obj.Err != nil {
				continue
			}
			_ = raw.RemoveObject(ctx, bucket, obj.Key, minio.RemoveObjectOptions{})
		}
		if err := raw.RemoveBucket(ctx, bucket); err != nil {
			return fmt.Errorf("could not remove bucket %q: %w", bucket, err)
		}
		return nil
	}

	return cleanup, nil
}
