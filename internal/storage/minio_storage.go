package storage

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/videolibre/vault-ms-go/internal/port"
)

// MinioStorage implements port.Storage against one bucket of a MinIO or
// S3-compatible endpoint. The underlying client is safe for concurrent use,
// so one instance serves all upload workers.
type MinioStorage struct {
	client     minioClient
	core       minioCore
	bucketName string
}

type Strg struct {
	Client minioClient
	Core   minioCore
}

// compile-time check: *MinioStorage must satisfy port.Storage
var _ port.Storage = (*MinioStorage)(nil)

func NewMinioClient(endpoint, accessKey, secretKey string, useSSL bool) (*Strg, error) {
	log.Println("initialising minio client...")
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, mapMinioErr(err)
	}
	return &Strg{Client: client, Core: &minio.Core{Client: client}}, nil
}

func (c *Strg) WithBucket(bucket string) *MinioStorage {
	return &MinioStorage{client: c.Client, core: c.Core, bucketName: bucket}
}

func (s *MinioStorage) InitBucket(bucket string) error {
	ok, err := s.client.BucketExists(context.Background(), bucket)
	if err != nil {
		return mapMinioErr(err)
	}
	if !ok {
		log.Printf("bucket %q does not exist, creating it...", bucket)
		if err := s.client.MakeBucket(context.Background(), bucket, minio.MakeBucketOptions{}); err != nil {
			return mapMinioErr(err)
		}
	}
	return nil
}

func (s *MinioStorage) InitiateMultipartUpload(ctx context.Context, fileKey, contentType string) (string, error) {
	log.Printf("initiating multipart upload for file %q in bucket %q...", fileKey, s.bucketName)

	uploadID, err := s.core.NewMultipartUpload(ctx, s.bucketName, fileKey, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", mapMinioErr(err)
	}
	return uploadID, nil
}

func (s *MinioStorage) UploadPart(ctx context.Context, fileKey, uploadID string, partNumber int, reader io.Reader, size int64) (port.CompletedPart, error) {
	objPart, err := s.core.PutObjectPart(ctx, s.bucketName, fileKey, uploadID, partNumber, reader, size, minio.PutObjectPartOptions{})
	if err != nil {
		return port.CompletedPart{}, mapMinioErr(err)
	}
	return port.CompletedPart{PartNumber: objPart.PartNumber, ETag: objPart.ETag}, nil
}

func (s *MinioStorage) CompleteMultipartUpload(ctx context.Context, fileKey, uploadID string, parts []port.CompletedPart) error {
	log.Printf("completing multipart upload %q for file %q (%d parts)...", uploadID, fileKey, len(parts))

	completeParts := make([]minio.CompletePart, len(parts))
	for i, p := range parts {
		completeParts[i] = minio.CompletePart{PartNumber: p.PartNumber, ETag: p.ETag}
	}

	_, err := s.core.CompleteMultipartUpload(ctx, s.bucketName, fileKey, uploadID, completeParts, minio.PutObjectOptions{})
	return mapMinioErr(err)
}

func (s *MinioStorage) AbortMultipartUpload(ctx context.Context, fileKey, uploadID string) error {
	log.Printf("aborting multipart upload %q for file %q...", uploadID, fileKey)

	return mapMinioErr(s.core.AbortMultipartUpload(ctx, s.bucketName, fileKey, uploadID))
}

func (s *MinioStorage) GeneratePresignedDownloadURL(ctx context.Context, fileKey string, expiry time.Duration, downloadName string, inline bool) (string, error) {
	log.Printf("generating a presigned download link for file %q in bucket %q...", fileKey, s.bucketName)

	reqParams := url.Values{}
	if inline {
		reqParams.Set("response-content-disposition", "inline")
	} else if downloadName != "" {
		reqParams.Set("response-content-disposition", fmt.Sprintf("attachment; filename=%q", downloadName))
	}

	presignedURL, err := s.client.PresignedGetObject(ctx, s.bucketName, fileKey, expiry, reqParams)
	if err != nil {
		return "", mapMinioErr(err)
	}

	return presignedURL.String(), nil
}

func (s *MinioStorage) StatFile(ctx context.Context, fileKey string) (port.FileInfo, error) {
	log.Printf("getting stats on file %q in bucket %q...", fileKey, s.bucketName)

	info, err := s.client.StatObject(ctx, s.bucketName, fileKey, minio.StatObjectOptions{})
	if err != nil {
		return port.FileInfo{}, mapMinioErr(err)
	}
	return port.FileInfo{
		SizeBytes:   info.Size,
		ContentType: info.ContentType,
	}, nil
}

func (s *MinioStorage) RemoveFile(ctx context.Context, fileKey string) error {
	log.Printf("removing file %q from bucket %q...", fileKey, s.bucketName)

	return mapMinioErr(s.client.RemoveObject(ctx, s.bucketName, fileKey, minio.RemoveObjectOptions{}))
}
