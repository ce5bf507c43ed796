package integration

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"testing"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"github.com/videolibre/vault-ms-go/internal/cache"
	"github.com/videolibre/vault-ms-go/internal/model"
	"github.com/videolibre/vault-ms-go/internal/objectkey"
	"github.com/videolibre/vault-ms-go/internal/port"
	"github.com/videolibre/vault-ms-go/internal/repository/mariadb"
	videoSvc "github.com/videolibre/vault-ms-go/internal/usecase/video"
	"github.com/videolibre/vault-ms-go/internal/uuid"
	"github.com/videolibre/vault-ms-go/test/testutil"
)

func TestUploadVideoIntegration_Multipart(t *testing.T) {
	ctx := context.Background()
	database := setupLedgerDB(t)

	bCleanup, err := testutil.SetupTestBucket(GlobalMinioRaw, "videos")
	if err != nil {
		t.Fatalf("setup bucket: %v", err)
	}
	defer bCleanup()

	strg := GlobalStrg.WithBucket("videos")
	videoRepo := mariadb.NewVideoRepository(database)

	v := &model.Video{
		ID:            uuid.NewUUID(),
		LibraryID:     uuid.NewUUID(),
		Title:         "Launch keynote",
		StorageStatus: model.VideoStatusPending,
	}
	if err := videoRepo.Create(ctx, v); err != nil {
		t.Fatalf("insert video: %v", err)
	}

	// 12MiB with a 5MiB chunk yields two full parts and one short tail;
	// 5MiB is the smallest part size the store accepts for non-final parts
	content := testutil.GenerateMP4(12 << 20)
	uploader := videoSvc.NewVideoUploader(videoRepo, strg, objectkey.NewAllocator(), videoSvc.UploaderOptions{
		ChunkSizeBytes:     5 << 20,
		MaxConcurrentParts: 4,
		MaxFileSizeBytes:   1 << 30,
		PartUploadTimeout:  time.Minute,
		PublicBaseURL:      "http://" + GlobalMinioEndpoint + "/videos",
	})

	err = uploader.UploadVideo(ctx, port.UploadVideoInput{
		ID:          v.ID,
		File:        bytes.NewReader(content),
		SizeBytes:   int64(len(content)),
		ContentType: "video/mp4",
	})
	if err != nil {
		t.Fatalf("UploadVideo returned error: %v", err)
	}

	got, err := videoRepo.GetByID(ctx, v.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.StorageStatus != model.VideoStatusStored {
		t.Errorf("expected status %q, got %q", model.VideoStatusStored, got.StorageStatus)
	}
	if got.StorageKey == nil || *got.StorageKey == "" {
		t.Fatal("expected a storage key to be recorded")
	}
	if got.SizeBytes == nil || *got.SizeBytes != int64(len(content)) {
		t.Errorf("expected size %d, got %v", len(content), got.SizeBytes)
	}

	// the assembled object must match what was sent
	info, err := strg.StatFile(ctx, *got.StorageKey)
	if err != nil {
		t.Fatalf("StatFile failed: %v", err)
	}
	if info.SizeBytes != int64(len(content)) {
		t.Errorf("expected stored object of %d bytes, got %d", len(content), info.SizeBytes)
	}
	if info.ContentType != "video/mp4" {
		t.Errorf("expected content type video/mp4, got %q", info.ContentType)
	}
}

func TestStreamingURLIntegration_PresignedGet(t *testing.T) {
	ctx := context.Background()
	database := setupLedgerDB(t)

	bCleanup, err := testutil.SetupTestBucket(GlobalMinioRaw, "videos")
	if err != nil {
		t.Fatalf("setup bucket: %v", err)
	}
	defer bCleanup()

	strg := GlobalStrg.WithBucket("videos")
	videoRepo := mariadb.NewVideoRepository(database)

	v := &model.Video{
		ID:            uuid.NewUUID(),
		LibraryID:     uuid.NewUUID(),
		Title:         "Quarterly review",
		StorageStatus: model.VideoStatusPending,
	}
	if err := videoRepo.Create(ctx, v); err != nil {
		t.Fatalf("insert video: %v", err)
	}

	content := testutil.GenerateMP4(6 << 20)
	uploader := videoSvc.NewVideoUploader(videoRepo, strg, objectkey.NewAllocator(), videoSvc.UploaderOptions{
		ChunkSizeBytes:     5 << 20,
		MaxConcurrentParts: 2,
		MaxFileSizeBytes:   1 << 30,
		PartUploadTimeout:  time.Minute,
		PublicBaseURL:      "http://" + GlobalMinioEndpoint + "/videos",
	})
	if err := uploader.UploadVideo(ctx, port.UploadVideoInput{
		ID:          v.ID,
		File:        bytes.NewReader(content),
		SizeBytes:   int64(len(content)),
		ContentType: "video/mp4",
	}); err != nil {
		t.Fatalf("UploadVideo returned error: %v", err)
	}

	issuer := videoSvc.NewStreamingURLIssuer(videoRepo, strg, cache.NewNoop(), time.Hour)
	out, err := issuer.IssueStreamingURL(ctx, v.ID)
	if err != nil {
		t.Fatalf("IssueStreamingURL returned error: %v", err)
	}
	if out.URL == "" {
		t.Fatal("expected a non-empty URL")
	}
	if until := time.Until(out.ValidUntil); until <= 0 || until > time.Hour {
		t.Errorf("expected expiry within the next hour, got %v", out.ValidUntil)
	}

	// the minted URL must be directly fetchable without credentials
	resp, err := http.Get(out.URL)
	if err != nil {
		t.Fatalf("GET presigned URL failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 from presigned URL, got %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read presigned body: %v", err)
	}
	if !bytes.Equal(body, content) {
		t.Errorf("downloaded content does not match the uploaded bytes (%d vs %d)", len(body), len(content))
	}
}
