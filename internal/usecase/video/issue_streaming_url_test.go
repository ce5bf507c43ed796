package video

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/videolibre/vault-ms-go/internal/mock"
	"github.com/videolibre/vault-ms-go/internal/model"
	"github.com/videolibre/vault-ms-go/internal/port"
)

func storedTestVideo(t *testing.T) *model.Video {
	t.Helper()
	v := testVideo(t)
	key := "libraries/lib/videos/vid/source.mp4"
	url := "https://storage.example.com/vault/" + key
	v.StorageStatus = model.VideoStatusStored
	v.StorageKey = &key
	v.StorageURL = &url
	return v
}

func TestIssueStreamingURL_Success(t *testing.T) {
	v := storedTestVideo(t)
	repo := &mock.VideoRepo{VideoRecord: v}
	strg := &mock.Storage{DownloadURL: "https://example.com/signed"}
	cache := &mock.Cache{}
	svc := NewStreamingURLIssuer(repo, strg, cache, time.Hour)

	before := time.Now()
	out, err := svc.IssueStreamingURL(context.Background(), v.ID)
	if err != nil {
		t.Fatalf("IssueStreamingURL() returned unexpected error: %v", err)
	}

	if out.URL != "https://example.com/signed" {
		t.Errorf("URL = %q", out.URL)
	}
	if out.ValidUntil.Before(before.Add(59 * time.Minute)) {
		t.Errorf("ValidUntil = %s, want roughly an hour out", out.ValidUntil)
	}

	if !strg.Inline {
		t.Error("streaming URL must request inline display")
	}
	if strg.DownloadName != "" {
		t.Errorf("streaming URL carries attachment name %q", strg.DownloadName)
	}
	if strg.TTL != time.Hour {
		t.Errorf("signed with TTL %s, want 1h", strg.TTL)
	}

	if !cache.SetCalled {
		t.Error("minted URL was not cached")
	}
	var cached port.IssueStreamingURLOutput
	if err := json.Unmarshal([]byte(cache.SetURL), &cached); err != nil {
		t.Fatalf("cached value is not the serialised output: %v", err)
	}
	if cached.URL != out.URL {
		t.Errorf("cached URL = %q, want %q", cached.URL, out.URL)
	}
}

func TestIssueStreamingURL_CacheHitSkipsMinting(t *testing.T) {
	v := storedTestVideo(t)
	validUntil := time.Now().Add(30 * time.Minute).UTC().Truncate(time.Second)
	payload, err := json.Marshal(port.IssueStreamingURLOutput{
		URL:        "https://example.com/cached",
		ValidUntil: validUntil,
	})
	if err != nil {
		t.Fatal(err)
	}

	repo := &mock.VideoRepo{VideoRecord: v}
	strg := &mock.Storage{}
	cache := &mock.Cache{URLOut: string(payload)}
	svc := NewStreamingURLIssuer(repo, strg, cache, time.Hour)

	out, err := svc.IssueStreamingURL(context.Background(), v.ID)
	if err != nil {
		t.Fatalf("IssueStreamingURL() returned unexpected error: %v", err)
	}

	if out.URL != "https://example.com/cached" {
		t.Errorf("URL = %q, want the cached one", out.URL)
	}
	if !out.ValidUntil.Equal(validUntil) {
		t.Errorf("ValidUntil = %s, want the cached expiry %s", out.ValidUntil, validUntil)
	}
	if strg.GenerateDownloadLinkCalled {
		t.Error("a new URL was minted despite the cache hit")
	}
	if repo.GetCalled {
		t.Error("repository was queried despite the cache hit")
	}
}

func TestIssueStreamingURL_NotStored(t *testing.T) {
	v := testVideo(t) // pending, no key
	repo := &mock.VideoRepo{VideoRecord: v}
	strg := &mock.Storage{}
	cache := &mock.Cache{}
	svc := NewStreamingURLIssuer(repo, strg, cache, time.Hour)

	_, err := svc.IssueStreamingURL(context.Background(), v.ID)
	if !errors.Is(err, ErrNotStored) {
		t.Fatalf("expected ErrNotStored, got %v", err)
	}
	if strg.GenerateDownloadLinkCalled {
		t.Error("a URL was minted for a video that is not stored")
	}
}

func TestIssueStreamingURL_CacheErrorFallsThrough(t *testing.T) {
	v := storedTestVideo(t)
	repo := &mock.VideoRepo{VideoRecord: v}
	strg := &mock.Storage{DownloadURL: "https://example.com/signed"}
	cache := &mock.Cache{GetErr: errors.New("redis down")}
	svc := NewStreamingURLIssuer(repo, strg, cache, time.Hour)

	out, err := svc.IssueStreamingURL(context.Background(), v.ID)
	if err != nil {
		t.Fatalf("IssueStreamingURL() returned unexpected error: %v", err)
	}
	if out.URL != "https://example.com/signed" {
		t.Errorf("URL = %q", out.URL)
	}
}
