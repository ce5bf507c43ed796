package video

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/videolibre/vault-ms-go/internal/port"
	"github.com/videolibre/vault-ms-go/internal/uuid"
)

type streamingURLSrv struct {
	repo  port.VideoRepository
	strg  port.Storage
	cache port.Cache
	ttl   time.Duration
}

// compile-time check: *streamingURLSrv must satisfy port.StreamingURLIssuer
var _ port.StreamingURLIssuer = (*streamingURLSrv)(nil)

// NewStreamingURLIssuer returns the playback URL service. Minted URLs are
// cached for their validity window minus a skew, so replays share one URL.
func NewStreamingURLIssuer(repo port.VideoRepository, strg port.Storage, cache port.Cache, ttl time.Duration) port.StreamingURLIssuer {
	return &streamingURLSrv{repo: repo, strg: strg, cache: cache, ttl: ttl}
}

func (s *streamingURLSrv) IssueStreamingURL(ctx context.Context, id uuid.UUID) (port.IssueStreamingURLOutput, error) {
	// The cached value is the serialised output, so a hit keeps the
	// original expiry instead of pretending the URL is fresh.
	if cached, err := s.cache.GetStreamingURL(ctx, id); err == nil && cached != "" {
		var out port.IssueStreamingURLOutput
		if err := json.Unmarshal([]byte(cached), &out); err == nil {
			log.Printf("streaming URL for video #%s served from cache", id)
			return out, nil
		}
	}

	video, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return port.IssueStreamingURLOutput{}, fmt.Errorf("could not fetch video #%s: %w", id, err)
	}
	if !video.IsStored() {
		return port.IssueStreamingURLOutput{}, fmt.Errorf("video #%s: %w", id, ErrNotStored)
	}

	url, err := s.strg.GeneratePresignedDownloadURL(ctx, *video.StorageKey, s.ttl, "", true)
	if err != nil {
		return port.IssueStreamingURLOutput{}, fmt.Errorf("could not generate streaming URL for video #%s: %w", id, err)
	}

	out := port.IssueStreamingURLOutput{
		URL:        url,
		ValidUntil: time.Now().Add(s.ttl),
	}

	if payload, err := json.Marshal(out); err == nil {
		s.cache.SetStreamingURL(ctx, id, string(payload), out.ValidUntil)
	}

	return out, nil
}
