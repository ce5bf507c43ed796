package cache

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/videolibre/vault-ms-go/internal/port"
	"github.com/videolibre/vault-ms-go/internal/uuid"
)

// Cache keeps minted streaming URLs in redis until shortly before the
// signed URL itself expires, so replays of the same video share one URL.
type Cache struct {
	client *redis.Client
}

// expirySkew keeps a cached URL from outliving its signature.
const expirySkew = time.Minute

// compile-time check: *Cache must satisfy port.Cache
var _ port.Cache = (*Cache)(nil)

func NewCache(addr, password string) *Cache {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	return &Cache{client: rdb}
}

func (c *Cache) GetStreamingURL(ctx context.Context, videoID uuid.UUID) (string, error) {
	val, err := c.client.Get(ctx, getCacheKey(videoID.String())).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil // cache miss
	}
	if err != nil {
		return "", fmt.Errorf("redis get failed: %w", err)
	}
	return val, nil
}

func (c *Cache) SetStreamingURL(ctx context.Context, videoID uuid.UUID, url string, validUntil time.Time) {
	ttl := time.Until(validUntil.Add(-expirySkew))
	if ttl <= 0 {
		return
	}

	log.Printf("caching streaming URL for video #%s, valid until %s...", videoID, validUntil.Format(time.RFC1123))
	if err := c.client.Set(ctx, getCacheKey(videoID.String()), url, ttl).Err(); err != nil {
		// cache writes are best-effort; the URL was already minted
		log.Printf("redis set failed for video #%s: %v", videoID, err)
	}
}

func (c *Cache) DeleteStreamingURL(ctx context.Context, videoID uuid.UUID) error {
	log.Printf("deleting cached streaming URL for video #%s...", videoID)

	if err := c.client.Del(ctx, getCacheKey(videoID.String())).Err(); err != nil {
		return fmt.Errorf("redis del failed: %w", err)
	}
	return nil
}

func getCacheKey(id string) string {
	return "video:streaming_url:" + id
}
