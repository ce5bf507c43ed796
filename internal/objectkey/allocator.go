package objectkey

import (
	"fmt"
	"path"
	"strings"

	"github.com/videolibre/vault-ms-go/internal/uuid"
)

// Allocator derives deterministic object-store keys for video assets.
// Keys shard on the library so one library's objects list together:
//
//	libraries/{libraryID}/videos/{videoID}/source{ext}
//	libraries/{libraryID}/videos/{videoID}/thumbnail.jpg
type Allocator struct{}

func NewAllocator() *Allocator {
	return &Allocator{}
}

func (a *Allocator) VideoKey(libraryID, videoID uuid.UUID, contentType string) string {
	return path.Join(a.prefix(libraryID, videoID), "source"+extensionFor(contentType))
}

func (a *Allocator) ThumbnailKey(libraryID, videoID uuid.UUID) string {
	return path.Join(a.prefix(libraryID, videoID), "thumbnail.jpg")
}

func (a *Allocator) prefix(libraryID, videoID uuid.UUID) string {
	return fmt.Sprintf("libraries/%s/videos/%s", libraryID, videoID)
}

func extensionFor(contentType string) string {
	ct := strings.ToLower(strings.TrimSpace(contentType))
	if i := strings.Index(ct, ";"); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}
	switch ct {
	case "video/mp4":
		return ".mp4"
	case "video/quicktime":
		return ".mov"
	case "video/webm":
		return ".webm"
	case "video/x-matroska":
		return ".mkv"
	case "video/mpeg":
		return ".mpeg"
	default:
		return ".bin"
	}
}
