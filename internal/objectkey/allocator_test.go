package objectkey

import (
	"testing"

	guuid "github.com/google/uuid"
	"github.com/videolibre/vault-ms-go/internal/uuid"
)

func TestVideoKey(t *testing.T) {
	gen := NewAllocator()
	libID := uuid.UUID(guuid.MustParse("123e4567-e89b-12d3-a456-426614174000"))
	vidID := uuid.UUID(guuid.MustParse("987fcdeb-51a2-43d1-9f12-345678901234"))

	tests := []struct {
		name        string
		contentType string
		want        string
	}{
		{"mp4", "video/mp4", "libraries/123e4567-e89b-12d3-a456-426614174000/videos/987fcdeb-51a2-43d1-9f12-345678901234/source.mp4"},
		{"quicktime", "video/quicktime", "libraries/123e4567-e89b-12d3-a456-426614174000/videos/987fcdeb-51a2-43d1-9f12-345678901234/source.mov"},
		{"with params", "video/webm; codecs=vp9", "libraries/123e4567-e89b-12d3-a456-426614174000/videos/987fcdeb-51a2-43d1-9f12-345678901234/source.webm"},
		{"unknown", "application/octet-stream", "libraries/123e4567-e89b-12d3-a456-426614174000/videos/987fcdeb-51a2-43d1-9f12-345678901234/source.bin"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := gen.VideoKey(libID, vidID, tt.contentType)
			if got != tt.want {
				t.Errorf("VideoKey() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestVideoKey_Deterministic(t *testing.T) {
	gen := NewAllocator()
	libID := uuid.NewUUID()
	vidID := uuid.NewUUID()

	a := gen.VideoKey(libID, vidID, "video/mp4")
	b := gen.VideoKey(libID, vidID, "video/mp4")
	if a != b {
		t.Errorf("expected deterministic keys, got %q and %q", a, b)
	}
}

func TestThumbnailKey(t *testing.T) {
	gen := NewAllocator()
	libID := uuid.UUID(guuid.MustParse("123e4567-e89b-12d3-a456-426614174000"))
	vidID := uuid.UUID(guuid.MustParse("987fcdeb-51a2-43d1-9f12-345678901234"))

	want := "libraries/123e4567-e89b-12d3-a456-426614174000/videos/987fcdeb-51a2-43d1-9f12-345678901234/thumbnail.jpg"
	if got := gen.ThumbnailKey(libID, vidID); got != want {
		t.Errorf("ThumbnailKey() = %q, want %q", got, want)
	}
}
