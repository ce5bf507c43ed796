package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/videolibre/vault-ms-go/internal/api_context"
	"github.com/videolibre/vault-ms-go/internal/port"
	"github.com/videolibre/vault-ms-go/internal/usecase/video"
)

// memoryThreshold caps what the multipart parser keeps in memory; anything
// bigger spools to a temp file, which satisfies the io.ReaderAt the engine
// needs either way.
const memoryThreshold = 32 << 20

func UploadVideoHandler(svc port.VideoUploader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := api_context.IDFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusBadRequest, "ID is required", nil)
			return
		}

		if err := r.ParseMultipartForm(memoryThreshold); err != nil {
			WriteError(w, http.StatusBadRequest, "could not parse multipart form", err)
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			WriteError(w, http.StatusBadRequest, "file field is required", err)
			return
		}
		defer func() { _ = file.Close() }()

		contentType := header.Header.Get("Content-Type")
		if contentType == "" {
			contentType = "application/octet-stream"
		}

		in := port.UploadVideoInput{
			ID:          id,
			File:        file,
			SizeBytes:   header.Size,
			ContentType: contentType,
		}
		if err := svc.UploadVideo(r.Context(), in); err != nil {
			switch {
			case errors.Is(err, video.ErrFileTooLarge):
				WriteError(w, http.StatusRequestEntityTooLarge, "file exceeds the size limit", err)
			case errors.Is(err, video.ErrPartUploadFailed):
				WriteError(w, http.StatusBadGateway, "upload to storage failed", err)
			default:
				WriteError(w, http.StatusInternalServerError, "could not upload video", err)
			}
			return
		}

		w.WriteHeader(http.StatusNoContent)
		log.Printf("✅  Successfully uploaded video #%s (%d bytes)", id, header.Size)
	}
}
