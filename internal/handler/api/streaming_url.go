package api

import (
	"database/sql"
	"errors"
	"log"
	"net/http"

	"github.com/videolibre/vault-ms-go/internal/api_context"
	"github.com/videolibre/vault-ms-go/internal/port"
	"github.com/videolibre/vault-ms-go/internal/usecase/video"
)

func GetStreamingURLHandler(svc port.StreamingURLIssuer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := api_context.IDFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusBadRequest, "ID is required", nil)
			return
		}

		out, err := svc.IssueStreamingURL(r.Context(), id)
		if err != nil {
			switch {
			case errors.Is(err, sql.ErrNoRows):
				WriteError(w, http.StatusNotFound, "Video not found", nil)
			case errors.Is(err, video.ErrNotStored):
				WriteError(w, http.StatusConflict, "Video is not available for streaming", nil)
			default:
				WriteError(w, http.StatusInternalServerError, "Could not issue streaming URL", err)
			}
			return
		}

		// presigned URLs are per-signature, never shared between clients
		w.Header().Set("Cache-Control", "private, no-store")
		RespondJSON(w, http.StatusOK, out)
		log.Printf("✅  Issued streaming URL for video #%s", id)
	}
}
