package api

import (
	"database/sql"
	"errors"
	"log"
	"net/http"

	"github.com/videolibre/vault-ms-go/internal/api_context"
	"github.com/videolibre/vault-ms-go/internal/port"
	"github.com/videolibre/vault-ms-go/internal/usecase/download"
)

// ProcessDownloadRequestHandler is the synchronous orchestration entry, for
// callers that cannot wait on the worker queue.
func ProcessDownloadRequestHandler(svc port.DownloadProcessor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := api_context.IDFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusBadRequest, "ID is required", nil)
			return
		}

		if err := svc.ProcessDownloadRequest(r.Context(), id); err != nil {
			switch {
			case errors.Is(err, sql.ErrNoRows):
				WriteError(w, http.StatusNotFound, "Download request not found", nil)
			case errors.Is(err, download.ErrRequestExpired):
				WriteError(w, http.StatusGone, "Download request has expired", nil)
			case errors.Is(err, download.ErrVideoNotAvailable):
				WriteError(w, http.StatusConflict, "Video is not available for download", nil)
			default:
				WriteError(w, http.StatusInternalServerError, "Could not process download request", err)
			}
			return
		}

		w.WriteHeader(http.StatusNoContent)
		log.Printf("✅  Successfully processed download request #%s", id)
	}
}
