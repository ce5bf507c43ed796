package api

import (
	"database/sql"
	"errors"
	"log"
	"net/http"

	"github.com/videolibre/vault-ms-go/internal/api_context"
	"github.com/videolibre/vault-ms-go/internal/port"
)

func GetDownloadRequestHandler(repo port.DownloadRequestRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := api_context.IDFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusBadRequest, "ID is required", nil)
			return
		}

		req, err := repo.GetByID(r.Context(), id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				WriteError(w, http.StatusNotFound, "Download request not found", nil)
				return
			}
			WriteError(w, http.StatusInternalServerError, "Could not get download request", err)
			return
		}

		// Only the requester may poll their own request.
		if requesterID, ok := api_context.RequesterIDFromContext(r.Context()); ok && requesterID != req.RequesterID {
			WriteError(w, http.StatusForbidden, "Download request belongs to another requester", nil)
			return
		}

		w.Header().Set("Cache-Control", "private, no-store")
		RespondJSON(w, http.StatusOK, req)
		log.Printf("✅  Returned download request #%s", id)
	}
}
