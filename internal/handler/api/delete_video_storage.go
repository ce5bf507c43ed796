package api

import (
	"database/sql"
	"errors"
	"log"
	"net/http"

	"github.com/videolibre/vault-ms-go/internal/api_context"
	"github.com/videolibre/vault-ms-go/internal/port"
)

func DeleteVideoStorageHandler(svc port.VideoStorageDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := api_context.IDFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusBadRequest, "ID is required", nil)
			return
		}

		if err := svc.DeleteVideoStorage(r.Context(), id); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				WriteError(w, http.StatusNotFound, "Video not found", nil)
				return
			}
			WriteError(w, http.StatusInternalServerError, "Could not delete video storage", err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
		log.Printf("✅  Successfully deleted storage for video #%s", id)
	}
}
