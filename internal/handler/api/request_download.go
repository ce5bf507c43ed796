package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/videolibre/vault-ms-go/internal/api_context"
	"github.com/videolibre/vault-ms-go/internal/port"
	"github.com/videolibre/vault-ms-go/internal/usecase/download"
	"github.com/videolibre/vault-ms-go/internal/validation"
)

type requestDownloadBody struct {
	Email string `json:"email" validate:"required,email"`
}

func RequestDownloadHandler(svc port.DownloadRequester) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		videoID, ok := api_context.IDFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusBadRequest, "ID is required", nil)
			return
		}
		requesterID, ok := api_context.RequesterIDFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusUnauthorized, "requester is not authenticated", nil)
			return
		}

		var body requestDownloadBody
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			WriteError(w, http.StatusBadRequest, "could not decode request body", err)
			return
		}
		if err := validation.ValidateStruct(body); err != nil {
			details, jsonErr := validation.ErrorsToJson(err)
			if jsonErr != nil {
				WriteError(w, http.StatusBadRequest, "invalid request body", jsonErr)
				return
			}
			WriteError(w, http.StatusBadRequest, details, nil)
			return
		}

		req, err := svc.RequestDownload(r.Context(), port.RequestDownloadInput{
			RequesterID: requesterID,
			VideoID:     videoID,
			Email:       body.Email,
		})
		if err != nil {
			if errors.Is(err, download.ErrVideoNotAvailable) {
				WriteError(w, http.StatusConflict, "Video is not available for download", nil)
				return
			}
			WriteError(w, http.StatusInternalServerError, "Could not create download request", err)
			return
		}

		RespondJSON(w, http.StatusCreated, req)
		log.Printf("✅  Download request #%s registered for video #%s", req.ID, videoID)
	}
}
