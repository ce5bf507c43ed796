package worker

import (
	"context"
	"log"

	"github.com/videolibre/vault-ms-go/internal/port"
	"github.com/videolibre/vault-ms-go/internal/task"
	"github.com/videolibre/vault-ms-go/internal/uuid"
)

// ProcessDownloadRequestHandler handles a process-download-request task.
// It converts the incoming task payload to the input expected by the
// download processor and delegates the call.
func ProcessDownloadRequestHandler(ctx context.Context, p task.ProcessDownloadRequestPayload, svc port.DownloadProcessor) error {
	id, err := uuid.Parse(p.RequestID)
	if err != nil {
		log.Printf("❌  Invalid download request ID %q: %v", p.RequestID, err)
		return err
	}

	if err := svc.ProcessDownloadRequest(ctx, id); err != nil {
		log.Printf("❌  Failed to process download request #%s: %v", id, err)
		return err
	}

	log.Printf("✅  Successfully processed download request #%s", id)
	return nil
}
