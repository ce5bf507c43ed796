package task

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

const (
	TypeProcessDownloadRequest = "download_request:process"
	TypeExpirySweep            = "download_request:expiry_sweep"
	TypeNotificationRetry      = "download_request:notification_retry"
)

type ProcessDownloadRequestPayload struct {
	RequestID string `json:"request_id"`
}

// NewProcessDownloadRequestTask creates an Asynq task for processing a
// download request by ID.
func NewProcessDownloadRequestTask(requestID string) (*asynq.Task, error) {
	p := ProcessDownloadRequestPayload{RequestID: requestID}
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("could not marshal process-download-request payload: %w", err)
	}
	return asynq.NewTask(TypeProcessDownloadRequest, data), nil
}

// ParseProcessDownloadRequestPayload parses the task payload to ProcessDownloadRequestPayload.
func ParseProcessDownloadRequestPayload(t *asynq.Task) (ProcessDownloadRequestPayload, error) {
	var p ProcessDownloadRequestPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return ProcessDownloadRequestPayload{}, fmt.Errorf("could not unmarshal payload: %w", err)
	}
	return p, nil
}

// NewExpirySweepTask creates an Asynq task that bulk-expires stale requests.
func NewExpirySweepTask() *asynq.Task {
	return asynq.NewTask(TypeExpirySweep, nil)
}

// NewNotificationRetryTask creates an Asynq task that retries recently
// failed notifications.
func NewNotificationRetryTask() *asynq.Task {
	return asynq.NewTask(TypeNotificationRetry, nil)
}
