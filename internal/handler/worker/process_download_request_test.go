package worker

import (
	"context"
	"errors"
	"testing"

	"github.com/videolibre/vault-ms-go/internal/mock"
	"github.com/videolibre/vault-ms-go/internal/task"
)

func TestProcessDownloadRequestHandler(t *testing.T) {
	t.Run("happy path", func(t *testing.T) {
		mockSvc := &mock.DownloadProcessor{}
		p := task.ProcessDownloadRequestPayload{RequestID: "aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee"}

		if err := ProcessDownloadRequestHandler(context.Background(), p, mockSvc); err != nil {
			t.Fatalf("handler returned unexpected error: %v", err)
		}
		if !mockSvc.Called {
			t.Fatal("processor was never called")
		}
		if mockSvc.ID.String() != p.RequestID {
			t.Errorf("processor got ID %s; want %s", mockSvc.ID, p.RequestID)
		}
	})

	t.Run("invalid id", func(t *testing.T) {
		mockSvc := &mock.DownloadProcessor{}
		p := task.ProcessDownloadRequestPayload{RequestID: "nope"}

		if err := ProcessDownloadRequestHandler(context.Background(), p, mockSvc); err == nil {
			t.Fatal("expected an error for an invalid id")
		}
		if mockSvc.Called {
			t.Error("processor was called with an invalid id")
		}
	})

	t.Run("service error propagates for retry", func(t *testing.T) {
		mockSvc := &mock.DownloadProcessor{Err: errors.New("boom")}
		p := task.ProcessDownloadRequestPayload{RequestID: "aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee"}

		if err := ProcessDownloadRequestHandler(context.Background(), p, mockSvc); err == nil {
			t.Fatal("expected the service error to propagate")
		}
	})
}
