package worker

import (
	"context"
	"errors"
	"testing"

	"github.com/videolibre/vault-ms-go/internal/mock"
)

func TestExpirySweepHandler(t *testing.T) {
	t.Run("happy path", func(t *testing.T) {
		mockSvc := &mock.Sweeper{SweepOut: 3}
		if err := ExpirySweepHandler(context.Background(), mockSvc); err != nil {
			t.Fatalf("handler returned unexpected error: %v", err)
		}
		if !mockSvc.SweepCalled {
			t.Error("sweep was never run")
		}
	})

	t.Run("error propagates", func(t *testing.T) {
		mockSvc := &mock.Sweeper{SweepErr: errors.New("boom")}
		if err := ExpirySweepHandler(context.Background(), mockSvc); err == nil {
			t.Fatal("expected the sweep error to propagate")
		}
	})
}

func TestNotificationRetryHandler(t *testing.T) {
	t.Run("happy path", func(t *testing.T) {
		mockSvc := &mock.Sweeper{}
		if err := NotificationRetryHandler(context.Background(), mockSvc); err != nil {
			t.Fatalf("handler returned unexpected error: %v", err)
		}
		if !mockSvc.RetryCalled {
			t.Error("retry was never run")
		}
	})

	t.Run("error propagates", func(t *testing.T) {
		mockSvc := &mock.Sweeper{RetryErr: errors.New("boom")}
		if err := NotificationRetryHandler(context.Background(), mockSvc); err == nil {
			t.Fatal("expected the retry error to propagate")
		}
	})
}
