package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	_ "github.com/go-sql-driver/mysql"

	"github.com/videolibre/vault-ms-go/internal/api_context"
	"github.com/videolibre/vault-ms-go/internal/handler/api"
	"github.com/videolibre/vault-ms-go/internal/migration"
	"github.com/videolibre/vault-ms-go/internal/mock"
	"github.com/videolibre/vault-ms-go/internal/model"
	"github.com/videolibre/vault-ms-go/internal/repository/mariadb"
	downloadSvc "github.com/videolibre/vault-ms-go/internal/usecase/download"
	"github.com/videolibre/vault-ms-go/internal/uuid"
	"github.com/videolibre/vault-ms-go/test/testutil"
)

// withRequester stands in for the JWT middleware and stamps a fixed
// requester id on every request.
func withRequester(id uuid.UUID) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), api_context.RequesterIDKey, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func TestRequestDownloadE2E(t *testing.T) {
	ctx := context.Background()

	testDB, err := testutil.SetupTestDB()
	if err != nil {
		t.Fatalf("setup DB: %v", err)
	}
	defer testDB.Cleanup()
	database := testDB.DB
	if err := migration.MigrateUp(database); err != nil {
		t.Fatalf("could not run migrations: %v", err)
	}

	videoRepo := mariadb.NewVideoRepository(database)
	reqRepo := mariadb.NewDownloadRequestRepository(database)
	dispatcher := &mock.TaskDispatcher{}
	svc := downloadSvc.NewDownloadRequester(reqRepo, videoRepo, dispatcher)

	storageKey := "lib/vid/source.mp4"
	v := &model.Video{
		ID:            uuid.NewUUID(),
		LibraryID:     uuid.NewUUID(),
		Title:         "Launch keynote",
		StorageStatus: model.VideoStatusStored,
		StorageKey:    &storageKey,
	}
	if err := videoRepo.Create(ctx, v); err != nil {
		t.Fatalf("insert video: %v", err)
	}

	requesterID := uuid.NewUUID()
	r := chi.NewRouter()
	r.Use(withRequester(requesterID))
	r.With(api.WithID()).Post("/videos/{id}/download_requests", api.RequestDownloadHandler(svc))
	ts := httptest.NewServer(r)
	defer ts.Close()

	body := bytes.NewBufferString(`{"email": "viewer@example.com"}`)
	resp, err := http.Post(ts.URL+"/videos/"+v.ID.String()+"/download_requests", "application/json", body)
	if err != nil {
		t.Fatalf("POST failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}

	var created model.DownloadRequest
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if created.Status != model.RequestStatusPending {
		t.Errorf("expected status %q, got %q", model.RequestStatusPending, created.Status)
	}
	if created.VideoID != v.ID || created.RequesterID != requesterID {
		t.Errorf("unexpected request identity: %+v", created)
	}
	if !dispatcher.ProcessCalled || dispatcher.ProcessedID != created.ID {
		t.Error("expected the request to be enqueued for processing")
	}

	// the row must be visible in the ledger
	stored, err := reqRepo.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if stored.Email != "viewer@example.com" {
		t.Errorf("expected the email to be persisted, got %q", stored.Email)
	}

	// a second identical request returns the existing row instead of a duplicate
	body = bytes.NewBufferString(`{"email": "viewer@example.com"}`)
	resp2, err := http.Post(ts.URL+"/videos/"+v.ID.String()+"/download_requests", "application/json", body)
	if err != nil {
		t.Fatalf("second POST failed: %v", err)
	}
	defer resp2.Body.Close()
	if resp2.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201 on dedup, got %d", resp2.StatusCode)
	}
	var deduped model.DownloadRequest
	if err := json.NewDecoder(resp2.Body).Decode(&deduped); err != nil {
		t.Fatalf("decode dedup response: %v", err)
	}
	if deduped.ID != created.ID {
		t.Errorf("expected the existing request #%s, got #%s", created.ID, deduped.ID)
	}

	var count int
	if err := database.QueryRow("SELECT COUNT(*) FROM download_requests").Scan(&count); err != nil {
		t.Fatalf("count rows: %v", err)
	}
	if count != 1 {
		t.Errorf("expected a single ledger row, got %d", count)
	}
}

func TestRequestDownloadE2E_VideoNotStored(t *testing.T) {
	ctx := context.Background()

	testDB, err := testutil.SetupTestDB()
	if err != nil {
		t.Fatalf("setup DB: %v", err)
	}
	defer testDB.Cleanup()
	database := testDB.DB
	if err := migration.MigrateUp(database); err != nil {
		t.Fatalf("could not run migrations: %v", err)
	}

	videoRepo := mariadb.NewVideoRepository(database)
	reqRepo := mariadb.NewDownloadRequestRepository(database)
	svc := downloadSvc.NewDownloadRequester(reqRepo, videoRepo, &mock.TaskDispatcher{})

	v := &model.Video{
		ID:            uuid.NewUUID(),
		LibraryID:     uuid.NewUUID(),
		Title:         "Not uploaded yet",
		StorageStatus: model.VideoStatusPending,
	}
	if err := videoRepo.Create(ctx, v); err != nil {
		t.Fatalf("insert video: %v", err)
	}

	r := chi.NewRouter()
	r.Use(withRequester(uuid.NewUUID()))
	r.With(api.WithID()).Post("/videos/{id}/download_requests", api.RequestDownloadHandler(svc))
	ts := httptest.NewServer(r)
	defer ts.Close()

	body := strings.NewReader(`{"email": "viewer@example.com"}`)
	resp, err := http.Post(ts.URL+"/videos/"+v.ID.String()+"/download_requests", "application/json", body)
	if err != nil {
		t.Fatalf("POST failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409 for an unstored video, got %d", resp.StatusCode)
	}
}
