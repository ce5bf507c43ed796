package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/videolibre/vault-ms-go/internal/cache"
	"github.com/videolibre/vault-ms-go/internal/config"
	"github.com/videolibre/vault-ms-go/internal/db"
	"github.com/videolibre/vault-ms-go/internal/handler"
	"github.com/videolibre/vault-ms-go/internal/handler/api"
	"github.com/videolibre/vault-ms-go/internal/logger"
	"github.com/videolibre/vault-ms-go/internal/mailer"
	"github.com/videolibre/vault-ms-go/internal/objectkey"
	"github.com/videolibre/vault-ms-go/internal/port"
	"github.com/videolibre/vault-ms-go/internal/repository/mariadb"
	"github.com/videolibre/vault-ms-go/internal/storage"
	"github.com/videolibre/vault-ms-go/internal/task"
	downloadSvc "github.com/videolibre/vault-ms-go/internal/usecase/download"
	videoSvc "github.com/videolibre/vault-ms-go/internal/usecase/video"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		logger.Errorf(ctx, "❌  Configuration error: %v", err)
		os.Exit(1)
	}

	logger.Init()

	database := initDb(ctx, cfg)

	r := initRouter(ctx, cfg.JWTPublicKey)

	strg := initStorage(ctx, cfg)

	videoRepo := mariadb.NewVideoRepository(database.DB)
	reqRepo := mariadb.NewDownloadRequestRepository(database.DB)

	var ca port.Cache
	var dispatcher port.TaskDispatcher
	if cfg.RedisAddr != "" {
		ca = cache.NewCache(cfg.RedisAddr, cfg.RedisPassword)
		dispatcher = task.NewDispatcher(cfg.RedisAddr, cfg.RedisPassword)
		logger.Info(ctx, "✅  Redis cache enabled")
	} else {
		ca = cache.NewNoop()
		dispatcher = task.NewNoopDispatcher()
		logger.Warn(ctx, "⚠️  Redis not configured, caching and queued processing are disabled")
	}

	smtpMailer, err := mailer.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SenderEmail, cfg.ManagerEmail)
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to initialise mailer: %v", err)
		os.Exit(1)
	}

	uploaderSvc := videoSvc.NewVideoUploader(videoRepo, strg, objectkey.NewAllocator(), videoSvc.UploaderOptions{
		ChunkSizeBytes:     cfg.ChunkSizeBytes,
		MaxConcurrentParts: cfg.MaxConcurrentParts,
		MaxFileSizeBytes:   cfg.MaxFileSizeBytes,
		PartUploadTimeout:  cfg.PartUploadTimeout,
		PublicBaseURL:      publicBaseURL(cfg),
	})
	r.With(api.WithID()).
		Post("/videos/{id}/upload", api.UploadVideoHandler(uploaderSvc))

	streamingSvc := videoSvc.NewStreamingURLIssuer(videoRepo, strg, ca, cfg.StreamingURLTTL)
	r.With(api.WithID()).
		Get("/videos/{id}/streaming_url", api.GetStreamingURLHandler(streamingSvc))

	deleterSvc := videoSvc.NewVideoStorageDeleter(videoRepo, reqRepo, strg, ca)
	r.With(api.WithID()).
		Delete("/videos/{id}/storage", api.DeleteVideoStorageHandler(deleterSvc))

	requesterSvc := downloadSvc.NewDownloadRequester(reqRepo, videoRepo, dispatcher)
	r.With(api.WithID()).
		Post("/videos/{id}/download_requests", api.RequestDownloadHandler(requesterSvc))

	r.With(api.WithID()).
		Get("/download_requests/{id}", api.GetDownloadRequestHandler(reqRepo))

	processorSvc := downloadSvc.NewDownloadProcessor(reqRepo, videoRepo, strg, smtpMailer, cfg.DownloadURLTTL)
	r.With(api.WithID()).
		Post("/download_requests/{id}/process", api.ProcessDownloadRequestHandler(processorSvc))

	listenRouter(ctx, r, cfg, database)
}

func publicBaseURL(cfg *config.Settings) string {
	scheme := "http"
	if cfg.MinioUseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s", scheme, cfg.MinioEndpoint, cfg.Bucket)
}

func initDb(ctx context.Context, cfg *config.Settings) *db.Database {
	logger.Info(ctx, "initialising database...")

	database, err := db.New(cfg.MariaDBDSN, cfg.MaxOpenConns, cfg.MaxIdleConns, cfg.ConnMaxLifetime)
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to connect to db: %v", err)
		os.Exit(1)
	}

	return database
}

func initRouter(ctx context.Context, jwtKey string) *chi.Mux {
	logger.Info(ctx, "initialising router...")

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(api.WithJWTAuth(jwtKey))

	r.NotFound(handler.NotFoundHandler())
	r.MethodNotAllowed(api.MethodNotAllowedHandler())

	return r
}

func initStorage(ctx context.Context, cfg *config.Settings) port.Storage {
	client, err := storage.NewMinioClient(
		cfg.MinioEndpoint,
		cfg.MinioAccessKey,
		cfg.MinioSecretKey,
		cfg.MinioUseSSL,
	)
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to initialize MinIO client: %v", err)
		os.Exit(1)
	}

	strg := client.WithBucket(cfg.Bucket)
	if err := strg.InitBucket(cfg.Bucket); err != nil {
		logger.Errorf(ctx, "❌  Failed to initialize bucket %q: %v", cfg.Bucket, err)
		os.Exit(1)
	}

	return strg
}

func listenRouter(ctx context.Context, r *chi.Mux, cfg *config.Settings, database *db.Database) {
	srv := &http.Server{Addr: ":" + strconv.Itoa(cfg.ServerPort), Handler: r}

	// start serving
	go func() {
		logger.Infof(ctx, "🚀 API listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf(ctx, "❌  Listen error: %v", err)
			os.Exit(1)
		}
	}()

	// block until we get SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info(ctx, "🛑 Shutdown signal received, exiting…")

	// graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf(ctx, "❌  Server shutdown failed: %v", err)
		os.Exit(1)
	}
	logger.Info(ctx, "✅  Server gracefully stopped")

	if err := database.Close(); err != nil {
		logger.Errorf(ctx, "DB close error: %v", err)
		os.Exit(1)
	}
}
