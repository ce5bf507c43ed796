package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/videolibre/vault-ms-go/internal/config"
	"github.com/videolibre/vault-ms-go/internal/db"
	workerHandler "github.com/videolibre/vault-ms-go/internal/handler/worker"
	"github.com/videolibre/vault-ms-go/internal/logger"
	"github.com/videolibre/vault-ms-go/internal/mailer"
	"github.com/videolibre/vault-ms-go/internal/port"
	"github.com/videolibre/vault-ms-go/internal/repository/mariadb"
	"github.com/videolibre/vault-ms-go/internal/storage"
	"github.com/videolibre/vault-ms-go/internal/task"
	downloadSvc "github.com/videolibre/vault-ms-go/internal/usecase/download"
	sweeperSvc "github.com/videolibre/vault-ms-go/internal/usecase/sweeper"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		logger.Errorf(ctx, "❌  Configuration error: %v", err)
		os.Exit(1)
	}
	if cfg.RedisAddr == "" {
		logger.Error(ctx, "⚠️  REDIS_ADDR must be set to run the worker")
		os.Exit(1)
	}

	logger.Init()

	database := initDb(cfg)
	defer func() {
		if err := database.Close(); err != nil {
			logger.Warnf(ctx, "DB close error: %v", err)
		}
	}()

	strg := initStorage(cfg)

	videoRepo := mariadb.NewVideoRepository(database.DB)
	reqRepo := mariadb.NewDownloadRequestRepository(database.DB)

	smtpMailer, err := mailer.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SenderEmail, cfg.ManagerEmail)
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to initialise mailer: %v", err)
		os.Exit(1)
	}

	processorSvc := downloadSvc.NewDownloadProcessor(reqRepo, videoRepo, strg, smtpMailer, cfg.DownloadURLTTL)
	sweepSvc := sweeperSvc.NewSweeper(reqRepo, videoRepo, smtpMailer, cfg.RetryWindow)

	mux := asynq.NewServeMux()
	mux.HandleFunc(task.TypeProcessDownloadRequest, func(ctx context.Context, t *asynq.Task) error {
		p, err := task.ParseProcessDownloadRequestPayload(t)
		if err != nil {
			return err
		}
		return workerHandler.ProcessDownloadRequestHandler(ctx, p, processorSvc)
	})
	mux.HandleFunc(task.TypeExpirySweep, func(ctx context.Context, t *asynq.Task) error {
		return workerHandler.ExpirySweepHandler(ctx, sweepSvc)
	})
	mux.HandleFunc(task.TypeNotificationRetry, func(ctx context.Context, t *asynq.Task) error {
		return workerHandler.NotificationRetryHandler(ctx, sweepSvc)
	})

	runWorker(ctx, mux, cfg, database)
}

func initDb(cfg *config.Settings) *db.Database {
	ctx := context.Background()
	logger.Info(ctx, "initialising database...")

	database, err := db.New(cfg.MariaDBDSN, cfg.MaxOpenConns, cfg.MaxIdleConns, cfg.ConnMaxLifetime)
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to connect to db: %v", err)
		os.Exit(1)
	}
	return database
}

func initStorage(cfg *config.Settings) port.Storage {
	client, err := storage.NewMinioClient(
		cfg.MinioEndpoint,
		cfg.MinioAccessKey,
		cfg.MinioSecretKey,
		cfg.MinioUseSSL,
	)
	if err != nil {
		logger.Errorf(context.Background(), "❌  Failed to initialize MinIO client: %v", err)
		os.Exit(1)
	}

	return client.WithBucket(cfg.Bucket)
}

func runWorker(ctx context.Context, mux *asynq.ServeMux, cfg *config.Settings, database *db.Database) {
	srv := asynq.NewServer(asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	}, asynq.Config{Concurrency: 10})

	// Run server in background
	go func() {
		if err := srv.Run(mux); err != nil {
			logger.Errorf(context.Background(), "❌  Worker failed: %v", err)
			os.Exit(1)
		}
	}()
	logger.Info(ctx, "🚀 Worker started")

	// Wait for interrupt signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh
	logger.Info(ctx, "🛑 Shutdown signal received, exiting…")

	// Give Asynq up to 30 sec to finish tasks
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	srv.Shutdown()       // stop accepting new tasks, finish in-flight
	<-shutdownCtx.Done() // either timeout or done

	logger.Info(ctx, "✅  Worker gracefully stopped")
}
