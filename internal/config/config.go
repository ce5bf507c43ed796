package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Settings struct {
	MariaDBDSN      string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ServerPort      int

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioUseSSL    bool
	Bucket         string

	ChunkSizeBytes     int64
	MaxConcurrentParts int
	MaxFileSizeBytes   int64
	PartUploadTimeout  time.Duration

	StreamingURLTTL time.Duration
	DownloadURLTTL  time.Duration
	RetryWindow     time.Duration

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SenderEmail  string
	ManagerEmail string

	RedisAddr     string
	RedisPassword string

	JWTPublicKey string
}

// MaxConcurrentParts is clamped to this upper limit regardless of configuration.
const maxConcurrentPartsCeiling = 16

// ChunkSizeBytes is clamped to this lower limit; S3-compatible stores reject
// non-final parts smaller than 5 MiB, and the part-count math needs a
// positive chunk size.
const minChunkSizeBytes = int64(5 * 1024 * 1024)

func Load() (*Settings, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found; proceeding with OS environment variables")
	}

	viper.AutomaticEnv()

	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: could not read .env file: %v", err)
	}

	required := []string{
		"MARIADB_DSN",
		"MARIADB_MAX_OPEN_CONN",
		"MARIADB_MAX_IDLE_CONNS",
		"MARIADB_CONN_MAX_LIFETIME",
		"MINIO_ENDPOINT",
		"MINIO_ACCESS_KEY",
		"MINIO_SECRET_KEY",
		"VIDEOS_BUCKET",
	}
	for _, key := range required {
		if !viper.IsSet(key) {
			return nil, fmt.Errorf("%s is required", key)
		}
	}

	viper.SetDefault("SERVER_PORT", 8080)
	viper.SetDefault("CHUNK_SIZE_BYTES", int64(100*1024*1024))
	viper.SetDefault("MAX_CONCURRENT_PARTS", 4)
	viper.SetDefault("MAX_FILE_SIZE_BYTES", int64(5*1024*1024*1024))
	viper.SetDefault("PART_UPLOAD_TIMEOUT", 300)
	viper.SetDefault("STREAMING_URL_TTL", 3600)
	viper.SetDefault("DOWNLOAD_URL_TTL", 172800)
	viper.SetDefault("NOTIFICATION_RETRY_WINDOW", 86400)
	viper.SetDefault("SMTP_PORT", 587)

	concurrency := viper.GetInt("MAX_CONCURRENT_PARTS")
	if concurrency < 1 {
		concurrency = 1
	}
	if concurrency > maxConcurrentPartsCeiling {
		concurrency = maxConcurrentPartsCeiling
	}

	chunkSize := viper.GetInt64("CHUNK_SIZE_BYTES")
	if chunkSize < minChunkSizeBytes {
		chunkSize = minChunkSizeBytes
	}

	return &Settings{
		MariaDBDSN:      viper.GetString("MARIADB_DSN"),
		MaxOpenConns:    viper.GetInt("MARIADB_MAX_OPEN_CONN"),
		MaxIdleConns:    viper.GetInt("MARIADB_MAX_IDLE_CONNS"),
		ConnMaxLifetime: time.Duration(viper.GetInt("MARIADB_CONN_MAX_LIFETIME")) * time.Second,
		ServerPort:      viper.GetInt("SERVER_PORT"),

		MinioEndpoint:  viper.GetString("MINIO_ENDPOINT"),
		MinioAccessKey: viper.GetString("MINIO_ACCESS_KEY"),
		MinioSecretKey: viper.GetString("MINIO_SECRET_KEY"),
		MinioUseSSL:    viper.GetBool("MINIO_USE_SSL"),
		Bucket:         viper.GetString("VIDEOS_BUCKET"),

		ChunkSizeBytes:     chunkSize,
		MaxConcurrentParts: concurrency,
		MaxFileSizeBytes:   viper.GetInt64("MAX_FILE_SIZE_BYTES"),
		PartUploadTimeout:  time.Duration(viper.GetInt("PART_UPLOAD_TIMEOUT")) * time.Second,

		StreamingURLTTL: time.Duration(viper.GetInt("STREAMING_URL_TTL")) * time.Second,
		DownloadURLTTL:  time.Duration(viper.GetInt("DOWNLOAD_URL_TTL")) * time.Second,
		RetryWindow:     time.Duration(viper.GetInt("NOTIFICATION_RETRY_WINDOW")) * time.Second,

		SMTPHost:     viper.GetString("SMTP_HOST"),
		SMTPPort:     viper.GetInt("SMTP_PORT"),
		SMTPUsername: viper.GetString("SMTP_USERNAME"),
		SMTPPassword: viper.GetString("SMTP_PASSWORD"),
		SenderEmail:  viper.GetString("SENDER_EMAIL"),
		ManagerEmail: viper.GetString("MANAGER_EMAIL"),

		RedisAddr:     viper.GetString("REDIS_ADDR"),
		RedisPassword: viper.GetString("REDIS_PASSWORD"),

		JWTPublicKey: viper.GetString("JWT_PUBLIC_KEY"),
	}, nil
}
