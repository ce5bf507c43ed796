package testutil

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"

	"github.com/videolibre/vault-ms-go/internal/storage"
)

type MinIOContainerInfo struct {
	Endpoint string
	Strg     *storage.Strg
	// Raw carries the unwrapped client for test housekeeping (bucket
	// creation and teardown) that the storage wrapper does not expose.
	Raw     *minio.Client
	Cleanup func()
}

func StartMinIOContainer() (*MinIOContainerInfo, error) {
	const (
		image        = "minio/minio"
		tag          = "latest"
		rootUser     = "minioadmin"
		rootPassword = "minioadmin"
		internalPort = "9000/tcp"
	)

	pool, err := dockertest.NewPool("")
	if err != nil {
		return nil, fmt.Errorf("could not connect to docker: %w", err)
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: image,
		Tag:        tag,
		Env: []string{
			fmt.Sprintf("MINIO_ROOT_USER=%s", rootUser),
			fmt.Sprintf("MINIO_ROOT_PASSWORD=%s", rootPassword),
		},
		Cmd: []string{"server", "/data"},
	}, func(hostConfig *docker.HostConfig) {
		hostConfig.AutoRemove = true
		hostConfig.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		return nil, fmt.Errorf("could not start minio container: %w", err)
	}

	var endpoint string
	var raw *minio.Client
	if err := pool.Retry(func() error {
		port := resource.GetPort(internalPort)
		endpoint = fmt.Sprintf("localhost:%s", port)
		client, err := minio.New(endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(rootUser, rootPassword, ""),
			Secure: false,
		})
		if err != nil {
			return err
		}
		// ListBuckets is a light operation to check health
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if _, err := client.ListBuckets(ctx); err != nil {
			return err
		}
		raw = client
		return nil
	}); err != nil {
		_ = pool.Purge(resource)
		return nil, fmt.Errorf("minio did not become ready: %w", err)
	}

	strg, err := storage.NewMinioClient(endpoint, rootUser, rootPassword, false)
	if err != nil {
		_ = pool.Purge(resource)
		return nil, fmt.Errorf("could not create minio client: %w", err)
	}

	ci := &MinIOContainerInfo{
		Endpoint: endpoint,
		Strg:     strg,
		Raw:      raw,
		Cleanup: func() {
			if err := pool.Purge(resource); err != nil {
				log.Printf("could not purge minio container: %s", err)
			}
		},
	}
	return ci, nil
}
