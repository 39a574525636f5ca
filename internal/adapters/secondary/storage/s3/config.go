package s3

import (
	"context"
	"fmt"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type Config struct {
	Host      string `envconfig:"HOST"`       // localhost:9000
	AccessKey string `envconfig:"ACCESS_KEY"` // minioadmin
	SecretKey string `envconfig:"SECRET_KEY"` // minioadmin
	Bucket    string `envconfig:"BUCKET" default:"oath-content"`
	UseSSL    bool   `envconfig:"USE_SSL" default:"false"`
	Prefix    string `envconfig:"PREFIX" default:"templates/"` // каталог YAML-шаблонов внутри бакета
}

// NewClient MinIO клиент с проверкой существования бакета
func (c *Config) NewClient(ctx context.Context) (*minio.Client, error) {
	if c.Host == "" || c.AccessKey == "" || c.SecretKey == "" {
		return nil, fmt.Errorf("s3 host and credentials are required")
	}

	client, err := minio.New(c.Host, &minio.Options{
		Creds:  credentials.NewStaticV4(c.AccessKey, c.SecretKey, ""),
		Secure: c.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	checkCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	exists, err := client.BucketExists(checkCtx, c.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}

	if !exists {
		return nil, fmt.Errorf("bucket %s does not exist", c.Bucket)
	}

	return client, nil
}
