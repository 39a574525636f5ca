package s3

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/sensa-ai-tech/OATH/internal/ports/storage"
)

// Client чтение контента (каталоги шаблонов) из S3-совместимого бакета
type Client struct {
	client *minio.Client
	bucket string
	log    *slog.Logger
}

func NewClient(client *minio.Client, bucket string, log *slog.Logger) storage.IS3Client {
	return &Client{
		client: client,
		bucket: bucket,
		log:    log,
	}
}

// GetFile получает файл по пути
func (c *Client) GetFile(ctx context.Context, path string) ([]byte, error) {
	object, err := c.client.GetObject(ctx, c.bucket, path, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get object %s: %w", path, err)
	}
	defer object.Close()

	data, err := io.ReadAll(object)
	if err != nil {
		return nil, fmt.Errorf("failed to read object %s: %w", path, err)
	}

	c.log.Debug("object fetched from s3", "bucket", c.bucket, "path", path, "size", len(data))
	return data, nil
}

// ListFiles получает список файлов по префиксу
func (c *Client) ListFiles(ctx context.Context, prefix string) ([]string, error) {
	var files []string

	objectCh := c.client.ListObjects(ctx, c.bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	})

	for object := range objectCh {
		if object.Err != nil {
			return nil, fmt.Errorf("failed to list objects with prefix %s: %w", prefix, object.Err)
		}

		// директории - объекты с ключом на /
		if object.Key != "" && !strings.HasSuffix(object.Key, "/") {
			files = append(files, object.Key)
		}
	}

	return files, nil
}
