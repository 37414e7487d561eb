package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/andresuchdata/sales-dashboard/backend-go/internal/config"
)

// ObjectInfo represents metadata for a remote file/object.
type ObjectInfo struct {
	Key  string
	Size int64
}

// ObjectStorage captures the S3-compatible operations the report archive needs.
type ObjectStorage interface {
	ListObjects(ctx context.Context, prefix string) ([]ObjectInfo, error)
	DownloadObject(ctx context.Context, key string, destPath string) error
	UploadObject(ctx context.Context, key string, contentType string, data []byte) error
}

const (
	DriverMinio = "minio"
	DriverS3    = "s3"
)

// New returns the configured archive backend, or a no-op one when archiving
// is disabled.
func New(ctx context.Context, cfg config.StorageConfig) (ObjectStorage, error) {
	if !cfg.Enabled {
		return NoopStorage{}, nil
	}

	switch strings.ToLower(strings.TrimSpace(cfg.Driver)) {
	case "", DriverMinio:
		return NewMinioClient(ctx, cfg)
	case DriverS3:
		return NewS3Client(cfg)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

// NoopStorage discards uploads and lists nothing.
type NoopStorage struct{}

func (NoopStorage) ListObjects(ctx context.Context, prefix string) ([]ObjectInfo, error) {
	return nil, nil
}

func (NoopStorage) DownloadObject(ctx context.Context, key string, destPath string) error {
	return fmt.Errorf("object storage disabled: cannot download %s", key)
}

func (NoopStorage) UploadObject(ctx context.Context, key string, contentType string, data []byte) error {
	return nil
}

var _ ObjectStorage = NoopStorage{}
