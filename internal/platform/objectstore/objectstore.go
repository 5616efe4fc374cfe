package objectstore

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

const (
	DriverS3  = "s3"
	DriverGCS = "gcs"
)

// ErrUnknownDriver is returned for unsupported storage driver.
var ErrUnknownDriver = errors.New("unknown object storage driver")

// Config is object storage configuration.
type Config struct {
	Driver string `env:"STORAGE_DRIVER" envDefault:"s3"`
	// PublicURLBase is prefix of returned object URLs, e.g. CDN address. Defaults to the driver's public URL.
	PublicURLBase string `env:"PUBLIC_URL_BASE"`
	S3            S3Config
	GCS           GCSConfig
}

// Bucket stores objects and returns their public URLs.
type Bucket interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
	Close() error
}

// Open returns Bucket of configured driver.
func Open(ctx context.Context, cfg Config) (Bucket, error) {
	switch cfg.Driver {
	case DriverS3:
		client, err := NewS3Client(ctx, cfg.S3)
		if err != nil {
			return nil, err
		}
		return NewS3(client, cfg.S3.Bucket, publicBase(cfg.PublicURLBase, cfg.S3.publicBase())), nil
	case DriverGCS:
		client, err := NewGCSClient(ctx, cfg.GCS)
		if err != nil {
			return nil, err
		}
		return NewGCS(client, cfg.GCS.Bucket, publicBase(cfg.PublicURLBase, cfg.GCS.publicBase())), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
	}
}

func publicBase(configured, fallback string) string {
	if configured != "" {
		return strings.TrimRight(configured, "/")
	}
	return fallback
}

func objectURL(base, key string) string {
	return base + "/" + strings.TrimLeft(key, "/")
}
