package objectstore

import (
	"context"
	"fmt"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// GCSConfig is Google Cloud Storage configuration.
type GCSConfig struct {
	Bucket string `env:"GCS_BUCKET"`
	// CredentialsFile is path to service account key. Application default credentials are used when empty.
	CredentialsFile string `env:"GCS_CREDENTIALS_FILE"`
	Endpoint        string `env:"GCS_ENDPOINT"`
}

func (c GCSConfig) publicBase() string {
	return "https://storage.googleapis.com/" + c.Bucket
}

// NewGCSClient returns Google Cloud Storage client.
func NewGCSClient(ctx context.Context, cfg GCSConfig) (*storage.Client, error) {
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	if cfg.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(cfg.Endpoint), option.WithoutAuthentication())
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("can't create GCS client: %w", err)
	}

	return client, nil
}

// GCS stores objects in Google Cloud Storage bucket.
type GCS struct {
	client *storage.Client
	bucket *storage.BucketHandle
	base   string
}

// NewGCS returns new GCS. Object URLs are built from base.
func NewGCS(client *storage.Client, bucket string, base string) *GCS {
	return &GCS{
		client: client,
		bucket: client.Bucket(bucket),
		base:   base,
	}
}

// Put uploads data under key and returns object URL. Existing object is overwritten.
func (g *GCS) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	writer := g.bucket.Object(key).NewWriter(ctx)
	writer.ContentType = contentType

	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return "", fmt.Errorf("can't write object %q: %w", key, err)
	}

	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("can't finalize object %q: %w", key, err)
	}

	return objectURL(g.base, key), nil
}

// Close closes GCS client.
func (g *GCS) Close() error {
	return g.client.Close()
}
