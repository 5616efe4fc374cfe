package objectstore_test

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/MichalMitros/catalog-importer/internal/platform/objectstore"
	"github.com/MichalMitros/catalog-importer/internal/platform/objectstore/mocks"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUnitS3Put(t *testing.T) {
	data := []byte("image data")

	tests := map[string]struct {
		base    string
		key     string
		putErr  error
		wantURL string
		wantErr bool
	}{
		"cdn base": {
			base:    "https://cdn.example.com",
			key:     "products/90005/lucky-bracelet-1-1700000000000.jpg",
			wantURL: "https://cdn.example.com/products/90005/lucky-bracelet-1-1700000000000.jpg",
		},
		"leading slash in key": {
			base:    "https://bucket.s3.us-east-1.amazonaws.com",
			key:     "/a.png",
			wantURL: "https://bucket.s3.us-east-1.amazonaws.com/a.png",
		},
		"put error": {
			base:    "https://cdn.example.com",
			key:     "a.png",
			putErr:  errors.New("access denied"),
			wantErr: true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			client := mocks.NewS3API(t)
			client.On("PutObject", mock.Anything, mock.MatchedBy(func(in *s3.PutObjectInput) bool {
				body, err := io.ReadAll(in.Body)
				return err == nil &&
					*in.Bucket == "catalog" &&
					*in.Key == tt.key &&
					*in.ContentType == "image/jpeg" &&
					*in.ContentLength == int64(len(data)) &&
					string(body) == string(data)
			})).Return(&s3.PutObjectOutput{}, tt.putErr).Once()

			url, err := objectstore.NewS3(client, "catalog", tt.base).Put(context.TODO(), tt.key, data, "image/jpeg")

			if tt.wantErr {
				assert.ErrorIs(t, err, tt.putErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantURL, url)
		})
	}
}

func TestUnitOpen(t *testing.T) {
	t.Run("unknown driver", func(t *testing.T) {
		_, err := objectstore.Open(context.TODO(), objectstore.Config{Driver: "ftp"})
		assert.ErrorIs(t, err, objectstore.ErrUnknownDriver)
	})

	t.Run("s3 with static credentials", func(t *testing.T) {
		bucket, err := objectstore.Open(context.TODO(), objectstore.Config{
			Driver: objectstore.DriverS3,
			S3: objectstore.S3Config{
				Bucket:          "catalog",
				Region:          "eu-central-1",
				Endpoint:        "http://localhost:4566",
				AccessKeyID:     "test",
				SecretAccessKey: "test",
				UsePathStyle:    true,
			},
		})
		require.NoError(t, err)
		assert.NotNil(t, bucket)
		assert.NoError(t, bucket.Close())
	})
}
