package fetcher_test

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MichalMitros/catalog-importer/internal/fetcher"
	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	userAgent = "test/0.0.0"
	limit     = int64(64)
)

var sheet = []byte("Product Name,Sale Price\nJade Pendant,39.9\n")

func serveFile(contentType string, body []byte, gzipped bool, status int) http.HandlerFunc {
	return func(wrt http.ResponseWriter, _ *http.Request) {
		if contentType != "" {
			wrt.Header().Set("Content-Type", contentType)
		}
		if gzipped {
			wrt.Header().Set("Content-Encoding", "gzip")
			body = gzipBytes(body)
		}
		wrt.WriteHeader(status)
		_, _ = wrt.Write(body)
	}
}

func gzipBytes(data []byte) []byte {
	var buf bytes.Buffer
	writer := gzip.NewWriter(&buf)
	_, _ = writer.Write(data)
	_ = writer.Close()
	return buf.Bytes()
}

func TestUnitFetch(t *testing.T) {
	tests := map[string]struct {
		handler   http.HandlerFunc
		wantBody  []byte
		wantErr   error
		wantInErr string
	}{
		"csv with charset": {
			handler:  serveFile("text/csv; charset=utf-8", sheet, false, http.StatusOK),
			wantBody: sheet,
		},
		"gzip encoded xlsx": {
			handler:  serveFile("application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", sheet, true, http.StatusOK),
			wantBody: sheet,
		},
		"zip archive": {
			handler:  serveFile("application/zip", []byte("PK\x03\x04"), false, http.StatusOK),
			wantBody: []byte("PK\x03\x04"),
		},
		"object storage octet stream": {
			handler:  serveFile("application/octet-stream", sheet, false, http.StatusOK),
			wantBody: sheet,
		},
		"not found": {
			handler:   serveFile("text/csv", nil, false, http.StatusNotFound),
			wantErr:   fetcher.ErrStatusNotOK,
			wantInErr: "404",
		},
		"html page": {
			handler:   serveFile("text/html; charset=utf-8", []byte("<html></html>"), false, http.StatusOK),
			wantErr:   fetcher.ErrContentTypeNotSupported,
			wantInErr: "text/html",
		},
		"missing content type": {
			handler: func(wrt http.ResponseWriter, _ *http.Request) {
				wrt.Header()["Content-Type"] = nil
				wrt.WriteHeader(http.StatusOK)
			},
			wantErr: fetcher.ErrContentTypeNotSupported,
		},
		"too large": {
			handler: serveFile("text/csv", bytes.Repeat([]byte("a"), int(limit)+1), false, http.StatusOK),
			wantErr: fetcher.ErrTooLarge,
		},
		"too large after decompression": {
			handler: serveFile("text/csv", bytes.Repeat([]byte("a"), 10*int(limit)), true, http.StatusOK),
			wantErr: fetcher.ErrTooLarge,
		},
		"broken gzip": {
			handler: func(wrt http.ResponseWriter, _ *http.Request) {
				wrt.Header().Set("Content-Type", "text/csv")
				wrt.Header().Set("Content-Encoding", "gzip")
				_, _ = wrt.Write([]byte("not gzip"))
			},
			wantInErr: "can't decompress response",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			t.Cleanup(srv.Close)

			data, err := fetcher.NewFetcher(srv.Client(), userAgent).Fetch(context.TODO(), srv.URL+"/products.csv", limit)

			if tt.wantErr == nil && tt.wantInErr == "" {
				require.NoError(t, err)
				assert.Equal(t, tt.wantBody, data, "should return whole decoded file")
				return
			}
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			if tt.wantInErr != "" {
				assert.ErrorContains(t, err, tt.wantInErr)
			}
			assert.Nil(t, data)
		})
	}
}

func TestUnitFetchFileRequest(t *testing.T) {
	var got http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(wrt http.ResponseWriter, req *http.Request) {
		got = req.Header.Clone()
		wrt.Header().Set("Content-Type", "text/plain")
		_, _ = wrt.Write(sheet)
	}))
	t.Cleanup(srv.Close)

	file, err := fetcher.NewFetcher(srv.Client(), userAgent).FetchFile(context.TODO(), srv.URL)
	require.NoError(t, err)
	body, err := io.ReadAll(file)
	require.NoError(t, err)
	require.NoError(t, file.Close())

	assert.Equal(t, sheet, body)
	assert.Equal(t, userAgent, got.Get("User-Agent"))
	assert.Equal(t, "gzip", got.Get("Accept-Encoding"))
}
