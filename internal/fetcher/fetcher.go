package fetcher

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"

	"github.com/klauspost/compress/gzip"
	"github.com/samber/lo"
)

// ContentTypes are accepted response content types of spreadsheets and image archives.
var ContentTypes = []string{
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	"application/vnd.ms-excel",
	"text/csv",
	"text/plain",
	"application/zip",
	"application/x-zip-compressed",
	"application/octet-stream",
}

// Fetcher builds http requests and fetches files via http.
type Fetcher struct {
	client    *http.Client
	userAgent string
}

// NewFetcher returns new Fetcher.
func NewFetcher(client *http.Client, userAgent string) *Fetcher {
	return &Fetcher{
		client:    client,
		userAgent: userAgent,
	}
}

// Fetch returns file fetched from provided url. Files larger than limit bytes are rejected with ErrTooLarge.
func (f *Fetcher) Fetch(ctx context.Context, url string, limit int64) ([]byte, error) {
	file, err := f.FetchFile(ctx, url)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, limit+1))
	if err != nil {
		return nil, fmt.Errorf("can't read response: %w", err)
	}

	if int64(len(data)) > limit {
		return nil, ErrTooLarge
	}

	return data, nil
}

// FetchFile returns ReadCloser with file fetched from provided url or error.
// Gzip encoded responses are decompressed.
// The caller is responsible for closing returned ReadCloser.
func (f *Fetcher) FetchFile(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("can't build http request: %w", err)
	}

	req.Header.Add("Accept-Encoding", "gzip")
	req.Header.Add("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("can't get http response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("%w: got %d", ErrStatusNotOK, resp.StatusCode)
	}

	if header := resp.Header.Get("Content-Type"); !supportedContentType(header) {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("%w: %q", ErrContentTypeNotSupported, header)
	}

	if resp.Header.Get("Content-Encoding") == "gzip" {
		return decompressResponse(resp.Body)
	}

	return resp.Body, nil
}

func supportedContentType(header string) bool {
	mediaType, _, err := mime.ParseMediaType(header)
	if err != nil {
		return false
	}

	return lo.Contains(ContentTypes, mediaType)
}

// decompressResponse wraps gzip encoded response body.
func decompressResponse(response io.ReadCloser) (io.ReadCloser, error) {
	decompressed, err := gzip.NewReader(response)
	if err != nil {
		_ = response.Close()
		return nil, fmt.Errorf("can't decompress response: %w", err)
	}

	return &decompressedReadCloser{
		compressed:   response,
		decompressed: decompressed,
	}, nil
}

// decompressedReadCloser reads decompressed bytes and closes compressed body.
type decompressedReadCloser struct {
	compressed   io.ReadCloser
	decompressed io.Reader
}

func (r decompressedReadCloser) Read(p []byte) (n int, err error) {
	return r.decompressed.Read(p)
}

func (r decompressedReadCloser) Close() error {
	return r.compressed.Close()
}
