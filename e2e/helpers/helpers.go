package helpers

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/MichalMitros/catalog-importer/internal/handler"
	"github.com/MichalMitros/catalog-importer/internal/platform/models"
	"github.com/MichalMitros/catalog-importer/internal/platform/storage"
	pgmodels "github.com/MichalMitros/catalog-importer/internal/platform/storage/gen/postgres/public/model"
	"github.com/MichalMitros/catalog-importer/internal/platform/storage/gen/postgres/public/table"
	"github.com/go-jet/jet/v2/qrm"
	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/require"
)

const (
	contentType = "Content-Type"
	waitTimeout = 30 * time.Second
)

// PNG is minimal file content detected as image/png.
var PNG = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00\x1f\x15\xc4\x89")

// MemoryBucket is object storage keeping objects in memory.
type MemoryBucket struct {
	mu      sync.Mutex
	Objects map[string][]byte
}

// NewMemoryBucket returns empty MemoryBucket.
func NewMemoryBucket() *MemoryBucket {
	return &MemoryBucket{Objects: map[string][]byte{}}
}

// Put stores object and returns its fake public URL.
func (b *MemoryBucket) Put(_ context.Context, key string, data []byte, _ string) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Objects[key] = data
	return "https://cdn.test/" + key, nil
}

// Close does nothing.
func (b *MemoryBucket) Close() error { return nil }

// CSV returns csv file with provided rows, the first row is header.
func CSV(t *testing.T, rows ...[]string) []byte {
	t.Helper()

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	if err := writer.WriteAll(rows); err != nil {
		require.FailNow(t, "can't write csv", err)
	}

	return buf.Bytes()
}

// Zip returns zip archive with PNG file under every provided name.
func Zip(t *testing.T, names ...string) []byte {
	t.Helper()

	var buf bytes.Buffer
	writer := zip.NewWriter(&buf)
	for _, name := range names {
		file, err := writer.Create(name)
		if err != nil {
			require.FailNow(t, "can't create zip entry", name, err)
		}
		if _, err := file.Write(PNG); err != nil {
			require.FailNow(t, "can't write zip entry", name, err)
		}
	}
	if err := writer.Close(); err != nil {
		require.FailNow(t, "can't close zip writer", err)
	}

	return buf.Bytes()
}

// SubmitImport uploads spreadsheet (and archive when not nil) to batch import endpoint and returns task ID.
func SubmitImport(t *testing.T, baseURL, token, sheetName string, sheet, archive []byte) string {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	writePart(t, writer, "excel", sheetName, sheet)
	if archive != nil {
		writePart(t, writer, "images", "images.zip", archive)
	}
	require.NoError(t, writer.Close())

	req, err := http.NewRequest(http.MethodPost, baseURL+"/admin/batch-import", &body)
	require.NoError(t, err)
	req.Header.Set(contentType, writer.FormDataContentType())
	req.Header.Set(handler.TokenHeader, token)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode, "import should be accepted")

	var accepted struct {
		TaskID string `json:"taskId"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&accepted))

	return accepted.TaskID
}

// WaitForTask is blocking helper function, polls task endpoint until task is finished and returns it.
func WaitForTask(t *testing.T, baseURL, token, taskID string) *models.ImportTask {
	t.Helper()

	deadline := time.Now().Add(waitTimeout)
	for time.Now().Before(deadline) {
		<-time.After(time.Millisecond * 250)

		req, err := http.NewRequest(http.MethodGet, baseURL+"/admin/batch-import/"+taskID, nil)
		require.NoError(t, err)
		req.Header.Set(handler.TokenHeader, token)

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)

		var task models.ImportTask
		err = json.NewDecoder(resp.Body).Decode(&task)
		_ = resp.Body.Close()
		require.NoError(t, err)

		if task.Status.IsTerminal() {
			return &task
		}
	}

	require.FailNow(t, "task wasn't finished in time", taskID)
	return nil
}

// WaitForLatestTask is blocking helper function, returns the most recently created task stored in db
// after it is finished.
func WaitForLatestTask(t *testing.T, db qrm.DB, tasks storage.Tasks) *models.ImportTask {
	t.Helper()

	deadline := time.Now().Add(waitTimeout)
	for time.Now().Before(deadline) {
		<-time.After(time.Millisecond * 250)

		var latest []pgmodels.ImportTask
		stmt := table.ImportTask.
			SELECT(table.ImportTask.AllColumns).
			ORDER_BY(table.ImportTask.CreatedAt.DESC(), table.ImportTask.ID.DESC()).
			LIMIT(1)
		if err := stmt.Query(db, &latest); err != nil && !errors.Is(err, qrm.ErrNoRows) {
			require.FailNow(t, "can't query latest task", err)
		}
		if len(latest) == 0 {
			continue
		}

		task, err := tasks.GetTask(context.Background(), latest[0].ID)
		require.NoError(t, err)
		if task.Status.IsTerminal() {
			return task
		}
	}

	require.FailNow(t, "no task was finished in time")
	return nil
}

// ExportSQL downloads catalog SQL export.
func ExportSQL(t *testing.T, baseURL, token string) string {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, baseURL+"/admin/export-sql", nil)
	require.NoError(t, err)
	req.Header.Set(handler.TokenHeader, token)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode, "export should succeed")

	script, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return string(script)
}

// ServeFiles is helper function for mocking file server, files are served under their names.
func ServeFiles(t *testing.T, files map[string][]byte, fileContentType string) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(wrt http.ResponseWriter, req *http.Request) {
		file, ok := files[strings.TrimPrefix(req.URL.Path, "/")]
		if !ok {
			wrt.WriteHeader(http.StatusNotFound)
			return
		}
		wrt.Header().Add(contentType, fileContentType)
		wrt.WriteHeader(http.StatusOK)
		_, _ = wrt.Write(file)
	}))

	t.Cleanup(srv.Close)

	return srv
}

func writePart(t *testing.T, writer *multipart.Writer, field, name string, content []byte) {
	t.Helper()

	part, err := writer.CreateFormFile(field, name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
}
