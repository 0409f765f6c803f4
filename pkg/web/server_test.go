package web

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pppGg/pdf-sku-label-tool/pkg/layout"
	"github.com/pppGg/pdf-sku-label-tool/pkg/pipeline"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	dir := t.TempDir()
	srv, err := NewServer(Config{
		Processor:   pipeline.New(pipeline.Options{Layout: layout.DefaultConfig()}),
		UploadDir:   filepath.Join(dir, "uploads"),
		OutputDir:   filepath.Join(dir, "outputs"),
		HistoryPath: filepath.Join(dir, "history.json"),
	})
	require.NoError(t, err)
	return srv
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t)

	rr := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rr.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}

func TestUploadRejectsMissingFile(t *testing.T) {
	srv := newTestServer(t)

	rr := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/upload", nil))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestUploadRejectsNonPDF(t *testing.T) {
	srv := newTestServer(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "notes.txt")
	require.NoError(t, err)
	_, err = fw.Write([]byte("plain text"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	rr := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)

	var resp uploadResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.Contains(t, resp.Error, "PDF")
}

func TestUploadRejectsInvalidPDFContent(t *testing.T) {
	srv := newTestServer(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "broken.pdf")
	require.NoError(t, err)
	_, err = fw.Write([]byte("not actually a pdf"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	rr := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestDownloadUnknownFile(t *testing.T) {
	srv := newTestServer(t)

	rr := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/download/missing.pdf", nil))

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestDownloadServesStoredFile(t *testing.T) {
	srv := newTestServer(t)
	require.NoError(t, os.WriteFile(filepath.Join(srv.outputDir, "done.pdf"), []byte("%PDF-"), 0o644))

	rr := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/download/done.pdf", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/pdf", rr.Header().Get("Content-Type"))
	assert.Contains(t, rr.Header().Get("Content-Disposition"), "done.pdf")
}

func TestCleanupRemovesWorkFiles(t *testing.T) {
	srv := newTestServer(t)
	require.NoError(t, os.WriteFile(filepath.Join(srv.uploadDir, "a.pdf"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(srv.outputDir, "b.pdf"), []byte("x"), 0o644))

	rr := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/cleanup", nil))

	require.Equal(t, http.StatusOK, rr.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.EqualValues(t, 2, body["removed"])

	entries, err := os.ReadDir(srv.uploadDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestPruneDirKeepsMostRecent(t *testing.T) {
	dir := t.TempDir()
	names := []string{"one.pdf", "two.pdf", "three.pdf", "four.pdf"}
	base := time.Now().Add(-time.Hour)
	for i, name := range names {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
		mod := base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, os.Chtimes(path, mod, mod))
	}

	pruneDir(dir, 2)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var kept []string
	for _, e := range entries {
		kept = append(kept, e.Name())
	}
	assert.ElementsMatch(t, []string{"three.pdf", "four.pdf"}, kept)
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "a.pdf", sanitizeFilename("a.pdf"))
	assert.Equal(t, "a.pdf", sanitizeFilename("../../a.pdf"))
	assert.Equal(t, "a.pdf", sanitizeFilename(`C:\evil\a.pdf`))
	assert.Equal(t, "", sanitizeFilename(".."))
	assert.Equal(t, "", sanitizeFilename(".hidden"))
}
