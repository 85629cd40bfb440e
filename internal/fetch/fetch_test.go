package fetch

import (
	"archive/zip"
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func zipBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("xl/workbook.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte("<workbook/>"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func serve(t *testing.T, status int, contentType string, body []byte) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if contentType != "" {
			w.Header().Set("Content-Type", contentType)
		}
		w.WriteHeader(status)
		_, _ = w.Write(body)
	}))
	t.Cleanup(srv.Close)
	return srv.URL + "/Sample.xlsx"
}

func TestFetchURL(t *testing.T) {
	data := zipBytes(t)
	url := serve(t, http.StatusOK, XLSXContentType, data)
	res, err := Fetch(context.Background(), url, Options{})
	require.NoError(t, err)
	assert.Equal(t, data, res.Data)
	assert.Equal(t, url, res.Source)
}

func TestFetchURLStatus(t *testing.T) {
	url := serve(t, http.StatusNotFound, "text/plain", []byte("nope"))
	_, err := Fetch(context.Background(), url, Options{})
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusNotFound, se.Code)
	assert.Contains(t, err.Error(), "status 404")
}

func TestFetchURLHTMLFallback(t *testing.T) {
	url := serve(t, http.StatusOK, "text/html; charset=utf-8", []byte("<!doctype html><title>app</title>"))
	_, err := Fetch(context.Background(), url, Options{})
	require.ErrorIs(t, err, ErrUnexpectedContentType)
	var ce *ContentTypeError
	require.ErrorAs(t, err, &ce)
	assert.Contains(t, ce.Preview, "<!doctype html>")
}

func TestFetchURLOctetStream(t *testing.T) {
	url := serve(t, http.StatusOK, "application/octet-stream", zipBytes(t))
	_, err := Fetch(context.Background(), url, Options{})
	assert.NoError(t, err)

	url = serve(t, http.StatusOK, "application/octet-stream", []byte("plain bytes"))
	_, err = Fetch(context.Background(), url, Options{})
	assert.ErrorIs(t, err, ErrUnexpectedContentType)
}

func TestFetchFile(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "Sample.xlsx")
	require.NoError(t, os.WriteFile(good, zipBytes(t), 0o644))
	res, err := Fetch(context.Background(), good, Options{})
	require.NoError(t, err)
	assert.Equal(t, XLSXContentType, res.ContentType)

	bad := filepath.Join(dir, "notes.xlsx")
	require.NoError(t, os.WriteFile(bad, []byte("hello"), 0o644))
	_, err = Fetch(context.Background(), bad, Options{})
	assert.ErrorIs(t, err, ErrNotSpreadsheet)

	_, err = Fetch(context.Background(), filepath.Join(dir, "missing.xlsx"), Options{})
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestIsURL(t *testing.T) {
	assert.True(t, IsURL("https://example.com/a.xlsx"))
	assert.True(t, IsURL("HTTP://example.com/a.xlsx"))
	assert.False(t, IsURL("data/Sample.xlsx"))
	assert.False(t, IsURL(`C:\models\Sample.xlsx`))
}
