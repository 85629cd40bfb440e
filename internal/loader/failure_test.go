package loader

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stickview/internal/fetch"
	"stickview/internal/logger"
)

func TestLogFailureIncludesBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte("<html><body>Sample.xlsx not found</body></html>"))
	}))
	defer srv.Close()

	_, err := New(srv.URL + "/Sample.xlsx").Load(context.Background())
	require.ErrorIs(t, err, fetch.ErrUnexpectedContentType)

	log := logger.NewTo("info", &strings.Builder{})
	LogFailure(log, srv.URL, err)

	all := strings.Join(log.Lines(), "\n")
	assert.Contains(t, all, "Sample.xlsx not found")
	assert.Contains(t, all, "load failed")
}

func TestLogFailurePlainError(t *testing.T) {
	log := logger.NewTo("info", &strings.Builder{})
	LogFailure(log, "missing.xlsx", assert.AnError)
	lines := log.Lines()
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "load failed")
}
