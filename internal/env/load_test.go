package env

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissing(t *testing.T) {
	assert.NoError(t, Load(filepath.Join(t.TempDir(), ".env")))
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "# viewer settings\nSTICKVIEW_TEST_SOURCE=\"models/frame.xlsx\"\n\nSTICKVIEW_TEST_KEEP=file\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	t.Setenv("STICKVIEW_TEST_KEEP", "env")
	t.Setenv("STICKVIEW_TEST_SOURCE", "")
	require.NoError(t, os.Unsetenv("STICKVIEW_TEST_SOURCE"))

	require.NoError(t, Load(path))
	assert.Equal(t, "models/frame.xlsx", os.Getenv("STICKVIEW_TEST_SOURCE"))
	assert.Equal(t, "env", os.Getenv("STICKVIEW_TEST_KEEP"))
}
