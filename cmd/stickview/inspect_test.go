package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeModel(t *testing.T, sheets map[string][][]any) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, name := range []string{"A", "B", "C"} {
		if i == 0 {
			require.NoError(t, f.SetSheetName("Sheet1", name))
		} else {
			_, err := f.NewSheet(name)
			require.NoError(t, err)
		}
		for r, row := range sheets[name] {
			addr, err := excelize.CoordinatesToCellName(1, r+1)
			require.NoError(t, err)
			require.NoError(t, f.SetSheetRow(name, addr, &row))
		}
	}
	path := filepath.Join(t.TempDir(), "model.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("STICKVIEW_SOURCE", "")
	t.Setenv("STICKVIEW_LOG_LEVEL", "")
	t.Cleanup(func() {
		strict, logLevel = false, ""
	})
	dir := t.TempDir()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(append([]string{
		"inspect",
		"--config", filepath.Join(dir, "missing.yaml"),
		"--env", filepath.Join(dir, "missing.env"),
	}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

var portal = map[string][][]any{
	"A": {{"Member", "Start", "End"}, {1, 1, 2}, {2, 2, 3}, {3, 3, 7}},
	"B": {{"Node", "X", "Y", "Z"}, {1, 0, 0, 0}, {2, 0, 5, 0}, {3, 6, 5, 0}},
	"C": {{"Node", "Type"}, {1, "Fixed"}},
}

func TestInspect(t *testing.T) {
	path := writeModel(t, portal)
	out, err := runCLI(t, path)
	require.NoError(t, err)
	assert.Contains(t, out, path+": 3 nodes, 3 members, 1 supports, 1 skipped")
	assert.Contains(t, out, "  member 3 references missing node 7")
}

func TestInspectStrict(t *testing.T) {
	path := writeModel(t, portal)
	_, err := runCLI(t, "--strict", path)
	assert.EqualError(t, err, "inspect: 1 record(s) skipped")
}

func TestInspectMissingFile(t *testing.T) {
	_, err := runCLI(t, filepath.Join(t.TempDir(), "nope.xlsx"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestInspectBadLogLevel(t *testing.T) {
	path := writeModel(t, portal)
	_, err := runCLI(t, "--log-level", "loud", path)
	assert.Error(t, err)
}
