package loader

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"stickview/internal/fetch"
	"stickview/internal/workbook"
)

// sample mirrors a small mount: a square frame on four posts.
var sample = map[string][][]any{
	"A": {
		{"Member", "Start", "End"},
		{1, 1, 2},
		{2, 2, 3},
		{3, 3, 4},
		{4, 4, 1},
		{5, 1, 99},
	},
	"B": {
		{"Node", "X", "Y", "Z"},
		{1, 0, 0, 0},
		{2, 10, 0, 0},
		{3, 10, 0, 10},
		{4, 0, 0, 10},
		{1, 5, 5, 5},
	},
	"C": {
		{"Node", "Type"},
		{1, "Fixed"},
		{3, "Pinned"},
		{42, "Fixed"},
	},
}

func sampleBytes(t *testing.T, order ...string) []byte {
	t.Helper()
	if len(order) == 0 {
		order = []string{"A", "B", "C"}
	}
	f := excelize.NewFile()
	defer f.Close()
	for i, name := range order {
		if i == 0 {
			require.NoError(t, f.SetSheetName("Sheet1", name))
		} else {
			_, err := f.NewSheet(name)
			require.NoError(t, err)
		}
		for r, row := range sample[name] {
			addr, err := excelize.CoordinatesToCellName(1, r+1)
			require.NoError(t, err)
			require.NoError(t, f.SetSheetRow(name, addr, &row))
		}
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func checkSample(t *testing.T, res *Result) {
	t.Helper()
	assert.Equal(t, 5, res.Report.Nodes)
	assert.Equal(t, 5, res.Report.Members)
	assert.Equal(t, 3, res.Report.Supports)
	assert.Equal(t, []int{1}, res.Report.Duplicates)
	assert.Len(t, res.Resolved.Members, 4)
	assert.Len(t, res.Resolved.Supports, 2)
	assert.Len(t, res.Report.Unresolved, 2)
	assert.Equal(t, 2, res.Report.Skipped())

	n, ok := res.Model.Node(1)
	require.True(t, ok)
	assert.Zero(t, n.X, "first node 1 wins")
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Sample.xlsx")
	require.NoError(t, os.WriteFile(path, sampleBytes(t), 0o644))

	res, err := New(path).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, path, res.Report.Source)
	checkSample(t, res)
}

func TestLoadURL(t *testing.T) {
	data := sampleBytes(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", fetch.XLSXContentType)
		_, _ = w.Write(data)
	}))
	defer srv.Close()

	res, err := New(srv.URL + "/Sample.xlsx").Load(context.Background())
	require.NoError(t, err)
	checkSample(t, res)
}

func TestLoadMissingSheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Sample.xlsx")
	require.NoError(t, os.WriteFile(path, sampleBytes(t, "A", "B"), 0o644))

	_, err := New(path).Load(context.Background())
	assert.ErrorIs(t, err, workbook.ErrSheetMissing)
	assert.Contains(t, err.Error(), "supports")
}

func TestLoadCustomSheets(t *testing.T) {
	wb, err := workbook.Decode(sampleBytes(t))
	require.NoError(t, err)
	_, err = Build(wb, Sheets{Members: "Members", Nodes: "B", Supports: "C"})
	assert.ErrorIs(t, err, workbook.ErrSheetMissing)
}

func TestLoadNoSource(t *testing.T) {
	_, err := New("").Load(context.Background())
	assert.Error(t, err)
}
