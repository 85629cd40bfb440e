package workbook

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// build writes a workbook with one sheet per entry of sheets, in order.
func build(t *testing.T, order []string, sheets map[string][][]any) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, name := range order {
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
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestDecode(t *testing.T) {
	data := build(t, []string{"A", "B"}, map[string][][]any{
		"A": {{"Member", "Start", "End"}, {1, 1, 2}},
		"B": {{"Node", "X", "Y", "Z"}, {1, 0, 0, 0}, {2, 1.5, 2.25, -3}},
	})
	wb, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, wb.SheetNames())

	rows, err := wb.Rows("A")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"Member", "Start", "End"}, {"1", "1", "2"}}, rows)

	rows, err = wb.Rows("B")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"2", "1.5", "2.25", "-3"}, rows[2])
}

func TestRowsMissingSheet(t *testing.T) {
	data := build(t, []string{"A"}, map[string][][]any{"A": {{"h"}}})
	wb, err := Decode(data)
	require.NoError(t, err)
	_, err = wb.Rows("C")
	assert.ErrorIs(t, err, ErrSheetMissing)
}

func TestDecodeGarbage(t *testing.T) {
	_, err := Decode([]byte("<html>not a spreadsheet</html>"))
	assert.Error(t, err)
}
