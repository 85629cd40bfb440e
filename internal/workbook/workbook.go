// Package workbook decodes xlsx spreadsheets into plain string rows.
package workbook

import (
	"bytes"
	"errors"
	"fmt"
	"slices"

	"github.com/xuri/excelize/v2"
)

// ErrSheetMissing is returned when a requested sheet is not in the workbook.
var ErrSheetMissing = errors.New("workbook: sheet missing")

// Workbook is a decoded spreadsheet. Rows are read eagerly at Decode time so the
// underlying file can be closed immediately.
type Workbook struct {
	names []string
	rows  map[string][][]string
}

// Decode parses xlsx bytes and reads every sheet as raw cell values
// (numbers are not run through their display format).
func Decode(data []byte) (*Workbook, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("workbook: decode: %w", err)
	}
	defer f.Close()

	wb := &Workbook{
		names: f.GetSheetList(),
		rows:  make(map[string][][]string),
	}
	for _, name := range wb.names {
		rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, fmt.Errorf("workbook: sheet %q: %w", name, err)
		}
		wb.rows[name] = rows
	}
	return wb, nil
}

// SheetNames returns sheet names in workbook order.
func (w *Workbook) SheetNames() []string {
	return slices.Clone(w.names)
}

// Rows returns every row of sheet, header included. Trailing empty cells of a row are not present.
func (w *Workbook) Rows(sheet string) ([][]string, error) {
	rows, ok := w.rows[sheet]
	if !ok {
		return nil, fmt.Errorf("%w: %q (have %v)", ErrSheetMissing, sheet, w.names)
	}
	return rows, nil
}
