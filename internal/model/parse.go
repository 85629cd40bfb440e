package model

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// headerRows is the number of leading rows skipped on every sheet.
const headerRows = 1

// RowIssue describes a row that could not be turned into a record.
// Row is 1-based, as shown by spreadsheet tools.
type RowIssue struct {
	Sheet  string
	Row    int
	Reason string
}

func (r RowIssue) String() string {
	return fmt.Sprintf("sheet %s row %d: %s", r.Sheet, r.Row, r.Reason)
}

// ParseNodes reads node rows laid out as [id, x, y, z] after the header row.
func ParseNodes(sheet string, rows [][]string) ([]Node, []RowIssue) {
	var nodes []Node
	var issues []RowIssue
	for i, row := range dataRows(rows) {
		if blank(row) {
			continue
		}
		rowNum := i + headerRows + 1
		id, err := parseID(cell(row, 0))
		if err != nil {
			issues = append(issues, RowIssue{sheet, rowNum, "node id: " + err.Error()})
			continue
		}
		var xyz [3]float64
		bad := false
		for k := range xyz {
			v, err := parseCoord(cell(row, k+1))
			if err != nil {
				issues = append(issues, RowIssue{sheet, rowNum, fmt.Sprintf("node %d %c: %v", id, 'x'+k, err)})
				bad = true
				break
			}
			xyz[k] = v
		}
		if bad {
			continue
		}
		nodes = append(nodes, Node{ID: id, X: xyz[0], Y: xyz[1], Z: xyz[2]})
	}
	return nodes, issues
}

// ParseMembers reads member rows laid out as [number, start, end] after the header row.
// The member number in column 0 is not used.
func ParseMembers(sheet string, rows [][]string) ([]Member, []RowIssue) {
	var members []Member
	var issues []RowIssue
	for i, row := range dataRows(rows) {
		if blank(row) {
			continue
		}
		rowNum := i + headerRows + 1
		start, err := parseID(cell(row, 1))
		if err != nil {
			issues = append(issues, RowIssue{sheet, rowNum, "member start: " + err.Error()})
			continue
		}
		end, err := parseID(cell(row, 2))
		if err != nil {
			issues = append(issues, RowIssue{sheet, rowNum, "member end: " + err.Error()})
			continue
		}
		members = append(members, Member{StartID: start, EndID: end})
	}
	return members, issues
}

// ParseSupports reads support rows laid out as [nodeId, type] after the header row.
func ParseSupports(sheet string, rows [][]string) ([]Support, []RowIssue) {
	var supports []Support
	var issues []RowIssue
	for i, row := range dataRows(rows) {
		if blank(row) {
			continue
		}
		rowNum := i + headerRows + 1
		id, err := parseID(cell(row, 0))
		if err != nil {
			issues = append(issues, RowIssue{sheet, rowNum, "support node: " + err.Error()})
			continue
		}
		supports = append(supports, Support{NodeID: id, Type: strings.TrimSpace(cell(row, 1))})
	}
	return supports, issues
}

func dataRows(rows [][]string) [][]string {
	if len(rows) <= headerRows {
		return nil
	}
	return rows[headerRows:]
}

// cell returns row[i], or "" when the row is shorter (trailing empty cells are not stored).
func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return row[i]
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// parseID accepts integers, including integral values stored as floats ("3.0").
func parseID(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty")
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, fmt.Errorf("%q is not an integer", s)
	}
	return int(f), nil
}

func parseCoord(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty")
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%q is not a number", s)
	}
	return f, nil
}
