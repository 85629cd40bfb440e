// Package loader turns a spreadsheet source into a resolved structural model:
// fetch the bytes, decode the three sheets, map rows to records, resolve node references.
package loader

import (
	"context"
	"fmt"
	"time"

	"stickview/internal/fetch"
	"stickview/internal/model"
	"stickview/internal/workbook"
)

// Sheets names the three tables of the layout.
type Sheets struct {
	Members  string
	Nodes    string
	Supports string
}

// DefaultSheets is the standard layout: A = members, B = nodes, C = supports.
func DefaultSheets() Sheets {
	return Sheets{Members: "A", Nodes: "B", Supports: "C"}
}

// Loader loads one source. It holds no model state; every Load returns a fresh Result.
type Loader struct {
	Source string
	Sheets Sheets
	Fetch  fetch.Options
}

// New returns a loader for src using the default sheet layout.
func New(src string) *Loader {
	return &Loader{Source: src, Sheets: DefaultSheets()}
}

// Report summarizes what a load skipped and how long it took.
type Report struct {
	Source     string
	Issues     []model.RowIssue
	Duplicates []int
	Unresolved []model.Unresolved
	Degenerate int
	Nodes      int
	Members    int
	Supports   int
	Elapsed    time.Duration
}

// Skipped is the number of records that will not be drawn.
func (r Report) Skipped() int {
	return len(r.Issues) + len(r.Unresolved) + r.Degenerate
}

// Result is one successful load.
type Result struct {
	Model    *model.Model
	Resolved model.Resolved
	Report   Report
}

// Load fetches and decodes the source. Row-level problems are reported, not returned as errors;
// an error means nothing usable was loaded.
func (l *Loader) Load(ctx context.Context) (*Result, error) {
	start := time.Now()
	if l.Source == "" {
		return nil, fmt.Errorf("loader: no source configured")
	}
	res, err := fetch.Fetch(ctx, l.Source, l.Fetch)
	if err != nil {
		return nil, err
	}
	wb, err := workbook.Decode(res.Data)
	if err != nil {
		return nil, err
	}
	out, err := Build(wb, l.Sheets)
	if err != nil {
		return nil, err
	}
	out.Report.Source = l.Source
	out.Report.Elapsed = time.Since(start)
	return out, nil
}

// Build maps the sheets of an already decoded workbook.
func Build(wb *workbook.Workbook, sheets Sheets) (*Result, error) {
	memberRows, err := wb.Rows(sheets.Members)
	if err != nil {
		return nil, fmt.Errorf("loader: members: %w", err)
	}
	nodeRows, err := wb.Rows(sheets.Nodes)
	if err != nil {
		return nil, fmt.Errorf("loader: nodes: %w", err)
	}
	supportRows, err := wb.Rows(sheets.Supports)
	if err != nil {
		return nil, fmt.Errorf("loader: supports: %w", err)
	}

	nodes, nodeIssues := model.ParseNodes(sheets.Nodes, nodeRows)
	members, memberIssues := model.ParseMembers(sheets.Members, memberRows)
	supports, supportIssues := model.ParseSupports(sheets.Supports, supportRows)

	m := model.New(nodes, members, supports)
	resolved := m.Resolve()

	var issues []model.RowIssue
	issues = append(issues, memberIssues...)
	issues = append(issues, nodeIssues...)
	issues = append(issues, supportIssues...)

	return &Result{
		Model:    m,
		Resolved: resolved,
		Report: Report{
			Issues:     issues,
			Duplicates: m.Duplicates(),
			Unresolved: resolved.Unresolved,
			Degenerate: resolved.Degenerate,
			Nodes:      len(nodes),
			Members:    len(members),
			Supports:   len(supports),
		},
	}, nil
}
