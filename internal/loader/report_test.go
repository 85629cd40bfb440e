package loader

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"stickview/internal/model"
)

func TestReportLines(t *testing.T) {
	r := Report{
		Issues:     []model.RowIssue{{Sheet: "B", Row: 4, Reason: `node id: "x" is not an integer`}},
		Duplicates: []int{7},
		Unresolved: []model.Unresolved{{Kind: "member", Index: 2, NodeID: 99}},
		Degenerate: 1,
		Nodes:      10,
		Members:    12,
		Supports:   3,
	}
	assert.Equal(t, "10 nodes, 12 members, 3 supports, 3 skipped", r.Summary())
	assert.Equal(t, []string{
		`sheet B row 4: node id: "x" is not an integer`,
		"node 7 defined more than once; first definition used",
		"member 3 references missing node 99",
		"1 zero-length member(s) not drawn",
	}, r.Lines())

	assert.Empty(t, Report{}.Lines())
}
