package loader

import "fmt"

// Summary is a one-line description of the load.
func (r Report) Summary() string {
	return fmt.Sprintf("%d nodes, %d members, %d supports, %d skipped", r.Nodes, r.Members, r.Supports, r.Skipped())
}

// Lines describes every skipped record, one per line: unusable rows first, then duplicate
// node ids, then references to missing nodes and zero-length members.
func (r Report) Lines() []string {
	var out []string
	for _, is := range r.Issues {
		out = append(out, is.String())
	}
	for _, id := range r.Duplicates {
		out = append(out, fmt.Sprintf("node %d defined more than once; first definition used", id))
	}
	for _, u := range r.Unresolved {
		out = append(out, fmt.Sprintf("%s %d references missing node %d", u.Kind, u.Index+1, u.NodeID))
	}
	if r.Degenerate > 0 {
		out = append(out, fmt.Sprintf("%d zero-length member(s) not drawn", r.Degenerate))
	}
	return out
}
