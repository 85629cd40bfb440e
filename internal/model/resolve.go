package model

import (
	"gonum.org/v1/gonum/spatial/r3"

	"stickview/internal/geometry"
)

// PlacedMember is a member whose two nodes were found.
type PlacedMember struct {
	Member
	Segment geometry.Segment
}

// PlacedSupport is a support whose node was found.
type PlacedSupport struct {
	Support
	Pos r3.Vec
}

// Unresolved records a record that references a node ID missing from the node sheet.
type Unresolved struct {
	Kind   string // "member" or "support"
	Index  int    // position in Members or Supports
	NodeID int
}

// Resolved is what the renderer draws: every member and support with positions attached.
// Records that point at unknown nodes are left out and listed in Unresolved.
type Resolved struct {
	Members    []PlacedMember
	Supports   []PlacedSupport
	Unresolved []Unresolved
	Degenerate int // members whose two nodes share a position
	Bounds     geometry.Bounds
}

// Resolve looks up the nodes of every member and support.
// Missing references are skipped without error.
func (m *Model) Resolve() Resolved {
	var r Resolved
	if m == nil {
		return r
	}
	for _, n := range m.Nodes {
		r.Bounds.Extend(n.Pos())
	}
	for i, mem := range m.Members {
		start, ok := m.Node(mem.StartID)
		if !ok {
			r.Unresolved = append(r.Unresolved, Unresolved{Kind: "member", Index: i, NodeID: mem.StartID})
			continue
		}
		end, ok := m.Node(mem.EndID)
		if !ok {
			r.Unresolved = append(r.Unresolved, Unresolved{Kind: "member", Index: i, NodeID: mem.EndID})
			continue
		}
		seg, ok := geometry.NewSegment(start.Pos(), end.Pos())
		if !ok {
			r.Degenerate++
			continue
		}
		r.Members = append(r.Members, PlacedMember{Member: mem, Segment: seg})
	}
	for i, s := range m.Supports {
		n, ok := m.Node(s.NodeID)
		if !ok {
			r.Unresolved = append(r.Unresolved, Unresolved{Kind: "support", Index: i, NodeID: s.NodeID})
			continue
		}
		r.Supports = append(r.Supports, PlacedSupport{Support: s, Pos: n.Pos()})
	}
	return r
}
