// Package model holds the structural model read from a spreadsheet: nodes (points in space),
// members (sticks between two nodes) and supports (a restraint type attached to a node).
package model

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// Node is a point of the structure. ID is unique within one load.
type Node struct {
	ID int     `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
	Z  float64 `json:"z"`
}

// Pos returns the node position as a vector.
func (n Node) Pos() r3.Vec {
	return r3.Vec{X: n.X, Y: n.Y, Z: n.Z}
}

// Member connects two nodes by ID. Nothing prevents two members joining the same pair.
type Member struct {
	StartID int `json:"start"`
	EndID   int `json:"end"`
}

// Support attaches a restraint type (e.g. "fixed", "pinned") to a node.
type Support struct {
	NodeID int    `json:"node"`
	Type   string `json:"type"`
}

// Model is one load of the spreadsheet. It is built once and never mutated;
// a reload produces a new Model.
type Model struct {
	Nodes    []Node
	Members  []Member
	Supports []Support

	index      map[int]int // node ID -> index into Nodes (first occurrence)
	duplicates []int
}

// New builds a model and its node index. When IDs repeat, the first node with that ID wins
// and the repeated IDs are reported by Duplicates.
func New(nodes []Node, members []Member, supports []Support) *Model {
	m := &Model{
		Nodes:    nodes,
		Members:  members,
		Supports: supports,
		index:    make(map[int]int, len(nodes)),
	}
	for i, n := range nodes {
		if _, ok := m.index[n.ID]; ok {
			m.duplicates = append(m.duplicates, n.ID)
			continue
		}
		m.index[n.ID] = i
	}
	return m
}

// Node looks up a node by ID.
func (m *Model) Node(id int) (Node, bool) {
	if m == nil {
		return Node{}, false
	}
	i, ok := m.index[id]
	if !ok {
		return Node{}, false
	}
	return m.Nodes[i], true
}

// Duplicates returns node IDs that appeared more than once, in sheet order.
func (m *Model) Duplicates() []int {
	out := make([]int, len(m.duplicates))
	copy(out, m.duplicates)
	return out
}

// Empty reports whether the model has nothing to draw.
func (m *Model) Empty() bool {
	return m == nil || (len(m.Members) == 0 && len(m.Supports) == 0)
}
