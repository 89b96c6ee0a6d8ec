package domain

import "fmt"

// EdgeSeparator separates the two endpoints of an edge in command text
const EdgeSeparator = "-"

// Edge represents an undirected connection between two nodes.
// A and B keep the orientation the edge was created with; identity is
// orientation-free (see Key).
type Edge struct {
	A string `json:"a" yaml:"a"`
	B string `json:"b" yaml:"b"`
}

// NewEdge creates a new edge
func NewEdge(a, b string) Edge {
	return Edge{A: a, B: b}
}

// EdgeID is the orientation-free identity of an edge: its endpoints with the
// smaller one first
type EdgeID [2]string

// Key returns the orientation-free identity of the edge
func (e Edge) Key() EdgeID {
	return EdgeKey(e.A, e.B)
}

// EdgeKey builds the identity of the unordered pair (a, b)
func EdgeKey(a, b string) EdgeID {
	if a > b {
		a, b = b, a
	}
	return EdgeID{a, b}
}

// Touches reports whether id is one of the endpoints
func (e Edge) Touches(id string) bool {
	return e.A == id || e.B == id
}

// IsLoop reports whether both endpoints are the same node
func (e Edge) IsLoop() bool {
	return e.A == e.B
}

// String formats the edge the way it is typed: "a-b"
func (e Edge) String() string {
	return fmt.Sprintf("%s%s%s", e.A, EdgeSeparator, e.B)
}

// Pair returns the edge as a two-element slice, the wire shape used by the
// coloring service
func (e Edge) Pair() [2]string {
	return [2]string{e.A, e.B}
}
