package domain

// Coloring maps a node to its color class
type Coloring map[string]int

// Clone returns an independent copy of the coloring
func (c Coloring) Clone() Coloring {
	out := make(Coloring, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}

// Classes returns the number of color classes, max(index)+1, or 0 when empty
func (c Coloring) Classes() int {
	if len(c) == 0 {
		return 0
	}
	max := 0
	for _, idx := range c {
		if idx > max {
			max = idx
		}
	}
	return max + 1
}

// Graph is a point-in-time snapshot of the editor state
type Graph struct {
	Nodes     []string `json:"nodes"`
	Edges     []Edge   `json:"edges"`
	Coloring  Coloring `json:"coloring"`
	Threshold float64  `json:"threshold"`
	Version   uint64   `json:"version"`
}

// IsEmpty reports whether the graph has neither nodes nor edges
func (g Graph) IsEmpty() bool {
	return len(g.Nodes) == 0 && len(g.Edges) == 0
}

// IsColored reports whether a coloring is attached
func (g Graph) IsColored() bool {
	return len(g.Coloring) > 0
}

// EdgePairs returns the edges in the [a, b] wire shape
func (g Graph) EdgePairs() [][2]string {
	pairs := make([][2]string, 0, len(g.Edges))
	for _, e := range g.Edges {
		pairs = append(pairs, e.Pair())
	}
	return pairs
}

// Fragment returns the graph structure without coloring, for export
func (g Graph) Fragment() *Fragment {
	fragment := NewFragment()
	for _, n := range g.Nodes {
		fragment.AddNode(n)
	}
	for _, e := range g.Edges {
		fragment.AddEdge(e)
	}
	return fragment
}
