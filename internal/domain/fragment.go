package domain

// Fragment represents graph structure for import/export operations
type Fragment struct {
	Nodes []string `json:"nodes" yaml:"nodes"`
	Edges []Edge   `json:"edges" yaml:"edges"`
}

// NewFragment creates an empty fragment
func NewFragment() *Fragment {
	return &Fragment{
		Nodes: make([]string, 0),
		Edges: make([]Edge, 0),
	}
}

// AddNode adds a node to the fragment
func (f *Fragment) AddNode(id string) {
	f.Nodes = append(f.Nodes, id)
}

// AddEdge adds an edge to the fragment
func (f *Fragment) AddEdge(edge Edge) {
	f.Edges = append(f.Edges, edge)
}
