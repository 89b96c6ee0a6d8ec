package store

import (
	"errors"
	"math/rand"

	"go.uber.org/zap"

	"chromagraph/internal/domain"
)

// ImportResult counts what an import changed
type ImportResult struct {
	NodesAdded   int `json:"nodes_added"`
	EdgesAdded   int `json:"edges_added"`
	EdgesSkipped int `json:"edges_skipped"`
}

// Import merges a fragment into the graph. Node ids are normalized; edges go
// through the same checks as AddEdges and invalid ones are counted as skipped.
func (s *Store) Import(fragment *domain.Fragment) (ImportResult, error) {
	if fragment == nil {
		return ImportResult{}, errors.New("import: nil fragment")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]string, 0, len(fragment.Nodes))
	for _, n := range fragment.Nodes {
		ids = append(ids, domain.NormalizeID(n))
	}

	var result ImportResult
	result.NodesAdded = len(s.addNodesLocked(ids))

	for _, e := range fragment.Edges {
		edge := domain.NewEdge(domain.NormalizeID(e.A), domain.NormalizeID(e.B))
		if s.addEdgeLocked(edge) {
			result.EdgesAdded++
		} else {
			result.EdgesSkipped++
		}
	}

	if result.NodesAdded > 0 || result.EdgesAdded > 0 {
		s.touchLocked()
	}
	s.logger.Debug("fragment imported",
		zap.Int("nodes_added", result.NodesAdded),
		zap.Int("edges_added", result.EdgesAdded),
		zap.Int("edges_skipped", result.EdgesSkipped))
	return result, nil
}

// RandomEdges connects every unconnected pair of nodes with the given
// probability, clamped to [0, 1]. Pairs are visited in node order, so a seeded
// rng yields a reproducible graph.
func (s *Store) RandomEdges(rng *rand.Rand, probability float64) []domain.Edge {
	if probability < 0 {
		probability = 0
	}
	if probability > 1 {
		probability = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	added := make([]domain.Edge, 0)
	for i := 0; i < len(s.nodes); i++ {
		for j := i + 1; j < len(s.nodes); j++ {
			edge := domain.NewEdge(s.nodes[i], s.nodes[j])
			if _, exists := s.edgeIndex[edge.Key()]; exists {
				continue
			}
			if rng.Float64() >= probability {
				continue
			}
			s.addEdgeLocked(edge)
			added = append(added, edge)
		}
	}

	if len(added) > 0 {
		s.touchLocked()
	}
	return added
}
