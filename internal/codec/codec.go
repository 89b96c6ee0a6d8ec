// Package codec reads and writes graph structure (nodes and edges, no
// coloring) in exchange formats. Edges are encoded as two-element arrays, the
// same shape the coloring service receives.
package codec

import (
	"fmt"
	"io"
	"strings"

	"chromagraph/internal/domain"
)

// Importer interface for importing graph data from various formats
type Importer interface {
	Parse(r io.Reader) (*domain.Fragment, error)
	Format() string
}

// Exporter interface for exporting graph data to various formats
type Exporter interface {
	Export(fragment *domain.Fragment, w io.Writer) error
	Format() string
}

// Codec both imports and exports one format
type Codec interface {
	Importer
	Exporter
	ContentType() string
}

// ForFormat returns the codec for a format name or file extension
func ForFormat(format string) (Codec, error) {
	switch strings.ToLower(strings.TrimPrefix(format, ".")) {
	case "json":
		return NewJSONCodec(), nil
	case "yaml", "yml":
		return NewYAMLCodec(), nil
	default:
		return nil, fmt.Errorf("unsupported format %q, must be json or yaml", format)
	}
}

func pairsToEdges(pairs [][]string) ([]domain.Edge, error) {
	edges := make([]domain.Edge, 0, len(pairs))
	for i, p := range pairs {
		if len(p) != 2 {
			return nil, fmt.Errorf("edge %d: expected 2 endpoints, got %d", i, len(p))
		}
		edges = append(edges, domain.NewEdge(p[0], p[1]))
	}
	return edges, nil
}

func edgesToPairs(edges []domain.Edge) [][]string {
	pairs := make([][]string, 0, len(edges))
	for _, e := range edges {
		pairs = append(pairs, []string{e.A, e.B})
	}
	return pairs
}

func nonNil(nodes []string) []string {
	if nodes == nil {
		return []string{}
	}
	return nodes
}
