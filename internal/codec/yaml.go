package codec

import (
	"errors"
	"fmt"
	"io"

	"chromagraph/internal/domain"

	"gopkg.in/yaml.v3"
)

// YAMLCodec handles YAML import/export
type YAMLCodec struct{}

// NewYAMLCodec creates a new YAML codec
func NewYAMLCodec() *YAMLCodec {
	return &YAMLCodec{}
}

// Format returns the codec format identifier
func (c *YAMLCodec) Format() string {
	return "yaml"
}

// ContentType returns the MIME type of the format
func (c *YAMLCodec) ContentType() string {
	return "application/x-yaml"
}

// yamlFragment represents the YAML structure for graph data
//
//	nodes: [a, b, c]
//	edges:
//	  - [a, b]
//	  - [b, c]
type yamlFragment struct {
	Nodes []string   `yaml:"nodes"`
	Edges [][]string `yaml:"edges,flow"`
}

// Parse imports graph data from YAML. An empty document is an empty graph.
func (c *YAMLCodec) Parse(r io.Reader) (*domain.Fragment, error) {
	var yf yamlFragment
	decoder := yaml.NewDecoder(r)
	if err := decoder.Decode(&yf); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	edges, err := pairsToEdges(yf.Edges)
	if err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	return &domain.Fragment{Nodes: nonNil(yf.Nodes), Edges: edges}, nil
}

// Export exports graph data to YAML
func (c *YAMLCodec) Export(fragment *domain.Fragment, w io.Writer) error {
	yf := yamlFragment{
		Nodes: nonNil(fragment.Nodes),
		Edges: edgesToPairs(fragment.Edges),
	}

	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	defer encoder.Close()

	if err := encoder.Encode(&yf); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}

	return nil
}
