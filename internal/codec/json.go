package codec

import (
	"encoding/json"
	"fmt"
	"io"

	"chromagraph/internal/domain"
)

// JSONCodec handles JSON import/export
type JSONCodec struct{}

// NewJSONCodec creates a new JSON codec
func NewJSONCodec() *JSONCodec {
	return &JSONCodec{}
}

// Format returns the codec format identifier
func (c *JSONCodec) Format() string {
	return "json"
}

// ContentType returns the MIME type of the format
func (c *JSONCodec) ContentType() string {
	return "application/json"
}

type jsonFragment struct {
	Nodes []string   `json:"nodes"`
	Edges [][]string `json:"edges"`
}

// Parse imports graph data from JSON
func (c *JSONCodec) Parse(r io.Reader) (*domain.Fragment, error) {
	var jf jsonFragment
	decoder := json.NewDecoder(r)
	if err := decoder.Decode(&jf); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	edges, err := pairsToEdges(jf.Edges)
	if err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	return &domain.Fragment{Nodes: nonNil(jf.Nodes), Edges: edges}, nil
}

// Export exports graph data to JSON
func (c *JSONCodec) Export(fragment *domain.Fragment, w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	jf := jsonFragment{
		Nodes: nonNil(fragment.Nodes),
		Edges: edgesToPairs(fragment.Edges),
	}
	if err := encoder.Encode(jf); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	return nil
}
