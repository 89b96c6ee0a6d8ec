package codec

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chromagraph/internal/domain"
)

func sampleFragment() *domain.Fragment {
	return &domain.Fragment{
		Nodes: []string{"a", "b", "c"},
		Edges: []domain.Edge{domain.NewEdge("a", "b"), domain.NewEdge("c", "b")},
	}
}

func TestRoundTrip(t *testing.T) {
	for _, format := range []string{"json", "yaml"} {
		t.Run(format, func(t *testing.T) {
			c, err := ForFormat(format)
			require.NoError(t, err)

			var buf bytes.Buffer
			require.NoError(t, c.Export(sampleFragment(), &buf))

			parsed, err := c.Parse(&buf)
			require.NoError(t, err)
			assert.Equal(t, sampleFragment(), parsed)
		})
	}
}

func TestJSONShape(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONCodec().Export(sampleFragment(), &buf))
	assert.JSONEq(t, `{"nodes":["a","b","c"],"edges":[["a","b"],["c","b"]]}`, buf.String())
}

func TestYAMLParse(t *testing.T) {
	t.Run("flow and block pairs", func(t *testing.T) {
		doc := `
nodes: [a, b, c]
edges:
  - [a, b]
  -
    - b
    - c
`
		f, err := NewYAMLCodec().Parse(strings.NewReader(doc))
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b", "c"}, f.Nodes)
		assert.Equal(t, []domain.Edge{domain.NewEdge("a", "b"), domain.NewEdge("b", "c")}, f.Edges)
	})

	t.Run("empty document", func(t *testing.T) {
		f, err := NewYAMLCodec().Parse(strings.NewReader(""))
		require.NoError(t, err)
		assert.Empty(t, f.Nodes)
		assert.Empty(t, f.Edges)
	})

	t.Run("wrong arity", func(t *testing.T) {
		_, err := NewYAMLCodec().Parse(strings.NewReader("edges:\n  - [a, b, c]\n"))
		assert.Error(t, err)
	})
}

func TestJSONParseErrors(t *testing.T) {
	_, err := NewJSONCodec().Parse(strings.NewReader(`{"nodes":`))
	assert.Error(t, err)

	_, err = NewJSONCodec().Parse(strings.NewReader(`{"edges":[["a"]]}`))
	assert.Error(t, err)
}

func TestForFormat(t *testing.T) {
	for _, name := range []string{"json", "JSON", ".json"} {
		c, err := ForFormat(name)
		require.NoError(t, err)
		assert.Equal(t, "json", c.Format())
	}
	for _, name := range []string{"yaml", "yml", ".yml"} {
		c, err := ForFormat(name)
		require.NoError(t, err)
		assert.Equal(t, "yaml", c.Format())
	}

	_, err := ForFormat("ansible")
	assert.Error(t, err)
}
