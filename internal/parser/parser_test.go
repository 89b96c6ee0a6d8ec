package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chromagraph/internal/domain"
)

func TestParseNodeList(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"simple list", "a,b,c", []string{"a", "b", "c"}},
		{"trims and lower-cases", "  A , b ,C  ", []string{"a", "b", "c"}},
		{"drops empty entries", "a,,b, ,", []string{"a", "b"}},
		{"keeps duplicates in order", "b,a,b", []string{"b", "a", "b"}},
		{"empty input", "", []string{}},
		{"only separators", ",,,", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseNodeList(tt.input))
		})
	}
}

func TestParseEdgeList(t *testing.T) {
	t.Run("well formed pairs", func(t *testing.T) {
		tokens := ParseEdgeList("a-b, C - d")
		require.Len(t, tokens, 2)

		a, b, ok := tokens[0].Pair()
		assert.True(t, ok)
		assert.Equal(t, "a", a)
		assert.Equal(t, "b", b)

		edge, ok := tokens[1].Edge()
		assert.True(t, ok)
		assert.Equal(t, domain.NewEdge("c", "d"), edge)
	})

	t.Run("malformed tokens are passed through", func(t *testing.T) {
		tokens := ParseEdgeList("a, a-b-c, -b, a-")
		require.Len(t, tokens, 4)

		assert.Equal(t, []string{"a"}, tokens[0].Parts)
		assert.Equal(t, []string{"a", "b", "c"}, tokens[1].Parts)
		assert.Equal(t, "a-b-c", tokens[1].Raw)

		for _, tok := range tokens {
			_, _, ok := tok.Pair()
			assert.False(t, ok, "token %q should not form a pair", tok.Raw)
		}
	})

	t.Run("self loop parses structurally", func(t *testing.T) {
		tokens := ParseEdgeList("a-a")
		require.Len(t, tokens, 1)
		_, _, ok := tokens[0].Pair()
		assert.True(t, ok)
	})

	t.Run("blank entries dropped", func(t *testing.T) {
		assert.Empty(t, ParseEdgeList(" , ,"))
	})
}

func TestFormatRoundTrip(t *testing.T) {
	edges := []domain.Edge{domain.NewEdge("a", "b"), domain.NewEdge("c", "d")}
	text := FormatEdgeList(edges)
	assert.Equal(t, "a-b,c-d", text)

	var parsed []domain.Edge
	for _, tok := range ParseEdgeList(text) {
		e, ok := tok.Edge()
		require.True(t, ok)
		parsed = append(parsed, e)
	}
	assert.Equal(t, edges, parsed)

	assert.Equal(t, []string{"x", "y"}, ParseNodeList(FormatNodeList([]string{"x", "y"})))
}
