// Package parser turns the free text typed into the node and edge fields into
// structured lists. It is pure: it never consults the graph, so a token that
// parses is not necessarily a valid node or edge. Validation belongs to the
// store.
package parser

import (
	"strings"

	"chromagraph/internal/domain"
)

// ListSeparator separates entries in both node and edge lists
const ListSeparator = ","

// EdgeToken is one comma-separated entry of an edge list
type EdgeToken struct {
	Raw   string
	Parts []string
}

// Pair returns the two endpoints when the token has exactly two non-empty parts
func (t EdgeToken) Pair() (a, b string, ok bool) {
	if len(t.Parts) != 2 || t.Parts[0] == "" || t.Parts[1] == "" {
		return "", "", false
	}
	return t.Parts[0], t.Parts[1], true
}

// Edge returns the token as an edge when it is well formed
func (t EdgeToken) Edge() (domain.Edge, bool) {
	a, b, ok := t.Pair()
	if !ok {
		return domain.Edge{}, false
	}
	return domain.NewEdge(a, b), true
}

// ParseNodeList splits "a, b,C" into normalized ids, dropping empty entries.
// Duplicates are kept in input order.
func ParseNodeList(text string) []string {
	fields := strings.Split(text, ListSeparator)
	nodes := make([]string, 0, len(fields))
	for _, f := range fields {
		if id := domain.NormalizeID(f); id != "" {
			nodes = append(nodes, id)
		}
	}
	return nodes
}

// ParseEdgeList splits "a-b, c-d" into edge tokens. Every part is normalized
// like a node id. Tokens with the wrong number of parts are kept so the caller
// can report them; only blank entries are dropped.
func ParseEdgeList(text string) []EdgeToken {
	fields := strings.Split(text, ListSeparator)
	tokens := make([]EdgeToken, 0, len(fields))
	for _, f := range fields {
		raw := strings.TrimSpace(f)
		if raw == "" {
			continue
		}
		rawParts := strings.Split(raw, domain.EdgeSeparator)
		parts := make([]string, len(rawParts))
		for i, p := range rawParts {
			parts[i] = domain.NormalizeID(p)
		}
		tokens = append(tokens, EdgeToken{Raw: raw, Parts: parts})
	}
	return tokens
}

// FormatNodeList joins ids into text ParseNodeList reads back unchanged
func FormatNodeList(nodes []string) string {
	return strings.Join(nodes, ListSeparator)
}

// FormatEdgeList joins edges into text ParseEdgeList reads back unchanged
func FormatEdgeList(edges []domain.Edge) string {
	parts := make([]string, len(edges))
	for i, e := range edges {
		parts[i] = e.String()
	}
	return strings.Join(parts, ListSeparator)
}
