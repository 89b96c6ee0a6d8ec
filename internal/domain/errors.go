package domain

import "errors"

// Error kinds surfaced at the UI boundary
var (
	// ErrInvalidEdge: malformed, duplicate or self-referential edge text, or an
	// edge naming a node that does not exist
	ErrInvalidEdge = errors.New("invalid edge")
	// ErrNodeNotFound: a remove request matched no existing node
	ErrNodeNotFound = errors.New("node not found")
	// ErrEdgeNotFound: a remove request matched no existing edge
	ErrEdgeNotFound = errors.New("edge not found")
	// ErrNetworkFailure: the coloring request failed or returned an error status
	ErrNetworkFailure = errors.New("coloring request failed")
)

// UserMessage returns the inline message shown for err
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidEdge):
		return "Invalid edge(s). Please ensure the start and end nodes are different, exist, are formatted correctly, and are not duplicates."
	case errors.Is(err, ErrNodeNotFound):
		return "Node(s) not found. Please ensure you've entered the correct node names to remove."
	case errors.Is(err, ErrEdgeNotFound):
		return "Edge(s) not found. Please ensure you've entered existing edges to remove."
	case errors.Is(err, ErrNetworkFailure):
		return "Error generating graph. Please try again."
	default:
		return "Something went wrong. Please try again."
	}
}
