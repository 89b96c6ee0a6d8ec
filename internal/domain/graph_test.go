package domain

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestColoringClasses(t *testing.T) {
	tests := []struct {
		name     string
		coloring Coloring
		want     int
	}{
		{"nil coloring", nil, 0},
		{"empty coloring", Coloring{}, 0},
		{"single class", Coloring{"a": 0}, 1},
		{"gaps count up to max", Coloring{"a": 0, "b": 4}, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.coloring.Classes(); got != tt.want {
				t.Errorf("Classes() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestColoringClone(t *testing.T) {
	orig := Coloring{"a": 1}
	clone := orig.Clone()
	clone["a"] = 7

	if orig["a"] != 1 {
		t.Error("expected clone to be independent of the original")
	}
}

func TestGraphHelpers(t *testing.T) {
	g := &Graph{
		Nodes: []string{"a", "b"},
		Edges: []Edge{NewEdge("a", "b")},
	}

	if g.IsEmpty() {
		t.Error("expected graph not to be empty")
	}
	if g.IsColored() {
		t.Error("expected graph without coloring not to be colored")
	}

	pairs := g.EdgePairs()
	if len(pairs) != 1 || pairs[0] != [2]string{"a", "b"} {
		t.Errorf("unexpected edge pairs: %v", pairs)
	}

	fragment := g.Fragment()
	if len(fragment.Nodes) != 2 || len(fragment.Edges) != 1 {
		t.Errorf("unexpected fragment: %+v", fragment)
	}

	if !(&Graph{}).IsEmpty() {
		t.Error("expected zero graph to be empty")
	}
}

func TestUserMessage(t *testing.T) {
	t.Run("wrapped kinds are recognised", func(t *testing.T) {
		err := fmt.Errorf("remove nodes: %w", ErrNodeNotFound)
		if !strings.HasPrefix(UserMessage(err), "Node(s) not found") {
			t.Errorf("unexpected message: %s", UserMessage(err))
		}
	})

	t.Run("network failure", func(t *testing.T) {
		err := fmt.Errorf("post: %w", ErrNetworkFailure)
		if UserMessage(err) != "Error generating graph. Please try again." {
			t.Errorf("unexpected message: %s", UserMessage(err))
		}
	})

	t.Run("nil error has no message", func(t *testing.T) {
		if UserMessage(nil) != "" {
			t.Error("expected empty message")
		}
	})

	t.Run("unknown errors get a generic message", func(t *testing.T) {
		if UserMessage(errors.New("boom")) == "" {
			t.Error("expected a generic message")
		}
	})
}
