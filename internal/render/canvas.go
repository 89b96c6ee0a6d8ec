// Package render draws the graph as an SVG canvas and serves the editor page.
package render

import (
	"chromagraph/internal/domain"
	"chromagraph/internal/interaction"
	"chromagraph/internal/layout"
	"chromagraph/internal/parser"
)

// Stroke colors
const (
	EdgeStroke     = "black"
	ConflictStroke = "red"
	NodeStroke     = "black"
	TargetStroke   = "blue"
	PreviewStroke  = "gray"
)

// Options selects what a canvas shows
type Options struct {
	// Colored fills nodes with the hue of their color class
	Colored bool
	// Conflicts draws edges between same-colored nodes in red
	Conflicts bool
	Radius    float64
	Drag      *DragView
}

// DragView is an in-progress drag to draw on top of the graph
type DragView struct {
	Start   string
	Preview interaction.Preview
}

// NodeView is a node as drawn
type NodeView struct {
	ID     string
	X, Y   float64
	Fill   string
	Stroke string
	Target bool
}

// EdgeView is an edge as drawn
type EdgeView struct {
	A, B           string
	X1, Y1, X2, Y2 float64
	Stroke         string
	Conflict       bool
}

// Canvas holds everything needed to draw one frame
type Canvas struct {
	Width      int
	Height     int
	NodeRadius float64
	Version    uint64
	// EdgeList is the edge set as it would be typed into the edges field
	EdgeList   string
	Nodes      []NodeView
	Edges      []EdgeView
	Preview    *interaction.Preview
}

// BuildCanvas lays out a graph snapshot
func BuildCanvas(graph domain.Graph, opts Options) Canvas {
	radius := opts.Radius
	if radius <= 0 {
		radius = layout.DefaultRadius
	}
	placements := layout.Place(graph.Nodes, radius)

	canvas := Canvas{
		Width:      layout.CanvasWidth,
		Height:     layout.CanvasHeight,
		NodeRadius: layout.NodeRadius,
		Version:    graph.Version,
		EdgeList:   parser.FormatEdgeList(graph.Edges),
		Nodes:      make([]NodeView, 0, len(placements)),
		Edges:      make([]EdgeView, 0, len(graph.Edges)),
	}

	var conflicts map[domain.EdgeID]bool
	colored := graph.IsColored()
	if opts.Conflicts && colored {
		conflicts = layout.Conflicts(graph.Edges, graph.Coloring)
	}

	for _, e := range graph.Edges {
		from, okA := layout.Lookup(placements, e.A)
		to, okB := layout.Lookup(placements, e.B)
		if !okA || !okB {
			continue
		}
		view := EdgeView{
			A: e.A, B: e.B,
			X1: from.X, Y1: from.Y,
			X2: to.X, Y2: to.Y,
			Stroke: EdgeStroke,
		}
		if conflicts[e.Key()] {
			view.Conflict = true
			view.Stroke = ConflictStroke
		}
		canvas.Edges = append(canvas.Edges, view)
	}

	total := layout.TotalColors(graph.Coloring)
	connected := map[string]bool{}
	if opts.Drag != nil {
		for _, e := range graph.Edges {
			if e.Touches(opts.Drag.Start) {
				connected[e.A] = true
				connected[e.B] = true
			}
		}
	}

	for _, p := range placements {
		view := NodeView{
			ID:     p.Node,
			X:      p.Position.X,
			Y:      p.Position.Y,
			Fill:   layout.Neutral.String(),
			Stroke: NodeStroke,
		}
		if opts.Colored && colored {
			view.Fill = layout.NodeColor(p.Node, graph.Coloring, total).String()
		}
		if opts.Drag != nil && p.Node != opts.Drag.Start && !connected[p.Node] {
			view.Target = true
			view.Stroke = TargetStroke
		}
		canvas.Nodes = append(canvas.Nodes, view)
	}

	if opts.Drag != nil {
		preview := opts.Drag.Preview
		canvas.Preview = &preview
	}
	return canvas
}
