// Package interaction implements drag-to-connect: press on a node, drag, and
// release on (or near) another node to connect the two.
//
// The state machine is decoupled from any rendering toolkit. Callers translate
// their pointer events into the PointerHandler methods; the browser page does
// so through the /api/drag endpoints.
package interaction

import (
	"sync"

	"chromagraph/internal/domain"
	"chromagraph/internal/layout"
)

// State is the drag state
type State int

const (
	Idle State = iota
	Dragging
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	default:
		return "unknown"
	}
}

// PointerHandler receives pointer events from the rendering layer
type PointerHandler interface {
	OnPointerDown(nodeID string)
	OnPointerMove(p domain.Position)
	// OnPointerUp takes the node under the pointer, or "" when released over
	// empty canvas space
	OnPointerUp(nodeID string) Outcome
	OnPointerLeave()
}

// EdgeAdder creates edges on release
type EdgeAdder interface {
	AddEdgeDirect(a, b string) bool
}

// Locator supplies the current rendered node positions
type Locator interface {
	Placements() []layout.Placement
}

// Outcome reports what a release did
type Outcome struct {
	Start string `json:"start"`
	End   string `json:"end,omitempty"`
	Added bool   `json:"added"`
}

// Preview is the in-progress edge drawn while dragging
type Preview struct {
	From domain.Position `json:"from"`
	To   domain.Position `json:"to"`
	// Snapped is set when To is the position of a potential end node
	Snapped bool `json:"snapped"`
}

// DragConnect is the drag-to-connect state machine. It is safe for concurrent use.
type DragConnect struct {
	mu      sync.Mutex
	edges   EdgeAdder
	locator Locator

	state        State
	start        string
	cursor       domain.Position
	potentialEnd string
}

var _ PointerHandler = (*DragConnect)(nil)

// NewDragConnect creates an idle drag interaction
func NewDragConnect(edges EdgeAdder, locator Locator) *DragConnect {
	return &DragConnect{edges: edges, locator: locator}
}

// OnPointerDown starts dragging from nodeID. Pressing on a node that is not
// rendered is ignored.
func (d *DragConnect) OnPointerDown(nodeID string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	id := domain.NormalizeID(nodeID)
	pos, ok := layout.Lookup(d.locator.Placements(), id)
	if !ok {
		return
	}
	d.state = Dragging
	d.start = id
	d.cursor = pos
	d.potentialEnd = ""
}

// OnPointerMove tracks the cursor and snaps to a node within layout.SnapDistance
func (d *DragConnect) OnPointerMove(p domain.Position) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.state != Dragging {
		return
	}
	d.cursor = p
	d.potentialEnd, _ = layout.Nearest(p, d.locator.Placements(), layout.SnapDistance)
}

// OnPointerUp ends the drag. The end node is the node released over, else the
// snapped potential end; an edge is requested when it differs from the start.
func (d *DragConnect) OnPointerUp(nodeID string) Outcome {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.state != Dragging {
		return Outcome{}
	}

	out := Outcome{Start: d.start}
	end := domain.NormalizeID(nodeID)
	if end == "" {
		end = d.potentialEnd
	}
	if end != "" && end != d.start {
		out.End = end
		out.Added = d.edges.AddEdgeDirect(d.start, end)
	}

	d.resetLocked()
	return out
}

// OnPointerLeave abandons the drag without touching the graph
func (d *DragConnect) OnPointerLeave() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.resetLocked()
}

// State returns the current state
func (d *DragConnect) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// Start returns the node the drag started from, "" when idle
func (d *DragConnect) Start() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.start
}

// PotentialEnd returns the node currently snapped to, if any
func (d *DragConnect) PotentialEnd() (string, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.potentialEnd, d.potentialEnd != ""
}

// Cursor returns the last tracked pointer position
func (d *DragConnect) Cursor() domain.Position {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cursor
}

// Preview returns the in-progress edge, or false when idle
func (d *DragConnect) Preview() (Preview, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.state != Dragging {
		return Preview{}, false
	}
	placements := d.locator.Placements()
	from, ok := layout.Lookup(placements, d.start)
	if !ok {
		return Preview{}, false
	}
	if d.potentialEnd != "" {
		if to, ok := layout.Lookup(placements, d.potentialEnd); ok {
			return Preview{From: from, To: to, Snapped: true}, true
		}
	}
	return Preview{From: from, To: d.cursor}, true
}

func (d *DragConnect) resetLocked() {
	d.state = Idle
	d.start = ""
	d.potentialEnd = ""
	d.cursor = domain.Position{}
}

// LocatorFunc adapts a function to Locator
type LocatorFunc func() []layout.Placement

// Placements calls f
func (f LocatorFunc) Placements() []layout.Placement {
	return f()
}
