// Package layout computes where and in which color things are drawn on the
// 400x400 canvas. Everything here is deterministic: the same inputs always
// produce the same points and colors.
package layout

import (
	"math"

	"chromagraph/internal/domain"
)

// Canvas geometry
const (
	CanvasWidth   = 400
	CanvasHeight  = 400
	DefaultRadius = 150.0
	NodeRadius    = 10.0
	SnapDistance  = 30.0
)

// Center is the point the circular layout is centered on
var Center = domain.NewPosition(CanvasWidth/2, CanvasHeight/2)

// Placement is a node with its rendered position
type Placement struct {
	Node     string          `json:"node"`
	Position domain.Position `json:"position"`
}

// PositionOf places node index of total evenly on a circle of the given radius
// around Center, starting at angle 0 and turning clockwise in screen space.
// A non-positive total yields Center.
func PositionOf(index, total int, radius float64) domain.Position {
	if total <= 0 {
		return Center
	}
	angle := 2 * math.Pi * float64(index) / float64(total)
	return domain.NewPosition(
		Center.X+radius*math.Cos(angle),
		Center.Y+radius*math.Sin(angle),
	)
}

// Place positions an ordered node list
func Place(nodes []string, radius float64) []Placement {
	placements := make([]Placement, len(nodes))
	for i, n := range nodes {
		placements[i] = Placement{Node: n, Position: PositionOf(i, len(nodes), radius)}
	}
	return placements
}

// Lookup returns the position of node among placements
func Lookup(placements []Placement, node string) (domain.Position, bool) {
	for _, p := range placements {
		if p.Node == node {
			return p.Position, true
		}
	}
	return domain.Position{}, false
}

// Nearest returns the first node, in placement order, whose position lies
// within maxDist of p
func Nearest(p domain.Position, placements []Placement, maxDist float64) (string, bool) {
	for _, pl := range placements {
		if pl.Position.DistanceTo(p) <= maxDist {
			return pl.Node, true
		}
	}
	return "", false
}
