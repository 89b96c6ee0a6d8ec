package layout

import (
	"fmt"
	"math"

	"chromagraph/internal/domain"
)

// RGB is an 8-bit color
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// Neutral is the fill of a node with no color assigned
var Neutral = RGB{R: 255, G: 255, B: 255}

// String formats the color for SVG: rgb(r,g,b)
func (c RGB) String() string {
	return fmt.Sprintf("rgb(%d,%d,%d)", c.R, c.G, c.B)
}

// Hex formats the color as #rrggbb
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// ColorOf returns the color of class colorIndex out of totalColors classes.
// Classes are spread evenly around the hue circle at full saturation and value.
// With no classes the neutral color is returned.
func ColorOf(colorIndex, totalColors int) RGB {
	if totalColors <= 0 {
		return Neutral
	}
	hue := float64(colorIndex) / float64(totalColors)
	return HSVToRGB(hue, 1, 1)
}

// HSVToRGB converts h, s, v in [0, 1] to RGB using the six-sector formula
func HSVToRGB(h, s, v float64) RGB {
	i := math.Floor(h * 6)
	f := h*6 - i
	p := v * (1 - s)
	q := v * (1 - f*s)
	t := v * (1 - (1-f)*s)

	var r, g, b float64
	sector := int(i) % 6
	if sector < 0 {
		sector += 6
	}
	switch sector {
	case 0:
		r, g, b = v, t, p
	case 1:
		r, g, b = q, v, p
	case 2:
		r, g, b = p, v, t
	case 3:
		r, g, b = p, q, v
	case 4:
		r, g, b = t, p, v
	case 5:
		r, g, b = v, p, q
	}

	return RGB{R: channel(r), G: channel(g), B: channel(b)}
}

func channel(x float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, x)) * 255))
}

// TotalColors returns max(class)+1 over the coloring, or 0 when it is empty
func TotalColors(coloring domain.Coloring) int {
	return coloring.Classes()
}

// NodeColor returns the fill of node under coloring. Nodes without an entry
// get the neutral color.
func NodeColor(node string, coloring domain.Coloring, totalColors int) RGB {
	idx, ok := coloring[node]
	if !ok {
		return Neutral
	}
	return ColorOf(idx, totalColors)
}

// Conflicts returns the keys of edges whose endpoints are both colored with
// the same class
func Conflicts(edges []domain.Edge, coloring domain.Coloring) map[domain.EdgeID]bool {
	conflicts := make(map[domain.EdgeID]bool)
	for _, e := range edges {
		ca, okA := coloring[e.A]
		cb, okB := coloring[e.B]
		if okA && okB && ca == cb {
			conflicts[e.Key()] = true
		}
	}
	return conflicts
}
