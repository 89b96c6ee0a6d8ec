package main

import (
	"github.com/fatih/color"

	"chromagraph/internal/layout"
)

// Output colors
var (
	brand  = color.New(color.FgHiMagenta, color.Bold)
	subtle = color.New(color.FgHiBlack)
	good   = color.New(color.FgGreen)
	bad    = color.New(color.FgRed)
)

// swatch returns a color printer for a layout color
func swatch(c layout.RGB) *color.Color {
	return color.RGB(int(c.R), int(c.G), int(c.B))
}
