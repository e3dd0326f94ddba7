package render

import "github.com/gdamore/tcell/v2"

// Shade is the glyph and color used for a star at some depth band.
type Shade struct {
	Glyph string
	Color tcell.Color
}

// StarShades runs from nearest to farthest. Distance is measured relative to
// the camera's orbit distance, so the bands follow zoom.
var StarShades = [4]Shade{
	{Glyph: "✦", Color: tcell.ColorWhite},
	{Glyph: "*", Color: tcell.ColorSilver},
	{Glyph: "•", Color: tcell.ColorGray},
	{Glyph: "·", Color: tcell.ColorDimGray},
}

var (
	gridStyle = tcell.StyleDefault.Foreground(tcell.ColorDarkSlateGray).Background(tcell.ColorBlack)
	axisStyle = tcell.StyleDefault.Foreground(tcell.ColorSteelBlue).Background(tcell.ColorBlack)
	hudStyle  = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	fpsStyle  = tcell.StyleDefault.Foreground(tcell.ColorLime)
	hintStyle = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

// shadeFor picks the depth band for a star at depth, given the orbit distance.
func shadeFor(depth, distance float64) Shade {
	ratio := depth / distance
	switch {
	case ratio < 0.75:
		return StarShades[0]
	case ratio < 1.25:
		return StarShades[1]
	case ratio < 2:
		return StarShades[2]
	default:
		return StarShades[3]
	}
}
