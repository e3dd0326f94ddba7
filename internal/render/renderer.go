package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"starmap/internal/catalog"
)

// HUDRows is the number of rows reserved at the top and bottom of the screen.
const HUDRows = 3

// gridStep is the sampling interval along grid lines, in world units.
const gridStep = 0.05

// Renderer draws star points, a ground grid, and the HUD onto a tcell screen.
type Renderer struct {
	screen     tcell.Screen
	camera     *Camera
	gridSlices int

	// depth holds the nearest star depth per cell of the current frame.
	depth map[[2]int]float64
}

// NewRenderer creates a Renderer for the given screen. gridSlices is the
// number of grid cells along each side of the ground plane; 0 disables it.
func NewRenderer(screen tcell.Screen, gridSlices int) *Renderer {
	return &Renderer{
		screen:     screen,
		camera:     NewCamera(),
		gridSlices: gridSlices,
		depth:      make(map[[2]int]float64),
	}
}

// Camera returns the camera used for projection.
func (r *Renderer) Camera() *Camera { return r.camera }

// Viewport returns the size of the 3D area, which excludes the HUD rows.
func (r *Renderer) Viewport() (w, h int) {
	sw, sh := r.screen.Size()
	h = sh - 2*HUDRows
	if h < 1 {
		h = 1
	}
	return sw, h
}

// DrawFrame clears the screen and draws the grid and the given points.
// It does not call Show; DrawHUD does.
func (r *Renderer) DrawFrame(points []catalog.Point) {
	r.screen.Clear()
	r.drawGrid()
	r.drawStars(points)
}

// drawGrid renders the XZ ground plane centred on the origin, one unit per
// slice, by sampling points along each line.
func (r *Renderer) drawGrid() {
	if r.gridSlices <= 0 {
		return
	}
	half := float64(r.gridSlices) / 2
	for i := 0; i <= r.gridSlices; i++ {
		off := -half + float64(i)
		style := gridStyle
		if off == 0 {
			style = axisStyle
		}
		for t := -half; t <= half; t += gridStep {
			r.plot(catalog.Point{X: off, Z: t}, "·", style)
			r.plot(catalog.Point{X: t, Z: off}, "·", style)
		}
	}
}

// drawStars renders every point, keeping the nearest one where several land
// in the same cell.
func (r *Renderer) drawStars(points []catalog.Point) {
	clear(r.depth)
	w, h := r.Viewport()
	for _, p := range points {
		sx, sy, depth, visible := r.camera.Project(p, w, h)
		if !visible {
			continue
		}
		key := [2]int{sx, sy}
		if d, ok := r.depth[key]; ok && d <= depth {
			continue
		}
		r.depth[key] = depth
		shade := shadeFor(depth, r.camera.Distance)
		style := tcell.StyleDefault.Foreground(shade.Color).Background(tcell.ColorBlack)
		r.putGlyph(sx, sy+HUDRows, shade.Glyph, style)
	}
}

func (r *Renderer) plot(p catalog.Point, glyph string, style tcell.Style) {
	w, h := r.Viewport()
	sx, sy, _, visible := r.camera.Project(p, w, h)
	if !visible {
		return
	}
	r.putGlyph(sx, sy+HUDRows, glyph, style)
}

// putGlyph draws a single glyph at screen position (x, y).
func (r *Renderer) putGlyph(x, y int, glyph string, style tcell.Style) {
	runes := []rune(glyph)
	if len(runes) == 0 {
		return
	}
	mainc := runes[0]
	var combc []rune
	if len(runes) > 1 {
		combc = runes[1:]
	}
	r.screen.SetContent(x, y, mainc, combc, style)
	if runewidth.StringWidth(glyph) == 2 {
		// Fill the second column to avoid rendering artifacts.
		r.screen.SetContent(x+1, y, ' ', nil, style)
	}
}
