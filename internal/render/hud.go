package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// HUD is the text overlay drawn around the 3D view.
type HUD struct {
	Objects int     // number of stars being displayed
	FPS     float64 // measured frames per second
	Hint    string  // key help, shown on the bottom row
}

// DrawHUD renders the overlay and flushes the frame to the terminal.
func (r *Renderer) DrawHUD(h HUD) {
	sw, sh := r.screen.Size()

	r.drawText(1, 0, fmt.Sprintf("FPS: %.0f", h.FPS), fpsStyle)
	r.drawText(1, 1, fmt.Sprintf("Displaying coordinates of %d named objects", h.Objects), hudStyle)
	r.drawHLine(HUDRows-1, tcell.ColorGray)

	r.drawHLine(sh-HUDRows, tcell.ColorGray)
	if h.Hint != "" {
		hint := runewidth.Truncate(h.Hint, sw-2, "…")
		r.drawText(1, sh-HUDRows+1, hint, hintStyle)
	}

	r.screen.Show()
}

func (r *Renderer) drawHLine(y int, color tcell.Color) {
	w, _ := r.screen.Size()
	style := tcell.StyleDefault.Foreground(color)
	for x := 0; x < w; x++ {
		r.screen.SetContent(x, y, '─', nil, style)
	}
}

func (r *Renderer) drawText(x, y int, text string, style tcell.Style) {
	col := x
	for _, ch := range text {
		r.screen.SetContent(col, y, ch, nil, style)
		col += runewidth.RuneWidth(ch)
	}
}
