package viewer

import (
	"math"

	"github.com/gdamore/tcell/v2"

	"starmap/internal/render"
)

// Action represents a user-requested camera action.
type Action uint8

const (
	ActionNone Action = iota
	ActionOrbitLeft
	ActionOrbitRight
	ActionOrbitUp
	ActionOrbitDown
	ActionZoomIn
	ActionZoomOut
	ActionReset
	ActionQuit
)

const (
	orbitStep = 5 * math.Pi / 180
	zoomStep  = 1.15
)

// Hint is the key help shown in the HUD.
const Hint = "←→↑↓/hjkl orbit   +/- zoom   r reset   q quit"

// keyToAction maps a tcell key event to a viewer action.
func keyToAction(ev *tcell.EventKey) Action {
	switch ev.Key() {
	case tcell.KeyLeft:
		return ActionOrbitLeft
	case tcell.KeyRight:
		return ActionOrbitRight
	case tcell.KeyUp:
		return ActionOrbitUp
	case tcell.KeyDown:
		return ActionOrbitDown
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return ActionQuit
	}

	switch ev.Rune() {
	case 'h', 'H':
		return ActionOrbitLeft
	case 'l', 'L':
		return ActionOrbitRight
	case 'k', 'K':
		return ActionOrbitUp
	case 'j', 'J':
		return ActionOrbitDown
	case '+', '=':
		return ActionZoomIn
	case '-', '_':
		return ActionZoomOut
	case 'r', 'R':
		return ActionReset
	case 'q', 'Q':
		return ActionQuit
	}
	return ActionNone
}

// apply moves the camera according to a.
func apply(c *render.Camera, a Action) {
	switch a {
	case ActionOrbitLeft:
		c.Orbit(-orbitStep, 0)
	case ActionOrbitRight:
		c.Orbit(orbitStep, 0)
	case ActionOrbitUp:
		c.Orbit(0, orbitStep)
	case ActionOrbitDown:
		c.Orbit(0, -orbitStep)
	case ActionZoomIn:
		c.Zoom(1 / zoomStep)
	case ActionZoomOut:
		c.Zoom(zoomStep)
	case ActionReset:
		c.Reset()
	}
}
