// Package viewer runs the interactive terminal star map. It owns the render
// loop only; the catalog is decoded beforehand and never touched again.
package viewer

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"

	"starmap/internal/catalog"
	"starmap/internal/render"
)

// Options configures a Viewer.
type Options struct {
	FPS        int
	GridSlices int
}

// Viewer draws a fixed set of points and lets the user orbit around them.
type Viewer struct {
	screen   tcell.Screen
	renderer *render.Renderer
	points   []catalog.Point
	interval time.Duration
	fps      *fpsCounter
}

// New creates a Viewer on an initialized screen. points is shared, not copied,
// and must not be modified while the viewer runs.
func New(screen tcell.Screen, points []catalog.Point, opts Options) *Viewer {
	if opts.FPS <= 0 {
		opts.FPS = 30
	}
	return &Viewer{
		screen:   screen,
		renderer: render.NewRenderer(screen, opts.GridSlices),
		points:   points,
		interval: time.Second / time.Duration(opts.FPS),
		fps:      newFPSCounter(time.Now),
	}
}

// Camera exposes the camera, mainly for tests.
func (v *Viewer) Camera() *render.Camera { return v.renderer.Camera() }

// Run draws frames at the configured rate and handles input until the user
// quits, the screen is closed, or ctx is done. The caller owns the screen
// and must Fini it afterwards.
func (v *Viewer) Run(ctx context.Context) error {
	// Start an async input reader goroutine.
	eventCh := make(chan tcell.Event, 32)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				close(eventCh)
				return
			}
			select {
			case eventCh <- ev:
			case <-done:
				return
			}
		}
	}()

	ticker := time.NewTicker(v.interval)
	defer ticker.Stop()

	v.draw()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-eventCh:
			if !ok {
				return nil // screen closed / disconnected
			}
			switch ev := ev.(type) {
			case *tcell.EventResize:
				v.screen.Sync()
				v.draw()
			case *tcell.EventKey:
				action := keyToAction(ev)
				if action == ActionQuit {
					return nil
				}
				apply(v.renderer.Camera(), action)
			}
		case <-ticker.C:
			v.draw()
		}
	}
}

func (v *Viewer) draw() {
	v.renderer.DrawFrame(v.points)
	v.renderer.DrawHUD(render.HUD{
		Objects: len(v.points),
		FPS:     v.fps.Frame(),
		Hint:    Hint,
	})
}
