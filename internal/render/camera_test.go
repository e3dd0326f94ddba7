package render

import (
	"math"
	"testing"

	"starmap/internal/catalog"
)

func TestCameraDefaultPosition(t *testing.T) {
	c := NewCamera()
	p := c.Position()
	for _, v := range []float64{p.X, p.Y, p.Z} {
		if math.Abs(v-4) > 1e-9 {
			t.Fatalf("Position() = %+v; want (4, 4, 4)", p)
		}
	}
}

func TestProjectOriginIsCentered(t *testing.T) {
	c := NewCamera()
	sx, sy, depth, visible := c.Project(catalog.Point{}, 80, 20)
	if !visible {
		t.Fatal("origin should be visible")
	}
	if sx != 40 || sy != 10 {
		t.Errorf("origin projected to (%d, %d); want (40, 10)", sx, sy)
	}
	if math.Abs(depth-c.Distance) > 1e-9 {
		t.Errorf("depth = %v; want %v", depth, c.Distance)
	}
}

func TestProjectBehindCameraIsHidden(t *testing.T) {
	c := NewCamera()
	if _, _, _, visible := c.Project(catalog.Point{X: 8, Y: 8, Z: 8}, 80, 20); visible {
		t.Error("point behind the eye should not be visible")
	}
}

func TestProjectOffscreenIsHidden(t *testing.T) {
	c := NewCamera()
	if _, _, _, visible := c.Project(catalog.Point{X: -1000, Y: 0, Z: 1000}, 80, 20); visible {
		t.Error("far lateral point should fall outside the viewport")
	}
	if _, _, _, visible := c.Project(catalog.Point{}, 0, 0); visible {
		t.Error("empty viewport should hide everything")
	}
}

func TestProjectUpIsUp(t *testing.T) {
	c := NewCamera()
	_, low, _, _ := c.Project(catalog.Point{Y: -0.5}, 80, 20)
	_, high, _, _ := c.Project(catalog.Point{Y: 0.5}, 80, 20)
	if high >= low {
		t.Errorf("higher world Y should map to a smaller row: high=%d low=%d", high, low)
	}
}

func TestOrbitClampsPitch(t *testing.T) {
	c := NewCamera()
	c.Orbit(0, 10)
	if c.Pitch > maxPitch+1e-12 {
		t.Errorf("pitch = %v; want <= %v", c.Pitch, maxPitch)
	}
	c.Orbit(0, -20)
	if c.Pitch < -maxPitch-1e-12 {
		t.Errorf("pitch = %v; want >= %v", c.Pitch, -maxPitch)
	}
}

func TestZoomClamps(t *testing.T) {
	c := NewCamera()
	for range 100 {
		c.Zoom(0.5)
	}
	if c.Distance != minDistance {
		t.Errorf("distance = %v; want %v", c.Distance, minDistance)
	}
	for range 100 {
		c.Zoom(2)
	}
	if c.Distance != maxDistance {
		t.Errorf("distance = %v; want %v", c.Distance, maxDistance)
	}
	c.Reset()
	if math.Abs(c.Distance-4*math.Sqrt(3)) > 1e-9 {
		t.Errorf("Reset distance = %v", c.Distance)
	}
}
