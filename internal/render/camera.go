package render

import (
	"math"

	"starmap/internal/catalog"
)

// Camera is an orbit camera looking at the origin. Yaw rotates around the
// world Y axis, pitch raises the eye above the XZ plane.
type Camera struct {
	Yaw      float64 // radians
	Pitch    float64 // radians
	Distance float64
	FOV      float64 // vertical field of view, radians

	// CellAspect is the height of a terminal cell divided by its width.
	CellAspect float64
}

const (
	minDistance = 0.5
	maxDistance = 500
	maxPitch    = 89 * math.Pi / 180
	nearPlane   = 0.01

	// snap absorbs rounding error for points that land on a cell edge.
	snap = 1e-9
)

// NewCamera returns a camera at (4, 4, 4) with a 45 degree field of view.
func NewCamera() *Camera {
	c := &Camera{}
	c.Reset()
	return c
}

// Reset restores the initial viewpoint.
func (c *Camera) Reset() {
	c.Yaw = math.Pi / 4
	c.Pitch = math.Asin(1 / math.Sqrt(3))
	c.Distance = 4 * math.Sqrt(3)
	c.FOV = 45 * math.Pi / 180
	c.CellAspect = 2
}

// Orbit rotates the eye around the origin.
func (c *Camera) Orbit(dyaw, dpitch float64) {
	c.Yaw = math.Mod(c.Yaw+dyaw, 2*math.Pi)
	c.Pitch = math.Max(-maxPitch, math.Min(maxPitch, c.Pitch+dpitch))
}

// Zoom scales the distance to the origin; factor < 1 moves closer.
func (c *Camera) Zoom(factor float64) {
	c.Distance = math.Max(minDistance, math.Min(maxDistance, c.Distance*factor))
}

// Position returns the eye position in world space.
func (c *Camera) Position() catalog.Point {
	horiz := c.Distance * math.Cos(c.Pitch)
	return catalog.Point{
		X: horiz * math.Sin(c.Yaw),
		Y: c.Distance * math.Sin(c.Pitch),
		Z: horiz * math.Cos(c.Yaw),
	}
}

// Project maps world point p onto a w x h cell viewport. depth is the
// distance along the view axis. visible is false when the point is behind
// the eye or outside the viewport.
func (c *Camera) Project(p catalog.Point, w, h int) (sx, sy int, depth float64, visible bool) {
	if w <= 0 || h <= 0 {
		return 0, 0, 0, false
	}
	eye := c.Position()
	fwd := normalize(vec{-eye.X, -eye.Y, -eye.Z})
	right := normalize(cross(fwd, vec{0, 1, 0}))
	up := cross(right, fwd)

	rel := vec{p.X - eye.X, p.Y - eye.Y, p.Z - eye.Z}
	depth = dot(rel, fwd)
	if depth <= nearPlane {
		return 0, 0, depth, false
	}

	focal := 1 / math.Tan(c.FOV/2)
	aspect := float64(w) / (float64(h) * c.CellAspect)
	ndcX := dot(rel, right) * focal / (depth * aspect)
	ndcY := dot(rel, up) * focal / depth

	sx = int(math.Floor((ndcX+1)/2*float64(w) + snap))
	sy = int(math.Floor((1-ndcY)/2*float64(h) + snap))
	visible = sx >= 0 && sx < w && sy >= 0 && sy < h
	return sx, sy, depth, visible
}

type vec [3]float64

func dot(a, b vec) float64 { return a[0]*b[0] + a[1]*b[1] + a[2]*b[2] }

func cross(a, b vec) vec {
	return vec{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

func normalize(a vec) vec {
	l := math.Sqrt(dot(a, a))
	if l == 0 {
		return a
	}
	return vec{a[0] / l, a[1] / l, a[2] / l}
}
