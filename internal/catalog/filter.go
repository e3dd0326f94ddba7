package catalog

// Scale converts raw catalog units into render units.
const Scale = 1e-7

// Point is a normalized render-space position.
type Point struct {
	X, Y, Z float64
}

// Project scales the raw coordinates of e into render units. No rotation or
// clipping is applied; that belongs to the camera.
func Project(e Entity) Point {
	return Point{
		X: float64(e.X) * Scale,
		Y: float64(e.Y) * Scale,
		Z: float64(e.Z) * Scale,
	}
}

// Stars returns the star entities in their original order.
func Stars(entities []Entity) []Entity {
	return filterKind(entities, KindStar)
}

// Planets returns the planet entities in their original order.
func Planets(entities []Entity) []Entity {
	return filterKind(entities, KindPlanet)
}

// StarPoints projects every star in entities.
func StarPoints(entities []Entity) []Point {
	stars := Stars(entities)
	points := make([]Point, len(stars))
	for i, s := range stars {
		points[i] = Project(s)
	}
	return points
}

func filterKind(entities []Entity, k Kind) []Entity {
	out := make([]Entity, 0, len(entities))
	for _, e := range entities {
		if e.Kind() == k {
			out = append(out, e)
		}
	}
	return out
}
