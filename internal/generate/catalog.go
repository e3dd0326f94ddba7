// Package generate builds synthetic star catalogs for demos and manual
// testing. Output is deterministic for a given Rand seed.
package generate

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"math/rand"

	"starmap/internal/catalog"
)

// Config drives one synthetic catalog.
type Config struct {
	Count       int     // records to write, corrupt ones included
	PlanetRatio float64 // share of valid records that are planets, 0–1
	Corrupt     int     // records written with an invalid type tag
	Radius      float64 // disc radius in raw catalog units
	Thickness   float64 // standard deviation of the disc height, raw units
	Rand        *rand.Rand
}

// DefaultRadius fills the viewer's default grid.
const DefaultRadius = 4.5 / catalog.Scale

// MaxRadius keeps generated coordinates well inside int32.
const MaxRadius = 150 / catalog.Scale

// Entities returns the valid entities of the catalog, in record order. Stars
// are scattered over a thin disc around the origin; each planet sits close to
// the star generated before it.
func Entities(cfg *Config) []catalog.Entity {
	n := cfg.Count - cfg.Corrupt
	if n < 0 {
		n = 0
	}
	out := make([]catalog.Entity, 0, n)
	var host catalog.Entity
	moons := 0

	for i := 0; i < n; i++ {
		if i > 0 && cfg.Rand.Float64() < cfg.PlanetRatio {
			moons++
			out = append(out, planetNear(cfg, host, int32(i+1), moons))
			continue
		}
		host = star(cfg, int32(i+1))
		out = append(out, host)
		moons = 0
	}
	return out
}

func star(cfg *Config, index int32) catalog.Entity {
	r := cfg.Radius * math.Sqrt(cfg.Rand.Float64())
	theta := 2 * math.Pi * cfg.Rand.Float64()
	return catalog.Entity{
		X:       coord(r * math.Cos(theta)),
		Y:       coord(cfg.Rand.NormFloat64() * cfg.Thickness),
		Z:       coord(r * math.Sin(theta)),
		Index:   index,
		Name:    fmt.Sprintf("HD %06d", cfg.Rand.Intn(1_000_000)),
		TypeTag: fmt.Sprintf("S%02d", cfg.Rand.Intn(catalog.MaxStarSubType+1)),
	}
}

func planetNear(cfg *Config, host catalog.Entity, index int32, nth int) catalog.Entity {
	near := func(c int32) int32 { return coord(float64(c) + cfg.Rand.NormFloat64()*cfg.Radius/200) }
	name := fmt.Sprintf("%s %c", host.Name, 'a'+rune(nth%26))
	if len(name) > catalog.NameSize {
		name = name[:catalog.NameSize]
	}
	return catalog.Entity{
		X:       near(host.X),
		Y:       near(host.Y),
		Z:       near(host.Z),
		Index:   index,
		Name:    name,
		TypeTag: fmt.Sprintf("P%02d", cfg.Rand.Intn(100)),
	}
}

// coord converts v to a raw coordinate, saturating at ±math.MaxInt32 so the
// value survives the sign flip of the y axis.
func coord(v float64) int32 {
	switch {
	case math.IsNaN(v):
		return 0
	case v >= math.MaxInt32:
		return math.MaxInt32
	case v <= -math.MaxInt32:
		return -math.MaxInt32
	}
	return int32(v)
}

// Write encodes a catalog to w. Corrupt records, if any, are spread evenly
// between the valid ones. It returns the number of valid records written.
func Write(w io.Writer, cfg *Config) (int, error) {
	bw := bufio.NewWriter(w)
	entities := Entities(cfg)

	every := 0
	if cfg.Corrupt > 0 {
		every = len(entities)/cfg.Corrupt + 1
	}
	corrupt := cfg.Corrupt
	buf := make([]byte, 0, catalog.RecordSize)

	for i, e := range entities {
		if every > 0 && corrupt > 0 && i%every == every-1 {
			bad := catalog.Entity{X: e.X, Y: e.Y, Z: e.Z, Name: "corrupt", TypeTag: "X99"}
			if _, err := bw.Write(bad.AppendRecord(buf[:0], 0)); err != nil {
				return 0, fmt.Errorf("write record: %w", err)
			}
			corrupt--
		}
		if err := catalog.EncodeRecord(bw, e, int32(cfg.Rand.Uint32())); err != nil {
			return 0, err
		}
	}
	for ; corrupt > 0; corrupt-- {
		bad := catalog.Entity{Name: "corrupt", TypeTag: "X99"}
		if _, err := bw.Write(bad.AppendRecord(buf[:0], 0)); err != nil {
			return 0, fmt.Errorf("write record: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return 0, fmt.Errorf("flush catalog: %w", err)
	}
	return len(entities), nil
}
