// Package worldgen generates the island terrain: a diamond-square heightmap
// faded toward the edges and cut into biome tiles.
package worldgen

import (
	"math"

	"github.com/vovakirdan/dino-island/internal/core"
)

// Biome is the terrain type of one tile.
type Biome uint8

const (
	BiomeVolcano Biome = iota
	BiomeForest
	BiomeBeach
	BiomeWater
	BiomeMud
)

func (b Biome) String() string {
	switch b {
	case BiomeVolcano:
		return "volcano"
	case BiomeForest:
		return "forest"
	case BiomeBeach:
		return "beach"
	case BiomeWater:
		return "water"
	case BiomeMud:
		return "mud"
	default:
		return "unknown"
	}
}

// Passable reports whether entities may walk on the biome.
func (b Biome) Passable() bool {
	return b != BiomeWater
}

// Height thresholds for cutting the heightmap into biomes.
const (
	waterBelow  = 0.20
	beachBelow  = 0.30
	forestBelow = 0.80

	mudFraction = 0.03
	maxAttempts = 1000
	roughness   = 0.4
	roughDecay  = 0.7
)

// Point is an integer tile coordinate.
type Point struct {
	X, Y int
}

// Center returns the world position of the tile's center.
func (p Point) Center() core.Vec2 {
	return core.V(float64(p.X)+0.5, float64(p.Y)+0.5)
}

// Map is a generated island. One tile is one world unit.
type Map struct {
	width  int
	height int
	tiles  []Biome
}

// Generate builds a w x h island from the random source.
func Generate(w, h int, rng *core.RNG) *Map {
	size := 1
	for size < max(w, h) {
		size *= 2
	}
	size++

	hm := diamondSquare(size, rng)

	// Radial fade so the border is always water.
	cx, cy := float64(w)/2, float64(h)/2
	maxR := math.Min(cx, cy)

	m := &Map{width: w, height: h, tiles: make([]Biome, w*h)}
	var land []int
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			d := math.Hypot(float64(x)+0.5-cx, float64(y)+0.5-cy) / maxR
			v := hm[y*size+x] * math.Max(0, 1-d*d)
			var b Biome
			switch {
			case v < waterBelow:
				b = BiomeWater
			case v < beachBelow:
				b = BiomeBeach
			case v < forestBelow:
				b = BiomeForest
			default:
				b = BiomeVolcano
			}
			m.tiles[y*w+x] = b
			if b != BiomeWater {
				land = append(land, y*w+x)
			}
		}
	}

	// Sprinkle mud over a random share of the land.
	for i := len(land) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		land[i], land[j] = land[j], land[i]
	}
	for _, idx := range land[:int(float64(len(land))*mudFraction)] {
		m.tiles[idx] = BiomeMud
	}
	return m
}

// diamondSquare returns a size x size heightmap normalized to [0, 1].
// size must be 2^n + 1.
func diamondSquare(size int, rng *core.RNG) []float64 {
	hm := make([]float64, size*size)
	at := func(x, y int) *float64 { return &hm[y*size+x] }

	*at(0, 0) = rng.Float64()
	*at(size-1, 0) = rng.Float64()
	*at(0, size-1) = rng.Float64()
	*at(size-1, size-1) = rng.Float64()

	rough := roughness
	for step := size - 1; step > 1; step /= 2 {
		half := step / 2

		// diamond
		for y := 0; y < size-1; y += step {
			for x := 0; x < size-1; x += step {
				mid := (*at(x, y) + *at(x+step, y) + *at(x, y+step) + *at(x+step, y+step)) / 4
				*at(x+half, y+half) = mid + (rng.Float64()-0.5)*rough*float64(step)
			}
		}

		// square
		for y := 0; y < size; y += half {
			for x := (y + half) % step; x < size; x += step {
				sum, n := 0.0, 0
				if y-half >= 0 {
					sum += *at(x, y-half)
					n++
				}
				if y+half < size {
					sum += *at(x, y+half)
					n++
				}
				if x-half >= 0 {
					sum += *at(x-half, y)
					n++
				}
				if x+half < size {
					sum += *at(x+half, y)
					n++
				}
				*at(x, y) = sum/float64(n) + (rng.Float64()-0.5)*rough*float64(step)
			}
		}
		rough *= roughDecay
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range hm {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if hi-lo < 1e-7 {
		for i := range hm {
			hm[i] = 0.5
		}
		return hm
	}
	for i, v := range hm {
		hm[i] = (v - lo) / (hi - lo)
	}
	return hm
}

// Width returns the map width in tiles.
func (m *Map) Width() int {
	return m.width
}

// Height returns the map height in tiles.
func (m *Map) Height() int {
	return m.height
}

// At returns the biome at a tile. Outside the map is water.
func (m *Map) At(x, y int) Biome {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return BiomeWater
	}
	return m.tiles[y*m.width+x]
}

// Set overrides a tile. Out-of-range coordinates are ignored.
func (m *Map) Set(x, y int, b Biome) {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return
	}
	m.tiles[y*m.width+x] = b
}

func (m *Map) biomeAt(pos core.Vec2) Biome {
	return m.At(core.FloorDiv(pos.X, 1), core.FloorDiv(pos.Y, 1))
}

// Passable reports whether an entity may stand at a world position.
func (m *Map) Passable(pos core.Vec2) bool {
	return m.biomeAt(pos).Passable()
}

// Slows reports whether a world position is mud.
func (m *Map) Slows(pos core.Vec2) bool {
	return m.biomeAt(pos) == BiomeMud
}

// RandomPassable picks a random land tile. Returns false if none was found
// after a bounded number of attempts.
func (m *Map) RandomPassable(rng *core.RNG) (Point, bool) {
	for i := 0; i < maxAttempts; i++ {
		p := Point{X: rng.Intn(m.width), Y: rng.Intn(m.height)}
		if m.At(p.X, p.Y).Passable() {
			return p, true
		}
	}
	return Point{}, false
}

// RandomPassableIn picks a random land tile inside [x0, x1) x [y0, y1).
func (m *Map) RandomPassableIn(rng *core.RNG, x0, y0, x1, y1 int) (Point, bool) {
	if x1 <= x0 || y1 <= y0 {
		return Point{}, false
	}
	for i := 0; i < maxAttempts; i++ {
		p := Point{X: x0 + rng.Intn(x1-x0), Y: y0 + rng.Intn(y1-y0)}
		if m.At(p.X, p.Y).Passable() {
			return p, true
		}
	}
	return Point{}, false
}

// Coast returns every land tile with water in its 8-neighborhood, in row order.
func (m *Map) Coast() []Point {
	var out []Point
	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			if !m.At(x, y).Passable() {
				continue
			}
		scan:
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					nx, ny := x+dx, y+dy
					if nx < 0 || nx >= m.width || ny < 0 || ny >= m.height {
						continue
					}
					if m.At(nx, ny) == BiomeWater {
						out = append(out, Point{X: x, Y: y})
						break scan
					}
				}
			}
		}
	}
	return out
}

// LandCount returns the number of passable tiles.
func (m *Map) LandCount() int {
	n := 0
	for _, b := range m.tiles {
		if b.Passable() {
			n++
		}
	}
	return n
}
