package worldgen

import (
	"testing"

	"github.com/vovakirdan/dino-island/internal/core"
)

func TestGenerateDeterministic(t *testing.T) {
	a := Generate(64, 64, core.NewRNG(5))
	b := Generate(64, 64, core.NewRNG(5))
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			if a.At(x, y) != b.At(x, y) {
				t.Fatalf("tile (%d,%d) differs: %v vs %v", x, y, a.At(x, y), b.At(x, y))
			}
		}
	}
}

func TestGenerateBorderIsWater(t *testing.T) {
	m := Generate(128, 96, core.NewRNG(11))
	if m.Width() != 128 || m.Height() != 96 {
		t.Fatalf("size = %dx%d, expected 128x96", m.Width(), m.Height())
	}
	for x := 0; x < m.Width(); x++ {
		if m.At(x, 0) != BiomeWater || m.At(x, m.Height()-1) != BiomeWater {
			t.Fatalf("column %d has land on the border", x)
		}
	}
	for y := 0; y < m.Height(); y++ {
		if m.At(0, y) != BiomeWater || m.At(m.Width()-1, y) != BiomeWater {
			t.Fatalf("row %d has land on the border", y)
		}
	}
	if m.LandCount() == 0 {
		t.Fatal("island has no land")
	}
}

func TestOutsideIsImpassable(t *testing.T) {
	m := Generate(16, 16, core.NewRNG(1))
	for _, p := range []core.Vec2{core.V(-0.1, 3), core.V(3, -5), core.V(16, 3), core.V(3, 16.5)} {
		if m.Passable(p) {
			t.Errorf("Passable(%v) = true outside the map", p)
		}
	}
}

func TestPassableAndSlows(t *testing.T) {
	m := Generate(16, 16, core.NewRNG(1))
	m.Set(4, 4, BiomeMud)
	m.Set(5, 4, BiomeWater)
	m.Set(6, 4, BiomeForest)

	if !m.Passable(core.V(4.7, 4.2)) || !m.Slows(core.V(4.7, 4.2)) {
		t.Error("mud should be passable and slow")
	}
	if m.Passable(core.V(5.5, 4.5)) {
		t.Error("water should be impassable")
	}
	if !m.Passable(core.V(6.5, 4.5)) || m.Slows(core.V(6.5, 4.5)) {
		t.Error("forest should be passable and not slow")
	}
}

func TestRandomPassable(t *testing.T) {
	m := Generate(64, 64, core.NewRNG(9))
	rng := core.NewRNG(3)
	for i := 0; i < 50; i++ {
		p, ok := m.RandomPassable(rng)
		if !ok {
			t.Fatal("no passable tile found")
		}
		if !m.Passable(p.Center()) {
			t.Fatalf("RandomPassable returned water tile %v", p)
		}
	}

	p, ok := m.RandomPassableIn(rng, 16, 16, 48, 48)
	if ok && (p.X < 16 || p.X >= 48 || p.Y < 16 || p.Y >= 48) {
		t.Errorf("RandomPassableIn returned %v outside the range", p)
	}
	if _, ok := m.RandomPassableIn(rng, 5, 5, 5, 9); ok {
		t.Error("empty range should fail")
	}
}

func TestRandomPassableAllWater(t *testing.T) {
	m := &Map{width: 4, height: 4, tiles: make([]Biome, 16)}
	for i := range m.tiles {
		m.tiles[i] = BiomeWater
	}
	if _, ok := m.RandomPassable(core.NewRNG(1)); ok {
		t.Error("all-water map returned a passable tile")
	}
}

func TestCoast(t *testing.T) {
	m := &Map{width: 5, height: 5, tiles: make([]Biome, 25)}
	for i := range m.tiles {
		m.tiles[i] = BiomeWater
	}
	for y := 1; y <= 3; y++ {
		for x := 1; x <= 3; x++ {
			m.Set(x, y, BiomeForest)
		}
	}
	coast := m.Coast()
	if len(coast) != 8 {
		t.Fatalf("coast has %d tiles, expected the 8 around the center", len(coast))
	}
	for _, p := range coast {
		if p == (Point{X: 2, Y: 2}) {
			t.Error("inland tile reported as coast")
		}
	}
	if coast[0] != (Point{X: 1, Y: 1}) {
		t.Errorf("first coast tile = %v, expected row-major order", coast[0])
	}
}
