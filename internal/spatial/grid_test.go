package spatial

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/vovakirdan/dino-island/internal/core"
)

func TestCellOfFloorsNegatives(t *testing.T) {
	g := New(10)

	tests := []struct {
		pos      core.Vec2
		expected Cell
	}{
		{core.V(0, 0), Cell{0, 0}},
		{core.V(9.99, 9.99), Cell{0, 0}},
		{core.V(10, 0), Cell{1, 0}},
		{core.V(-0.1, 0), Cell{-1, 0}},
		{core.V(-10, -10.5), Cell{-1, -2}},
	}

	for _, tc := range tests {
		if got := g.CellOf(tc.pos); got != tc.expected {
			t.Errorf("CellOf(%v) = %v, expected %v", tc.pos, got, tc.expected)
		}
	}
}

func TestInsertIdempotent(t *testing.T) {
	g := New(10)
	g.Insert(1, core.V(5, 5))
	g.Insert(1, core.V(6, 6))

	if g.Len() != 1 {
		t.Errorf("Len() = %d after duplicate insert into same cell, expected 1", g.Len())
	}
}

func TestRemove(t *testing.T) {
	g := New(10)
	g.Insert(1, core.V(5, 5))
	g.Insert(2, core.V(5, 5))

	if g.Remove(1, core.V(50, 50)) {
		t.Error("Remove with a position in another cell should not find the id")
	}
	if !g.Remove(1, core.V(5, 5)) {
		t.Error("Remove should find the id in its cell")
	}
	if g.Len() != 1 {
		t.Errorf("Len() = %d, expected 1", g.Len())
	}

	ids := g.QueryNeighbors(core.V(5, 5), 1)
	if len(ids) != 1 || ids[0] != 2 {
		t.Errorf("QueryNeighbors after remove = %v, expected [2]", ids)
	}
}

func TestRebuildExactlyOneBucket(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	g := New(10)

	for round := 0; round < 20; round++ {
		n := 50 + rng.Intn(150)
		entries := make([]Entry, n)
		expected := make(map[ID]core.Vec2, n)
		for i := range entries {
			pos := core.V(rng.Float64()*400-200, rng.Float64()*400-200)
			entries[i] = Entry{ID: ID(i + 1), Pos: pos}
			expected[ID(i+1)] = pos
		}

		g.Rebuild(entries)

		if g.Len() != n {
			t.Fatalf("round %d: Len() = %d, expected %d", round, g.Len(), n)
		}
		if err := g.Validate(expected); err != nil {
			t.Fatalf("round %d: %v", round, err)
		}

		counts := make(map[ID]int)
		g.Buckets(func(c Cell, ids []ID) {
			for _, id := range ids {
				counts[id]++
				if g.CellOf(expected[id]) != c {
					t.Errorf("id %d stored in %v but position maps to %v", id, c, g.CellOf(expected[id]))
				}
			}
		})
		for id := range expected {
			if counts[id] != 1 {
				t.Fatalf("round %d: id %d appears in %d buckets", round, id, counts[id])
			}
		}
	}
}

func TestValidateDetectsViolations(t *testing.T) {
	g := New(10)
	g.Insert(1, core.V(5, 5))
	g.Insert(1, core.V(25, 5))

	err := g.Validate(map[ID]core.Vec2{1: core.V(5, 5)})
	if !errors.Is(err, ErrInvariant) {
		t.Errorf("duplicate id: expected ErrInvariant, got %v", err)
	}

	g.Rebuild([]Entry{{ID: 1, Pos: core.V(5, 5)}})
	err = g.Validate(map[ID]core.Vec2{1: core.V(5, 5), 2: core.V(0, 0)})
	if !errors.Is(err, ErrInvariant) {
		t.Errorf("missing id: expected ErrInvariant, got %v", err)
	}

	err = g.Validate(map[ID]core.Vec2{1: core.V(50, 5)})
	if !errors.Is(err, ErrInvariant) {
		t.Errorf("wrong cell: expected ErrInvariant, got %v", err)
	}
}

func TestQueryNeighborsNoFalseNegatives(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for trial := 0; trial < 200; trial++ {
		cellSize := 1 + rng.Float64()*20
		g := New(cellSize)

		n := 1 + rng.Intn(200)
		entries := make([]Entry, n)
		for i := range entries {
			entries[i] = Entry{ID: ID(i + 1), Pos: core.V(rng.Float64()*200-100, rng.Float64()*200-100)}
		}
		g.Rebuild(entries)

		for q := 0; q < 20; q++ {
			p := core.V(rng.Float64()*220-110, rng.Float64()*220-110)
			radius := rng.Float64() * 60

			got := make(map[ID]bool)
			for _, id := range g.QueryNeighbors(p, radius) {
				got[id] = true
			}
			for _, e := range entries {
				if e.Pos.Dist(p) <= radius && !got[e.ID] {
					t.Fatalf("trial %d: id %d at distance %.3f <= %.3f missing (cell size %.3f)",
						trial, e.ID, e.Pos.Dist(p), radius, cellSize)
				}
			}
		}
	}
}

func TestQueryNeighborsDeterministicOrder(t *testing.T) {
	entries := []Entry{
		{ID: 3, Pos: core.V(1, 1)},
		{ID: 1, Pos: core.V(2, 2)},
		{ID: 2, Pos: core.V(-5, -5)},
	}
	a, b := New(10), New(10)
	a.Rebuild(entries)
	b.Rebuild(entries)

	ra := a.QueryNeighbors(core.V(0, 0), 5)
	rb := b.QueryNeighbors(core.V(0, 0), 5)
	if len(ra) != 3 || len(ra) != len(rb) {
		t.Fatalf("results = %v and %v, expected 3 ids each", ra, rb)
	}
	for i := range ra {
		if ra[i] != rb[i] {
			t.Fatalf("query order differs: %v vs %v", ra, rb)
		}
	}
	// row-major cell order: (-1,-1) first, then (0,0) in insertion order
	if ra[0] != 2 || ra[1] != 3 || ra[2] != 1 {
		t.Errorf("QueryNeighbors order = %v, expected [2 3 1]", ra)
	}
}

func TestQueryRange(t *testing.T) {
	g := New(10)
	g.Rebuild([]Entry{
		{ID: 1, Pos: core.V(5, 5)},
		{ID: 2, Pos: core.V(35, 5)},
		{ID: 3, Pos: core.V(100, 100)},
	})

	got := g.QueryRange(0, 0, 39, 9)
	if len(got) != 2 {
		t.Errorf("QueryRange = %v, expected ids 1 and 2", got)
	}
}

func TestNewPanicsOnBadCellSize(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("New(0) should panic")
		}
	}()
	New(0)
}
