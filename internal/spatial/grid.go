// Package spatial implements the uniform grid used for every proximity query
// in the island simulation. It knows nothing about entity semantics: it maps
// cell coordinates to the ids of whatever currently sits in that cell.
package spatial

import (
	"errors"
	"fmt"
	"math"

	"github.com/vovakirdan/dino-island/internal/core"
)

// ErrInvariant is returned by Validate when the grid does not match the
// positions it was built from.
var ErrInvariant = errors.New("spatial: grid invariant violated")

// ID identifies an entity stored in the grid.
type ID uint64

// Cell is an integer grid coordinate.
type Cell struct {
	X, Y int
}

// Entry pairs an id with its position for Rebuild.
type Entry struct {
	ID  ID
	Pos core.Vec2
}

// Grid partitions the world into square cells of a fixed size.
// Buckets are slices in insertion order so that query results are
// reproducible for a given rebuild order.
type Grid struct {
	cellSize float64
	buckets  map[Cell][]ID
	count    int
}

// New creates an empty grid. A non-positive cell size is a programming error.
func New(cellSize float64) *Grid {
	if !(cellSize > 0) {
		panic(fmt.Sprintf("spatial: cell size must be positive, got %v", cellSize))
	}
	return &Grid{
		cellSize: cellSize,
		buckets:  make(map[Cell][]ID),
	}
}

// CellSize returns the edge length of one cell in world units.
func (g *Grid) CellSize() float64 {
	return g.cellSize
}

// CellOf returns the cell containing pos.
func (g *Grid) CellOf(pos core.Vec2) Cell {
	return Cell{X: core.FloorDiv(pos.X, g.cellSize), Y: core.FloorDiv(pos.Y, g.cellSize)}
}

// Len returns the number of ids stored across all buckets.
func (g *Grid) Len() int {
	return g.count
}

// Insert adds id to the bucket for pos. Inserting the same id into the
// same cell twice is a no-op.
func (g *Grid) Insert(id ID, pos core.Vec2) {
	c := g.CellOf(pos)
	bucket := g.buckets[c]
	for _, existing := range bucket {
		if existing == id {
			return
		}
	}
	g.buckets[c] = append(bucket, id)
	g.count++
}

// Remove deletes id from the bucket computed from pos. Passing a position
// other than the one the id was inserted with leaves the grid unchanged;
// the grid does not track positions and does not search for strays.
func (g *Grid) Remove(id ID, pos core.Vec2) bool {
	c := g.CellOf(pos)
	bucket := g.buckets[c]
	for i, existing := range bucket {
		if existing == id {
			copy(bucket[i:], bucket[i+1:])
			g.buckets[c] = bucket[:len(bucket)-1]
			g.count--
			return true
		}
	}
	return false
}

// Clear empties every bucket. Bucket storage is kept for reuse.
func (g *Grid) Clear() {
	for c, bucket := range g.buckets {
		g.buckets[c] = bucket[:0]
	}
	g.count = 0
}

// Rebuild clears the grid and reinserts every entry in order.
func (g *Grid) Rebuild(entries []Entry) {
	g.Clear()
	for _, e := range entries {
		c := g.CellOf(e.Pos)
		g.buckets[c] = append(g.buckets[c], e.ID)
		g.count++
	}
}

// ring returns how many cells around the center cell a query of the given
// radius has to visit. Always at least one so the 8 neighbors are included.
func (g *Grid) ring(radius float64) int {
	if !(radius > 0) {
		return 1
	}
	r := int(math.Ceil(radius / g.cellSize))
	if r < 1 {
		r = 1
	}
	return r
}

// QueryNeighbors returns the ids in the cell containing pos and in every
// cell within ceil(radius/cellSize) rings around it. The result is a superset
// of all ids within radius of pos; callers do the exact distance check.
func (g *Grid) QueryNeighbors(pos core.Vec2, radius float64) []ID {
	return g.QueryNeighborsInto(nil, pos, radius)
}

// QueryNeighborsInto is QueryNeighbors appending into buf.
func (g *Grid) QueryNeighborsInto(buf []ID, pos core.Vec2, radius float64) []ID {
	center := g.CellOf(pos)
	r := g.ring(radius)
	for y := center.Y - r; y <= center.Y+r; y++ {
		for x := center.X - r; x <= center.X+r; x++ {
			buf = append(buf, g.buckets[Cell{X: x, Y: y}]...)
		}
	}
	return buf
}

// QueryRange returns the ids in every cell overlapping the world rectangle
// [minX, maxX] x [minY, maxY].
func (g *Grid) QueryRange(minX, minY, maxX, maxY float64) []ID {
	lo := g.CellOf(core.V(minX, minY))
	hi := g.CellOf(core.V(maxX, maxY))
	var out []ID
	for y := lo.Y; y <= hi.Y; y++ {
		for x := lo.X; x <= hi.X; x++ {
			out = append(out, g.buckets[Cell{X: x, Y: y}]...)
		}
	}
	return out
}

// Buckets calls fn for every non-empty bucket. Iteration order is unspecified.
func (g *Grid) Buckets(fn func(c Cell, ids []ID)) {
	for c, ids := range g.buckets {
		if len(ids) > 0 {
			fn(c, ids)
		}
	}
}

// Validate checks that every id in expected appears in exactly one bucket,
// that the bucket matches its position, and that no other ids are stored.
func (g *Grid) Validate(expected map[ID]core.Vec2) error {
	seen := make(map[ID]Cell, len(expected))
	var err error
	g.Buckets(func(c Cell, ids []ID) {
		if err != nil {
			return
		}
		for _, id := range ids {
			if prev, dup := seen[id]; dup {
				err = fmt.Errorf("%w: id %d in cells %v and %v", ErrInvariant, id, prev, c)
				return
			}
			seen[id] = c
			pos, ok := expected[id]
			if !ok {
				err = fmt.Errorf("%w: unknown id %d in cell %v", ErrInvariant, id, c)
				return
			}
			if want := g.CellOf(pos); want != c {
				err = fmt.Errorf("%w: id %d in cell %v, position maps to %v", ErrInvariant, id, c, want)
				return
			}
		}
	})
	if err != nil {
		return err
	}
	if len(seen) != len(expected) {
		for id := range expected {
			if _, ok := seen[id]; !ok {
				return fmt.Errorf("%w: id %d missing from grid", ErrInvariant, id)
			}
		}
	}
	return nil
}
