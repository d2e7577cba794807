// Package hazard holds the set of hazardous tiles (lava) on the island.
// The lava lifecycle collaborator adds and expires tiles; the simulation only
// asks whether a tile is hazardous.
package hazard

import (
	"sort"

	"github.com/zyedidia/generic/mapset"

	"github.com/vovakirdan/dino-island/internal/core"
)

// Tile is an integer tile coordinate.
type Tile struct {
	X, Y int
}

// TileOf returns the tile containing a world position for the given tile size.
func TileOf(pos core.Vec2, tileSize float64) Tile {
	return Tile{X: core.FloorDiv(pos.X, tileSize), Y: core.FloorDiv(pos.Y, tileSize)}
}

// Set is a hash set of hazardous tiles with optional expiry times.
type Set struct {
	tiles   mapset.Set[Tile]
	expires map[Tile]float64 // simulation clock, seconds
}

// NewSet creates an empty hazard set.
func NewSet() *Set {
	return &Set{
		tiles:   mapset.New[Tile](),
		expires: make(map[Tile]float64),
	}
}

// Add marks a tile as hazardous with no expiry.
func (s *Set) Add(t Tile) {
	s.tiles.Put(t)
	delete(s.expires, t)
}

// AddFor marks a tile as hazardous until the simulation clock reaches expiresAt.
// Re-adding a tile extends its expiry.
func (s *Set) AddFor(t Tile, expiresAt float64) {
	s.tiles.Put(t)
	s.expires[t] = expiresAt
}

// Remove clears a tile.
func (s *Set) Remove(t Tile) {
	s.tiles.Remove(t)
	delete(s.expires, t)
}

// Has reports whether a tile is hazardous. O(1).
func (s *Set) Has(t Tile) bool {
	return s.tiles.Has(t)
}

// Len returns the number of hazardous tiles.
func (s *Set) Len() int {
	return s.tiles.Size()
}

// Clear removes all tiles.
func (s *Set) Clear() {
	s.tiles.Clear()
	clear(s.expires)
}

// ExpiresAt returns the expiry time of a tile and whether it has one.
func (s *Set) ExpiresAt(t Tile) (float64, bool) {
	at, ok := s.expires[t]
	return at, ok
}

// Expire removes every tile whose expiry is at or before now and returns
// the removed tiles in sorted order.
func (s *Set) Expire(now float64) []Tile {
	var removed []Tile
	for t, at := range s.expires {
		if at <= now {
			removed = append(removed, t)
		}
	}
	for _, t := range removed {
		s.Remove(t)
	}
	sortTiles(removed)
	return removed
}

// Tiles returns all hazardous tiles sorted by row then column.
func (s *Set) Tiles() []Tile {
	out := make([]Tile, 0, s.tiles.Size())
	s.tiles.Each(func(t Tile) {
		out = append(out, t)
	})
	sortTiles(out)
	return out
}

func sortTiles(ts []Tile) {
	sort.Slice(ts, func(i, j int) bool {
		if ts[i].Y != ts[j].Y {
			return ts[i].Y < ts[j].Y
		}
		return ts[i].X < ts[j].X
	})
}
