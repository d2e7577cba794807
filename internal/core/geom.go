// Package core provides fundamental types and utilities shared by the island
// simulation and its hosts. It contains no external dependencies (especially no
// Bubble Tea) to keep simulation logic pure and testable.
package core

import "math"

// Vec2 is a continuous 2D vector in world units (tiles).
type Vec2 struct {
	X, Y float64
}

// V is shorthand for constructing a Vec2.
func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale returns v * s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Len returns the Euclidean length of v.
func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Dist returns the distance between v and o.
func (v Vec2) Dist(o Vec2) float64 {
	return math.Hypot(v.X-o.X, v.Y-o.Y)
}

// IsZero reports whether both components are zero.
func (v Vec2) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// Normalize returns v scaled to unit length, or the zero vector for zero input.
// Diagonal intents like (1,1) come out with the same length as (1,0), which is
// what keeps diagonal movement from being faster than cardinal movement.
func (v Vec2) Normalize() Vec2 {
	l := v.Len()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{X: v.X / l, Y: v.Y / l}
}

// Direction returns the unit vector pointing from `from` to `to`.
// Returns zero if the points coincide.
func Direction(from, to Vec2) Vec2 {
	return to.Sub(from).Normalize()
}

// Displacement converts a direction intent into the movement for one tick.
// The intent is normalized first, then scaled by speed (units/second) and dt (seconds).
func Displacement(intent Vec2, speed, dt float64) Vec2 {
	return intent.Normalize().Scale(speed * dt)
}

// AABB is an axis-aligned bounding box described by its center and half extents.
type AABB struct {
	Center Vec2
	Half   Vec2
}

// BoxAt creates a square AABB of half-size `extent` centered on p.
func BoxAt(p Vec2, extent float64) AABB {
	return AABB{Center: p, Half: Vec2{X: extent, Y: extent}}
}

// Overlaps returns true if the two boxes intersect.
// Touching edges do not count as overlap.
func (b AABB) Overlaps(o AABB) bool {
	if math.Abs(b.Center.X-o.Center.X) >= b.Half.X+o.Half.X {
		return false
	}
	if math.Abs(b.Center.Y-o.Center.Y) >= b.Half.Y+o.Half.Y {
		return false
	}
	return true
}

// Rect is an integer rectangle in screen cells.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// FloorDiv maps a world coordinate to an integer cell index of the given size.
// Uses floor, not truncation, so negative coordinates land in negative cells.
func FloorDiv(v, size float64) int {
	return int(math.Floor(v / size))
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
