// Package particles implements a fixed-capacity pool of short-lived visual
// particles. Particles never collide and never affect the simulation.
package particles

import (
	"math"

	"github.com/vovakirdan/dino-island/internal/core"
)

// Particle is one pooled visual effect.
type Particle struct {
	Pos       core.Vec2
	Vel       core.Vec2
	Gravity   float64 // added to Vel.Y per second
	Lifetime  float64 // seconds, total
	Remaining float64 // seconds left
	Color     core.Color
	Glyph     rune
}

// Fade returns the remaining life fraction in [0, 1].
func (p Particle) Fade() float64 {
	if p.Lifetime <= 0 {
		return 0
	}
	return core.ClampF(p.Remaining/p.Lifetime, 0, 1)
}

// Pool owns a fixed array of particles. Emission checks a slot out of the
// free list; Update returns expired slots to it. The pool never grows.
type Pool struct {
	slots  []Particle
	alive  []bool
	free   []int // stack of free slot indices
	active int
}

// NewPool creates a pool with the given capacity.
func NewPool(capacity int) *Pool {
	if capacity < 0 {
		capacity = 0
	}
	p := &Pool{
		slots: make([]Particle, capacity),
		alive: make([]bool, capacity),
		free:  make([]int, capacity),
	}
	p.Clear()
	return p
}

// Cap returns the pool capacity.
func (p *Pool) Cap() int {
	return len(p.slots)
}

// Active returns the number of live particles.
func (p *Pool) Active() int {
	return p.active
}

// Emit checks out a slot for pt. Returns false without emitting when the
// pool is exhausted or the particle has no lifetime.
func (p *Pool) Emit(pt Particle) bool {
	if len(p.free) == 0 || pt.Lifetime <= 0 {
		return false
	}
	idx := p.free[len(p.free)-1]
	p.free = p.free[:len(p.free)-1]

	if pt.Remaining <= 0 || pt.Remaining > pt.Lifetime {
		pt.Remaining = pt.Lifetime
	}
	p.slots[idx] = pt
	p.alive[idx] = true
	p.active++
	return true
}

// Burst describes a radial emission.
type Burst struct {
	Count       int
	Color       core.Color
	Glyph       rune
	MinSpeed    float64 // units per second
	MaxSpeed    float64
	MinLifetime float64 // seconds
	MaxLifetime float64
	Spread      float64 // degrees, 360 = all directions
	Direction   float64 // degrees, 0 = +X, 90 = +Y
	Gravity     float64
}

// EmitBurst emits up to b.Count particles at pos with randomized speed,
// angle and lifetime. Returns how many were actually emitted.
func (p *Pool) EmitBurst(pos core.Vec2, b Burst, rng *core.RNG) int {
	n := 0
	for i := 0; i < b.Count; i++ {
		angle := (b.Direction + rng.Range(-b.Spread/2, b.Spread/2)) * math.Pi / 180
		speed := rng.Range(b.MinSpeed, b.MaxSpeed)
		life := rng.Range(b.MinLifetime, b.MaxLifetime)
		if life <= 0 {
			life = b.MinLifetime
		}
		ok := p.Emit(Particle{
			Pos:      pos,
			Vel:      core.V(math.Cos(angle)*speed, math.Sin(angle)*speed),
			Gravity:  b.Gravity,
			Lifetime: life,
			Color:    b.Color,
			Glyph:    b.Glyph,
		})
		if !ok {
			break
		}
		n++
	}
	return n
}

// Update advances every live particle by dt seconds and releases the ones
// whose lifetime ran out.
func (p *Pool) Update(dt float64) {
	for i := range p.slots {
		if !p.alive[i] {
			continue
		}
		pt := &p.slots[i]
		pt.Pos = pt.Pos.Add(pt.Vel.Scale(dt))
		pt.Vel.Y += pt.Gravity * dt
		pt.Remaining -= dt
		if pt.Remaining <= 0 {
			p.alive[i] = false
			p.free = append(p.free, i)
			p.active--
		}
	}
}

// Each calls fn for every live particle in slot order.
func (p *Pool) Each(fn func(pt Particle)) {
	for i := range p.slots {
		if p.alive[i] {
			fn(p.slots[i])
		}
	}
}

// Clear releases every particle.
func (p *Pool) Clear() {
	p.free = p.free[:0]
	for i := len(p.slots) - 1; i >= 0; i-- {
		p.alive[i] = false
		p.free = append(p.free, i)
	}
	p.active = 0
}
