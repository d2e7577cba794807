// Package pacer decouples the fixed simulation tick from the variable render
// frame rate using an accumulator.
package pacer

import "time"

// Pacer accumulates wall-clock frame time and runs whole simulation steps.
// The zero value is not usable; set Step and MaxCatchUp.
type Pacer struct {
	Step       time.Duration // fixed tick duration
	MaxCatchUp int           // max steps per frame, excess debt carries over
	MaxDebt    time.Duration // cap on accumulated time; 0 means 2*MaxCatchUp steps

	acc time.Duration
}

// New creates a pacer for the given tick rate (ticks per second).
func New(tickRate, maxCatchUp int) *Pacer {
	if tickRate <= 0 {
		tickRate = 60
	}
	if maxCatchUp < 1 {
		maxCatchUp = 1
	}
	step := time.Second / time.Duration(tickRate)
	return &Pacer{
		Step:       step,
		MaxCatchUp: maxCatchUp,
		MaxDebt:    2 * time.Duration(maxCatchUp) * step,
	}
}

// Advance adds frame to the accumulator, clamps it to the debt cap and calls
// step once per whole tick, at most MaxCatchUp times. Unconsumed time stays in
// the accumulator for the next frame. Returns the number of steps run.
func (p *Pacer) Advance(frame time.Duration, step func()) int {
	limit := p.MaxCatchUp
	if limit < 1 {
		limit = 1
	}
	if frame > 0 {
		p.acc += frame
	}
	if maxDebt := p.maxDebt(limit); p.acc > maxDebt {
		p.acc = maxDebt
	}
	n := 0
	for p.acc >= p.Step && n < limit {
		step()
		p.acc -= p.Step
		n++
	}
	return n
}

func (p *Pacer) maxDebt(limit int) time.Duration {
	if p.MaxDebt > 0 {
		return p.MaxDebt
	}
	return 2 * time.Duration(limit) * p.Step
}

// Debt returns the accumulated time not yet simulated.
func (p *Pacer) Debt() time.Duration {
	return p.acc
}

// Reset drops any accumulated time, e.g. after unpausing.
func (p *Pacer) Reset() {
	p.acc = 0
}
