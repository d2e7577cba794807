package particles

import (
	"math"
	"testing"

	"github.com/vovakirdan/dino-island/internal/core"
)

func TestPoolExhaustionDropsSilently(t *testing.T) {
	p := NewPool(3)

	for i := 0; i < 3; i++ {
		if !p.Emit(Particle{Lifetime: 1}) {
			t.Fatalf("emit %d should succeed", i)
		}
	}
	if p.Emit(Particle{Lifetime: 1}) {
		t.Error("emit on exhausted pool should return false")
	}
	if p.Active() != 3 || p.Cap() != 3 {
		t.Errorf("Active() = %d Cap() = %d, expected 3 and 3", p.Active(), p.Cap())
	}
}

func TestPoolReleasesExpired(t *testing.T) {
	p := NewPool(2)
	p.Emit(Particle{Lifetime: 0.5})
	p.Emit(Particle{Lifetime: 2})

	p.Update(0.6)
	if p.Active() != 1 {
		t.Fatalf("Active() = %d after first expiry, expected 1", p.Active())
	}
	if !p.Emit(Particle{Lifetime: 1}) {
		t.Error("released slot should be reusable")
	}
	if p.Emit(Particle{Lifetime: 1}) {
		t.Error("pool should be full again")
	}
}

func TestParticleKinematics(t *testing.T) {
	p := NewPool(1)
	p.Emit(Particle{Vel: core.V(2, 0), Gravity: 10, Lifetime: 5})

	p.Update(0.5)
	p.Each(func(pt Particle) {
		if math.Abs(pt.Pos.X-1) > 1e-9 {
			t.Errorf("Pos.X = %f, expected 1", pt.Pos.X)
		}
		if math.Abs(pt.Vel.Y-5) > 1e-9 {
			t.Errorf("Vel.Y = %f, expected 5 after gravity", pt.Vel.Y)
		}
		if math.Abs(pt.Fade()-0.9) > 1e-9 {
			t.Errorf("Fade() = %f, expected 0.9", pt.Fade())
		}
	})
}

func TestEmitBurst(t *testing.T) {
	p := NewPool(10)
	rng := core.NewRNG(3)

	n := p.EmitBurst(core.V(0, 0), Burst{
		Count: 25, MinSpeed: 1, MaxSpeed: 2, MinLifetime: 0.2, MaxLifetime: 0.4, Spread: 360,
	}, rng)
	if n != 10 || p.Active() != 10 {
		t.Errorf("EmitBurst emitted %d (active %d), expected capacity 10", n, p.Active())
	}

	p.Clear()
	if p.Active() != 0 {
		t.Errorf("Active() after Clear = %d", p.Active())
	}
}
