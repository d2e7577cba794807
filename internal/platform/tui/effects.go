package tui

import (
	"github.com/vovakirdan/dino-island/internal/core"
	"github.com/vovakirdan/dino-island/internal/island"
	"github.com/vovakirdan/dino-island/internal/particles"
)

// Particle bursts per event kind. Bursts are presentation only and draw from
// the host's own random source, never the session's.
var (
	burstHit = particles.Burst{
		Count: 6, Color: core.ColorBrightRed, Glyph: '*',
		MinSpeed: 2, MaxSpeed: 5, MinLifetime: 0.2, MaxLifetime: 0.5, Spread: 360,
	}
	burstBurn = particles.Burst{
		Count: 2, Color: core.ColorOrange, Glyph: '\'',
		MinSpeed: 1, MaxSpeed: 3, MinLifetime: 0.2, MaxLifetime: 0.4, Spread: 60, Direction: 270,
	}
	burstPickup = particles.Burst{
		Count: 8, Color: core.ColorBrightYellow, Glyph: '+',
		MinSpeed: 1, MaxSpeed: 4, MinLifetime: 0.3, MaxLifetime: 0.6, Spread: 360,
	}
	burstPotion = particles.Burst{
		Count: 10, Color: core.ColorBrightGreen, Glyph: '+',
		MinSpeed: 1, MaxSpeed: 3, MinLifetime: 0.4, MaxLifetime: 0.8, Spread: 120, Direction: 270, Gravity: 2,
	}
	burstRepellent = particles.Burst{
		Count: 16, Color: core.ColorCyan, Glyph: 'o',
		MinSpeed: 4, MaxSpeed: 6, MinLifetime: 0.4, MaxLifetime: 0.6, Spread: 360,
	}
	burstDeath = particles.Burst{
		Count: 12, Color: core.ColorRed, Glyph: 'x',
		MinSpeed: 1, MaxSpeed: 4, MinLifetime: 0.5, MaxLifetime: 1, Spread: 360, Gravity: 4,
	}
	burstLava = particles.Burst{
		Count: 3, Color: core.ColorOrange, Glyph: '^',
		MinSpeed: 2, MaxSpeed: 5, MinLifetime: 0.4, MaxLifetime: 0.8, Spread: 40, Direction: 270, Gravity: 6,
	}
	burstBoat = particles.Burst{
		Count: 20, Color: core.ColorBrightWhite, Glyph: '~',
		MinSpeed: 1, MaxSpeed: 3, MinLifetime: 1, MaxLifetime: 2, Spread: 360,
	}
)

// emitEffects turns step events into particle bursts. Hazard burns tick
// every step, so only every few are shown.
func emitEffects(pool *particles.Pool, rng *core.RNG, events []island.Event, tick uint64) {
	for _, ev := range events {
		var b particles.Burst
		switch ev.Kind {
		case island.EventPlayerHit:
			b = burstHit
		case island.EventHazardBurn:
			if tick%6 != 0 {
				continue
			}
			b = burstBurn
		case island.EventItemPicked:
			b = burstPickup
		case island.EventPotionUsed:
			b = burstPotion
		case island.EventRepellentUsed:
			b = burstRepellent
		case island.EventCreatureDied, island.EventPlayerDied:
			b = burstDeath
		case island.EventLavaWave:
			b = burstLava
		case island.EventBoatArrived, island.EventEscaped:
			b = burstBoat
		default:
			continue
		}
		pool.EmitBurst(ev.Pos, b, rng)
	}
}
