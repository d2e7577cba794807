package director

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/dino-island/internal/config"
	"github.com/vovakirdan/dino-island/internal/hazard"
	"github.com/vovakirdan/dino-island/internal/island"
	"github.com/vovakirdan/dino-island/internal/worldgen"
)

// LavaCycle erupts waves of timed lava tiles around the island centre.
type LavaCycle struct {
	session *island.Session
	world   *worldgen.Map
	ramp    *config.Ramp
	log     *log.Logger

	next float64 // clock of the next wave
}

// NewLavaCycle creates a lava cycle for s. Call Schedule before the first
// Update on a fresh game.
func NewLavaCycle(s *island.Session, world *worldgen.Map, ramp *config.Ramp, logger *log.Logger) *LavaCycle {
	return &LavaCycle{session: s, world: world, ramp: ramp, log: logger}
}

// Schedule sets the next wave one interval from now.
func (l *LavaCycle) Schedule() {
	l.next = l.session.Clock() + l.interval()
}

// Next returns the clock of the next wave.
func (l *LavaCycle) Next() float64 {
	return l.next
}

// SetNext restores the wave schedule from a save.
func (l *LavaCycle) SetNext(at float64) {
	l.next = at
}

func (l *LavaCycle) interval() float64 {
	p := l.session.Player()
	return l.ramp.LavaInterval(l.session.Config().Hazards.LavaInterval, p.Player.Score, l.session.Clock())
}

// Update expires old lava and erupts a new wave when one is due.
func (l *LavaCycle) Update(events []island.Event) []island.Event {
	now := l.session.Clock()
	if expired := l.session.Hazards().Expire(now); len(expired) > 0 {
		l.log.Debug("lava cooled", "tiles", len(expired), "clock", now)
	}
	if now < l.next {
		return events
	}
	events = l.erupt(events)
	l.next = now + l.interval()
	return events
}

func (l *LavaCycle) erupt(events []island.Event) []island.Event {
	cfg := l.session.Config()
	rng := l.session.RNG()
	p := l.session.Player()
	count := l.ramp.LavaCount(cfg.Hazards.LavaCount, p.Player.Score, l.session.Clock())

	cx, cy := l.world.Width()/2, l.world.Height()/2
	r := int(cfg.Hazards.LavaRadius)
	expires := l.session.Clock() + cfg.Hazards.LavaDuration
	hazards := l.session.Hazards()

	placed := 0
	for i := 0; i < count; i++ {
		pt, ok := l.world.RandomPassableIn(rng, cx-r, cy-r, cx+r+1, cy+r+1)
		if !ok {
			continue
		}
		pos := pt.Center()
		hazards.AddFor(hazard.TileOf(pos, cfg.Sim.TileSize), expires)
		events = append(events, island.Event{Kind: island.EventLavaWave, Pos: pos})
		placed++
	}
	l.log.Info("lava wave", "tiles", placed, "clock", l.session.Clock(), "until", expires)
	return events
}
