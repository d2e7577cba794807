package director

import (
	"github.com/vovakirdan/dino-island/internal/island"
	"github.com/vovakirdan/dino-island/internal/worldgen"
)

// Boat places the rescue boat on the coast once enough day/night cycles
// have passed.
type Boat struct {
	session *island.Session
	world   *worldgen.Map
}

// NewBoat returns a boat that waits for the configured number of cycles.
func NewBoat(s *island.Session, world *worldgen.Map) *Boat {
	return &Boat{session: s, world: world}
}

// Update places the boat when it is due. The escape point lives in the
// session, so a restored game does not place a second one.
func (b *Boat) Update(events []island.Event) []island.Event {
	if _, placed := b.session.EscapePoint(); placed {
		return events
	}
	if b.session.Cycles() < b.session.Config().World.BoatCycles {
		return events
	}
	coast := b.world.Coast()
	if len(coast) == 0 {
		return events
	}
	pos := coast[b.session.RNG().Intn(len(coast))].Center()
	b.session.SetEscapePoint(pos)
	return append(events, island.Event{Kind: island.EventBoatArrived, Pos: pos})
}
