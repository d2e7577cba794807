package director

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/dino-island/internal/core"
	"github.com/vovakirdan/dino-island/internal/island"
	"github.com/vovakirdan/dino-island/internal/worldgen"
)

const (
	// itemSpacing is the minimum distance between a new item and existing ones.
	itemSpacing = 5
	// placeAttempts bounds the random tries for one creature or item.
	placeAttempts = 100
)

// Spawner places creatures and items on passable land.
type Spawner struct {
	session *island.Session
	world   *worldgen.Map
	log     *log.Logger

	nextItem float64
}

// NewSpawner returns a spawner that places entities into s on world's land.
func NewSpawner(s *island.Session, world *worldgen.Map, logger *log.Logger) *Spawner {
	return &Spawner{session: s, world: world, log: logger}
}

// Populate spawns the configured creatures and items for a fresh game.
func (sp *Spawner) Populate() {
	w := sp.session.Config().World
	rng := sp.session.RNG()
	player := sp.session.Player().Pos
	safe := sp.session.Config().Creatures.Aggressive.SafeRadius

	spawn := func(class island.Class, n int) {
		for i := 0; i < n; i++ {
			pos, ok := sp.creatureSpot(rng, player, safe)
			if !ok {
				sp.log.Warn("no room for creature", "class", class, "placed", i, "wanted", n)
				return
			}
			sp.session.SpawnCreature(pos, class, 0)
		}
	}
	spawn(island.ClassNormal, w.NormalCount)
	spawn(island.ClassAggressive, w.AggressiveCount)

	for i := 0; i < w.ItemCount; i++ {
		sp.spawnItem()
	}
	sp.schedule()
}

// creatureSpot picks passable land outside the safe radius around the
// player's start.
func (sp *Spawner) creatureSpot(rng *core.RNG, player core.Vec2, safe float64) (core.Vec2, bool) {
	for attempt := 0; attempt < placeAttempts; attempt++ {
		pt, ok := sp.world.RandomPassable(rng)
		if !ok {
			return core.Vec2{}, false
		}
		if pos := pt.Center(); pos.Dist(player) >= safe {
			return pos, true
		}
	}
	return core.Vec2{}, false
}

// Update tops items back up to the configured count every respawn interval.
func (sp *Spawner) Update() {
	w := sp.session.Config().World
	if w.ItemRespawn <= 0 || sp.session.Clock() < sp.nextItem {
		return
	}
	for n := sp.session.Count(island.RoleItem); n < w.ItemCount; n++ {
		if !sp.spawnItem() {
			break
		}
	}
	sp.schedule()
}

// NextItem returns the clock of the next item top-up.
func (sp *Spawner) NextItem() float64 {
	return sp.nextItem
}

// SetNextItem restores the respawn schedule from a save.
func (sp *Spawner) SetNextItem(at float64) {
	sp.nextItem = at
}

func (sp *Spawner) schedule() {
	sp.nextItem = sp.session.Clock() + sp.session.Config().World.ItemRespawn
}

// spawnItem places a random item in the middle half of the map, away from
// the player and other items.
func (sp *Spawner) spawnItem() bool {
	rng := sp.session.RNG()
	w, h := sp.world.Width(), sp.world.Height()
	snap := sp.session.Snapshot()

	for attempt := 0; attempt < placeAttempts; attempt++ {
		pt, ok := sp.world.RandomPassableIn(rng, w/4, h/4, w*3/4, h*3/4)
		if !ok {
			return false
		}
		pos := pt.Center()
		if pos.Dist(snap.Player.Pos) < itemSpacing || tooClose(pos, snap.Entities) {
			continue
		}
		kind := island.ItemKind(rng.Intn(2))
		id := sp.session.SpawnItem(pos, kind)
		sp.log.Debug("item spawned", "id", id, "kind", kind, "x", pos.X, "y", pos.Y)
		return true
	}
	return false
}

func tooClose(pos core.Vec2, entities []island.EntityView) bool {
	for _, e := range entities {
		if e.Role == island.RoleItem && e.Pos.Dist(pos) < itemSpacing {
			return true
		}
	}
	return false
}
