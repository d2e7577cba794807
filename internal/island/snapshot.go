package island

import (
	"github.com/vovakirdan/dino-island/internal/core"
	"github.com/vovakirdan/dino-island/internal/hazard"
)

// EntityView is the read-only presentation of one entity.
type EntityView struct {
	ID         EntityID
	Role       Role
	Pos        core.Vec2
	Health     float64
	MaxHealth  float64
	Class      Class    // creatures only
	State      AIState  // creatures only
	FacingLeft bool     // creatures only
	Kind       ItemKind // items only
}

// PlayerView is the read-only presentation of the player.
type PlayerView struct {
	ID                 EntityID
	Pos                core.Vec2
	Health             float64
	MaxHealth          float64
	Potions            int
	Repellents         int
	RepellentRemaining float64
	Score              int
}

// Snapshot is a deep copy of the settled state after the last completed
// step. It shares no memory with the session and may be handed to other
// goroutines.
type Snapshot struct {
	Tick     uint64
	Clock    float64
	Night    bool
	Cycles   int
	Status   Status
	Player   PlayerView
	Entities []EntityView // ascending id, player excluded
	Hazards  []hazard.Tile
	Escape   *core.Vec2
}

// Snapshot copies the current state. Call it between steps only.
func (s *Session) Snapshot() Snapshot {
	p := s.store.Player()
	snap := Snapshot{
		Tick:   s.tick,
		Clock:  s.clock,
		Night:  s.Night(),
		Cycles: s.Cycles(),
		Status: s.status,
		Player: PlayerView{
			ID:                 p.ID,
			Pos:                p.Pos,
			Health:             p.Health,
			MaxHealth:          p.MaxHealth,
			Potions:            p.Player.Potions,
			Repellents:         p.Player.Repellents,
			RepellentRemaining: p.Player.RepellentRemaining,
			Score:              p.Player.Score,
		},
		Entities: make([]EntityView, 0, s.store.Len()-1),
		Hazards:  s.hazards.Tiles(),
	}
	if s.escape != nil {
		e := *s.escape
		snap.Escape = &e
	}

	s.store.Each(func(e *Entity) {
		v := EntityView{
			ID:        e.ID,
			Role:      e.Role,
			Pos:       e.Pos,
			Health:    e.Health,
			MaxHealth: e.MaxHealth,
		}
		switch e.Role {
		case RolePlayer:
			return
		case RoleCreature:
			v.Class = e.Creature.Class
			v.State = e.Creature.State
			v.FacingLeft = e.Creature.FacingLeft
		case RoleItem:
			v.Kind = e.Item.Kind
		}
		snap.Entities = append(snap.Entities, v)
	})
	return snap
}
