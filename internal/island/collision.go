package island

import (
	"fmt"
	"math"

	"github.com/vovakirdan/dino-island/internal/core"
	"github.com/vovakirdan/dino-island/internal/hazard"
	"github.com/vovakirdan/dino-island/internal/spatial"
)

// contact is one creature touching the player, captured before any
// knockback moves either of them.
type contact struct {
	creature *Entity
	axis     core.Vec2 // unit vector from the creature toward the player
}

// resolveContacts applies creature contact to the player. Every overlapping
// pair is collected against the settled positions first and only then
// applied, so one creature's knockback cannot hide another's hit. A pair is
// applied at most once per step.
func (s *Session) resolveContacts() {
	player := s.store.Player()
	if player.Player.RepellentActive() {
		return
	}

	s.contacts = s.contacts[:0]
	s.store.EachRole(RoleCreature, func(e *Entity) {
		s.queryBuf = s.grid.QueryNeighborsInto(s.queryBuf[:0], e.Pos, e.Extent+player.Extent)
		for _, id := range s.queryBuf {
			if EntityID(id) != player.ID {
				continue
			}
			if e.Box().Overlaps(player.Box()) {
				axis := core.Direction(e.Pos, player.Pos)
				if axis.IsZero() {
					axis = core.V(1, 0)
				}
				s.contacts = append(s.contacts, contact{creature: e, axis: axis})
			}
			break
		}
	})
	if len(s.contacts) == 0 {
		return
	}

	var push core.Vec2
	for _, c := range s.contacts {
		dmg := s.classConfig(c.creature.Creature.Class).ContactDamage
		s.damage(player, dmg)
		c.creature.Creature.JustAttacked = true
		push = push.Add(c.axis)
		s.emit(Event{Kind: EventPlayerHit, Entity: c.creature.ID, Pos: player.Pos, Amount: dmg})
	}
	s.knockback(player, push)
}

// knockback pushes every touching creature back along its own axis and the
// player once along the combined direction. Opposing hits cancel out.
func (s *Session) knockback(player *Entity, push core.Vec2) {
	k := s.cfg.Player.Knockback
	if k <= 0 {
		return
	}
	for _, c := range s.contacts {
		s.displace(c.creature, c.creature.Pos.Sub(c.axis.Scale(k)))
	}
	if dir := push.Normalize(); !dir.IsZero() {
		s.displace(player, player.Pos.Add(dir.Scale(k)))
	}
}

// displace moves an entity after the grid was rebuilt and keeps its bucket in sync.
func (s *Session) displace(e *Entity, target core.Vec2) {
	old := e.Pos
	if !s.moveTo(e, target) {
		return
	}
	s.grid.Remove(spatial.ID(e.ID), old)
	s.grid.Insert(spatial.ID(e.ID), e.Pos)
}

// resolvePickups applies every item overlapping the player and removes it
// at once, so later checks in the same step cannot see it.
func (s *Session) resolvePickups() {
	player := s.store.Player()
	s.queryBuf = s.grid.QueryNeighborsInto(s.queryBuf[:0], player.Pos, player.Extent+itemExtent)
	for _, id := range s.queryBuf {
		e, ok := s.store.Get(EntityID(id))
		if !ok || e.Role != RoleItem || !e.Box().Overlaps(player.Box()) {
			continue
		}
		s.pickup(player, e)
	}
}

func (s *Session) pickup(player, item *Entity) {
	pd := player.Player
	switch item.Item.Kind {
	case ItemPotion:
		pd.Potions++
	case ItemRepellent:
		pd.Repellents++
	}
	pd.Score += s.cfg.Player.ItemScore

	s.grid.Remove(spatial.ID(item.ID), item.Pos)
	s.store.remove(item.ID)
	s.emit(Event{Kind: EventItemPicked, Entity: item.ID, Pos: item.Pos, Item: item.Item.Kind})
	s.log.Info("item picked up", "kind", item.Item.Kind, "x", item.Pos.X, "y", item.Pos.Y, "score", pd.Score)
}

// resolveHazards applies damage over time to every entity standing on a
// hazard tile. Damage is rate times dt, so the per-second rate does not
// depend on the tick rate.
func (s *Session) resolveHazards(dt float64) {
	if s.hazards.Len() == 0 {
		return
	}
	dmg := s.cfg.Hazards.DamagePerSecond * dt
	s.store.Each(func(e *Entity) {
		if !e.HasHealth {
			return
		}
		if !s.hazards.Has(hazard.TileOf(e.Pos, s.cfg.Sim.TileSize)) {
			return
		}
		s.damage(e, dmg)
		if e.Role == RolePlayer {
			s.emit(Event{Kind: EventHazardBurn, Entity: e.ID, Pos: e.Pos, Amount: dmg})
		}
	})
}

func (s *Session) damage(e *Entity, amount float64) {
	e.Health -= amount
	s.clampHealth(e)
}

func (s *Session) heal(e *Entity, amount float64) {
	e.Health += amount
	s.clampHealth(e)
}

// clampHealth keeps health within [0, MaxHealth]. A NaN health is a defect:
// strict mode panics, otherwise it is floored to zero and logged.
func (s *Session) clampHealth(e *Entity) {
	if math.IsNaN(e.Health) {
		if s.cfg.Debug.StrictInvariants {
			panic(fmt.Sprintf("island: entity %d health is NaN", e.ID))
		}
		s.log.Warn("health was NaN, clamped", "id", e.ID)
		e.Health = 0
		return
	}
	e.Health = core.ClampF(e.Health, 0, e.MaxHealth)
}

// CheckInvariants verifies that every live entity sits in exactly the grid
// bucket matching its position and every health value is within its domain.
func (s *Session) CheckInvariants() error {
	expected := make(map[spatial.ID]core.Vec2, s.store.Len())
	var err error
	s.store.Each(func(e *Entity) {
		expected[spatial.ID(e.ID)] = e.Pos
		if err == nil && e.HasHealth && (e.Health < 0 || e.Health > e.MaxHealth || math.IsNaN(e.Health)) {
			err = fmt.Errorf("island: entity %d health %v outside [0, %v]", e.ID, e.Health, e.MaxHealth)
		}
	})
	if err != nil {
		return err
	}
	if err := s.grid.Validate(expected); err != nil {
		return fmt.Errorf("island: tick %d: %w", s.tick, err)
	}
	return nil
}
