// Package island implements the real-time simulation core of Dino Island:
// the entity store, the creature AI state machine, collision and hazard
// resolution, and the fixed-timestep step that orchestrates them.
//
// A Session is single-threaded. Hosts call Step once per fixed tick (usually
// through a pacer.Pacer) and read Snapshot between steps.
package island

import "github.com/vovakirdan/dino-island/internal/core"

// EntityID uniquely identifies an entity within a session. Zero means none.
type EntityID uint64

// Role tags which variant an Entity is.
type Role uint8

const (
	RolePlayer Role = iota
	RoleCreature
	RoleItem
)

func (r Role) String() string {
	switch r {
	case RolePlayer:
		return "player"
	case RoleCreature:
		return "creature"
	case RoleItem:
		return "item"
	default:
		return "unknown"
	}
}

// Class is a creature's aggression class, fixed at spawn.
type Class uint8

const (
	ClassNormal Class = iota
	ClassAggressive
)

func (c Class) String() string {
	switch c {
	case ClassNormal:
		return "normal"
	case ClassAggressive:
		return "aggressive"
	default:
		return "unknown"
	}
}

// AIState is the behavior a creature is currently in.
type AIState uint8

const (
	StateIdle AIState = iota
	StateChase
	StateFlee
)

func (s AIState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateChase:
		return "chase"
	case StateFlee:
		return "flee"
	default:
		return "unknown"
	}
}

// ItemKind is the pickup effect of an item.
type ItemKind uint8

const (
	ItemPotion ItemKind = iota
	ItemRepellent
)

func (k ItemKind) String() string {
	switch k {
	case ItemPotion:
		return "potion"
	case ItemRepellent:
		return "repellent"
	default:
		return "unknown"
	}
}

// itemExtent is the half size of every item's bounding box.
const itemExtent = 0.5

// Entity is the common record for every simulated object. Exactly one of
// the payload pointers is set, selected by Role.
type Entity struct {
	ID        EntityID
	Role      Role
	Pos       core.Vec2
	Vel       core.Vec2 // units per second
	Extent    float64   // half size of the square bounding box
	Health    float64
	MaxHealth float64
	HasHealth bool

	Creature *CreatureData
	Player   *PlayerData
	Item     *ItemData
}

// Box returns the entity's bounding box.
func (e *Entity) Box() core.AABB {
	return core.BoxAt(e.Pos, e.Extent)
}

// HealthFraction returns health relative to max health, or 1 for entities
// without health.
func (e *Entity) HealthFraction() float64 {
	if !e.HasHealth || e.MaxHealth <= 0 {
		return 1
	}
	return e.Health / e.MaxHealth
}

// CreatureData is the creature payload.
type CreatureData struct {
	Class        Class
	State        AIState
	FacingLeft   bool
	FleeElapsed  float64   // seconds spent in the current Flee
	WanderTimer  float64   // seconds left on the current wander direction
	Intent       core.Vec2 // unit direction or zero
	JustAttacked bool      // landed a hit since the last decision
}

// PlayerData is the player payload.
type PlayerData struct {
	Potions            int
	Repellents         int
	RepellentRemaining float64 // seconds
	Score              int
	MoveIntent         core.Vec2
}

// RepellentActive reports whether creatures currently ignore the player.
func (p *PlayerData) RepellentActive() bool {
	return p.RepellentRemaining > 0
}

// ItemData is the item payload.
type ItemData struct {
	Kind ItemKind
}

// clone returns a deep copy of e.
func (e *Entity) clone() Entity {
	c := *e
	switch e.Role {
	case RolePlayer:
		p := *e.Player
		c.Player = &p
	case RoleCreature:
		cr := *e.Creature
		c.Creature = &cr
	case RoleItem:
		it := *e.Item
		c.Item = &it
	}
	return c
}
