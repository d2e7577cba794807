package island

import (
	"math"

	"github.com/vovakirdan/dino-island/internal/config"
	"github.com/vovakirdan/dino-island/internal/core"
)

// perception is what a creature knows about the player when it decides.
type perception struct {
	dist      float64 // +Inf when the player is not among the grid neighbors
	playerPos core.Vec2
	repellent bool
	night     bool
}

// nextState applies the transition policy. Only Idle->Chase, Chase->Flee and
// Flee->Idle exist; a chasing creature always passes through Flee, which is
// what keeps it from flapping at the awareness boundary.
func nextState(cr *CreatureData, healthFrac float64, p perception, cc config.ClassConfig) AIState {
	switch cr.State {
	case StateIdle:
		if cc.Chase && !p.repellent && p.dist <= cc.SightRadius(p.night) {
			return StateChase
		}
	case StateChase:
		if cr.JustAttacked || p.repellent || healthFrac < cc.FleeHealth || p.dist > cc.Disengage {
			return StateFlee
		}
	case StateFlee:
		if cr.FleeElapsed >= cc.FleeCooldown || p.dist > cc.SafeRadius {
			return StateIdle
		}
	}
	return cr.State
}

// queryRadius is the widest distance any transition of the class looks at.
func queryRadius(cc config.ClassConfig) float64 {
	return math.Max(cc.SafeRadius, math.Max(cc.Disengage, math.Max(cc.Awareness, cc.NightAwareness)))
}

// classConfig returns the settings for a creature class.
func (s *Session) classConfig(c Class) config.ClassConfig {
	if c == ClassAggressive {
		return s.cfg.Creatures.Aggressive
	}
	return s.cfg.Creatures.Normal
}

// perceive finds the player among the creature's grid neighbors.
func (s *Session) perceive(e *Entity, player *Entity, radius float64) perception {
	p := perception{
		dist:      math.Inf(1),
		playerPos: player.Pos,
		repellent: player.Player.RepellentActive(),
		night:     s.Night(),
	}
	s.queryBuf = s.grid.QueryNeighborsInto(s.queryBuf[:0], e.Pos, radius)
	for _, id := range s.queryBuf {
		if EntityID(id) == player.ID {
			p.dist = e.Pos.Dist(player.Pos)
			break
		}
	}
	return p
}

// think runs the AI read phase: every creature decides from the settled
// positions of the previous step and writes only its velocity.
func (s *Session) think() {
	player := s.store.Player()
	s.store.EachRole(RoleCreature, func(e *Entity) {
		cr := e.Creature
		cc := s.classConfig(cr.Class)
		p := s.perceive(e, player, queryRadius(cc))

		next := nextState(cr, e.HealthFraction(), p, cc)
		cr.JustAttacked = false
		if next != cr.State {
			s.log.Debug("creature state change", "id", e.ID, "class", cr.Class, "from", cr.State, "to", next, "dist", p.dist)
			cr.State = next
			switch next {
			case StateFlee:
				cr.FleeElapsed = 0
			case StateIdle:
				cr.WanderTimer = 0
				cr.Intent = core.Vec2{}
			}
		}

		var speed float64
		switch cr.State {
		case StateChase:
			cr.Intent = core.Direction(e.Pos, p.playerPos)
			speed = cc.Speed
		case StateFlee:
			cr.Intent = core.Direction(p.playerPos, e.Pos)
			speed = cc.Speed
		default:
			s.wander(cr, cc)
			speed = cc.WanderSpeed
		}

		e.Vel = core.Displacement(cr.Intent, speed, 1)
		if e.Vel.X < 0 {
			cr.FacingLeft = true
		} else if e.Vel.X > 0 {
			cr.FacingLeft = false
		}
	})
}

var cardinals = [4]core.Vec2{{X: 1}, {X: -1}, {Y: 1}, {Y: -1}}

// wander keeps the current wander direction until its timer runs out, then
// rolls once per step for a new random cardinal direction.
func (s *Session) wander(cr *CreatureData, cc config.ClassConfig) {
	if cr.WanderTimer > 0 {
		return
	}
	cr.Intent = core.Vec2{}
	if s.rng.Float64() < cc.WanderChance*s.dt {
		cr.Intent = cardinals[s.rng.Intn(len(cardinals))]
		cr.WanderTimer = cc.WanderDuration
	}
}
