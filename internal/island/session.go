package island

import (
	"fmt"
	"io"
	"math"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/dino-island/internal/config"
	"github.com/vovakirdan/dino-island/internal/core"
	"github.com/vovakirdan/dino-island/internal/hazard"
	"github.com/vovakirdan/dino-island/internal/spatial"
)

// escapeRadius is how close the player must get to the escape point to win.
const escapeRadius = 1.5

// Terrain answers tile questions for movement. A nil Terrain is an open plane.
type Terrain interface {
	// Passable reports whether an entity may stand at pos.
	Passable(pos core.Vec2) bool
	// Slows reports whether pos slows the player down (mud).
	Slows(pos core.Vec2) bool
}

// Session owns one simulation: the entity store, the spatial grid and the
// hazard set. It is not safe for concurrent use.
type Session struct {
	cfg     config.IslandConfig
	dt      float64
	store   *Store
	grid    *spatial.Grid
	hazards *hazard.Set
	terrain Terrain
	rng     *core.RNG
	log     *log.Logger

	tick   uint64
	clock  float64 // simulated seconds
	status Status
	escape *core.Vec2

	events   []Event
	entries  []spatial.Entry
	queryBuf []spatial.ID
	contacts []contact
	dead     []EntityID
}

// NewSession validates cfg and creates a session with the player at playerPos.
// logger may be nil.
func NewSession(cfg config.IslandConfig, playerPos core.Vec2, terrain Terrain, logger *log.Logger) (*Session, error) {
	if _, err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("island: %w", err)
	}
	s := newSession(cfg, terrain, logger)
	s.store.add(&Entity{
		Role:      RolePlayer,
		Pos:       playerPos,
		Extent:    cfg.Player.Extent,
		Health:    cfg.Player.MaxHealth,
		MaxHealth: cfg.Player.MaxHealth,
		HasHealth: true,
		Player: &PlayerData{
			Potions:    cfg.Player.StartPotions,
			Repellents: cfg.Player.StartRepellents,
		},
	})
	s.rebuildGrid()
	return s, nil
}

func newSession(cfg config.IslandConfig, terrain Terrain, logger *log.Logger) *Session {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Session{
		cfg:     cfg,
		dt:      cfg.Sim.FixedDelta(),
		store:   newStore(),
		grid:    spatial.New(cfg.Sim.CellSize),
		hazards: hazard.NewSet(),
		terrain: terrain,
		rng:     core.NewRNG(cfg.Sim.Seed),
		log:     logger,
	}
}

// Step advances the simulation by one fixed tick.
func (s *Session) Step(in core.InputFrame) StepResult {
	s.events = s.events[:0]
	if s.status != StatusRunning {
		return StepResult{Tick: s.tick, Status: s.status}
	}

	s.applyInput(in)
	s.think()
	s.integrate(s.dt)
	s.rebuildGrid()
	s.resolveContacts()
	s.resolvePickups()
	s.resolveHazards(s.dt)
	s.advanceTimers(s.dt)
	s.removeDead()
	s.resolveEscape()

	if s.cfg.Debug.StrictInvariants {
		if err := s.CheckInvariants(); err != nil {
			panic(err)
		}
	}

	return StepResult{Tick: s.tick, Status: s.status, Events: s.events}
}

// applyInput turns the input frame into the player's velocity and item use.
func (s *Session) applyInput(in core.InputFrame) {
	player := s.store.Player()
	pd := player.Player

	if in.Has(core.ActionUsePotion) && pd.Potions > 0 && player.Health < player.MaxHealth {
		pd.Potions--
		s.heal(player, s.cfg.Player.PotionHeal)
		s.emit(Event{Kind: EventPotionUsed, Entity: player.ID, Pos: player.Pos, Amount: s.cfg.Player.PotionHeal})
	}
	if in.Has(core.ActionUseRepellent) && pd.Repellents > 0 {
		pd.Repellents--
		pd.RepellentRemaining = s.cfg.Player.RepellentDuration
		s.emit(Event{Kind: EventRepellentUsed, Entity: player.ID, Pos: player.Pos})
	}

	pd.MoveIntent = in.MoveIntent()
	speed := s.cfg.Player.Speed
	if s.terrain != nil && s.terrain.Slows(player.Pos) {
		speed *= s.cfg.Player.MudFactor
	}
	player.Vel = core.Displacement(pd.MoveIntent, speed, 1)
}

// integrate moves every entity by its velocity. Positions only change here
// and in knockback, never during the AI read phase.
func (s *Session) integrate(dt float64) {
	s.store.Each(func(e *Entity) {
		if e.Vel.IsZero() {
			return
		}
		s.moveTo(e, e.Pos.Add(e.Vel.Scale(dt)))
	})
}

// moveTo moves e to target if the terrain allows it, sliding along one axis
// when the full move is blocked. Returns false if e did not move.
func (s *Session) moveTo(e *Entity, target core.Vec2) bool {
	if s.terrain == nil {
		e.Pos = target
		return true
	}
	for _, p := range [3]core.Vec2{target, {X: target.X, Y: e.Pos.Y}, {X: e.Pos.X, Y: target.Y}} {
		if p == e.Pos {
			continue
		}
		if s.terrain.Passable(p) {
			e.Pos = p
			return true
		}
	}
	return false
}

// rebuildGrid reinserts every live entity in ascending id order.
func (s *Session) rebuildGrid() {
	s.entries = s.entries[:0]
	s.store.Each(func(e *Entity) {
		s.entries = append(s.entries, spatial.Entry{ID: spatial.ID(e.ID), Pos: e.Pos})
	})
	s.grid.Rebuild(s.entries)
}

// advanceTimers ticks every per-second timer by dt.
func (s *Session) advanceTimers(dt float64) {
	wasNight := s.Night()
	s.clock += dt
	s.tick++
	if night := s.Night(); night != wasNight {
		if night {
			s.emit(Event{Kind: EventNightfall})
		} else {
			s.emit(Event{Kind: EventDaybreak})
		}
	}

	player := s.store.Player()
	if pd := player.Player; pd.RepellentRemaining > 0 {
		pd.RepellentRemaining -= dt
		if pd.RepellentRemaining <= 0 {
			pd.RepellentRemaining = 0
			s.emit(Event{Kind: EventRepellentExpired, Entity: player.ID, Pos: player.Pos})
		}
	}

	s.store.EachRole(RoleCreature, func(e *Entity) {
		cr := e.Creature
		if cr.State == StateFlee {
			cr.FleeElapsed += dt
		}
		if cr.WanderTimer > 0 {
			cr.WanderTimer = math.Max(0, cr.WanderTimer-dt)
		}
	})
}

// removeDead destroys creatures at zero health and ends the session when
// the player dies.
func (s *Session) removeDead() {
	s.dead = s.dead[:0]
	s.store.EachRole(RoleCreature, func(e *Entity) {
		if e.Health <= 0 {
			s.dead = append(s.dead, e.ID)
		}
	})
	for _, id := range s.dead {
		e, _ := s.store.Get(id)
		s.emit(Event{Kind: EventCreatureDied, Entity: id, Pos: e.Pos})
		s.log.Info("creature died", "id", id, "class", e.Creature.Class)
		s.grid.Remove(spatial.ID(id), e.Pos)
		s.store.remove(id)
	}

	player := s.store.Player()
	if player.Health <= 0 && s.status == StatusRunning {
		s.status = StatusLost
		s.emit(Event{Kind: EventPlayerDied, Entity: player.ID, Pos: player.Pos})
		s.log.Info("player died", "tick", s.tick, "clock", s.clock, "score", player.Player.Score)
	}
}

// resolveEscape wins the session when the player reaches the escape point.
func (s *Session) resolveEscape() {
	if s.escape == nil || s.status != StatusRunning {
		return
	}
	player := s.store.Player()
	if player.Pos.Dist(*s.escape) <= escapeRadius {
		s.status = StatusWon
		s.emit(Event{Kind: EventEscaped, Entity: player.ID, Pos: player.Pos})
		s.log.Info("player escaped", "tick", s.tick, "clock", s.clock, "score", player.Player.Score)
	}
}

func (s *Session) emit(ev Event) {
	s.events = append(s.events, ev)
}

// SpawnCreature creates a creature in Idle. A health outside (0, max] is
// replaced by the class maximum.
func (s *Session) SpawnCreature(pos core.Vec2, class Class, health float64) EntityID {
	cc := s.classConfig(class)
	if !(health > 0) || health > cc.MaxHealth {
		health = cc.MaxHealth
	}
	id := s.store.add(&Entity{
		Role:      RoleCreature,
		Pos:       pos,
		Extent:    cc.Extent,
		Health:    health,
		MaxHealth: cc.MaxHealth,
		HasHealth: true,
		Creature:  &CreatureData{Class: class, State: StateIdle},
	})
	s.grid.Insert(spatial.ID(id), pos)
	return id
}

// SpawnItem places an item.
func (s *Session) SpawnItem(pos core.Vec2, kind ItemKind) EntityID {
	id := s.store.add(&Entity{
		Role:   RoleItem,
		Pos:    pos,
		Extent: itemExtent,
		Item:   &ItemData{Kind: kind},
	})
	s.grid.Insert(spatial.ID(id), pos)
	return id
}

// Despawn removes a creature or item. The player cannot be removed.
func (s *Session) Despawn(id EntityID) bool {
	e, ok := s.store.Get(id)
	if !ok || e.Role == RolePlayer {
		return false
	}
	s.grid.Remove(spatial.ID(id), e.Pos)
	return s.store.remove(id)
}

// SetEscapePoint places the rescue boat. Reaching it wins the session.
func (s *Session) SetEscapePoint(pos core.Vec2) {
	p := pos
	s.escape = &p
	s.log.Info("boat arrived", "x", pos.X, "y", pos.Y, "clock", s.clock)
}

// EscapePoint returns the boat position if one has been placed.
func (s *Session) EscapePoint() (core.Vec2, bool) {
	if s.escape == nil {
		return core.Vec2{}, false
	}
	return *s.escape, true
}

// Hazards returns the hazard set for the lava lifecycle collaborator.
func (s *Session) Hazards() *hazard.Set {
	return s.hazards
}

// RNG returns the session's deterministic random source. Collaborators that
// draw from it stay reproducible across save and load.
func (s *Session) RNG() *core.RNG {
	return s.rng
}

// Config returns the configuration the session runs with.
func (s *Session) Config() config.IslandConfig {
	return s.cfg
}

// Tick returns the number of completed steps.
func (s *Session) Tick() uint64 {
	return s.tick
}

// Clock returns simulated seconds since the session started.
func (s *Session) Clock() float64 {
	return s.clock
}

// Status returns the session outcome.
func (s *Session) Status() Status {
	return s.status
}

// Night reports whether the simulated clock is in the night half of the cycle.
func (s *Session) Night() bool {
	cycle := s.cfg.World.CycleLength()
	if cycle <= 0 {
		return false
	}
	return math.Mod(s.clock, cycle) >= s.cfg.World.DayLength
}

// Cycles returns the number of completed day/night cycles.
func (s *Session) Cycles() int {
	cycle := s.cfg.World.CycleLength()
	if cycle <= 0 {
		return 0
	}
	return int(s.clock / cycle)
}

// Player returns a copy of the player entity.
func (s *Session) Player() Entity {
	return s.store.Player().clone()
}

// Entity returns a copy of the entity with the given id.
func (s *Session) Entity(id EntityID) (Entity, bool) {
	e, ok := s.store.Get(id)
	if !ok {
		return Entity{}, false
	}
	return e.clone(), true
}

// Count returns the number of live entities with the given role.
func (s *Session) Count(role Role) int {
	return s.store.Count(role)
}
