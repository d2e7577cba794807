package island

import (
	"errors"
	"fmt"
	"hash/fnv"
	"math"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/vovakirdan/dino-island/internal/config"
	"github.com/vovakirdan/dino-island/internal/core"
	"github.com/vovakirdan/dino-island/internal/hazard"
)

// StateVersion is the version of the encoding written by MarshalState.
const StateVersion = 1

// ErrCorruptState is returned when persisted state cannot be restored.
var ErrCorruptState = errors.New("island: corrupt state")

type savedState struct {
	Version  int           `msgpack:"version"`
	Tick     uint64        `msgpack:"tick"`
	Clock    float64       `msgpack:"clock"`
	Status   Status        `msgpack:"status"`
	RNG      uint64        `msgpack:"rng"`
	NextID   EntityID      `msgpack:"next_id"`
	Escape   *core.Vec2    `msgpack:"escape,omitempty"`
	Entities []savedEntity `msgpack:"entities"`
	Hazards  []savedHazard `msgpack:"hazards"`
}

type savedEntity struct {
	ID        EntityID  `msgpack:"id"`
	Role      Role      `msgpack:"role"`
	Pos       core.Vec2 `msgpack:"pos"`
	Vel       core.Vec2 `msgpack:"vel"`
	Health    float64   `msgpack:"hp"`
	MaxHealth float64   `msgpack:"max_hp"`

	// creature
	Class        Class     `msgpack:"class,omitempty"`
	State        AIState   `msgpack:"state,omitempty"`
	FacingLeft   bool      `msgpack:"facing_left,omitempty"`
	FleeElapsed  float64   `msgpack:"flee_elapsed,omitempty"`
	WanderTimer  float64   `msgpack:"wander_timer,omitempty"`
	Intent       core.Vec2 `msgpack:"intent,omitempty"`
	JustAttacked bool      `msgpack:"just_attacked,omitempty"`

	// player
	Potions            int     `msgpack:"potions,omitempty"`
	Repellents         int     `msgpack:"repellents,omitempty"`
	RepellentRemaining float64 `msgpack:"repellent_remaining,omitempty"`
	Score              int     `msgpack:"score,omitempty"`

	// item
	Kind ItemKind `msgpack:"kind,omitempty"`
}

type savedHazard struct {
	X       int     `msgpack:"x"`
	Y       int     `msgpack:"y"`
	Expires float64 `msgpack:"expires,omitempty"`
	Timed   bool    `msgpack:"timed,omitempty"`
}

// MarshalState encodes everything needed to resume the session: entities in
// ascending id order, hazard tiles, the clock and the RNG state.
func (s *Session) MarshalState() ([]byte, error) {
	st := savedState{
		Version:  StateVersion,
		Tick:     s.tick,
		Clock:    s.clock,
		Status:   s.status,
		RNG:      s.rng.State(),
		NextID:   s.store.nextID,
		Escape:   s.escape,
		Entities: make([]savedEntity, 0, s.store.Len()),
	}
	s.store.Each(func(e *Entity) {
		se := savedEntity{
			ID:        e.ID,
			Role:      e.Role,
			Pos:       e.Pos,
			Vel:       e.Vel,
			Health:    e.Health,
			MaxHealth: e.MaxHealth,
		}
		switch e.Role {
		case RolePlayer:
			se.Potions = e.Player.Potions
			se.Repellents = e.Player.Repellents
			se.RepellentRemaining = e.Player.RepellentRemaining
			se.Score = e.Player.Score
		case RoleCreature:
			cr := e.Creature
			se.Class = cr.Class
			se.State = cr.State
			se.FacingLeft = cr.FacingLeft
			se.FleeElapsed = cr.FleeElapsed
			se.WanderTimer = cr.WanderTimer
			se.Intent = cr.Intent
			se.JustAttacked = cr.JustAttacked
		case RoleItem:
			se.Kind = e.Item.Kind
		}
		st.Entities = append(st.Entities, se)
	})
	for _, t := range s.hazards.Tiles() {
		h := savedHazard{X: t.X, Y: t.Y}
		if at, ok := s.hazards.ExpiresAt(t); ok {
			h.Expires, h.Timed = at, true
		}
		st.Hazards = append(st.Hazards, h)
	}

	data, err := msgpack.Marshal(&st)
	if err != nil {
		return nil, fmt.Errorf("island: encode state: %w", err)
	}
	return data, nil
}

// RestoreSession decodes state written by MarshalState into a new session.
// The grid is rebuilt before returning, so the session is ready to step.
// Any malformed input yields an error wrapping ErrCorruptState; nothing is
// partially recovered.
func RestoreSession(cfg config.IslandConfig, data []byte, terrain Terrain, logger *log.Logger) (*Session, error) {
	if _, err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("island: %w", err)
	}

	var st savedState
	if err := msgpack.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrCorruptState, err)
	}
	if st.Version != StateVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrCorruptState, st.Version)
	}
	if st.Status > StatusLost {
		return nil, fmt.Errorf("%w: unknown status %d", ErrCorruptState, st.Status)
	}
	if !finite(st.Clock) || st.Clock < 0 {
		return nil, fmt.Errorf("%w: bad clock %v", ErrCorruptState, st.Clock)
	}
	if st.Escape != nil && !finiteVec(*st.Escape) {
		return nil, fmt.Errorf("%w: bad escape point", ErrCorruptState)
	}

	s := newSession(cfg, terrain, logger)
	s.tick = st.Tick
	s.clock = st.Clock
	s.status = st.Status
	s.escape = st.Escape
	s.rng.SetState(st.RNG)

	players := 0
	var prev EntityID
	for i, se := range st.Entities {
		if se.ID == 0 || se.ID <= prev {
			return nil, fmt.Errorf("%w: entity %d: ids not ascending", ErrCorruptState, i)
		}
		prev = se.ID
		e, err := restoreEntity(se, cfg)
		if err != nil {
			return nil, fmt.Errorf("%w: entity %d: %v", ErrCorruptState, se.ID, err)
		}
		if e.Role == RolePlayer {
			players++
		}
		s.store.put(e)
	}
	if players != 1 {
		return nil, fmt.Errorf("%w: expected exactly one player, found %d", ErrCorruptState, players)
	}
	if st.NextID > s.store.nextID {
		s.store.nextID = st.NextID
	}

	for _, h := range st.Hazards {
		t := hazard.Tile{X: h.X, Y: h.Y}
		if h.Timed {
			s.hazards.AddFor(t, h.Expires)
		} else {
			s.hazards.Add(t)
		}
	}

	s.rebuildGrid()
	return s, nil
}

func restoreEntity(se savedEntity, cfg config.IslandConfig) (*Entity, error) {
	if !finiteVec(se.Pos) || !finiteVec(se.Vel) {
		return nil, errors.New("non-finite position or velocity")
	}
	e := &Entity{ID: se.ID, Role: se.Role, Pos: se.Pos, Vel: se.Vel}

	switch se.Role {
	case RolePlayer:
		if se.Potions < 0 || se.Repellents < 0 || se.RepellentRemaining < 0 {
			return nil, errors.New("negative inventory")
		}
		e.Extent = cfg.Player.Extent
		e.HasHealth = true
		e.Player = &PlayerData{
			Potions:            se.Potions,
			Repellents:         se.Repellents,
			RepellentRemaining: se.RepellentRemaining,
			Score:              se.Score,
		}
	case RoleCreature:
		if se.Class > ClassAggressive {
			return nil, fmt.Errorf("unknown class %d", se.Class)
		}
		if se.State > StateFlee {
			return nil, fmt.Errorf("unknown AI state %d", se.State)
		}
		cc := cfg.Creatures.Normal
		if se.Class == ClassAggressive {
			cc = cfg.Creatures.Aggressive
		}
		e.Extent = cc.Extent
		e.HasHealth = true
		e.Creature = &CreatureData{
			Class:        se.Class,
			State:        se.State,
			FacingLeft:   se.FacingLeft,
			FleeElapsed:  se.FleeElapsed,
			WanderTimer:  se.WanderTimer,
			Intent:       se.Intent,
			JustAttacked: se.JustAttacked,
		}
	case RoleItem:
		if se.Kind > ItemRepellent {
			return nil, fmt.Errorf("unknown item kind %d", se.Kind)
		}
		e.Extent = itemExtent
		e.Item = &ItemData{Kind: se.Kind}
		return e, nil
	default:
		return nil, fmt.Errorf("unknown role %d", se.Role)
	}

	if !finite(se.Health) || !finite(se.MaxHealth) || se.MaxHealth <= 0 || se.Health < 0 || se.Health > se.MaxHealth {
		return nil, fmt.Errorf("health %v outside [0, %v]", se.Health, se.MaxHealth)
	}
	e.Health = se.Health
	e.MaxHealth = se.MaxHealth
	return e, nil
}

// StateHash returns a hash of the encoded state. Two sessions that stepped
// identically hash identically.
func (s *Session) StateHash() (uint64, error) {
	data, err := s.MarshalState()
	if err != nil {
		return 0, err
	}
	h := fnv.New64a()
	_, _ = h.Write(data)
	return h.Sum64(), nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func finiteVec(v core.Vec2) bool {
	return finite(v.X) && finite(v.Y)
}
