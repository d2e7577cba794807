// Package director drives one island game: it generates the map, seeds the
// session with creatures and items and runs the lava, respawn and boat
// lifecycles around each simulation step.
package director

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/dino-island/internal/config"
	"github.com/vovakirdan/dino-island/internal/core"
	"github.com/vovakirdan/dino-island/internal/island"
	"github.com/vovakirdan/dino-island/internal/worldgen"
)

// ErrNoLand is returned when the generated map has nowhere to stand.
var ErrNoLand = errors.New("director: map has no passable tile")

// worldSalt separates the map generator's random stream from the session's.
const worldSalt = 0x5eed_151a

// Director owns a session and its world. It is not safe for concurrent use.
type Director struct {
	cfg      config.IslandConfig
	scenario string
	preset   config.DifficultyPreset
	world    *worldgen.Map
	session  *island.Session
	ramp     *config.Ramp
	log      *log.Logger

	lava   *LavaCycle
	spawns *Spawner
	boat   *Boat
}

// New generates a world from cfg.Sim.Seed and starts a fresh game on it.
// logger may be nil.
func New(cfg config.IslandConfig, preset config.DifficultyPreset, logger *log.Logger) (*Director, error) {
	if _, err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("director: %w", err)
	}
	d := newDirector(cfg, preset, logger)

	start, ok := d.world.RandomPassableIn(core.NewRNG(cfg.Sim.Seed^worldSalt),
		cfg.World.Width/4, cfg.World.Height/4, cfg.World.Width*3/4, cfg.World.Height*3/4)
	if !ok {
		if start, ok = d.world.RandomPassable(core.NewRNG(cfg.Sim.Seed)); !ok {
			return nil, ErrNoLand
		}
	}

	s, err := island.NewSession(cfg, start.Center(), d.world, d.log)
	if err != nil {
		return nil, fmt.Errorf("director: %w", err)
	}
	d.attach(s)
	d.spawns.Populate()
	d.lava.Schedule()
	d.log.Info("game started",
		"seed", cfg.Sim.Seed,
		"preset", preset,
		"creatures", s.Count(island.RoleCreature),
		"items", s.Count(island.RoleItem),
		"land", d.world.LandCount())
	return d, nil
}

func newDirector(cfg config.IslandConfig, preset config.DifficultyPreset, logger *log.Logger) *Director {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Director{
		cfg:    cfg,
		preset: preset,
		world:  worldgen.Generate(cfg.World.Width, cfg.World.Height, core.NewRNG(cfg.Sim.Seed^worldSalt)),
		ramp:   config.NewRamp(cfg.Difficulty, preset),
		log:    logger,
	}
}

func (d *Director) attach(s *island.Session) {
	d.session = s
	d.lava = NewLavaCycle(s, d.world, d.ramp, d.log)
	d.spawns = NewSpawner(s, d.world, d.log)
	d.boat = NewBoat(s, d.world)
}

// Step advances the session one tick and then runs the lifecycles. Events
// raised by the lifecycles are appended to the session's own.
func (d *Director) Step(in core.InputFrame) island.StepResult {
	res := d.session.Step(in)
	if res.Status != island.StatusRunning {
		return res
	}
	res.Events = d.lava.Update(res.Events)
	d.spawns.Update()
	res.Events = d.boat.Update(res.Events)
	return res
}

// Session returns the running session.
func (d *Director) Session() *island.Session {
	return d.session
}

// World returns the island map.
func (d *Director) World() *worldgen.Map {
	return d.world
}

// Scenario returns the label stored with saves.
func (d *Director) Scenario() string {
	return d.scenario
}

// SetScenario sets the label stored with saves.
func (d *Director) SetScenario(id string) {
	d.scenario = id
}

// Preset returns the difficulty preset the game was started with.
func (d *Director) Preset() config.DifficultyPreset {
	return d.preset
}

// DifficultyLevel returns the current lava difficulty in [0, 1].
func (d *Director) DifficultyLevel() float64 {
	p := d.session.Player()
	return d.ramp.Level(p.Player.Score, d.session.Clock())
}

// NextLavaWave returns the simulated time of the next lava wave.
func (d *Director) NextLavaWave() float64 {
	return d.lava.Next()
}
