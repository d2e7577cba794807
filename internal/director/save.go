package director

import (
	"fmt"
	"math"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/vovakirdan/dino-island/internal/config"
	"github.com/vovakirdan/dino-island/internal/island"
)

// SaveVersion is the version of the envelope written by Save.
const SaveVersion = 1

type savedGame struct {
	Version  int                     `msgpack:"version"`
	Scenario string                  `msgpack:"scenario"`
	Seed     int64                   `msgpack:"seed"`
	Preset   config.DifficultyPreset `msgpack:"preset"`
	NextLava float64                 `msgpack:"next_lava"`
	NextItem float64                 `msgpack:"next_item"`
	Session  []byte                  `msgpack:"session"`
}

// Save encodes the game. The map is not stored; it is regenerated from the
// seed on load.
func (d *Director) Save() ([]byte, error) {
	state, err := d.session.MarshalState()
	if err != nil {
		return nil, fmt.Errorf("director: save: %w", err)
	}
	data, err := msgpack.Marshal(&savedGame{
		Version:  SaveVersion,
		Scenario: d.scenario,
		Seed:     d.cfg.Sim.Seed,
		Preset:   d.preset,
		NextLava: d.lava.Next(),
		NextItem: d.spawns.NextItem(),
		Session:  state,
	})
	if err != nil {
		return nil, fmt.Errorf("director: save: %w", err)
	}
	return data, nil
}

// Header is the part of a save needed to pick the configuration before
// loading it.
type Header struct {
	Version  int
	Scenario string
	Seed     int64
	Preset   config.DifficultyPreset
}

// ReadHeader decodes the envelope of a save without restoring the session.
func ReadHeader(data []byte) (Header, error) {
	sg, err := decode(data)
	if err != nil {
		return Header{}, fmt.Errorf("director: read header: %w", err)
	}
	return Header{Version: sg.Version, Scenario: sg.Scenario, Seed: sg.Seed, Preset: sg.Preset}, nil
}

func decode(data []byte) (savedGame, error) {
	var sg savedGame
	if err := msgpack.Unmarshal(data, &sg); err != nil {
		return sg, fmt.Errorf("%w: %v", island.ErrCorruptState, err)
	}
	if sg.Version != SaveVersion {
		return sg, fmt.Errorf("%w: unsupported save version %d", island.ErrCorruptState, sg.Version)
	}
	return sg, nil
}

// Load restores a game written by Save. The seed stored in the save
// overrides cfg.Sim.Seed so the same map is generated again.
func Load(cfg config.IslandConfig, data []byte, logger *log.Logger) (*Director, error) {
	sg, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("director: load: %w", err)
	}
	if !finite(sg.NextLava) || !finite(sg.NextItem) {
		return nil, fmt.Errorf("director: load: %w: bad schedule", island.ErrCorruptState)
	}

	cfg.Sim.Seed = sg.Seed
	if _, err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("director: %w", err)
	}
	d := newDirector(cfg, sg.Preset, logger)
	d.scenario = sg.Scenario
	s, err := island.RestoreSession(cfg, sg.Session, d.world, d.log)
	if err != nil {
		return nil, fmt.Errorf("director: load: %w", err)
	}
	d.attach(s)
	d.lava.SetNext(sg.NextLava)
	d.spawns.SetNextItem(sg.NextItem)
	d.log.Info("game loaded", "seed", sg.Seed, "tick", s.Tick(), "clock", s.Clock())
	return d, nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
