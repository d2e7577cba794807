// Package config provides YAML-based simulation configuration loading,
// validation and difficulty management for the island.
package config

import (
	"errors"
	"fmt"
)

// ErrInvalid is returned by Validate for configurations the simulation
// cannot run with.
var ErrInvalid = errors.New("config: invalid")

// IslandConfig contains all tuning for an island session.
// Distances are in tiles, durations in seconds, speeds in tiles per second.
type IslandConfig struct {
	Sim        SimConfig        `yaml:"sim"`
	Player     PlayerConfig     `yaml:"player"`
	Creatures  CreaturesConfig  `yaml:"creatures"`
	Hazards    HazardsConfig    `yaml:"hazards"`
	World      WorldConfig      `yaml:"world"`
	Particles  ParticlesConfig  `yaml:"particles"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
	Debug      DebugConfig      `yaml:"debug"`
}

// SimConfig defines the fixed-timestep loop and spatial partitioning.
type SimConfig struct {
	TickRate   int     `yaml:"tick_rate"`    // simulation steps per second
	MaxCatchUp int     `yaml:"max_catch_up"` // steps per rendered frame before debt carries over
	CellSize   float64 `yaml:"cell_size"`    // spatial grid cell edge
	TileSize   float64 `yaml:"tile_size"`    // hazard tile edge
	Seed       int64   `yaml:"seed"`
}

// FixedDelta returns the duration of one simulation step in seconds.
func (s SimConfig) FixedDelta() float64 {
	if s.TickRate <= 0 {
		return 0
	}
	return 1 / float64(s.TickRate)
}

// PlayerConfig defines the player entity.
type PlayerConfig struct {
	MaxHealth         float64 `yaml:"max_health"`
	Speed             float64 `yaml:"speed"`
	Extent            float64 `yaml:"extent"`     // half size of the bounding box
	MudFactor         float64 `yaml:"mud_factor"` // speed multiplier on mud tiles
	PotionHeal        float64 `yaml:"potion_heal"`
	RepellentDuration float64 `yaml:"repellent_duration"`
	ItemScore         int     `yaml:"item_score"`
	Knockback         float64 `yaml:"knockback"` // push distance on creature contact
	StartPotions      int     `yaml:"start_potions"`
	StartRepellents   int     `yaml:"start_repellents"`
}

// CreaturesConfig holds per aggression class settings.
type CreaturesConfig struct {
	Normal     ClassConfig `yaml:"normal"`
	Aggressive ClassConfig `yaml:"aggressive"`
}

// ClassConfig defines speed and AI thresholds for one aggression class.
type ClassConfig struct {
	Speed          float64 `yaml:"speed"`
	WanderSpeed    float64 `yaml:"wander_speed"`
	WanderChance   float64 `yaml:"wander_chance"`   // probability per second of picking a new wander direction
	WanderDuration float64 `yaml:"wander_duration"` // seconds a wander direction is held
	Awareness      float64 `yaml:"awareness"`       // Idle -> Chase radius by day
	NightAwareness float64 `yaml:"night_awareness"` // Idle -> Chase radius at night
	Disengage      float64 `yaml:"disengage"`       // Chase -> Flee radius
	SafeRadius     float64 `yaml:"safe_radius"`     // Flee -> Idle radius
	FleeHealth     float64 `yaml:"flee_health"`     // Chase -> Flee below this health fraction
	FleeCooldown   float64 `yaml:"flee_cooldown"`   // Flee -> Idle after this many seconds
	ContactDamage  float64 `yaml:"contact_damage"`
	Extent         float64 `yaml:"extent"`
	MaxHealth      float64 `yaml:"max_health"`
	Chase          bool    `yaml:"chase"` // whether the class ever leaves Idle for Chase
}

// SightRadius returns the awareness radius for the time of day.
func (c ClassConfig) SightRadius(night bool) float64 {
	if night && c.NightAwareness > 0 {
		return c.NightAwareness
	}
	return c.Awareness
}

// HazardsConfig defines lava damage and the lava lifecycle.
type HazardsConfig struct {
	DamagePerSecond float64 `yaml:"damage_per_second"`
	LavaInterval    float64 `yaml:"lava_interval"`
	LavaDuration    float64 `yaml:"lava_duration"`
	LavaCount       int     `yaml:"lava_count"`
	LavaRadius      float64 `yaml:"lava_radius"` // tiles from the island centre
}

// WorldConfig defines the island and its population.
type WorldConfig struct {
	Width           int     `yaml:"width"`
	Height          int     `yaml:"height"`
	NormalCount     int     `yaml:"normal_count"`
	AggressiveCount int     `yaml:"aggressive_count"`
	ItemCount       int     `yaml:"item_count"`
	ItemRespawn     float64 `yaml:"item_respawn"` // seconds between item top-ups, 0 disables
	DayLength       float64 `yaml:"day_length"`
	NightLength     float64 `yaml:"night_length"`
	BoatCycles      int     `yaml:"boat_cycles"` // full day/night cycles before the boat arrives
}

// CycleLength returns the length of one day/night cycle in seconds.
func (w WorldConfig) CycleLength() float64 {
	return w.DayLength + w.NightLength
}

// ParticlesConfig sizes the presentation particle pool.
type ParticlesConfig struct {
	Capacity int `yaml:"capacity"`
}

// DebugConfig toggles development checks.
type DebugConfig struct {
	// StrictInvariants panics on invariant violations instead of clamping.
	StrictInvariants bool `yaml:"strict_invariants"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string  `yaml:"type"`   // "score", "time", or "none"
	MaxAt float64 `yaml:"max_at"` // score or seconds at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	LavaCountBonus    int     `yaml:"lava_count_bonus"`   // extra lava tiles per wave at max difficulty
	IntervalReduction float64 `yaml:"interval_reduction"` // seconds taken off the lava interval at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// Validate checks the constraints the simulation relies on. The returned
// warnings describe settings that work but defeat the grid's purpose.
func (c IslandConfig) Validate() (warnings []string, err error) {
	if c.Sim.TickRate <= 0 {
		return nil, fmt.Errorf("%w: sim.tick_rate must be positive, got %d", ErrInvalid, c.Sim.TickRate)
	}
	if c.Sim.MaxCatchUp < 1 {
		return nil, fmt.Errorf("%w: sim.max_catch_up must be at least 1, got %d", ErrInvalid, c.Sim.MaxCatchUp)
	}
	if !(c.Sim.CellSize > 0) {
		return nil, fmt.Errorf("%w: sim.cell_size must be positive", ErrInvalid)
	}
	if !(c.Sim.TileSize > 0) {
		return nil, fmt.Errorf("%w: sim.tile_size must be positive", ErrInvalid)
	}
	if !(c.Player.MaxHealth > 0) {
		return nil, fmt.Errorf("%w: player.max_health must be positive", ErrInvalid)
	}
	if c.Hazards.DamagePerSecond < 0 {
		return nil, fmt.Errorf("%w: hazards.damage_per_second must not be negative", ErrInvalid)
	}
	if c.World.Width < 8 || c.World.Height < 8 {
		return nil, fmt.Errorf("%w: world must be at least 8x8, got %dx%d", ErrInvalid, c.World.Width, c.World.Height)
	}
	if c.World.NormalCount < 0 || c.World.AggressiveCount < 0 || c.World.ItemCount < 0 {
		return nil, fmt.Errorf("%w: world spawn counts must not be negative", ErrInvalid)
	}
	if c.World.DayLength < 0 || c.World.NightLength < 0 {
		return nil, fmt.Errorf("%w: world day and night lengths must not be negative", ErrInvalid)
	}

	classes := []struct {
		name string
		cc   ClassConfig
	}{
		{"normal", c.Creatures.Normal},
		{"aggressive", c.Creatures.Aggressive},
	}
	for _, cl := range classes {
		sight := cl.cc.Awareness
		if cl.cc.NightAwareness > sight {
			sight = cl.cc.NightAwareness
		}
		if !(cl.cc.MaxHealth > 0) {
			return nil, fmt.Errorf("%w: creatures.%s.max_health must be positive", ErrInvalid, cl.name)
		}
		if cl.cc.Disengage <= sight {
			return nil, fmt.Errorf("%w: creatures.%s.disengage (%.2f) must exceed awareness (%.2f)",
				ErrInvalid, cl.name, cl.cc.Disengage, sight)
		}
		if cl.cc.SafeRadius < cl.cc.Disengage {
			return nil, fmt.Errorf("%w: creatures.%s.safe_radius (%.2f) must be at least disengage (%.2f)",
				ErrInvalid, cl.name, cl.cc.SafeRadius, cl.cc.Disengage)
		}
		if sight > c.Sim.CellSize {
			warnings = append(warnings, fmt.Sprintf(
				"creatures.%s awareness %.2f exceeds cell size %.2f, neighbor queries will scan extra rings",
				cl.name, sight, c.Sim.CellSize))
		}
	}
	return warnings, nil
}
