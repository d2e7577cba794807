package config

import "math"

// minLavaInterval keeps waves apart even at full difficulty.
const minLavaInterval = 1.0

// Ramp turns a DifficultyConfig into lava wave parameters that grow with
// score or survived time.
type Ramp struct {
	progression ProgressionConfig
	scaling     ScalingConfig
	floor       float64
	active      bool
}

// NewRamp builds a ramp from the config. A non-empty preset replaces the
// configured starting level, and the fixed preset holds the level there.
func NewRamp(cfg DifficultyConfig, preset DifficultyPreset) *Ramp {
	r := &Ramp{
		progression: cfg.Progression,
		scaling:     cfg.Scaling,
		floor:       cfg.InitialLevel,
		active:      cfg.Enabled && cfg.Progression.Type != "none",
	}
	if preset != "" {
		r.floor = InitialLevelForPreset(preset)
		if IsFixedPreset(preset) {
			r.active = false
		}
	}
	r.floor = clamp01(r.floor)
	return r
}

// Level returns the difficulty in [0, 1].
func (r *Ramp) Level(score int, elapsed float64) float64 {
	if !r.active {
		return r.floor
	}
	span := r.progression.MaxAt
	if span <= 0 {
		span = 1
	}
	var progress float64
	switch r.progression.Type {
	case "score":
		progress = float64(score) / span
	case "time":
		progress = elapsed / span
	default:
		return r.floor
	}
	return r.floor + clamp01(progress)*(1-r.floor)
}

// LavaCount returns how many lava tiles a wave spawns.
func (r *Ramp) LavaCount(base, score int, elapsed float64) int {
	bonus := r.Level(score, elapsed) * float64(r.scaling.LavaCountBonus)
	return base + int(math.Round(bonus))
}

// LavaInterval returns the seconds until the next wave.
func (r *Ramp) LavaInterval(base float64, score int, elapsed float64) float64 {
	cut := r.Level(score, elapsed) * r.scaling.IntervalReduction
	return math.Max(minLavaInterval, base-cut)
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
