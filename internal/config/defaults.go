package config

import (
	_ "embed"
)

//go:embed defaults/island.yaml
var defaultIslandYAML []byte

// DefaultIslandConfig returns the default island configuration.
func DefaultIslandConfig() IslandConfig {
	return IslandConfig{
		Sim: SimConfig{
			TickRate:   60,
			MaxCatchUp: 5,
			CellSize:   10,
			TileSize:   1,
			Seed:       12341,
		},
		Player: PlayerConfig{
			MaxHealth:         120,
			Speed:             6,
			Extent:            0.4,
			MudFactor:         0.5,
			PotionHeal:        25,
			RepellentDuration: 10,
			ItemScore:         10,
			Knockback:         1.0,
		},
		Creatures: CreaturesConfig{
			Normal: ClassConfig{
				Speed:          3,
				WanderSpeed:    1.5,
				WanderChance:   0.3,
				WanderDuration: 1.0,
				Awareness:      5,
				NightAwareness: 8,
				Disengage:      9,
				SafeRadius:     12,
				FleeHealth:     0.25,
				FleeCooldown:   3,
				ContactDamage:  2,
				Extent:         0.45,
				MaxHealth:      40,
				Chase:          false,
			},
			Aggressive: ClassConfig{
				Speed:          4.5,
				WanderSpeed:    1.5,
				WanderChance:   0.3,
				WanderDuration: 1.0,
				Awareness:      5,
				NightAwareness: 8,
				Disengage:      9,
				SafeRadius:     12,
				FleeHealth:     0.3,
				FleeCooldown:   2,
				ContactDamage:  5,
				Extent:         0.45,
				MaxHealth:      60,
				Chase:          true,
			},
		},
		Hazards: HazardsConfig{
			DamagePerSecond: 20,
			LavaInterval:    10,
			LavaDuration:    5,
			LavaCount:       8,
			LavaRadius:      30,
		},
		World: WorldConfig{
			Width:           512,
			Height:          512,
			NormalCount:     100,
			AggressiveCount: 60,
			ItemCount:       6,
			ItemRespawn:     20,
			DayLength:       8,
			NightLength:     8,
			BoatCycles:      3,
		},
		Particles: ParticlesConfig{
			Capacity: 256,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "time",
				MaxAt: 300, // 5 minutes
			},
			Scaling: ScalingConfig{
				LavaCountBonus:    8,
				IntervalReduction: 4,
			},
		},
	}
}

// DefaultIslandYAML returns the embedded default YAML.
func DefaultIslandYAML() []byte {
	return defaultIslandYAML
}
