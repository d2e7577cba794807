package registry

import "github.com/vovakirdan/dino-island/internal/config"

// DefaultScenario is played when none is named.
const DefaultScenario = "island"

func init() {
	Register(Scenario{
		ID:       "island",
		Title:    "Dino Island",
		Describe: "Survive until the boat arrives on the full-size island",
	})

	// A small island with a quick boat, for short sessions and demos.
	Register(Scenario{
		ID:       "arena",
		Title:    "Volcano Arena",
		Describe: "Tiny island, angry dinos, frequent lava, boat after one night",
		Apply: func(cfg *config.IslandConfig) {
			cfg.World.Width = 96
			cfg.World.Height = 96
			cfg.World.NormalCount = 12
			cfg.World.AggressiveCount = 10
			cfg.World.ItemCount = 4
			cfg.World.BoatCycles = 1
			cfg.Hazards.LavaRadius = 16
			cfg.Hazards.LavaInterval = 6
		},
	})
}
