package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const islandConfigFile = "island.yaml"

// ConfigEnv names a config file to use when no path is given explicitly.
const ConfigEnv = "DINO_ISLAND_CONFIG"

// LoadIsland resolves the island configuration. An explicit path, or the
// file named by ConfigEnv, must exist and parse. Otherwise the first usable
// file among ~/.dino-island/configs and ./configs wins, and the embedded
// defaults are used when neither exists.
func LoadIsland(customPath string) (IslandConfig, error) {
	if customPath == "" {
		customPath = os.Getenv(ConfigEnv)
	}
	if customPath != "" {
		return readIslandFile(customPath)
	}

	for _, path := range searchPaths() {
		if cfg, err := readIslandFile(path); err == nil {
			return cfg, nil
		}
	}

	cfg := DefaultIslandConfig()
	if err := yaml.Unmarshal(defaultIslandYAML, &cfg); err != nil {
		return DefaultIslandConfig(), nil
	}
	return cfg, nil
}

// readIslandFile decodes a YAML file over the defaults, so a partial file
// overrides only the keys it sets.
func readIslandFile(path string) (IslandConfig, error) {
	cfg := DefaultIslandConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultIslandConfig(), fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

func searchPaths() []string {
	paths := make([]string, 0, 2)
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".dino-island", "configs", islandConfigFile))
	}
	return append(paths, filepath.Join("configs", islandConfigFile))
}

// ApplyIslandPreset modifies the config based on a difficulty preset.
func ApplyIslandPreset(cfg *IslandConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	// Adjust population and damage based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.World.AggressiveCount /= 2
		cfg.World.ItemCount += 4
		cfg.Creatures.Aggressive.ContactDamage *= 0.6
		cfg.Player.MaxHealth = 150
	case DifficultyHard:
		cfg.World.AggressiveCount = cfg.World.AggressiveCount * 3 / 2
		cfg.World.ItemCount = max(cfg.World.ItemCount-2, 1)
		cfg.Creatures.Aggressive.ContactDamage *= 1.5
		cfg.Hazards.LavaCount += 4
	}
}

// Marshal renders the configuration as YAML.
func (c IslandConfig) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return data, nil
}
