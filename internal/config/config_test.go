package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	var cfg IslandConfig
	if err := yaml.Unmarshal(DefaultIslandYAML(), &cfg); err != nil {
		t.Fatalf("embedded YAML does not parse: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultIslandConfig()) {
		t.Errorf("embedded defaults differ from DefaultIslandConfig()\nyaml: %+v\ngo:   %+v", cfg, DefaultIslandConfig())
	}
}

func TestDefaultsValidate(t *testing.T) {
	if _, err := DefaultIslandConfig().Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *IslandConfig)
	}{
		{"zero tick rate", func(c *IslandConfig) { c.Sim.TickRate = 0 }},
		{"zero catch up", func(c *IslandConfig) { c.Sim.MaxCatchUp = 0 }},
		{"zero cell size", func(c *IslandConfig) { c.Sim.CellSize = 0 }},
		{"zero tile size", func(c *IslandConfig) { c.Sim.TileSize = 0 }},
		{"disengage below awareness", func(c *IslandConfig) { c.Creatures.Aggressive.Disengage = 4 }},
		{"disengage equal night awareness", func(c *IslandConfig) { c.Creatures.Normal.Disengage = 8 }},
		{"safe radius below disengage", func(c *IslandConfig) { c.Creatures.Normal.SafeRadius = 8.5 }},
		{"no player health", func(c *IslandConfig) { c.Player.MaxHealth = 0 }},
		{"negative dps", func(c *IslandConfig) { c.Hazards.DamagePerSecond = -1 }},
		{"tiny world", func(c *IslandConfig) { c.World.Width = 4 }},
		{"negative item count", func(c *IslandConfig) { c.World.ItemCount = -1 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultIslandConfig()
			tc.mutate(&cfg)
			if _, err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestValidateWarnsOnWideAwareness(t *testing.T) {
	cfg := DefaultIslandConfig()
	cfg.Creatures.Aggressive.NightAwareness = 15
	cfg.Creatures.Aggressive.Disengage = 16
	cfg.Creatures.Aggressive.SafeRadius = 20

	warnings, err := cfg.Validate()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(warnings) != 1 {
		t.Errorf("expected one warning, got %v", warnings)
	}
}

func TestLoadIslandCustomPathOverridesKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "island.yaml")
	data := []byte("sim:\n  tick_rate: 30\ncreatures:\n  normal:\n    chase: true\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadIsland(path)
	if err != nil {
		t.Fatalf("LoadIsland: %v", err)
	}
	if cfg.Sim.TickRate != 30 {
		t.Errorf("tick_rate = %d, expected 30", cfg.Sim.TickRate)
	}
	if !cfg.Creatures.Normal.Chase {
		t.Error("normal.chase should be overridden to true")
	}
	if cfg.Sim.CellSize != 10 {
		t.Errorf("unset keys should keep defaults, cell_size = %v", cfg.Sim.CellSize)
	}
}

func TestLoadIslandMissingCustomPath(t *testing.T) {
	if _, err := LoadIsland(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing custom config")
	}
}

func TestLoadIslandSearchPaths(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv(ConfigEnv, "")
	t.Chdir(dir)

	cfg, err := LoadIsland("")
	if err != nil {
		t.Fatalf("LoadIsland: %v", err)
	}
	if cfg.Sim.TickRate != DefaultIslandConfig().Sim.TickRate {
		t.Errorf("without files the defaults apply, tick_rate = %d", cfg.Sim.TickRate)
	}

	if err := os.MkdirAll(filepath.Join(dir, "configs"), 0o700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "configs", "island.yaml"), []byte("sim:\n  tick_rate: 20\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err = LoadIsland("")
	if err != nil {
		t.Fatalf("LoadIsland: %v", err)
	}
	if cfg.Sim.TickRate != 20 {
		t.Errorf("local configs/island.yaml should apply, tick_rate = %d", cfg.Sim.TickRate)
	}
}

func TestLoadIslandEnvPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "env.yaml")
	if err := os.WriteFile(path, []byte("world:\n  item_count: 3\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(ConfigEnv, path)
	cfg, err := LoadIsland("")
	if err != nil {
		t.Fatalf("LoadIsland: %v", err)
	}
	if cfg.World.ItemCount != 3 {
		t.Errorf("item_count = %d, expected 3", cfg.World.ItemCount)
	}
}

func TestApplyIslandPreset(t *testing.T) {
	easy := DefaultIslandConfig()
	ApplyIslandPreset(&easy, DifficultyEasy)
	if easy.World.AggressiveCount != 30 || easy.Difficulty.InitialLevel != 0 {
		t.Errorf("easy preset: aggressive=%d level=%v", easy.World.AggressiveCount, easy.Difficulty.InitialLevel)
	}

	hard := DefaultIslandConfig()
	ApplyIslandPreset(&hard, DifficultyHard)
	if hard.World.AggressiveCount != 90 || hard.Hazards.LavaCount != 12 {
		t.Errorf("hard preset: aggressive=%d lava=%d", hard.World.AggressiveCount, hard.Hazards.LavaCount)
	}

	fixed := DefaultIslandConfig()
	ApplyIslandPreset(&fixed, DifficultyFixed)
	if fixed.Difficulty.Enabled {
		t.Error("fixed preset should disable progression")
	}
}

func TestRampGrowsWithTime(t *testing.T) {
	dm := NewRamp(DefaultIslandConfig().Difficulty, "")

	if got := dm.LavaCount(8, 0, 0); got != 8 {
		t.Errorf("LavaCount at start = %d, expected 8", got)
	}
	if got := dm.LavaCount(8, 0, 150); got != 12 {
		t.Errorf("LavaCount halfway = %d, expected 12", got)
	}
	if got := dm.LavaCount(8, 0, 10000); got != 16 {
		t.Errorf("LavaCount at max = %d, expected 16", got)
	}
	if got := dm.LavaInterval(10, 0, 10000); got != 6 {
		t.Errorf("LavaInterval at max = %v, expected 6", got)
	}

	off := DefaultIslandConfig().Difficulty
	off.Enabled = false
	off.InitialLevel = 0.5
	if got := NewRamp(off, "").Level(0, 10000); got != 0.5 {
		t.Errorf("disabled Level = %v, expected initial 0.5", got)
	}
}

func TestRampPresetOverridesLevel(t *testing.T) {
	cfg := DefaultIslandConfig().Difficulty
	if got := NewRamp(cfg, DifficultyHard).Level(0, 0); got != 0.7 {
		t.Errorf("hard start level = %v, expected 0.7", got)
	}
	fixed := NewRamp(cfg, DifficultyFixed)
	if got := fixed.Level(0, 1e6); got != 0 {
		t.Errorf("fixed level = %v, expected it to stay at 0", got)
	}
	if got := fixed.LavaInterval(0.5, 0, 0); got != minLavaInterval {
		t.Errorf("LavaInterval = %v, expected floor %v", got, minLavaInterval)
	}
}
