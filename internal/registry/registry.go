// Package registry provides a global registry of island scenarios.
// A scenario is a named adjustment of the base configuration; scenarios
// register themselves in init() functions so the CLI and the SSH host can
// discover them without hardcoded lists.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/dino-island/internal/config"
	"github.com/vovakirdan/dino-island/internal/director"
)

// Scenario describes one way to start a game.
type Scenario struct {
	// ID is a unique identifier (e.g., "island", "arena").
	// Used for CLI commands and run storage.
	ID string

	// Title is a human-readable name for display.
	Title string

	// Describe is a one-line summary for listings.
	Describe string

	// Apply adjusts the loaded configuration before the game starts.
	// May be nil.
	Apply func(cfg *config.IslandConfig)
}

// ScenarioInfo contains metadata about a registered scenario.
type ScenarioInfo struct {
	ID       string
	Title    string
	Describe string
}

var (
	scenarios = make(map[string]Scenario)
	mu        sync.RWMutex
)

// Register adds a scenario to the registry.
// Panics if a scenario with the same ID is already registered.
func Register(sc Scenario) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := scenarios[sc.ID]; exists {
		panic(fmt.Sprintf("registry: scenario %q already registered", sc.ID))
	}
	scenarios[sc.ID] = sc
}

// List returns information about all registered scenarios, sorted by ID.
func List() []ScenarioInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]ScenarioInfo, 0, len(scenarios))
	for _, sc := range scenarios {
		result = append(result, ScenarioInfo{ID: sc.ID, Title: sc.Title, Describe: sc.Describe})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Exists checks if a scenario with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := scenarios[id]
	return ok
}

// Configure returns base with the scenario's adjustments applied.
func Configure(id string, base config.IslandConfig) (config.IslandConfig, error) {
	mu.RLock()
	sc, ok := scenarios[id]
	mu.RUnlock()

	if !ok {
		return base, fmt.Errorf("registry: unknown scenario %q", id)
	}
	if sc.Apply != nil {
		sc.Apply(&base)
	}
	return base, nil
}

// Create configures and starts a new game for the scenario. A non-empty
// preset adjusts population and damage on top of the scenario.
func Create(id string, base config.IslandConfig, preset config.DifficultyPreset, logger *log.Logger) (*director.Director, error) {
	cfg, err := Configure(id, base)
	if err != nil {
		return nil, err
	}
	if preset != "" {
		config.ApplyIslandPreset(&cfg, preset)
	}
	d, err := director.New(cfg, preset, logger)
	if err != nil {
		return nil, err
	}
	d.SetScenario(id)
	return d, nil
}

// Load restores a saved game with the configuration of the scenario it was
// started from. Saves without a known scenario use DefaultScenario.
func Load(data []byte, base config.IslandConfig, logger *log.Logger) (*director.Director, error) {
	h, err := director.ReadHeader(data)
	if err != nil {
		return nil, err
	}
	id := h.Scenario
	if !Exists(id) {
		id = DefaultScenario
	}
	cfg, err := Configure(id, base)
	if err != nil {
		return nil, err
	}
	if h.Preset != "" {
		config.ApplyIslandPreset(&cfg, h.Preset)
	}
	d, err := director.Load(cfg, data, logger)
	if err != nil {
		return nil, err
	}
	d.SetScenario(id)
	return d, nil
}
