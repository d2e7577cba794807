package registry

import (
	"testing"

	"github.com/vovakirdan/dino-island/internal/config"
	"github.com/vovakirdan/dino-island/internal/island"
)

func TestBuiltinScenariosRegistered(t *testing.T) {
	list := List()
	if len(list) < 2 {
		t.Fatalf("expected at least 2 scenarios, got %d", len(list))
	}
	for i := 1; i < len(list); i++ {
		if list[i-1].ID >= list[i].ID {
			t.Errorf("List not sorted: %q before %q", list[i-1].ID, list[i].ID)
		}
	}
	if !Exists(DefaultScenario) || !Exists("arena") {
		t.Error("builtin scenarios missing")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic on duplicate registration")
		}
	}()
	Register(Scenario{ID: DefaultScenario})
}

func TestConfigure(t *testing.T) {
	base := config.DefaultIslandConfig()

	cfg, err := Configure("arena", base)
	if err != nil {
		t.Fatalf("Configure: %v", err)
	}
	if cfg.World.Width != 96 || cfg.World.BoatCycles != 1 {
		t.Errorf("arena not applied: %dx%d boat=%d", cfg.World.Width, cfg.World.Height, cfg.World.BoatCycles)
	}
	if base.World.Width != config.DefaultIslandConfig().World.Width {
		t.Error("Configure modified the base config")
	}
	if _, err := cfg.Validate(); err != nil {
		t.Errorf("arena config invalid: %v", err)
	}

	if _, err := Configure("nope", base); err == nil {
		t.Error("unknown scenario should fail")
	}
}

func TestCreateArena(t *testing.T) {
	d, err := Create("arena", config.DefaultIslandConfig(), config.DifficultyNormal, nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if d.World().Width() != 96 {
		t.Errorf("world width = %d, expected 96", d.World().Width())
	}
	if d.Session().Status() != island.StatusRunning {
		t.Errorf("new game status = %v", d.Session().Status())
	}
}

func TestLoadUsesSavedScenario(t *testing.T) {
	d, err := Create("arena", config.DefaultIslandConfig(), config.DifficultyNormal, nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	data, err := d.Save()
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(data, config.DefaultIslandConfig(), nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Scenario() != "arena" {
		t.Errorf("scenario = %q, expected arena", loaded.Scenario())
	}
	if loaded.World().Width() != 96 {
		t.Errorf("world width = %d, expected the arena map", loaded.World().Width())
	}
	if loaded.Session().Tick() != d.Session().Tick() {
		t.Errorf("tick = %d, expected %d", loaded.Session().Tick(), d.Session().Tick())
	}
}
