package director

import (
	"errors"
	"testing"

	"github.com/vovakirdan/dino-island/internal/config"
	"github.com/vovakirdan/dino-island/internal/core"
	"github.com/vovakirdan/dino-island/internal/island"
)

func smallConfig() config.IslandConfig {
	cfg := config.DefaultIslandConfig()
	cfg.Debug.StrictInvariants = true
	cfg.World.Width = 64
	cfg.World.Height = 64
	cfg.World.NormalCount = 6
	cfg.World.AggressiveCount = 0
	cfg.World.ItemCount = 3
	cfg.World.ItemRespawn = 2
	cfg.Hazards.DamagePerSecond = 1
	cfg.Hazards.LavaInterval = 1
	cfg.Hazards.LavaDuration = 0.5
	cfg.Hazards.LavaRadius = 10
	cfg.Difficulty.Enabled = false
	return cfg
}

func newTestDirector(t *testing.T, cfg config.IslandConfig) *Director {
	t.Helper()
	d, err := New(cfg, config.DifficultyFixed, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return d
}

func stepN(d *Director, n int) []island.Event {
	var events []island.Event
	for i := 0; i < n; i++ {
		res := d.Step(core.NewInputFrame())
		events = append(events, res.Events...)
	}
	return events
}

func countKind(events []island.Event, kind island.EventKind) int {
	n := 0
	for _, ev := range events {
		if ev.Kind == kind {
			n++
		}
	}
	return n
}

func TestNewPopulatesOnLand(t *testing.T) {
	d := newTestDirector(t, smallConfig())
	s := d.Session()

	if !d.World().Passable(s.Player().Pos) {
		t.Fatalf("player spawned on water at %v", s.Player().Pos)
	}
	if n := s.Count(island.RoleItem); n != 3 {
		t.Errorf("items = %d, expected 3", n)
	}
	for _, e := range s.Snapshot().Entities {
		if !d.World().Passable(e.Pos) {
			t.Errorf("%s %d spawned on water at %v", e.Role, e.ID, e.Pos)
		}
	}
}

func TestPopulateHonoursCountsOutsideSafeRadius(t *testing.T) {
	cfg := smallConfig()
	cfg.World.AggressiveCount = 4
	d := newTestDirector(t, cfg)
	s := d.Session()

	start := s.Player().Pos
	safe := cfg.Creatures.Aggressive.SafeRadius
	counts := map[island.Class]int{}
	for _, e := range s.Snapshot().Entities {
		if e.Role != island.RoleCreature {
			continue
		}
		counts[e.Class]++
		if dist := e.Pos.Dist(start); dist < safe {
			t.Errorf("creature %d spawned %.1f from the start, inside the safe radius %v", e.ID, dist, safe)
		}
	}
	if counts[island.ClassNormal] != cfg.World.NormalCount {
		t.Errorf("normal creatures = %d, expected %d", counts[island.ClassNormal], cfg.World.NormalCount)
	}
	if counts[island.ClassAggressive] != cfg.World.AggressiveCount {
		t.Errorf("aggressive creatures = %d, expected %d", counts[island.ClassAggressive], cfg.World.AggressiveCount)
	}
}

func TestLavaWaveErupts(t *testing.T) {
	cfg := smallConfig()
	cfg.World.NormalCount = 0
	d := newTestDirector(t, cfg)
	s := d.Session()

	// One interval plus a tick.
	events := stepN(d, cfg.Sim.TickRate+1)
	waves := countKind(events, island.EventLavaWave)
	if waves == 0 {
		t.Fatal("no lava wave after one interval")
	}
	if s.Hazards().Len() == 0 {
		t.Fatal("lava wave placed no hazard tiles")
	}
	for _, tile := range s.Hazards().Tiles() {
		if _, timed := s.Hazards().ExpiresAt(tile); !timed {
			t.Errorf("lava tile %v has no expiry", tile)
		}
	}

	// Lava cools after its duration.
	stepN(d, cfg.Sim.TickRate*3/4)
	if n := s.Hazards().Len(); n != 0 {
		t.Errorf("%d lava tiles left after their duration", n)
	}
}

func TestLavaStaysNearCentre(t *testing.T) {
	cfg := smallConfig()
	cfg.World.NormalCount = 0
	d := newTestDirector(t, cfg)
	stepN(d, cfg.Sim.TickRate+1)

	c := float64(cfg.World.Width) / 2
	r := cfg.Hazards.LavaRadius + 1
	for _, tile := range d.Session().Hazards().Tiles() {
		if float64(tile.X) < c-r || float64(tile.X) > c+r || float64(tile.Y) < c-r || float64(tile.Y) > c+r {
			t.Errorf("lava tile %v outside radius %v of centre", tile, cfg.Hazards.LavaRadius)
		}
	}
}

func TestBoatArrivesOnCoast(t *testing.T) {
	cfg := smallConfig()
	cfg.World.NormalCount = 0
	cfg.World.DayLength = 1
	cfg.World.NightLength = 1
	cfg.World.BoatCycles = 1
	d := newTestDirector(t, cfg)
	s := d.Session()

	stepN(d, cfg.Sim.TickRate)
	if _, ok := s.EscapePoint(); ok {
		t.Fatal("boat arrived before its cycle")
	}

	events := stepN(d, cfg.Sim.TickRate+10)
	pos, ok := s.EscapePoint()
	if !ok {
		t.Fatal("boat did not arrive after one cycle")
	}
	if countKind(events, island.EventBoatArrived) != 1 {
		t.Errorf("expected one boat_arrived event, got %d", countKind(events, island.EventBoatArrived))
	}

	var onCoast bool
	for _, p := range d.World().Coast() {
		if p.Center() == pos {
			onCoast = true
			break
		}
	}
	if !onCoast {
		t.Errorf("boat at %v is not on a coastal tile", pos)
	}

	stepN(d, 10)
	if again, _ := s.EscapePoint(); again != pos {
		t.Errorf("boat moved from %v to %v", pos, again)
	}
}

func TestItemsRespawn(t *testing.T) {
	cfg := smallConfig()
	cfg.World.NormalCount = 0
	d := newTestDirector(t, cfg)
	s := d.Session()

	for _, e := range s.Snapshot().Entities {
		if e.Role == island.RoleItem {
			s.Despawn(e.ID)
		}
	}
	if s.Count(island.RoleItem) != 0 {
		t.Fatal("items not despawned")
	}

	stepN(d, int(cfg.World.ItemRespawn)*cfg.Sim.TickRate+1)
	if n := s.Count(island.RoleItem); n != cfg.World.ItemCount {
		t.Errorf("items after respawn = %d, expected %d", n, cfg.World.ItemCount)
	}
}

func TestSameSeedSameGame(t *testing.T) {
	cfg := smallConfig()
	a := newTestDirector(t, cfg)
	b := newTestDirector(t, cfg)
	stepN(a, 200)
	stepN(b, 200)

	ha, _ := a.Session().StateHash()
	hb, _ := b.Session().StateHash()
	if ha != hb {
		t.Errorf("hash differs: %x vs %x", ha, hb)
	}
}

func TestSaveLoadContinuesIdentically(t *testing.T) {
	cfg := smallConfig()
	a := newTestDirector(t, cfg)
	stepN(a, 90)

	data, err := a.Save()
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	// A different seed in the loading config must not change the map.
	other := cfg
	other.Sim.Seed = cfg.Sim.Seed + 1
	b, err := Load(other, data, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if b.NextLavaWave() != a.NextLavaWave() {
		t.Errorf("next lava wave = %v, expected %v", b.NextLavaWave(), a.NextLavaWave())
	}
	for y := 0; y < cfg.World.Height; y++ {
		for x := 0; x < cfg.World.Width; x++ {
			if a.World().At(x, y) != b.World().At(x, y) {
				t.Fatalf("map differs at (%d,%d)", x, y)
			}
		}
	}

	stepN(a, 150)
	stepN(b, 150)
	ha, _ := a.Session().StateHash()
	hb, _ := b.Session().StateHash()
	if ha != hb {
		t.Errorf("hash after continued play differs: %x vs %x", ha, hb)
	}
}

func TestLoadRejectsGarbage(t *testing.T) {
	if _, err := Load(smallConfig(), []byte("not a save"), nil); !errors.Is(err, island.ErrCorruptState) {
		t.Errorf("expected ErrCorruptState, got %v", err)
	}
}

func TestTerrainBlocksMovement(t *testing.T) {
	cfg := smallConfig()
	cfg.World.NormalCount = 0
	d := newTestDirector(t, cfg)
	s := d.Session()

	// Walk left until the shore stops the player.
	in := core.NewInputFrame()
	in.Set(core.ActionLeft)
	for i := 0; i < cfg.World.Width*cfg.Sim.TickRate; i++ {
		if d.Step(in).Status != island.StatusRunning {
			break
		}
	}
	if pos := s.Player().Pos; !d.World().Passable(pos) {
		t.Errorf("player walked onto water at %v", pos)
	}
}
