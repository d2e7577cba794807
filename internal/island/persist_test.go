package island

import (
	"errors"
	"testing"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/vovakirdan/dino-island/internal/config"
	"github.com/vovakirdan/dino-island/internal/core"
	"github.com/vovakirdan/dino-island/internal/hazard"
)

func populatedSession(t *testing.T) *Session {
	t.Helper()
	cfg := config.DefaultIslandConfig()
	cfg.Player.StartPotions = 1
	s := newTestSession(t, cfg, core.V(20, 20))
	rng := core.NewRNG(77)
	for i := 0; i < 25; i++ {
		s.SpawnCreature(core.V(rng.Range(5, 35), rng.Range(5, 35)), Class(i%2), 0)
	}
	for i := 0; i < 4; i++ {
		s.SpawnItem(core.V(rng.Range(15, 25), rng.Range(15, 25)), ItemKind(i%2))
	}
	s.Hazards().Add(hazard.Tile{X: 22, Y: 20})
	s.Hazards().AddFor(hazard.Tile{X: 23, Y: 20}, 30)
	return s
}

func scriptedInput(step int) core.InputFrame {
	in := core.NewInputFrame()
	switch (step / 25) % 4 {
	case 0:
		in.Set(core.ActionRight)
	case 1:
		in.Set(core.ActionDown)
	case 2:
		in.Set(core.ActionLeft)
	default:
		in.Set(core.ActionUp)
	}
	if step%97 == 0 {
		in.Set(core.ActionUsePotion)
	}
	return in
}

func TestMarshalRestoreRoundTrip(t *testing.T) {
	a := populatedSession(t)
	for i := 0; i < 120; i++ {
		a.Step(scriptedInput(i))
	}
	a.SetEscapePoint(core.V(400, 400))

	data, err := a.MarshalState()
	if err != nil {
		t.Fatalf("MarshalState: %v", err)
	}
	b, err := RestoreSession(a.Config(), data, nil, nil)
	if err != nil {
		t.Fatalf("RestoreSession: %v", err)
	}
	if err := b.CheckInvariants(); err != nil {
		t.Fatalf("restored grid: %v", err)
	}

	ha, _ := a.StateHash()
	hb, _ := b.StateHash()
	if ha != hb {
		t.Fatalf("hash after restore differs: %x vs %x", ha, hb)
	}
	if b.Tick() != a.Tick() || b.Clock() != a.Clock() || b.Count(RoleCreature) != a.Count(RoleCreature) {
		t.Errorf("restored tick/clock/creatures = %d/%v/%d, expected %d/%v/%d",
			b.Tick(), b.Clock(), b.Count(RoleCreature), a.Tick(), a.Clock(), a.Count(RoleCreature))
	}
	if at, ok := b.Hazards().ExpiresAt(hazard.Tile{X: 23, Y: 20}); !ok || at != 30 {
		t.Errorf("timed hazard expiry = %v, %v; expected 30, true", at, ok)
	}

	// Both continue identically, including RNG draws and new ids.
	for i := 120; i < 240; i++ {
		a.Step(scriptedInput(i))
		b.Step(scriptedInput(i))
	}
	if ida, idb := a.SpawnItem(core.V(1, 1), ItemPotion), b.SpawnItem(core.V(1, 1), ItemPotion); ida != idb {
		t.Errorf("next ids differ after restore: %d vs %d", ida, idb)
	}
	ha, _ = a.StateHash()
	hb, _ = b.StateHash()
	if ha != hb {
		t.Errorf("hash after continued stepping differs: %x vs %x", ha, hb)
	}
}

func TestRestoreRejectsCorruptState(t *testing.T) {
	cfg := config.DefaultIslandConfig()
	good, err := populatedSession(t).MarshalState()
	if err != nil {
		t.Fatal(err)
	}

	encode := func(mutate func(st *savedState)) []byte {
		var st savedState
		if err := msgpack.Unmarshal(good, &st); err != nil {
			t.Fatal(err)
		}
		mutate(&st)
		data, err := msgpack.Marshal(&st)
		if err != nil {
			t.Fatal(err)
		}
		return data
	}

	tests := []struct {
		name string
		data []byte
	}{
		{"garbage", []byte{0xc1, 0x00, 0xff}},
		{"empty", nil},
		{"future version", encode(func(st *savedState) { st.Version = StateVersion + 1 })},
		{"no player", encode(func(st *savedState) { st.Entities = st.Entities[1:] })},
		{"duplicate ids", encode(func(st *savedState) { st.Entities[2].ID = st.Entities[1].ID })},
		{"negative health", encode(func(st *savedState) { st.Entities[1].Health = -5 })},
		{"unknown role", encode(func(st *savedState) { st.Entities[1].Role = 9 })},
		{"unknown state", encode(func(st *savedState) { st.Entities[1].State = 7 })},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := RestoreSession(cfg, tc.data, nil, nil)
			if !errors.Is(err, ErrCorruptState) {
				t.Errorf("expected ErrCorruptState, got %v", err)
			}
		})
	}
}
