package storage

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndLoadSlot(t *testing.T) {
	store := openTestStore(t)

	data := []byte{0x85, 0xa7, 'v', 'e', 'r', 's', 'i', 'o', 'n', 0x01}
	if err := store.SaveSlot("quick", 1, 420, data); err != nil {
		t.Fatalf("SaveSlot() failed: %v", err)
	}

	sv, err := store.LoadSlot("quick")
	if err != nil {
		t.Fatalf("LoadSlot() failed: %v", err)
	}
	if sv.Slot != "quick" || sv.Version != 1 || sv.Tick != 420 || sv.Size != len(data) {
		t.Errorf("unexpected slot info: %+v", sv.SaveInfo)
	}
	if !bytes.Equal(sv.Data, data) {
		t.Errorf("payload = %x, expected %x", sv.Data, data)
	}
}

func TestStoreSaveSlotOverwrites(t *testing.T) {
	store := openTestStore(t)

	if err := store.SaveSlot("0", 1, 10, []byte("first")); err != nil {
		t.Fatalf("SaveSlot() failed: %v", err)
	}
	if err := store.SaveSlot("0", 1, 20, []byte("second")); err != nil {
		t.Fatalf("SaveSlot() failed: %v", err)
	}

	sv, err := store.LoadSlot("0")
	if err != nil {
		t.Fatalf("LoadSlot() failed: %v", err)
	}
	if sv.Tick != 20 || string(sv.Data) != "second" {
		t.Errorf("slot not overwritten: tick=%d data=%q", sv.Tick, sv.Data)
	}

	slots, err := store.ListSlots()
	if err != nil {
		t.Fatalf("ListSlots() failed: %v", err)
	}
	if len(slots) != 1 {
		t.Errorf("Expected 1 slot, got %d", len(slots))
	}
}

func TestStoreSlotNotFound(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.LoadSlot("missing"); !errors.Is(err, ErrSlotNotFound) {
		t.Errorf("LoadSlot: expected ErrSlotNotFound, got %v", err)
	}
	if err := store.DeleteSlot("missing"); !errors.Is(err, ErrSlotNotFound) {
		t.Errorf("DeleteSlot: expected ErrSlotNotFound, got %v", err)
	}
	if err := store.SaveSlot("", 1, 0, []byte("x")); err == nil {
		t.Error("SaveSlot with an empty name should fail")
	}
}

func TestStoreListAndDeleteSlots(t *testing.T) {
	store := openTestStore(t)

	for _, slot := range []string{"a", "b", "c"} {
		if err := store.SaveSlot(slot, 1, 1, []byte(slot)); err != nil {
			t.Fatalf("SaveSlot(%q) failed: %v", slot, err)
		}
	}
	if err := store.DeleteSlot("b"); err != nil {
		t.Fatalf("DeleteSlot() failed: %v", err)
	}

	slots, err := store.ListSlots()
	if err != nil {
		t.Fatalf("ListSlots() failed: %v", err)
	}
	if len(slots) != 2 {
		t.Fatalf("Expected 2 slots, got %d", len(slots))
	}
	for _, s := range slots {
		if s.Slot == "b" {
			t.Error("deleted slot still listed")
		}
		if s.Size != 1 {
			t.Errorf("slot %q size = %d, expected 1", s.Slot, s.Size)
		}
	}
}

func TestStoreTopRuns(t *testing.T) {
	store := openTestStore(t)

	runs := []RunEntry{
		{Scenario: "island", Outcome: "lost", SurvivedSecs: 40, Score: 20, Seed: 1},
		{Scenario: "island", Outcome: "won", SurvivedSecs: 55, Score: 50, Seed: 2},
		{Scenario: "island", Outcome: "lost", SurvivedSecs: 90, Score: 20, Seed: 3},
		{Scenario: "arena", Outcome: "lost", SurvivedSecs: 12, Score: 999, Seed: 4},
	}
	for _, r := range runs {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	top, err := store.TopRuns("island", 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(top) != 3 {
		t.Fatalf("Expected 3 island runs, got %d", len(top))
	}
	// Score first, then survival time breaks the tie.
	if top[0].Seed != 2 || top[1].Seed != 3 || top[2].Seed != 1 {
		t.Errorf("Runs not in expected order: %+v", top)
	}

	limited, err := store.TopRuns("island", 2)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("Expected 2 runs with limit, got %d", len(limited))
	}
}

func TestStoreStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.Stats("island")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if empty.Runs != 0 || empty.BestScore != 0 {
		t.Errorf("Expected empty stats, got %+v", empty)
	}

	store.SaveRun(RunEntry{Scenario: "island", Outcome: "won", SurvivedSecs: 60, Score: 30})
	store.SaveRun(RunEntry{Scenario: "island", Outcome: "lost", SurvivedSecs: 20, Score: 10})

	stats, err := store.Stats("island")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.Runs != 2 || stats.Wins != 1 || stats.BestScore != 30 || stats.LongestSecs != 60 || stats.AvgSurvived != 40 {
		t.Errorf("unexpected stats: %+v", stats)
	}
}

func TestStoreNestedPath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	// Verify nested directories were created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
