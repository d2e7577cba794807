// Package storage provides SQLite-based persistence for save slots and
// finished survival runs.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// ErrSlotNotFound is returned when loading or deleting a slot that does not exist.
var ErrSlotNotFound = errors.New("storage: save slot not found")

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// SaveInfo describes a save slot without its payload.
type SaveInfo struct {
	Slot      string
	Version   int
	Tick      uint64
	Size      int
	CreatedAt time.Time
}

// Save is a save slot with its encoded game.
type Save struct {
	SaveInfo
	Data []byte
}

// RunEntry is one finished game.
type RunEntry struct {
	ID           int64
	Scenario     string
	Outcome      string // "won", "lost" or "quit"
	SurvivedSecs float64
	Score        int
	Seed         int64
	CreatedAt    time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS saves (
			slot TEXT PRIMARY KEY,
			version INTEGER NOT NULL,
			tick INTEGER NOT NULL DEFAULT 0,
			data BLOB NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			scenario TEXT NOT NULL,
			outcome TEXT NOT NULL,
			survived_secs REAL NOT NULL DEFAULT 0,
			score INTEGER NOT NULL DEFAULT 0,
			seed INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(scenario, score DESC, survived_secs DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveSlot writes data to the named slot, replacing whatever was there.
func (s *Store) SaveSlot(slot string, version int, tick uint64, data []byte) error {
	if slot == "" {
		return errors.New("storage: empty slot name")
	}
	_, err := s.db.Exec(
		`INSERT INTO saves (slot, version, tick, data, created_at)
		 VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(slot) DO UPDATE SET
		   version = excluded.version,
		   tick = excluded.tick,
		   data = excluded.data,
		   created_at = excluded.created_at`,
		slot, version, int64(tick), data,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save slot %q: %w", slot, err)
	}
	return nil
}

// LoadSlot reads a slot. Returns ErrSlotNotFound if it does not exist.
func (s *Store) LoadSlot(slot string) (*Save, error) {
	var sv Save
	var tick int64
	var createdAt any
	err := s.db.QueryRow(
		`SELECT slot, version, tick, data, created_at FROM saves WHERE slot = ?`,
		slot,
	).Scan(&sv.Slot, &sv.Version, &tick, &sv.Data, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %q", ErrSlotNotFound, slot)
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot load slot %q: %w", slot, err)
	}
	sv.Tick = uint64(tick)
	sv.Size = len(sv.Data)
	sv.CreatedAt = parseTime(createdAt)
	return &sv, nil
}

// ListSlots returns every slot, most recently written first.
func (s *Store) ListSlots() ([]SaveInfo, error) {
	rows, err := s.db.Query(
		`SELECT slot, version, tick, length(data), created_at
		 FROM saves
		 ORDER BY created_at DESC, slot`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query saves: %w", err)
	}
	defer rows.Close()

	var infos []SaveInfo
	for rows.Next() {
		var info SaveInfo
		var tick int64
		var createdAt any
		if err := rows.Scan(&info.Slot, &info.Version, &tick, &info.Size, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		info.Tick = uint64(tick)
		info.CreatedAt = parseTime(createdAt)
		infos = append(infos, info)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return infos, nil
}

// DeleteSlot removes a slot. Returns ErrSlotNotFound if it does not exist.
func (s *Store) DeleteSlot(slot string) error {
	res, err := s.db.Exec("DELETE FROM saves WHERE slot = ?", slot)
	if err != nil {
		return fmt.Errorf("storage: cannot delete slot %q: %w", slot, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("storage: cannot delete slot %q: %w", slot, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %q", ErrSlotNotFound, slot)
	}
	return nil
}

// SaveRun records a finished game.
// Returns the ID of the inserted record.
func (s *Store) SaveRun(run RunEntry) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO runs (scenario, outcome, survived_secs, score, seed)
		 VALUES (?, ?, ?, ?, ?)`,
		run.Scenario, run.Outcome, run.SurvivedSecs, run.Score, run.Seed,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// TopRuns retrieves the best N runs for a scenario, by score then survival time.
func (s *Store) TopRuns(scenario string, limit int) ([]RunEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, scenario, outcome, survived_secs, score, seed, created_at
		 FROM runs
		 WHERE scenario = ?
		 ORDER BY score DESC, survived_secs DESC, id
		 LIMIT ?`,
		scenario, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var entries []RunEntry
	for rows.Next() {
		var e RunEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.Scenario, &e.Outcome, &e.SurvivedSecs, &e.Score, &e.Seed, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// ScenarioStats contains aggregated statistics for a scenario.
type ScenarioStats struct {
	Scenario    string
	Runs        int
	Wins        int
	BestScore   int
	LongestSecs float64
	AvgSurvived float64
	LastPlayed  time.Time
}

// Stats retrieves aggregated run statistics for a scenario.
func (s *Store) Stats(scenario string) (*ScenarioStats, error) {
	stats := &ScenarioStats{Scenario: scenario}

	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(CASE WHEN outcome = 'won' THEN 1 ELSE 0 END), 0),
		        COALESCE(MAX(score), 0),
		        COALESCE(MAX(survived_secs), 0),
		        COALESCE(AVG(survived_secs), 0),
		        MAX(created_at)
		 FROM runs WHERE scenario = ?`,
		scenario,
	).Scan(&stats.Runs, &stats.Wins, &stats.BestScore, &stats.LongestSecs, &stats.AvgSurvived, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)
	return stats, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
