// Package storage provides SQLite-based persistence for run summaries.
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

// Run outcomes.
const (
	OutcomeDeadlock = "deadlock"
	OutcomeFinished = "finished"
	OutcomeStopped  = "stopped"
)

// Store manages the SQLite database connection for run history.
type Store struct {
	db *sql.DB
}

// Run is a summary of one simulation run. Nothing here is ever fed back
// into a simulation.
type Run struct {
	ID         int64
	ScenarioID string
	Mode       string
	Seed       int64
	Ticks      int
	Actions    int
	Outcome    string
	Session    string // SSH user or "local"
	CreatedAt  time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
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

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			scenario_id TEXT NOT NULL,
			mode TEXT NOT NULL DEFAULT '',
			seed INTEGER NOT NULL DEFAULT 0,
			ticks INTEGER NOT NULL DEFAULT 0,
			actions INTEGER NOT NULL DEFAULT 0,
			outcome TEXT NOT NULL,
			session TEXT NOT NULL DEFAULT 'local',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_scenario ON runs(scenario_id);
		CREATE INDEX IF NOT EXISTS idx_runs_outcome ON runs(scenario_id, outcome);
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

// SaveRun records a run summary and returns the inserted ID.
func (s *Store) SaveRun(r Run) (int64, error) {
	switch r.Outcome {
	case OutcomeDeadlock, OutcomeFinished, OutcomeStopped:
	default:
		return 0, fmt.Errorf("storage: unknown outcome %q", r.Outcome)
	}
	if r.Session == "" {
		r.Session = "local"
	}

	result, err := s.db.Exec(
		`INSERT INTO runs (scenario_id, mode, seed, ticks, actions, outcome, session)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.ScenarioID, r.Mode, r.Seed, r.Ticks, r.Actions, r.Outcome, r.Session,
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

// RecentRuns returns the latest runs, newest first. An empty scenarioID
// selects runs of every scenario.
func (s *Store) RecentRuns(scenarioID string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `SELECT id, scenario_id, mode, seed, ticks, actions, outcome, session, created_at
		FROM runs`
	args := []any{}
	if scenarioID != "" {
		query += ` WHERE scenario_id = ?`
		args = append(args, scenarioID)
	}
	query += ` ORDER BY id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var createdAt any
		if err := rows.Scan(&r.ID, &r.ScenarioID, &r.Mode, &r.Seed, &r.Ticks,
			&r.Actions, &r.Outcome, &r.Session, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

// ScenarioStats contains aggregated statistics for a scenario.
type ScenarioStats struct {
	ScenarioID string
	Runs       int
	Deadlocks  int
	Finished   int
	AvgTicks   float64
	MaxTicks   int
	LastRun    time.Time
}

// DeadlockRate is the share of runs that ended in a deadlock.
func (st ScenarioStats) DeadlockRate() float64 {
	if st.Runs == 0 {
		return 0
	}
	return float64(st.Deadlocks) / float64(st.Runs)
}

const statsColumns = `scenario_id, COUNT(*),
	SUM(CASE WHEN outcome = 'deadlock' THEN 1 ELSE 0 END),
	SUM(CASE WHEN outcome = 'finished' THEN 1 ELSE 0 END),
	AVG(ticks), MAX(ticks), MAX(created_at)`

// ScenarioStats retrieves aggregated statistics for one scenario.
// A scenario with no runs yields zero stats.
func (s *Store) ScenarioStats(scenarioID string) (ScenarioStats, error) {
	row := s.db.QueryRow(
		`SELECT `+statsColumns+` FROM runs WHERE scenario_id = ? GROUP BY scenario_id`,
		scenarioID,
	)
	st, err := scanStats(row)
	if errors.Is(err, sql.ErrNoRows) {
		return ScenarioStats{ScenarioID: scenarioID}, nil
	}
	if err != nil {
		return ScenarioStats{}, fmt.Errorf("storage: cannot get scenario stats: %w", err)
	}
	return st, nil
}

// AllStats retrieves statistics for every scenario that has runs.
func (s *Store) AllStats() (map[string]ScenarioStats, error) {
	rows, err := s.db.Query(`SELECT ` + statsColumns + ` FROM runs GROUP BY scenario_id`)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]ScenarioStats)
	for rows.Next() {
		st, err := scanStats(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		stats[st.ScenarioID] = st
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return stats, nil
}

// ClearRuns deletes the history of one scenario, or of all scenarios when
// scenarioID is empty. It returns the number of deleted rows.
func (s *Store) ClearRuns(scenarioID string) (int64, error) {
	var (
		res sql.Result
		err error
	)
	if scenarioID == "" {
		res, err = s.db.Exec("DELETE FROM runs")
	} else {
		res, err = s.db.Exec("DELETE FROM runs WHERE scenario_id = ?", scenarioID)
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot count cleared runs: %w", err)
	}
	return n, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanStats(sc scanner) (ScenarioStats, error) {
	var st ScenarioStats
	var avg sql.NullFloat64
	var maxTicks sql.NullInt64
	var lastRun any
	if err := sc.Scan(&st.ScenarioID, &st.Runs, &st.Deadlocks, &st.Finished,
		&avg, &maxTicks, &lastRun); err != nil {
		return ScenarioStats{}, err
	}
	st.AvgTicks = avg.Float64
	st.MaxTicks = int(maxTicks.Int64)
	st.LastRun = parseTime(lastRun)
	return st, nil
}

// parseTime handles both driver-native times and SQLite text timestamps.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		for _, layout := range []string{"2006-01-02 15:04:05", time.RFC3339} {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed
			}
		}
	}
	return time.Time{}
}
