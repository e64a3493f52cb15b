// Package history persists finished evaluation runs to SQLite so that
// score trends can be inspected across runs.
package history

import (
	"database/sql"
	"fmt"
	"math"
	"time"

	_ "modernc.org/sqlite"

	"github.com/evalgate/evalgate/pkg/types"
)

// Store is a SQLite-backed archive of evaluation runs and their
// per-case metric scores.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the SQLite database at path and prepares the
// schema. Use ":memory:" for an ephemeral store.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}
	store, err := NewStore(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

// NewStore creates the runs and scores tables if they don't exist, then
// returns a Store backed by the provided *sql.DB.
func NewStore(db *sql.DB) (*Store, error) {
	if _, err := db.Exec(`PRAGMA journal_mode=WAL`); err != nil {
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS runs (
			id              INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id          TEXT    NOT NULL,
			system          TEXT    NOT NULL,
			threshold       REAL    NOT NULL,
			overall_average REAL    NOT NULL,
			passed          INTEGER NOT NULL,
			critical        INTEGER NOT NULL,
			total_cases     INTEGER NOT NULL,
			total_cost      REAL    NOT NULL,
			duration_ms     INTEGER NOT NULL,
			created_at      INTEGER NOT NULL
		)
	`); err != nil {
		return nil, fmt.Errorf("create runs table: %w", err)
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS scores (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id     TEXT    NOT NULL,
			system     TEXT    NOT NULL,
			case_index INTEGER NOT NULL,
			metric     TEXT    NOT NULL,
			score      REAL    NOT NULL,
			created_at INTEGER NOT NULL
		)
	`); err != nil {
		return nil, fmt.Errorf("create scores table: %w", err)
	}

	if _, err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_scores_system_metric_ts
		ON scores (system, metric, created_at)
	`); err != nil {
		return nil, fmt.Errorf("create scores index: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// RunSummary is one archived run as returned by RecentRuns.
type RunSummary struct {
	RunID          string
	System         types.System
	Threshold      float64
	OverallAverage float64
	Passed         bool
	Critical       bool
	TotalCases     int
	CreatedAt      time.Time
}

// RecordRun archives a finished run: one row in runs plus one row in
// scores per (case, metric) pair, all in a single transaction.
func (s *Store) RecordRun(rs *types.ResultSet) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin history transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UnixNano()

	if _, err := tx.Exec(
		`INSERT INTO runs (run_id, system, threshold, overall_average, passed, critical, total_cases, total_cost, duration_ms, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rs.RunID, string(rs.System), rs.Threshold, rs.OverallAverage,
		boolToInt(rs.Passed), boolToInt(rs.Critical),
		rs.TotalCases(), rs.TotalCost, rs.DurationMS, now,
	); err != nil {
		return fmt.Errorf("record run: %w", err)
	}

	for i := range rs.Cases {
		c := &rs.Cases[i]
		for _, r := range c.Results {
			if _, err := tx.Exec(
				`INSERT INTO scores (run_id, system, case_index, metric, score, created_at)
				 VALUES (?, ?, ?, ?, ?, ?)`,
				rs.RunID, string(rs.System), c.Index, string(r.Metric), r.Score, now,
			); err != nil {
				return fmt.Errorf("record score: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit history transaction: %w", err)
	}
	return nil
}

// RecentRuns returns the last limit runs for the given system, most
// recent first.
func (s *Store) RecentRuns(sys types.System, limit int) ([]RunSummary, error) {
	rows, err := s.db.Query(
		`SELECT run_id, system, threshold, overall_average, passed, critical, total_cases, created_at
		 FROM runs
		 WHERE system = ?
		 ORDER BY created_at DESC
		 LIMIT ?`,
		string(sys), limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query recent runs: %w", err)
	}
	defer rows.Close()

	var runs []RunSummary
	for rows.Next() {
		var r RunSummary
		var system string
		var passed, critical int
		var createdAt int64
		if err := rows.Scan(&r.RunID, &system, &r.Threshold, &r.OverallAverage, &passed, &critical, &r.TotalCases, &createdAt); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		r.System = types.System(system)
		r.Passed = passed != 0
		r.Critical = critical != 0
		r.CreatedAt = time.Unix(0, createdAt)
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("recent runs rows: %w", err)
	}
	return runs, nil
}

// MetricWindow returns the last windowSize scores recorded for the given
// system and metric, most recent first.
func (s *Store) MetricWindow(sys types.System, metric types.Metric, windowSize int) ([]float64, error) {
	rows, err := s.db.Query(
		`SELECT score FROM scores
		 WHERE system = ? AND metric = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		string(sys), string(metric), windowSize,
	)
	if err != nil {
		return nil, fmt.Errorf("query metric window: %w", err)
	}
	defer rows.Close()

	var scores []float64
	for rows.Next() {
		var score float64
		if err := rows.Scan(&score); err != nil {
			return nil, fmt.Errorf("scan score: %w", err)
		}
		scores = append(scores, score)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("metric window rows: %w", err)
	}
	return scores, nil
}

// MetricStats computes the mean, population standard deviation, and
// count of all archived scores for the given system and metric. Returns
// zero values when no rows exist.
func (s *Store) MetricStats(sys types.System, metric types.Metric) (mean float64, stddev float64, count int, err error) {
	row := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(AVG(score), 0.0) FROM scores WHERE system = ? AND metric = ?`,
		string(sys), string(metric),
	)
	if err = row.Scan(&count, &mean); err != nil {
		return 0, 0, 0, fmt.Errorf("stats query: %w", err)
	}
	if count == 0 {
		return 0, 0, 0, nil
	}

	// SQLite lacks STDDEV_POP, so compute it from the raw scores.
	rows, err := s.db.Query(
		`SELECT score FROM scores WHERE system = ? AND metric = ?`,
		string(sys), string(metric),
	)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("stats stddev query: %w", err)
	}
	defer rows.Close()

	var sumSqDiff float64
	for rows.Next() {
		var score float64
		if scanErr := rows.Scan(&score); scanErr != nil {
			return 0, 0, 0, fmt.Errorf("stats scan: %w", scanErr)
		}
		diff := score - mean
		sumSqDiff += diff * diff
	}
	if rowErr := rows.Err(); rowErr != nil {
		return 0, 0, 0, fmt.Errorf("stats rows: %w", rowErr)
	}

	stddev = math.Sqrt(sumSqDiff / float64(count))
	return mean, stddev, count, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
