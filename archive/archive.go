// Package archive keeps a SQLite history of benchmark runs so results can be
// compared across invocations.
package archive

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/weiihann/sortbench/results"
)

// Entry is one archived per-fixture average.
type Entry struct {
	RunID       int64     `json:"run_id"`
	StartedAt   time.Time `json:"started_at"`
	Algorithm   string    `json:"algorithm"`
	Runs        int       `json:"runs"`
	Label       string    `json:"label"`
	MeanSeconds float64   `json:"mean_seconds"`
}

// Store archives the samples and aggregates of a single benchmark run. It
// implements results.Sink.
type Store struct {
	db    *sql.DB
	runID int64
}

// Open opens (creating if needed) the database at path and registers a new
// run for algorithm with the given repetition count.
func Open(path, algorithm string, runs int) (*Store, error) {
	db, err := openDB(path)
	if err != nil {
		return nil, err
	}

	res, err := db.Exec(
		`INSERT INTO runs (algorithm, runs, started_at) VALUES (?, ?, ?)`,
		algorithm, runs, time.Now().UTC(),
	)
	if err != nil {
		db.Close()

		return nil, fmt.Errorf("%w: insert run: %w", results.ErrOutput, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		db.Close()

		return nil, fmt.Errorf("%w: run id: %w", results.ErrOutput, err)
	}

	return &Store{db: db, runID: id}, nil
}

func openDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: open archive %s: %w", results.ErrOutput, path, err)
	}

	if err := db.Ping(); err != nil {
		db.Close()

		return nil, fmt.Errorf("%w: ping archive %s: %w", results.ErrOutput, path, err)
	}

	if err := migrate(db); err != nil {
		db.Close()

		return nil, fmt.Errorf("%w: migrate archive %s: %w", results.ErrOutput, path, err)
	}

	return db, nil
}

func migrate(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		algorithm TEXT NOT NULL,
		runs INTEGER NOT NULL,
		started_at DATETIME NOT NULL
	);
	CREATE TABLE IF NOT EXISTS samples (
		run_id INTEGER NOT NULL REFERENCES runs(id),
		label TEXT NOT NULL,
		run INTEGER NOT NULL,
		seconds REAL NOT NULL
	);
	CREATE TABLE IF NOT EXISTS aggregates (
		run_id INTEGER NOT NULL REFERENCES runs(id),
		label TEXT NOT NULL,
		mean_seconds REAL NOT NULL
	);
	`
	_, err := db.Exec(query)

	return err
}

// RunID is the identifier of the run being archived.
func (s *Store) RunID() int64 { return s.runID }

func (s *Store) Sample(r results.Sample) error {
	_, err := s.db.Exec(
		`INSERT INTO samples (run_id, label, run, seconds) VALUES (?, ?, ?, ?)`,
		s.runID, r.Label, r.Run, r.Seconds,
	)
	if err != nil {
		return fmt.Errorf("%w: archive sample: %w", results.ErrOutput, err)
	}

	return nil
}

func (s *Store) Aggregate(a results.Aggregate) error {
	_, err := s.db.Exec(
		`INSERT INTO aggregates (run_id, label, mean_seconds) VALUES (?, ?, ?)`,
		s.runID, a.Label, a.MeanSeconds,
	)
	if err != nil {
		return fmt.Errorf("%w: archive aggregate: %w", results.ErrOutput, err)
	}

	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// History returns the aggregates of the most recent runs, newest run first.
// limit bounds the number of runs, not rows; zero means no bound.
func History(path string, limit int) ([]Entry, error) {
	db, err := openDB(path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	if limit <= 0 {
		limit = -1
	}

	query := `
	SELECT r.id, r.started_at, r.algorithm, r.runs, a.label, a.mean_seconds
	FROM aggregates a
	JOIN (SELECT * FROM runs ORDER BY id DESC LIMIT ?) r ON r.id = a.run_id
	ORDER BY r.id DESC, a.rowid ASC`

	rows, err := db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(
			&e.RunID, &e.StartedAt, &e.Algorithm, &e.Runs, &e.Label, &e.MeanSeconds,
		); err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}

		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// Samples returns the raw samples archived for a run in insertion order.
func Samples(path string, runID int64) ([]results.Sample, error) {
	db, err := openDB(path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.Query(
		`SELECT label, run, seconds FROM samples WHERE run_id = ? ORDER BY rowid`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("query samples: %w", err)
	}
	defer rows.Close()

	var samples []results.Sample
	for rows.Next() {
		var s results.Sample
		if err := rows.Scan(&s.Label, &s.Run, &s.Seconds); err != nil {
			return nil, fmt.Errorf("scan sample: %w", err)
		}

		samples = append(samples, s)
	}

	return samples, rows.Err()
}
