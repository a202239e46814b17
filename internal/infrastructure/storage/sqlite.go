// Package storage persists movement traces in SQLite.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/younwookim/kinebody/internal/application/trace"
	"github.com/younwookim/kinebody/internal/domain/entity"
)

// flushEvery is how many buffered samples trigger a write
const flushEvery = 512

// TraceStore records per-tick body samples into a SQLite database.
// It implements system.Tracer; write errors are kept and reported by Err and Close.
type TraceStore struct {
	db      *sql.DB
	runID   int64
	pending []trace.Sample
	err     error
}

// Run is one recorded simulation run
type Run struct {
	ID        int64
	Stage     string
	Samples   int
	CreatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*TraceStore, error) {
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	if dbPath != ":memory:" {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	// every connection to :memory: is a separate database
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &TraceStore{db: db}
	if err := store.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

func (s *TraceStore) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			stage TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS samples (
			run_id INTEGER NOT NULL REFERENCES runs(id),
			tick INTEGER NOT NULL,
			entity_id INTEGER NOT NULL,
			name TEXT NOT NULL,
			x REAL NOT NULL,
			y REAL NOT NULL,
			vx REAL NOT NULL,
			vy REAL NOT NULL,
			outcome TEXT NOT NULL,
			colliders INTEGER NOT NULL DEFAULT 0,
			falling INTEGER NOT NULL DEFAULT 0,
			jumping INTEGER NOT NULL DEFAULT 0,
			on_ladder INTEGER NOT NULL DEFAULT 0
		);
		CREATE INDEX IF NOT EXISTS idx_samples_run ON samples(run_id, tick);
		CREATE INDEX IF NOT EXISTS idx_samples_entity ON samples(run_id, entity_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// BeginRun starts a new run; later samples are stored under it.
// Pending samples of the previous run are flushed first.
func (s *TraceStore) BeginRun(stage string) (int64, error) {
	if err := s.Flush(); err != nil {
		return 0, err
	}

	result, err := s.db.Exec("INSERT INTO runs (stage) VALUES (?)", stage)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot create run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	s.runID = id
	return id, nil
}

// RunID returns the current run, 0 before BeginRun
func (s *TraceStore) RunID() int64 {
	return s.runID
}

// Observe implements system.Tracer
func (s *TraceStore) Observe(tick uint64, b *entity.Body, res entity.MoveResult) {
	if s.err != nil {
		return
	}
	if s.runID == 0 {
		if _, err := s.BeginRun(""); err != nil {
			s.err = err
			return
		}
	}

	s.pending = append(s.pending, trace.NewSample(tick, b, res))
	if len(s.pending) >= flushEvery {
		_ = s.Flush()
	}
}

// Flush writes buffered samples in a single transaction
func (s *TraceStore) Flush() error {
	if s.err != nil {
		return s.err
	}
	if len(s.pending) == 0 {
		return nil
	}

	if err := s.insert(s.pending); err != nil {
		s.err = err
		return err
	}
	s.pending = s.pending[:0]
	return nil
}

func (s *TraceStore) insert(samples []trace.Sample) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}

	stmt, err := tx.Prepare(
		`INSERT INTO samples
		 (run_id, tick, entity_id, name, x, y, vx, vy, outcome, colliders, falling, jumping, on_ladder)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("storage: cannot prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, sm := range samples {
		if _, err := stmt.Exec(
			s.runID, int64(sm.Tick), sm.ID, sm.Name,
			sm.X, sm.Y, sm.VX, sm.VY,
			sm.Outcome, sm.Colliders,
			sm.Falling, sm.Jumping, sm.OnLadder,
		); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("storage: cannot save sample: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit samples: %w", err)
	}
	return nil
}

// Err returns the first write error, if any
func (s *TraceStore) Err() error {
	return s.err
}

// Samples returns the stored samples of a run, ordered by tick then entity.
// Pass entityID 0 for every entity.
func (s *TraceStore) Samples(runID int64, entityID entity.EntityID) ([]trace.Sample, error) {
	if err := s.Flush(); err != nil {
		return nil, err
	}

	rows, err := s.db.Query(
		`SELECT tick, entity_id, name, x, y, vx, vy, outcome, colliders, falling, jumping, on_ladder
		 FROM samples
		 WHERE run_id = ? AND (? = 0 OR entity_id = ?)
		 ORDER BY tick, entity_id`,
		runID, entityID, entityID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query samples: %w", err)
	}
	defer rows.Close()

	var samples []trace.Sample
	for rows.Next() {
		var sm trace.Sample
		var tick int64
		if err := rows.Scan(
			&tick, &sm.ID, &sm.Name,
			&sm.X, &sm.Y, &sm.VX, &sm.VY,
			&sm.Outcome, &sm.Colliders,
			&sm.Falling, &sm.Jumping, &sm.OnLadder,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		sm.Tick = uint64(tick)
		samples = append(samples, sm)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return samples, nil
}

// Runs lists recorded runs, newest first
func (s *TraceStore) Runs() ([]Run, error) {
	if err := s.Flush(); err != nil {
		return nil, err
	}

	rows, err := s.db.Query(
		`SELECT r.id, r.stage, COUNT(sm.run_id), r.created_at
		 FROM runs r
		 LEFT JOIN samples sm ON sm.run_id = r.id
		 GROUP BY r.id
		 ORDER BY r.id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var createdAt any
		if err := rows.Scan(&r.ID, &r.Stage, &r.Samples, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}

		switch v := createdAt.(type) {
		case time.Time:
			r.CreatedAt = v
		case string:
			if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
				r.CreatedAt = parsed
			}
		}
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// Close flushes pending samples and closes the database connection
func (s *TraceStore) Close() error {
	if s.db == nil {
		return nil
	}
	flushErr := s.Flush()
	if err := s.db.Close(); err != nil {
		return err
	}
	return flushErr
}
