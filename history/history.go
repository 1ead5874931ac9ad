// Package history records interpreter runs in a local SQLite database.
package history

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// Outcome labels for recorded runs.
const (
	OutcomeHalted        = "halted"
	OutcomeFuelExhausted = "fuel-exhausted"
	OutcomeInvalidJump   = "invalid-jump"
	OutcomeIOError       = "io-error"
)

// Run is one recorded interpreter run.
type Run struct {
	ID          int64
	ProgramHash string // hex SHA-256 of the program source bytes
	Outcome     string
	FuelUsed    int
	BytesOut    int
	StartedAt   time.Time
}

// Store is the append-only run log.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

// Open opens (creating if needed) the run log at the given path. Parent
// directories are created as needed.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating history dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Set busy timeout for concurrent access
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		program_hash TEXT NOT NULL,
		outcome TEXT NOT NULL,
		fuel_used INTEGER NOT NULL,
		bytes_out INTEGER NOT NULL,
		started_at TIMESTAMP NOT NULL
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating table: %w", err)
	}

	return &Store{db: db}, nil
}

// Record appends one run to the log. A zero StartedAt is filled with the
// current time.
func (s *Store) Record(r Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if r.StartedAt.IsZero() {
		r.StartedAt = time.Now()
	}
	_, err := s.db.Exec(
		`INSERT INTO runs (program_hash, outcome, fuel_used, bytes_out, started_at)
		 VALUES (?, ?, ?, ?, ?)`,
		r.ProgramHash, r.Outcome, r.FuelUsed, r.BytesOut, r.StartedAt,
	)
	if err != nil {
		return fmt.Errorf("recording run: %w", err)
	}
	return nil
}

// Recent returns up to limit runs, newest first.
func (s *Store) Recent(limit int) ([]Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(
		`SELECT id, program_hash, outcome, fuel_used, bytes_out, started_at
		 FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.ProgramHash, &r.Outcome, &r.FuelUsed, &r.BytesOut, &r.StartedAt); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// HashProgram returns the hex SHA-256 of program source bytes, the key used
// to correlate runs of the same program.
func HashProgram(src []byte) string {
	sum := sha256.Sum256(src)
	return hex.EncodeToString(sum[:])
}
