// Package localstore is the single-user SQLite store used by the offline CLI.
// It implements the same repository methods as the PostgreSQL store.
package localstore

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Store keeps profiles, muscle usage, plans and injury reports in SQLite.
type Store struct {
	db *sql.DB
}

// DefaultDir returns ~/.fitcoach.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".fitcoach"), nil
}

// Open opens (or creates) the SQLite database at dir/fitcoach.db.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", filepath.Join(dir, "fitcoach.db"))
	if err != nil {
		return nil, fmt.Errorf("opening local db: %w", err)
	}
	// One connection serializes writers; SQLite would otherwise return SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

func migrate(db *sql.DB) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS profiles (
			user_id    INTEGER PRIMARY KEY,
			body       TEXT NOT NULL,
			health     TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS muscle_usage (
			user_id                 INTEGER NOT NULL,
			muscle_id               TEXT NOT NULL,
			muscle_name             TEXT NOT NULL,
			last_worked_at          TEXT NOT NULL,
			weekly_frequency        INTEGER NOT NULL,
			intensity               INTEGER NOT NULL,
			required_recovery_hours INTEGER NOT NULL,
			is_marked_recovered     INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (user_id, muscle_id)
		)`,
		`CREATE TABLE IF NOT EXISTS workout_plans (
			id         TEXT PRIMARY KEY,
			user_id    INTEGER NOT NULL,
			payload    TEXT NOT NULL,
			created_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_workout_plans_user ON workout_plans(user_id, created_at)`,
		`CREATE TABLE IF NOT EXISTS nutrition_plans (
			id         TEXT PRIMARY KEY,
			user_id    INTEGER NOT NULL,
			payload    TEXT NOT NULL,
			created_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS injury_reports (
			id         TEXT PRIMARY KEY,
			user_id    INTEGER NOT NULL,
			risk_level TEXT NOT NULL,
			payload    TEXT NOT NULL,
			created_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_injury_reports_user ON injury_reports(user_id, created_at)`,
	}

	for _, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return err
		}
	}
	return nil
}

// timeLayout is fixed-width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(timeLayout, s)
}
