package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/chrono-app/chrono/internal/model"
)

// Snapshot keys mirror the gateway's logical collection keys.
const (
	SnapshotTasks    = "tasks"
	SnapshotSessions = "focus-sessions"
	SnapshotUserData = "user-data"
)

// SnapshotStore persists serialized store snapshots to a local SQLite
// database. It is the explicit replacement for persistence-through-
// middleware: the stores call Save* after each successful mutation, and
// the application reads the snapshots back at startup. It is fully
// decoupled from the gateway sync path.
type SnapshotStore struct {
	db *sqlx.DB
}

// NewSnapshotStore opens (or creates) a SQLite database at dbPath, enables
// WAL mode, and runs any pending schema migrations.
func NewSnapshotStore(dbPath string) (*SnapshotStore, error) {
	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	// Enable WAL mode for better concurrent read performance.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	s := &SnapshotStore{db: db}
	if err := s.runMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the underlying database connection.
func (s *SnapshotStore) Close() error {
	return s.db.Close()
}

// runMigrations checks the current schema version and applies any
// outstanding migrations in order.
func (s *SnapshotStore) runMigrations() error {
	currentVersion := 0

	// Check if schema_version table exists.
	var tableCount int
	err := s.db.Get(
		&tableCount,
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	)
	if err != nil {
		return fmt.Errorf("checking schema_version table: %w", err)
	}

	if tableCount > 0 {
		err = s.db.Get(&currentVersion, "SELECT COALESCE(MAX(version), 0) FROM schema_version")
		if err != nil {
			return fmt.Errorf("reading schema version: %w", err)
		}
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}
		if _, err := s.db.Exec(m.sql); err != nil {
			return fmt.Errorf("applying migration v%d: %w", m.version, err)
		}
	}

	return nil
}

// save serializes value as JSON and upserts it under key.
func (s *SnapshotStore) save(ctx context.Context, key string, value interface{}) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshaling snapshot %q: %w", key, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO snapshots (key, payload, saved_at)
		VALUES (?, ?, ?)`,
		key, string(payload), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("saving snapshot %q: %w", key, err)
	}
	return nil
}

// load reads the snapshot under key into out. A missing snapshot leaves
// out untouched and returns ok=false.
func (s *SnapshotStore) load(ctx context.Context, key string, out interface{}) (bool, error) {
	var payload string
	err := s.db.GetContext(ctx, &payload,
		"SELECT payload FROM snapshots WHERE key = ?", key)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("reading snapshot %q: %w", key, err)
	}

	if err := json.Unmarshal([]byte(payload), out); err != nil {
		return false, fmt.Errorf("unmarshaling snapshot %q: %w", key, err)
	}
	return true, nil
}

// SaveTasks writes the task-collection snapshot.
func (s *SnapshotStore) SaveTasks(ctx context.Context, tasks []model.Task) error {
	if tasks == nil {
		tasks = []model.Task{}
	}
	return s.save(ctx, SnapshotTasks, tasks)
}

// LoadTasks reads the task-collection snapshot. ok is false when no
// snapshot has been written yet.
func (s *SnapshotStore) LoadTasks(ctx context.Context) (tasks []model.Task, ok bool, err error) {
	ok, err = s.load(ctx, SnapshotTasks, &tasks)
	return tasks, ok, err
}

// SaveSessions writes the focus-session snapshot.
func (s *SnapshotStore) SaveSessions(ctx context.Context, sessions []model.FocusSession) error {
	if sessions == nil {
		sessions = []model.FocusSession{}
	}
	return s.save(ctx, SnapshotSessions, sessions)
}

// LoadSessions reads the focus-session snapshot.
func (s *SnapshotStore) LoadSessions(ctx context.Context) (sessions []model.FocusSession, ok bool, err error) {
	ok, err = s.load(ctx, SnapshotSessions, &sessions)
	return sessions, ok, err
}

// SaveUserData writes the aggregate-stats snapshot.
func (s *SnapshotStore) SaveUserData(ctx context.Context, stats model.UserStats) error {
	return s.save(ctx, SnapshotUserData, stats)
}

// LoadUserData reads the aggregate-stats snapshot.
func (s *SnapshotStore) LoadUserData(ctx context.Context) (stats model.UserStats, ok bool, err error) {
	ok, err = s.load(ctx, SnapshotUserData, &stats)
	return stats, ok, err
}
