package prefs

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// FileName is the preferences database name inside the state directory.
const FileName = "prefs.db"

// Key names a stored answer.
type Key string

const (
	KeyShowTitle   Key = "show_title"
	KeySeason      Key = "season"
	KeyEpisode     Key = "episode"
	KeyForeignSubs Key = "foreign_subs"
	KeyDecomb      Key = "decomb"
	KeyIFlicks     Key = "iflicks"
)

// Entry is one stored preference as it appears in the database.
type Entry struct {
	Key       Key
	Value     string
	UpdatedAt time.Time
}

// Store persists answers between sessions in SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the preferences database in stateDir.
func Open(ctx context.Context, stateDir string) (*Store, error) {
	if strings.TrimSpace(stateDir) == "" {
		return nil, errors.New("state directory required")
	}
	if err := os.MkdirAll(stateDir, 0o755); err != nil {
		return nil, fmt.Errorf("create state directory: %w", err)
	}

	dbPath := filepath.Join(stateDir, FileName)
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.ExecContext(ctx, pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.initSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Save stores value under key, replacing any previous value.
func (s *Store) Save(ctx context.Context, key Key, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	timestamp := time.Now().UTC().Format(time.RFC3339Nano)
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO preferences (key, value_json, updated_at) VALUES (?, ?, ?)
         ON CONFLICT(key) DO UPDATE SET value_json = excluded.value_json, updated_at = excluded.updated_at`,
		string(key), string(data), timestamp,
	)
	if err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

func (s *Store) raw(ctx context.Context, key Key) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, "SELECT value_json FROM preferences WHERE key = ?", string(key)).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("load %s: %w", key, err)
	}
	return value, true, nil
}

// Lookup decodes the value stored under key. The boolean reports whether a
// value was present.
func Lookup[T any](ctx context.Context, s *Store, key Key) (T, bool, error) {
	var value T
	raw, ok, err := s.raw(ctx, key)
	if err != nil || !ok {
		return value, false, err
	}
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		return value, false, fmt.Errorf("decode %s: %w", key, err)
	}
	return value, true, nil
}

// LookupOr returns the value under key or fallback when none is stored.
func LookupOr[T any](ctx context.Context, s *Store, key Key, fallback T) (T, error) {
	value, ok, err := Lookup[T](ctx, s, key)
	if err != nil {
		return fallback, err
	}
	if !ok {
		return fallback, nil
	}
	return value, nil
}

// Entries lists every stored preference ordered by key.
func (s *Store) Entries(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT key, value_json, updated_at FROM preferences ORDER BY key")
	if err != nil {
		return nil, fmt.Errorf("list preferences: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			key       string
			value     string
			updatedAt string
		)
		if err := rows.Scan(&key, &value, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan preference: %w", err)
		}
		entry := Entry{Key: Key(key), Value: value}
		if parsed, err := time.Parse(time.RFC3339Nano, updatedAt); err == nil {
			entry.UpdatedAt = parsed
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate preferences: %w", err)
	}
	return entries, nil
}

// Reset deletes every stored preference and reports how many were removed.
func (s *Store) Reset(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM preferences")
	if err != nil {
		return 0, fmt.Errorf("reset preferences: %w", err)
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return removed, nil
}

// Purge removes the preferences database files from stateDir.
func Purge(stateDir string) error {
	base := filepath.Join(stateDir, FileName)
	for _, path := range []string{base, base + "-wal", base + "-shm"} {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("remove %s: %w", path, err)
		}
	}
	return nil
}
