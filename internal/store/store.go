// Package store persists the last successfully loaded entry snapshot so
// the UI can fall back to it when the backend is unreachable.
package store

import (
	"database/sql"
	_ "embed"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/tartampluch/go-journal/internal/config"
	"github.com/tartampluch/go-journal/internal/engine"
)

//go:embed schema.sql
var schema string

// Store wraps the SQLite snapshot database.
type Store struct {
	db *sql.DB
}

// Open creates (or opens) the snapshot database at the given path and
// applies the schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrCacheOpen, err)
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", config.ErrCacheOpen, err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// ReplaceSnapshot atomically swaps the cached collection for the given
// entries. Called after every successful sync.
func (s *Store) ReplaceSnapshot(entries []engine.Entry) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrCacheWrite, err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec("DELETE FROM entries"); err != nil {
		return fmt.Errorf("%s: %w", config.ErrCacheWrite, err)
	}

	stmt, err := tx.Prepare(`INSERT INTO entries
		(id, name, notes, kind, raw_type, sub_category, emoji, category, lucidity, vividness, ts_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrCacheWrite, err)
	}
	defer func() { _ = stmt.Close() }()

	for _, e := range entries {
		var lucidity, vividness sql.NullInt64
		if e.Dream != nil {
			lucidity = sql.NullInt64{Int64: int64(e.Dream.Lucidity), Valid: true}
			vividness = sql.NullInt64{Int64: int64(e.Dream.Vividness), Valid: true}
		}
		if _, err := stmt.Exec(e.ID, e.Name, e.Notes, e.Kind, e.RawType, e.SubCategory,
			e.Emoji, e.Category, lucidity, vividness, e.Timestamp.UnixMilli()); err != nil {
			return fmt.Errorf("%s: %w", config.ErrCacheWrite, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: %w", config.ErrCacheWrite, err)
	}
	return nil
}

// Snapshot returns the cached collection, newest first.
func (s *Store) Snapshot() ([]engine.Entry, error) {
	rows, err := s.db.Query(`SELECT id, name, notes, kind, raw_type, sub_category,
		emoji, category, lucidity, vividness, ts_ms
		FROM entries ORDER BY ts_ms DESC, name ASC`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrCacheRead, err)
	}
	defer func() { _ = rows.Close() }()

	var entries []engine.Entry
	for rows.Next() {
		var e engine.Entry
		var lucidity, vividness sql.NullInt64
		var tsMS int64
		if err := rows.Scan(&e.ID, &e.Name, &e.Notes, &e.Kind, &e.RawType, &e.SubCategory,
			&e.Emoji, &e.Category, &lucidity, &vividness, &tsMS); err != nil {
			return nil, fmt.Errorf("%s: %w", config.ErrCacheRead, err)
		}
		if lucidity.Valid || vividness.Valid {
			e.Dream = &engine.DreamDetail{
				Lucidity:  int(lucidity.Int64),
				Vividness: int(vividness.Int64),
			}
		}
		e.Timestamp = time.UnixMilli(tsMS).UTC()
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrCacheRead, err)
	}

	return entries, nil
}

// UpdateEmoji mirrors a successful backend emoji patch into the cache.
func (s *Store) UpdateEmoji(id, emoji string) error {
	res, err := s.db.Exec("UPDATE entries SET emoji = ? WHERE id = ?", emoji, id)
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrCacheWrite, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%s: %s", config.ErrEntryNotFound, id)
	}
	return nil
}
