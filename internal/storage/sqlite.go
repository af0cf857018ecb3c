package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	_ "modernc.org/sqlite"
)

// SQLiteSlot persists named slots in a one-table key/value schema, the same
// shape browsers use to back localStorage. Each slot holds one serialized
// blob; writes replace the whole row.
type SQLiteSlot struct {
	db   *sql.DB
	path string
	key  string
}

// OpenSQLiteSlot opens (creating if needed) the database at dbPath and binds
// the slot named key.
func OpenSQLiteSlot(dbPath, key string) (*SQLiteSlot, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating storage dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening storage db: %w", err)
	}
	db.SetMaxOpenConns(1)

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS slots (
			key   TEXT PRIMARY KEY,
			value BLOB NOT NULL
		);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}

	return &SQLiteSlot{db: db, path: dbPath, key: key}, nil
}

// Close releases the database handle.
func (s *SQLiteSlot) Close() error {
	return s.db.Close()
}

// Load returns the slot contents, or nil when the slot was never written.
func (s *SQLiteSlot) Load() ([]byte, error) {
	var value []byte
	err := s.db.QueryRow("SELECT value FROM slots WHERE key = ?", s.key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading slot %q: %w", s.key, err)
	}
	return value, nil
}

// Store rewrites the slot row.
func (s *SQLiteSlot) Store(data []byte) error {
	_, err := s.db.Exec(`
		INSERT INTO slots (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, s.key, data)
	return err
}

// Watch reports commits by other processes by watching the database file.
// SQLite touches the main file (or its WAL sibling) on every commit, so a
// filesystem event is a reliable change signal without polling.
func (s *SQLiteSlot) Watch(onChange func()) (func(), error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(s.path)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(s.path), err)
	}

	base := filepath.Base(s.path)
	go func() {
		for {
			select {
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				name := filepath.Base(ev.Name)
				if name != base && name != base+"-wal" && name != base+"-journal" {
					continue
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create) != 0 {
					onChange()
				}
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
			}
		}
	}()

	return func() { watcher.Close() }, nil
}
