// Package storage provides the persisted slot backends for the bookmark
// store: a JSON file and a SQLite key/value table. Both hold the whole
// serialized collection in a single named slot.
package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// FileSlot persists the slot as one file on disk. Writes go through a
// temp-file rename so another process never observes a half-written slot.
type FileSlot struct {
	path string
}

// NewFileSlot creates a slot backed by the file at path. The parent
// directory is created on first write.
func NewFileSlot(path string) *FileSlot {
	return &FileSlot{path: path}
}

// Load returns the slot contents, or nil when the file does not exist yet.
func (f *FileSlot) Load() ([]byte, error) {
	data, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", f.path, err)
	}
	return data, nil
}

// Store rewrites the whole slot.
func (f *FileSlot) Store(data []byte) error {
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(f.path)+".*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), f.path)
}

// Watch reports modifications of the slot file. The parent directory is
// watched rather than the file itself so the watch survives the rename on
// every Store and catches creation by another process.
func (f *FileSlot) Watch(onChange func()) (func(), error) {
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watching %s: %w", dir, err)
	}

	base := filepath.Base(f.path)
	go func() {
		for {
			select {
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Base(ev.Name) != base {
					continue
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
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
