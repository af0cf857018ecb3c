// Package bookmarks implements the persisted read-later list. The whole
// collection lives in one serialized slot; every mutation is a full
// read-modify-write of that slot, and external writers (another process on
// the same slot) are picked up through the slot's change notification.
package bookmarks

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/Navodith09/NewsSpeak/internal/news"
)

// Bookmark is the minimal projection of an article kept for later reading.
// Image and description are dropped on purpose.
type Bookmark struct {
	Title       string    `json:"title"`
	URL         string    `json:"url"`
	PublishedAt time.Time `json:"publishedAt"`
	SourceName  string    `json:"source"`
}

// Slot is a single named unit of persisted storage holding the serialized
// bookmark collection. Load returns nil bytes when the slot has never been
// written, which is equivalent to an empty list.
type Slot interface {
	Load() ([]byte, error)
	Store([]byte) error
	// Watch calls onChange whenever the slot is modified by another writer.
	// The returned stop function releases the watch.
	Watch(onChange func()) (stop func(), err error)
}

// Store keeps an in-memory view of the bookmark list on top of a Slot.
// Cross-process races on the slot resolve last-write-wins.
type Store struct {
	mu    sync.Mutex
	slot  Slot
	items []Bookmark
	stop  func()
}

// Open loads the slot and subscribes to external changes.
func Open(slot Slot) (*Store, error) {
	s := &Store{slot: slot}
	if err := s.reload(); err != nil {
		return nil, err
	}

	stop, err := slot.Watch(func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		// Best effort: a half-written slot is retried on the next event.
		s.reload()
	})
	if err != nil {
		return nil, fmt.Errorf("watching bookmark slot: %w", err)
	}
	s.stop = stop
	return s, nil
}

// Close releases the slot watch.
func (s *Store) Close() {
	if s.stop != nil {
		s.stop()
	}
}

// reload replaces the in-memory view with the persisted one.
// Caller must hold the lock (Open is single-threaded at that point).
func (s *Store) reload() error {
	data, err := s.slot.Load()
	if err != nil {
		return fmt.Errorf("loading bookmarks: %w", err)
	}
	if len(data) == 0 {
		s.items = nil
		return nil
	}
	var items []Bookmark
	if err := json.Unmarshal(data, &items); err != nil {
		return fmt.Errorf("decoding bookmarks: %w", err)
	}
	s.items = items
	return nil
}

// persist rewrites the whole collection. Caller must hold the lock.
func (s *Store) persist() error {
	data, err := json.Marshal(s.items)
	if err != nil {
		return err
	}
	return s.slot.Store(data)
}

// IsBookmarked reports whether a bookmark with that URL exists.
func (s *Store) IsBookmarked(url string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.indexOf(url) >= 0
}

// Add projects the article into a bookmark and appends it. Idempotent: a URL
// already in the store is left untouched, so calling Add twice in quick
// succession cannot create duplicates.
func (s *Store) Add(a news.Article) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.indexOf(a.URL) >= 0 {
		return nil
	}
	s.items = append(s.items, Bookmark{
		Title:       a.Title,
		URL:         a.URL,
		PublishedAt: a.PublishedAt,
		SourceName:  a.SourceName,
	})
	return s.persist()
}

// Remove deletes the bookmark with that URL. No-op if absent.
func (s *Store) Remove(url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(url)
	if i < 0 {
		return nil
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	return s.persist()
}

// Clear empties the store.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
	return s.persist()
}

// List returns the bookmarks in insertion order.
func (s *Store) List() []Bookmark {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Bookmark, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Store) indexOf(url string) int {
	for i, b := range s.items {
		if b.URL == url {
			return i
		}
	}
	return -1
}
