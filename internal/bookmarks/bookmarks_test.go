package bookmarks

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/Navodith09/NewsSpeak/internal/news"
)

// memorySlot is an in-memory Slot for tests. fire simulates an external
// writer touching the persisted representation.
type memorySlot struct {
	data     []byte
	onChange func()
}

func (m *memorySlot) Load() ([]byte, error) { return m.data, nil }

func (m *memorySlot) Store(b []byte) error { m.data = b; return nil }

func (m *memorySlot) Watch(onChange func()) (func(), error) {
	m.onChange = onChange
	return func() { m.onChange = nil }, nil
}

func (m *memorySlot) fire(data []byte) {
	m.data = data
	if m.onChange != nil {
		m.onChange()
	}
}

func testStore(t *testing.T) (*Store, *memorySlot) {
	t.Helper()
	slot := &memorySlot{}
	s, err := Open(slot)
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	t.Cleanup(s.Close)
	return s, slot
}

func sampleArticle(url string) news.Article {
	return news.Article{
		Title:       "Title for " + url,
		Description: "description",
		URL:         url,
		ImageURL:    "https://img.example/x.png",
		PublishedAt: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
		SourceName:  "Example Wire",
	}
}

func TestAddRoundTrip(t *testing.T) {
	s, _ := testStore(t)

	a := sampleArticle("u1")
	if err := s.Add(a); err != nil {
		t.Fatalf("add: %v", err)
	}
	if !s.IsBookmarked("u1") {
		t.Error("expected u1 bookmarked after Add")
	}

	if err := s.Remove("u1"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if s.IsBookmarked("u1") {
		t.Error("expected u1 gone after Remove")
	}
}

func TestAddIsIdempotent(t *testing.T) {
	s, _ := testStore(t)

	a := sampleArticle("u1")
	s.Add(a)
	s.Add(a)

	if got := len(s.List()); got != 1 {
		t.Errorf("expected 1 bookmark after double add, got %d", got)
	}
}

func TestProjectionDropsImageAndDescription(t *testing.T) {
	s, slot := testStore(t)
	s.Add(sampleArticle("u1"))

	var raw []map[string]any
	if err := json.Unmarshal(slot.data, &raw); err != nil {
		t.Fatalf("persisted slot is not a JSON array: %v", err)
	}
	if _, ok := raw[0]["description"]; ok {
		t.Error("description must not be persisted")
	}
	if _, ok := raw[0]["imageUrl"]; ok {
		t.Error("image URL must not be persisted")
	}
	if raw[0]["title"] == "" || raw[0]["url"] == "" {
		t.Error("title and url must be persisted")
	}
}

func TestListInsertionOrder(t *testing.T) {
	s, _ := testStore(t)
	for _, u := range []string{"u3", "u1", "u2"} {
		s.Add(sampleArticle(u))
	}

	got := s.List()
	for i, want := range []string{"u3", "u1", "u2"} {
		if got[i].URL != want {
			t.Errorf("index %d: got %q, want %q", i, got[i].URL, want)
		}
	}
}

func TestUniquenessUnderAddRemoveSequences(t *testing.T) {
	s, _ := testStore(t)

	ops := []struct {
		op  string
		url string
	}{
		{"add", "u1"}, {"add", "u2"}, {"add", "u1"},
		{"remove", "u2"}, {"add", "u3"}, {"add", "u2"},
		{"remove", "missing"}, {"add", "u3"},
	}
	for _, o := range ops {
		if o.op == "add" {
			s.Add(sampleArticle(o.url))
		} else {
			s.Remove(o.url)
		}
	}

	got := s.List()
	seen := map[string]bool{}
	for _, b := range got {
		if seen[b.URL] {
			t.Errorf("duplicate URL in store: %q", b.URL)
		}
		seen[b.URL] = true
	}
	for _, want := range []string{"u1", "u2", "u3"} {
		if !seen[want] {
			t.Errorf("expected %q present", want)
		}
	}
	if len(got) != 3 {
		t.Errorf("expected exactly 3 bookmarks, got %d", len(got))
	}
}

func TestClear(t *testing.T) {
	s, slot := testStore(t)
	s.Add(sampleArticle("u1"))
	s.Add(sampleArticle("u2"))

	if err := s.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if len(s.List()) != 0 {
		t.Error("expected empty store after Clear")
	}
	var raw []Bookmark
	if err := json.Unmarshal(slot.data, &raw); err != nil || len(raw) != 0 {
		t.Errorf("persisted slot should be an empty array, got %s", slot.data)
	}
}

func TestExternalChangeRefreshesView(t *testing.T) {
	s, slot := testStore(t)
	s.Add(sampleArticle("u1"))

	external, _ := json.Marshal([]Bookmark{
		{Title: "From another tab", URL: "u9"},
	})
	slot.fire(external)

	if s.IsBookmarked("u1") {
		t.Error("view should reflect the external overwrite (last write wins)")
	}
	if !s.IsBookmarked("u9") {
		t.Error("expected externally added bookmark visible")
	}
}

func TestAbsentSlotMeansEmpty(t *testing.T) {
	s, _ := testStore(t)
	if got := len(s.List()); got != 0 {
		t.Errorf("expected empty list for a never-written slot, got %d", got)
	}
	if s.IsBookmarked("anything") {
		t.Error("nothing should be bookmarked in an empty store")
	}
}
