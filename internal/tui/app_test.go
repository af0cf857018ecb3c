package tui

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Navodith09/NewsSpeak/internal/bookmarks"
	"github.com/Navodith09/NewsSpeak/internal/config"
	"github.com/Navodith09/NewsSpeak/internal/news"
	"github.com/Navodith09/NewsSpeak/internal/newsapi"
	"github.com/Navodith09/NewsSpeak/internal/present"
	"github.com/Navodith09/NewsSpeak/internal/share"
	"github.com/Navodith09/NewsSpeak/internal/speech"
)

type nopSlot struct{}

func (nopSlot) Load() ([]byte, error)        { return nil, nil }
func (nopSlot) Store([]byte) error           { return nil }
func (nopSlot) Watch(func()) (func(), error) { return func() {}, nil }

func newTestApp(t *testing.T) *App {
	t.Helper()

	marks, err := bookmarks.Open(nopSlot{})
	if err != nil {
		t.Fatalf("bookmarks.Open: %v", err)
	}
	t.Cleanup(marks.Close)

	return NewApp(RunOpts{
		Cfg:         &config.Config{Country: "us"},
		Client:      newsapi.New("test-key", "us"),
		Bookmarks:   marks,
		Narrator:    speech.NewNarrator(nil, nil),
		Recognition: speech.NewCommandRecognizer(""),
		Sharer:      share.New(""),
	})
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func sampleArticles() []news.Article {
	return []news.Article{
		{Title: "Banana", Description: "yellow fruit markets", URL: "https://a.example/1", PublishedAt: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), SourceName: "Alpha"},
		{Title: "Apple", Description: "orchard futures climb", URL: "https://a.example/2", PublishedAt: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), SourceName: "Beta"},
	}
}

func TestStaleFetchResultDropped(t *testing.T) {
	app := newTestApp(t)

	app.startFetch() // gen 1
	app.startFetch() // gen 2 supersedes it

	stale := []news.Article{{Title: "Old", Description: "yesterday's feed", URL: "https://a.example/old", SourceName: "Old"}}
	app.Update(feedLoadedMsg{gen: 1, articles: stale})

	if len(app.view) != 0 {
		t.Fatalf("stale result was applied: %d articles", len(app.view))
	}
	if !app.loading {
		t.Error("loading cleared by stale result")
	}

	app.Update(feedLoadedMsg{gen: 2, articles: sampleArticles()})

	if len(app.view) != 2 {
		t.Fatalf("current result not applied: %d articles", len(app.view))
	}
	if app.loading {
		t.Error("loading still set after current result")
	}
}

func TestViewDropsInvalidArticles(t *testing.T) {
	app := newTestApp(t)
	app.startFetch()

	mixed := append(sampleArticles(), news.Article{Title: "No details", URL: "https://a.example/3", SourceName: "Gamma"})
	app.Update(feedLoadedMsg{gen: app.gen, articles: mixed})

	if len(app.view) != 2 {
		t.Fatalf("view has %d articles, want 2: description-less entry must be filtered", len(app.view))
	}
	for _, a := range app.view {
		if a.Title == "No details" {
			t.Error("invalid article reached the view")
		}
	}
}

func TestStaleFetchErrorDropped(t *testing.T) {
	app := newTestApp(t)

	app.startFetch() // gen 1
	app.startFetch() // gen 2

	app.Update(feedErrMsg{gen: 1, err: errors.New("slow request lost the race")})
	if app.err != nil {
		t.Fatalf("stale error was applied: %v", app.err)
	}

	app.Update(feedErrMsg{gen: 2, err: errors.New("current request failed")})
	if app.err == nil {
		t.Fatal("current error was dropped")
	}
}

func TestSortKeysReorderView(t *testing.T) {
	app := newTestApp(t)
	app.startFetch()
	app.Update(feedLoadedMsg{gen: app.gen, articles: sampleArticles()})

	// Default order is published desc: Apple (Mar 2) before Banana (Mar 1)
	if app.view[0].Title != "Apple" {
		t.Fatalf("default view[0] = %q, want Apple", app.view[0].Title)
	}

	// Cycle field to title; still desc
	app.Update(keyMsg("s"))
	if app.sortField != present.ByTitle {
		t.Fatalf("sortField = %q after cycle, want %q", app.sortField, present.ByTitle)
	}
	if app.view[0].Title != "Banana" {
		t.Errorf("title desc view[0] = %q, want Banana", app.view[0].Title)
	}

	// Flip to ascending
	app.Update(keyMsg("d"))
	if app.view[0].Title != "Apple" {
		t.Errorf("title asc view[0] = %q, want Apple", app.view[0].Title)
	}
}

func TestSearchEnterBuildsQueryAndRefetches(t *testing.T) {
	app := newTestApp(t)
	app.startFetch()
	gen := app.gen

	app.Update(keyMsg("/"))
	if app.mode != modeSearch {
		t.Fatalf("mode = %d after /, want search", app.mode)
	}

	app.searchInput.SetValue("climate summit")
	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if app.mode != modeNormal {
		t.Errorf("mode = %d after enter, want normal", app.mode)
	}
	if app.query.Mode != news.ModeSearch || app.query.Term != "climate summit" {
		t.Errorf("query = %+v, want search for climate summit", app.query)
	}
	if app.gen != gen+1 {
		t.Errorf("gen = %d, want %d: enter must start a new fetch", app.gen, gen+1)
	}
	if cmd == nil {
		t.Error("no fetch command returned")
	}
}

func TestCategoryPickBuildsQuery(t *testing.T) {
	app := newTestApp(t)

	app.Update(keyMsg("c"))
	if app.mode != modeCategory {
		t.Fatalf("mode = %d after c, want category", app.mode)
	}

	// Tab 1 (after "All") is business
	app.Update(keyMsg("2"))

	if app.mode != modeNormal {
		t.Errorf("mode = %d after pick, want normal", app.mode)
	}
	if app.query.Mode != news.ModeCategory || app.query.Category != "business" {
		t.Errorf("query = %+v, want business category", app.query)
	}
}

func TestBookmarkToggleOnSelected(t *testing.T) {
	app := newTestApp(t)
	app.startFetch()
	app.Update(feedLoadedMsg{gen: app.gen, articles: sampleArticles()})

	url := app.view[0].URL

	app.Update(keyMsg("b"))
	if !app.marks.IsBookmarked(url) {
		t.Fatal("selected article not bookmarked after b")
	}

	app.Update(keyMsg("b"))
	if app.marks.IsBookmarked(url) {
		t.Fatal("bookmark not removed by second b")
	}
}

func TestVoiceSearchUnavailableShowsNotice(t *testing.T) {
	app := newTestApp(t)

	_, cmd := app.Update(keyMsg("v"))

	if app.notice == "" {
		t.Error("no notice for unavailable voice search")
	}
	if cmd == nil {
		t.Error("notice expiry command missing")
	}
}

func TestVoiceResultTriggersSearch(t *testing.T) {
	app := newTestApp(t)
	app.startFetch()
	gen := app.gen

	app.voiceTerms <- "election results"
	app.Update(voiceTickMsg{})

	if app.query.Mode != news.ModeSearch || app.query.Term != "election results" {
		t.Errorf("query = %+v, want voice search term", app.query)
	}
	if app.gen != gen+1 {
		t.Errorf("gen = %d, want %d: voice result must start a fetch", app.gen, gen+1)
	}
}

func TestNoticeExpiryIgnoresSupersededSeq(t *testing.T) {
	app := newTestApp(t)

	app.setNotice("first")
	app.setNotice("second")

	app.Update(noticeExpiredMsg{seq: 1})
	if app.notice != "second" {
		t.Errorf("notice = %q, old expiry cleared the new notice", app.notice)
	}

	app.Update(noticeExpiredMsg{seq: 2})
	if app.notice != "" {
		t.Errorf("notice = %q, want cleared", app.notice)
	}
}
