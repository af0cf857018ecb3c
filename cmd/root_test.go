package cmd

import (
	"strings"
	"testing"
	"time"

	"github.com/Navodith09/NewsSpeak/internal/news"
)

func TestFormatArticle(t *testing.T) {
	a := news.Article{
		Title:       "Markets rally on rate cut",
		URL:         "https://example.com/markets",
		PublishedAt: time.Date(2026, 3, 5, 9, 30, 0, 0, time.UTC),
		SourceName:  "Reuters",
	}

	got := formatArticle(a)

	for _, part := range []string{"Markets rally on rate cut", "Reuters", "Mar 5 09:30", "https://example.com/markets"} {
		if !strings.Contains(got, part) {
			t.Errorf("formatArticle missing %q in %q", part, got)
		}
	}
}

func TestFormatArticleFallbacks(t *testing.T) {
	a := news.Article{Title: "Untitled wire story", URL: "https://example.com/x"}

	got := formatArticle(a)

	if !strings.Contains(got, "unknown") {
		t.Errorf("missing source fallback in %q", got)
	}
	if !strings.Contains(got, "undated") {
		t.Errorf("missing date fallback in %q", got)
	}
}
