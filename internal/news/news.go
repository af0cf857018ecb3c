// Package news holds the article domain model and the feed query builder.
package news

import (
	"sort"
	"time"
)

// removedSentinel is what NewsAPI substitutes for fields of withdrawn articles.
const removedSentinel = "[Removed]"

// Article is a single feed entry as returned by the remote API. Articles are
// never mutated after normalization; views are built by filtering and sorting
// into new slices.
type Article struct {
	Title       string
	Description string
	URL         string
	ImageURL    string
	PublishedAt time.Time
	SourceName  string
}

// Valid reports whether the article is renderable: title, description and URL
// must all be present and none may be the removed-article sentinel.
func (a Article) Valid() bool {
	if a.Title == "" || a.Description == "" || a.URL == "" {
		return false
	}
	return a.Title != removedSentinel && a.Description != removedSentinel && a.URL != removedSentinel
}

// FilterValid returns the valid articles in input order.
func FilterValid(articles []Article) []Article {
	out := make([]Article, 0, len(articles))
	for _, a := range articles {
		if a.Valid() {
			out = append(out, a)
		}
	}
	return out
}

// Dedup removes articles sharing a URL, keeping the first occurrence in input
// order. Idempotent.
func Dedup(articles []Article) []Article {
	seen := make(map[string]bool, len(articles))
	out := make([]Article, 0, len(articles))
	for _, a := range articles {
		if seen[a.URL] {
			continue
		}
		seen[a.URL] = true
		out = append(out, a)
	}
	return out
}

// SortByPublished orders articles most recent first. This is the canonical
// pipeline order; the presentation layer applies its own sort on top.
func SortByPublished(articles []Article) {
	sort.SliceStable(articles, func(i, j int) bool {
		return articles[i].PublishedAt.After(articles[j].PublishedAt)
	})
}
