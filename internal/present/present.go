// Package present reorders a normalized feed for display. It is pure and
// cheap enough to recompute on every render.
package present

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/Navodith09/NewsSpeak/internal/news"
)

// Field is the article attribute a view sorts on.
type Field string

const (
	ByPublished Field = "publishedAt"
	ByTitle     Field = "title"
	BySource    Field = "source"
)

// Fields in the order the UI cycles through them.
var Fields = []Field{ByPublished, ByTitle, BySource}

// Order is the sort direction.
type Order string

const (
	Desc Order = "desc"
	Asc  Order = "asc"
)

// Toggle flips the direction.
func (o Order) Toggle() Order {
	if o == Asc {
		return Desc
	}
	return Asc
}

// collator gives locale-aware string comparison for titles and source names.
var collator = collate.New(language.English, collate.Loose)

// Present returns a new slice holding the valid articles of input, ordered by
// field and order. Validity is re-checked here so a stale upstream slice can
// never leak removed entries into the view. The sort is stable: equal keys
// keep their relative input order.
func Present(articles []news.Article, field Field, order Order) []news.Article {
	out := news.FilterValid(articles)

	sort.SliceStable(out, func(i, j int) bool {
		c := compare(out[i], out[j], field)
		if order == Desc {
			c = -c
		}
		return c < 0
	})
	return out
}

// compare is the ascending comparator for one field. Missing timestamps
// collapse to the zero time; missing strings compare as empty.
func compare(a, b news.Article, field Field) int {
	switch field {
	case ByTitle:
		return collator.CompareString(a.Title, b.Title)
	case BySource:
		return collator.CompareString(a.SourceName, b.SourceName)
	default:
		switch {
		case a.PublishedAt.Before(b.PublishedAt):
			return -1
		case b.PublishedAt.Before(a.PublishedAt):
			return 1
		default:
			return 0
		}
	}
}
