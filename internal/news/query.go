package news

import "time"

// Mode selects which remote endpoint a query targets.
type Mode int

const (
	// ModeDefault requests broad current headlines.
	ModeDefault Mode = iota
	// ModeCategory requests top headlines for one category.
	ModeCategory
	// ModeSearch requests a keyword search over recent coverage.
	ModeSearch
)

// Categories NewsAPI accepts for top headlines.
var Categories = []string{
	"business",
	"entertainment",
	"general",
	"health",
	"science",
	"sports",
	"technology",
}

// ValidCategory reports whether c is a known category.
func ValidCategory(c string) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// defaultPageSize is the fixed result-page size for headline queries.
const defaultPageSize = 50

// Query is the derived request intent sent to the remote source. It is
// rebuilt whenever navigation state changes and never stored.
type Query struct {
	Mode     Mode
	Term     string    // search term, ModeSearch only
	Category string    // ModeCategory only
	From     time.Time // lookback floor, ModeSearch only
	SortBy   string    // remote ordering hint
	PageSize int
}

// BuildQuery derives exactly one query variant from navigation state. A
// non-empty search term wins over category; category wins over default.
// Search mode fixes a 24 hour lookback window from now and asks the remote
// side for popularity ordering; the other modes ask for recency.
func BuildQuery(term, category string) Query {
	return buildQueryAt(term, category, time.Now())
}

func buildQueryAt(term, category string, now time.Time) Query {
	if term != "" {
		return Query{
			Mode:     ModeSearch,
			Term:     term,
			From:     now.AddDate(0, 0, -1),
			SortBy:   "popularity",
			PageSize: defaultPageSize,
		}
	}
	if category != "" {
		return Query{
			Mode:     ModeCategory,
			Category: category,
			SortBy:   "publishedAt",
			PageSize: defaultPageSize,
		}
	}
	return Query{
		Mode:     ModeDefault,
		SortBy:   "publishedAt",
		PageSize: defaultPageSize,
	}
}
