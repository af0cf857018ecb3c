package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/Navodith09/NewsSpeak/internal/news"
)

func relativeTime(t time.Time) string {
	if t.IsZero() {
		return "undated"
	}
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh", int(d.Hours()))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%dd", int(d.Hours()/24))
	default:
		return t.Format("Jan 2")
	}
}

func renderListItem(a news.Article, selected, marked bool, width int) string {
	if width < 10 {
		width = 30
	}

	mark := "  "
	if marked {
		mark = itemMarkStyle.Render("★ ")
	}

	var title string
	if selected {
		title = itemSelectedStyle.Render("> " + truncateStr(a.Title, width-6))
	} else {
		title = itemTitleStyle.Render("  " + truncateStr(a.Title, width-6))
	}

	source := a.SourceName
	if source == "" {
		source = "unknown"
	}
	meta := "  " + mark + itemSourceStyle.Render(source) + " " + itemTimeStyle.Render("· "+relativeTime(a.PublishedAt))

	return title + "\n" + meta
}

func truncateStr(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}

func renderList(articles []news.Article, marked func(url string) bool, cursor, height, width int, emptyText string) string {
	if len(articles) == 0 {
		return centerText(emptyText, width, height)
	}

	// Each item is 2 lines + 1 blank line = 3 lines
	itemHeight := 3
	visible := height / itemHeight
	if visible < 1 {
		visible = 1
	}

	start := 0
	if cursor >= visible {
		start = cursor - visible + 1
	}
	end := start + visible
	if end > len(articles) {
		end = len(articles)
		start = end - visible
		if start < 0 {
			start = 0
		}
	}

	var b strings.Builder
	for i := start; i < end; i++ {
		b.WriteString(renderListItem(articles[i], i == cursor, marked(articles[i].URL), width))
		if i < end-1 {
			b.WriteString("\n")
		}
	}

	return b.String()
}

func centerText(s string, width, height int) string {
	pad := (width - len(s)) / 2
	if pad < 0 {
		pad = 0
	}
	return strings.Repeat("\n", height/3) + strings.Repeat(" ", pad) + s
}
