package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Navodith09/NewsSpeak/internal/news"
)

// categoryBar is a single-selection tab row over the NewsAPI categories.
// An empty selection means the default top headlines feed.
type categoryBar struct {
	categories []string
	selected   string
	pickMode   bool
	pickCursor int
}

func newCategoryBar() categoryBar {
	return categoryBar{categories: news.Categories}
}

func (c *categoryBar) current() string {
	return c.selected
}

func (c *categoryBar) pickAtCursor() {
	// Cursor 0 is the "All" tab
	if c.pickCursor == 0 {
		c.selected = ""
		return
	}
	if c.pickCursor-1 < len(c.categories) {
		c.selected = c.categories[c.pickCursor-1]
	}
}

func (c *categoryBar) pick(category string) {
	if category == "" || news.ValidCategory(category) {
		c.selected = category
	}
}

func (c *categoryBar) label() string {
	if c.selected == "" {
		return "Top headlines"
	}
	return c.selected
}

func (c *categoryBar) tabCount() int {
	return len(c.categories) + 1
}

func (c *categoryBar) render(width int) string {
	sep := tabSeparatorStyle.Render(" · ")
	var parts []string

	labels := append([]string{"All"}, c.categories...)
	for i, label := range labels {
		style := tabInactiveStyle
		if (i == 0 && c.selected == "") || (i > 0 && label == c.selected) {
			style = tabActiveStyle
		}
		if c.pickMode && i == c.pickCursor {
			label = "[" + label + "]"
		}
		parts = append(parts, style.Render(label))
	}

	// Build row with · separators, stopping when we'd exceed width
	var row string
	for i, part := range parts {
		candidate := row
		if i > 0 {
			candidate += sep
		}
		candidate += part
		if lipgloss.Width(candidate) > width && row != "" {
			break
		}
		row = candidate
	}

	barStyle := lipgloss.NewStyle().
		Background(colorSurface).
		Width(width).
		PaddingLeft(1)
	return barStyle.Render(row)
}
