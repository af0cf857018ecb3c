package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

type statusInfo struct {
	articleCount int
	feedLabel    string
	sortLabel    string
	width        int
	searching    bool
	loading      bool
	listening    bool
	speaking     bool
}

func renderStatusBar(s statusInfo) string {
	left := fmt.Sprintf(" %d articles · %s · %s", s.articleCount, s.feedLabel, s.sortLabel)
	if s.loading {
		left += " (loading...)"
	}
	if s.listening {
		left += " · " + errorStyle.Render("● listening")
	}
	if s.speaking {
		left += " · " + noticeStyle.Render("♪ speaking")
	}

	right := " / search  c category  ? help  q quit "
	if s.searching {
		right = " esc cancel  enter search "
	}

	gap := s.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + fmt.Sprintf("%*s", gap, "") + right

	return statusBarStyle.Width(s.width).Render(bar)
}
