package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

func renderStatusBar(articleCount int, summary string, width int, loading bool) string {
	left := fmt.Sprintf(" %d articles", articleCount)
	if summary != "" {
		left += " · " + summary
	}
	if loading {
		left += " (loading...)"
	}

	right := " tab view  L language  r refresh  ? help  q quit "

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + fmt.Sprintf("%*s", gap, "") + right

	return statusBarStyle.Width(width).Render(bar)
}

func renderBottomBar(hints string, width int) string {
	right := " " + hints + " "

	gap := width - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	return statusBarStyle.Width(width).Render(fmt.Sprintf("%*s", gap, "") + right)
}
