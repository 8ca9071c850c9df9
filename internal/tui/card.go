package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/avivsbt/NewsSim/internal/newsapi"
)

// card is one list entry: an article plus the badge its view attaches.
type card struct {
	article newsapi.Article
	badge   string
}

func selectedBadge() string {
	return selectedBadgeStyle.Render("✓ Selected")
}

func matchBadge(score float64) string {
	return matchBadgeStyle.Render(toPercentage(score, 1) + " Match")
}

func duplicatesBadge(count int, maxSimilarity float64) string {
	plural := ""
	if count > 1 {
		plural = "s"
	}
	return duplicatesBadgeStyle.Render(
		fmt.Sprintf("🔗 %d duplicate%s removed · Max %s", count, plural, toPercentage(maxSimilarity, 1)),
	)
}

// formatDate renders an ISO-8601 publish date, or the raw value when it does not parse.
func formatDate(a newsapi.Article) string {
	t, ok := a.Published()
	if !ok {
		return a.PublishDate
	}
	return t.Format("Jan 2, 2006")
}

func renderCard(c card, highlighted bool, width int) string {
	if width < 10 {
		width = 30
	}

	var title string
	if highlighted {
		title = itemCursorStyle.Render("> " + truncateStr(c.article.Title, width-4))
	} else {
		title = itemTitleStyle.Render("  " + truncateStr(c.article.Title, width-4))
	}

	meta := "  " + itemSourceStyle.Render(c.article.PublisherName) + " " + itemTimeStyle.Render("· "+formatDate(c.article))
	if c.badge != "" {
		withBadge := meta + "  " + c.badge
		if lipgloss.Width(withBadge) <= width {
			meta = withBadge
		} else {
			meta = meta + "\n  " + c.badge
		}
	}

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

func renderCards(cards []card, cursor int, height int, width int) string {
	// Each card is 2 lines + 1 blank line = 3 lines
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
	if end > len(cards) {
		end = len(cards)
		start = end - visible
		if start < 0 {
			start = 0
		}
	}

	var b strings.Builder
	for i := start; i < end; i++ {
		b.WriteString(renderCard(cards[i], i == cursor, width))
		if i < end-1 {
			b.WriteString("\n\n")
		}
	}
	return b.String()
}

func centered(s string, width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, s)
}
