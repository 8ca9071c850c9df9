package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/avivsbt/NewsSim/internal/newsapi"
)

// renderPreview shows the highlighted article's details followed by any
// view-specific sections.
func renderPreview(article *newsapi.Article, sections []string, width, height int) string {
	if article == nil {
		return centered(hintStyle.Render("Select an article"), width, height)
	}

	contentWidth := width - 2
	if contentWidth < 10 {
		contentWidth = 10
	}

	title := previewTitleStyle.Width(contentWidth).Render(article.Title)
	source := previewSourceStyle.Render(
		fmt.Sprintf("%s · %s", article.PublisherName, formatDate(*article)),
	)

	image := "(no image)"
	if strings.TrimSpace(article.ThumbnailURL) != "" {
		image = article.ThumbnailURL
	}
	body := previewBodyStyle.Width(contentWidth).Render(wrapText("Image: "+image, contentWidth))

	link := "Read Article → " + article.URL
	if !article.HasLink() {
		link = "(no link available)"
	}
	linkLine := previewLinkStyle.Width(contentWidth).Render(link)

	parts := []string{title, source, body, linkLine}
	for _, s := range sections {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return clipLines(lipgloss.JoinVertical(lipgloss.Left, parts...), height)
}

// clipLines pads or cuts s to exactly height lines.
func clipLines(s string, height int) string {
	lines := strings.Split(s, "\n")
	if len(lines) < height {
		lines = append(lines, make([]string, height-len(lines))...)
	} else if len(lines) > height {
		lines = lines[:height]
	}
	return strings.Join(lines, "\n")
}

func wrapText(s string, width int) string {
	if width <= 0 {
		return s
	}
	words := strings.Fields(s)
	if len(words) == 0 {
		return ""
	}

	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		if lipgloss.Width(line)+1+lipgloss.Width(w) > width {
			lines = append(lines, line)
			line = w
		} else {
			line += " " + w
		}
	}
	lines = append(lines, line)
	return strings.Join(lines, "\n")
}
