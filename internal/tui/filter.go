package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/avivsbt/NewsSim/internal/newsapi"
)

// renderTabs joins labels with · separators, highlighting the active one.
func renderTabs(labels []string, active int) string {
	sep := tabSeparatorStyle.Render(" · ")
	parts := make([]string, len(labels))
	for i, l := range labels {
		if i == active {
			parts[i] = tabActiveStyle.Render(l)
		} else {
			parts[i] = tabInactiveStyle.Render(l)
		}
	}
	return strings.Join(parts, sep)
}

func renderPageTabs(active Page) string {
	labels := []string{"1 " + PageSimilarity.Title(), "2 " + PageDedup.Title()}
	return renderTabs(labels, int(active))
}

func renderLanguageTabs(active newsapi.Language) string {
	langs := newsapi.Languages()
	labels := make([]string, len(langs))
	idx := 0
	for i, l := range langs {
		labels[i] = l.Label()
		if l == active {
			idx = i
		}
	}
	return renderTabs(labels, idx)
}

func newSlider() progress.Model {
	return progress.New(
		progress.WithGradient(colorPrimary.Dark, colorAccent.Dark),
		progress.WithoutPercentage(),
	)
}

// renderSlider draws the threshold as a filled bar preceded by its value.
func renderSlider(bar progress.Model, threshold float64, width int) string {
	label := "  " + controlLabelStyle.Render("Similarity Threshold: ") +
		controlValueStyle.Render(fmt.Sprintf("%4s", toPercentage(threshold, 0)))
	hint := hintStyle.Render("  ←/→")

	bar.Width = width - lipgloss.Width(label) - lipgloss.Width(hint) - 2
	if bar.Width < 10 {
		bar.Width = 10
	}
	return label + "  " + bar.ViewAs(threshold) + hint
}

// renderRangeLabels spreads three labels under the slider: left, centre, right.
func renderRangeLabels(labels [3]string, width int) string {
	inner := width - 4
	if inner < 20 {
		inner = 20
	}
	left := hintStyle.Render(labels[0])
	mid := hintStyle.Render(labels[1])
	right := hintStyle.Render(labels[2])

	gap := inner - lipgloss.Width(left) - lipgloss.Width(mid) - lipgloss.Width(right)
	if gap < 2 {
		return "  " + left + " " + mid + " " + right
	}
	lgap := gap / 2
	return "  " + left + strings.Repeat(" ", lgap) + mid + strings.Repeat(" ", gap-lgap) + right
}
