package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"

	"github.com/avivsbt/NewsSim/internal/newsapi"
	"github.com/avivsbt/NewsSim/internal/similarity"
)

// view is one of the two pages. Each owns its state and its loader; the App
// only routes keys and messages to the active one.
type view interface {
	page() Page
	core() *viewCore
	recompute()
	cards() []card
	thresholdEnabled() bool
	activate() bool
	clearSelection() bool
	controls(bar progress.Model, width int) string
	summary() string
	previewSections(width int) []string
}

type viewCore struct {
	st     viewState
	load   *loader
	cursor int
}

func (c *viewCore) core() *viewCore {
	return c
}

func (c *viewCore) clampCursor(n int) {
	if c.cursor >= n {
		c.cursor = n - 1
	}
	if c.cursor < 0 {
		c.cursor = 0
	}
}

type similarityView struct {
	viewCore
	table *similarity.Table
	rows  []similarity.Match
	count int
}

func (v *similarityView) page() Page {
	return PageSimilarity
}

func (v *similarityView) recompute() {
	v.table = similarity.NewTable(v.load.articles)
	v.rows = v.table.Similar(v.st.selected, v.st.threshold)
	v.count = v.table.CountSimilar(v.st.selected, v.st.threshold)
	v.clampCursor(len(v.rows))
}

func (v *similarityView) cards() []card {
	out := make([]card, len(v.rows))
	for i, m := range v.rows {
		c := card{article: m.Article}
		switch {
		case m.Selected:
			c.badge = selectedBadge()
		case m.Scored:
			c.badge = matchBadge(m.Score)
		}
		out[i] = c
	}
	return out
}

// The slider only applies once an article is selected.
func (v *similarityView) thresholdEnabled() bool {
	return v.st.selected != ""
}

// activate toggles selection on the highlighted row and jumps back to the top,
// where the selection is listed.
func (v *similarityView) activate() bool {
	if v.cursor >= len(v.rows) {
		return false
	}
	v.st.toggleSelect(v.rows[v.cursor].Article.ID)
	v.cursor = 0
	v.recompute()
	return true
}

func (v *similarityView) clearSelection() bool {
	if v.st.selected == "" {
		return false
	}
	v.st.selected = ""
	v.cursor = 0
	v.recompute()
	return true
}

func (v *similarityView) controls(bar progress.Model, width int) string {
	if v.st.selected == "" {
		return hintStyle.Render("  Select an article (enter) to compare its similarity with the rest")
	}

	info := "  " + selectedBadge() + " " +
		controlLabelStyle.Render("1 article selected • ") +
		statValueStyle.Render(fmt.Sprintf("%d similar articles found", v.count)) +
		hintStyle.Render("  (esc clear selection)")

	lines := []string{
		info,
		renderSlider(bar, v.st.threshold, width),
		renderRangeLabels([3]string{"0% All", "50% Medium", "100% Exact"}, width),
		hintStyle.Render("  Showing articles with ≥" + toPercentage(v.st.threshold, 0) + " similarity"),
	}
	if v.count == 0 {
		lines = append(lines, errorStyle.Render("  No similar articles found at this threshold")+
			hintStyle.Render(" · Try lowering the similarity threshold to find more matches"))
	}
	return strings.Join(lines, "\n")
}

func (v *similarityView) summary() string {
	if v.st.selected == "" {
		return ""
	}
	return fmt.Sprintf("1 article selected • %d similar articles found", v.count)
}

func (v *similarityView) previewSections(width int) []string {
	if v.st.selected == "" || v.cursor >= len(v.rows) {
		return nil
	}
	row := v.rows[v.cursor]
	if !row.Scored {
		return nil
	}
	selected, ok := v.table.Article(v.st.selected)
	if !ok {
		return nil
	}
	return []string{
		previewSectionStyle.Render("Similarity Analysis"),
		previewBodyStyle.Width(width).Render(wrapText(
			fmt.Sprintf("%s match with “%s”", toPercentage(row.Score, 1), selected.Title), width)),
	}
}

type dedupView struct {
	viewCore
	table  *similarity.Table
	result similarity.DedupResult
}

func (v *dedupView) page() Page {
	return PageDedup
}

func (v *dedupView) recompute() {
	v.table = similarity.NewTable(v.load.articles)
	v.result = v.table.Deduplicate(v.st.threshold)
	v.clampCursor(len(v.result.Clusters))
}

func (v *dedupView) cards() []card {
	out := make([]card, len(v.result.Clusters))
	for i, c := range v.result.Clusters {
		out[i] = card{article: c.Representative}
		if c.HasDuplicates() {
			out[i].badge = duplicatesBadge(len(c.Duplicates), c.MaxSimilarity)
		}
	}
	return out
}

func (v *dedupView) thresholdEnabled() bool {
	return true
}

func (v *dedupView) activate() bool {
	return false
}

func (v *dedupView) clearSelection() bool {
	return false
}

func (v *dedupView) controls(bar progress.Model, width int) string {
	stats := "  " +
		controlLabelStyle.Render("Total Articles: ") + statValueStyle.Render(fmt.Sprint(v.result.Total)) + "   " +
		controlLabelStyle.Render("Unique Articles: ") + statValueStyle.Render(fmt.Sprint(v.result.Unique)) + "   " +
		controlLabelStyle.Render("Duplicates Removed: ") + statValueStyle.Render(fmt.Sprint(v.result.Removed))

	return strings.Join([]string{
		stats,
		renderSlider(bar, v.st.threshold, width),
		renderRangeLabels([3]string{"0% Very Loose", "50% Moderate", "100% Exact"}, width),
		hintStyle.Render("  Articles with similarity ≥ " + toPercentage(v.st.threshold, 0) + " are considered duplicates"),
	}, "\n")
}

func (v *dedupView) summary() string {
	return fmt.Sprintf("Total %d · Unique %d · Removed %d", v.result.Total, v.result.Unique, v.result.Removed)
}

func (v *dedupView) previewSections(width int) []string {
	if v.cursor >= len(v.result.Clusters) {
		return nil
	}
	c := v.result.Clusters[v.cursor]
	if !c.HasDuplicates() {
		return nil
	}

	out := []string{previewSectionStyle.Render(fmt.Sprintf("Removed duplicates (%d)", len(c.Duplicates)))}
	for _, d := range c.DuplicateScores(v.table) {
		line := fmt.Sprintf("%6s  %s · %s", toPercentage(d.Score, 1), d.Article.Title, d.Article.PublisherName)
		out = append(out, previewBodyStyle.Render(truncateStr(line, width)))
	}
	return out
}

// highlighted returns the article under the cursor in v.
func highlighted(v view) (newsapi.Article, bool) {
	cards := v.cards()
	c := v.core()
	if c.cursor < 0 || c.cursor >= len(cards) {
		return newsapi.Article{}, false
	}
	return cards[c.cursor].article, true
}
