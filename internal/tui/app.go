package tui

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/avivsbt/NewsSim/internal/browser"
	"github.com/avivsbt/NewsSim/internal/newsapi"
)

type App struct {
	fetcher newsapi.Fetcher
	logger  *slog.Logger

	// Start thresholds per page; language changes reset to these
	similarityThreshold float64
	dedupThreshold      float64

	page Page
	view view

	width  int
	height int

	spinner spinner.Model
	slider  progress.Model

	help bool
	err  error
}

// RunOpts holds all parameters for launching the TUI.
type RunOpts struct {
	Fetcher             newsapi.Fetcher
	Logger              *slog.Logger
	Page                Page
	Language            newsapi.Language
	SimilarityThreshold float64
	DedupThreshold      float64
}

func NewApp(opts RunOpts) *App {
	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = spinnerStyle

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	lang := opts.Language
	if !lang.Valid() {
		lang = newsapi.English
	}

	a := &App{
		fetcher:             opts.Fetcher,
		logger:              logger,
		similarityThreshold: opts.SimilarityThreshold,
		dedupThreshold:      opts.DedupThreshold,
		page:                opts.Page,
		spinner:             sp,
		slider:              newSlider(),
	}
	a.view = a.newView(opts.Page, lang)
	return a
}

func (a *App) newView(p Page, lang newsapi.Language) view {
	threshold := a.similarityThreshold
	if p == PageDedup {
		threshold = a.dedupThreshold
	}
	core := viewCore{
		st:   newViewState(lang, threshold),
		load: newLoader(a.fetcher, a.logger.With("view", p.String())),
	}

	var v view
	switch p {
	case PageDedup:
		v = &dedupView{viewCore: core}
	default:
		v = &similarityView{viewCore: core}
	}
	v.recompute()
	return v
}

func (a *App) Init() tea.Cmd {
	return a.fetch()
}

// fetch (re)issues the active view's request for its current language.
func (a *App) fetch() tea.Cmd {
	c := a.view.core()
	return tea.Batch(c.load.fetch(c.st.language), a.spinner.Tick)
}

func openBrowserCmd(url string) tea.Cmd {
	return func() tea.Msg {
		if err := browser.Open(url); err != nil {
			return openErrMsg{err: err}
		}
		return nil
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tea.KeyMsg:
		// Clear sticky error on any keypress
		a.err = nil
		return a.handleKey(msg)

	case articlesLoadedMsg:
		if a.view.core().load.apply(msg) {
			a.view.recompute()
		}
		return a, nil

	case openErrMsg:
		a.err = msg.err
		return a, nil

	case spinner.TickMsg:
		if a.view.core().load.loading {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global keys
	if msg.String() == "ctrl+c" {
		return a.quit()
	}

	if a.help {
		switch msg.String() {
		case "?", "esc", "q":
			a.help = false
		}
		return a, nil
	}

	c := a.view.core()
	switch msg.String() {
	case "q":
		return a.quit()
	case "?":
		a.help = true
		return a, nil
	case "tab":
		if a.page == PageSimilarity {
			return a.switchPage(PageDedup)
		}
		return a.switchPage(PageSimilarity)
	case "1":
		return a.switchPage(PageSimilarity)
	case "2":
		return a.switchPage(PageDedup)
	case "L":
		return a.setLanguage(c.st.language.Next())
	case "r":
		return a, a.fetch()
	case "j", "down":
		if c.cursor < len(a.view.cards())-1 {
			c.cursor++
		}
		return a, nil
	case "k", "up":
		if c.cursor > 0 {
			c.cursor--
		}
		return a, nil
	case "left", "[":
		return a.nudge(-thresholdStep)
	case "right", "]":
		return a.nudge(thresholdStep)
	case "{":
		return a.nudge(-thresholdCoarseStep)
	case "}":
		return a.nudge(thresholdCoarseStep)
	case "enter", " ":
		a.view.activate()
		return a, nil
	case "esc", "c":
		a.view.clearSelection()
		return a, nil
	case "o":
		if art, ok := highlighted(a.view); ok {
			return a, openBrowserCmd(art.URL)
		}
		return a, nil
	}

	return a, nil
}

func (a *App) quit() (tea.Model, tea.Cmd) {
	a.view.core().load.stop()
	return a, tea.Quit
}

// switchPage mounts a fresh view for p, abandoning the current view's request.
// The language carries over.
func (a *App) switchPage(p Page) (tea.Model, tea.Cmd) {
	if p == a.page {
		return a, nil
	}
	old := a.view.core()
	old.load.stop()

	a.page = p
	a.view = a.newView(p, old.st.language)
	return a, a.fetch()
}

func (a *App) setLanguage(lang newsapi.Language) (tea.Model, tea.Cmd) {
	c := a.view.core()
	if !c.st.setLanguage(lang) {
		return a, nil
	}
	c.cursor = 0
	a.view.recompute()
	return a, a.fetch()
}

func (a *App) nudge(delta float64) (tea.Model, tea.Cmd) {
	if !a.view.thresholdEnabled() {
		return a, nil
	}
	a.view.core().st.nudgeThreshold(delta)
	a.view.recompute()
	return a, nil
}

func (a *App) withBottomBar(content string, hints string) string {
	bar := renderBottomBar(hints, a.width)
	lines := strings.Split(content, "\n")
	for len(lines) < a.height-1 {
		lines = append(lines, "")
	}
	if len(lines) >= a.height {
		lines = lines[:a.height-1]
	}
	lines = append(lines, bar)
	return strings.Join(lines, "\n")
}

func (a *App) View() string {
	if a.width == 0 {
		return lipgloss.NewStyle().Foreground(colorAccent).Render("  newssim")
	}

	if a.help {
		return a.withBottomBar(a.renderHelp(), "? close  q quit")
	}

	c := a.view.core()

	// Header
	headerLeft := headerStyle.Render("NewsSim") + "  " + renderPageTabs(a.page)
	headerRight := renderLanguageTabs(c.st.language) + " "
	headerGap := a.width - lipgloss.Width(headerLeft) - lipgloss.Width(headerRight)
	if headerGap < 0 {
		headerGap = 0
	}
	header := headerLeft + fmt.Sprintf("%*s", headerGap, "") + headerRight
	subtitle := " " + subtitleStyle.Render(a.subtitle())

	// Controls only make sense once there is something to act on
	controls := ""
	if !c.load.loading && c.load.err == nil && len(c.load.articles) > 0 {
		controls = a.view.controls(a.slider, a.width)
	}

	// Status bar
	status := renderStatusBar(len(c.load.articles), a.view.summary(), a.width, c.load.loading)
	if a.err != nil {
		status = errorStyle.Render(" " + a.err.Error())
	}

	top := []string{header, subtitle}
	if controls != "" {
		top = append(top, controls)
	}
	topBlock := lipgloss.JoinVertical(lipgloss.Left, top...)

	contentHeight := a.height - lipgloss.Height(topBlock) - lipgloss.Height(status) - 2 // borders
	if contentHeight < 3 {
		contentHeight = 3
	}

	content := a.renderContent(contentHeight)
	return lipgloss.JoinVertical(lipgloss.Left, topBlock, content, status)
}

func (a *App) subtitle() string {
	if a.page == PageDedup {
		return "Remove duplicate news articles based on similarity threshold"
	}
	return "Analyze and compare news articles to detect similarity patterns"
}

// renderContent draws the list and preview panes, or the loading, error and
// empty states in their place.
func (a *App) renderContent(height int) string {
	c := a.view.core()
	fullWidth := a.width - 2

	var message string
	switch {
	case c.load.loading:
		message = a.spinner.View() + " " + hintStyle.Render("Loading news articles...")
	case c.load.err != nil:
		message = errorStyle.Render(fetchFailedText) + "\n\n" + hintStyle.Render("press r to retry")
	case len(c.load.articles) == 0:
		message = hintStyle.Render("No articles found.")
	}
	if message != "" {
		return listPaneStyle.Width(fullWidth).Height(height).Render(centered(message, fullWidth, height))
	}

	listWidth := int(float64(a.width) * 0.45)
	previewWidth := a.width - listWidth

	cards := a.view.cards()
	listContent := renderCards(cards, c.cursor, height, listWidth-4)
	listPane := listPaneActiveStyle.Width(listWidth - 2).Height(height).Render(listContent)

	var article *newsapi.Article
	if c.cursor < len(cards) {
		art := cards[c.cursor].article
		article = &art
	}
	innerPreviewW := previewWidth - 4
	previewContent := renderPreview(article, a.view.previewSections(innerPreviewW), innerPreviewW, height)
	previewPane := previewPaneStyle.Width(previewWidth - 2).Height(height).Render(previewContent)

	return lipgloss.JoinHorizontal(lipgloss.Top, listPane, previewPane)
}

func (a *App) renderHelp() string {
	title := lipgloss.NewStyle().Foreground(colorAccent).Bold(true).Render("NewsSim")
	dim := helpDimStyle

	help := title + dim.Render(" — Keyboard Shortcuts") + "\n\n" +
		dim.Render("Navigation") + "\n" +
		"  j/k, ↑/↓      Move through the article list\n" +
		"  tab, 1, 2     Switch between Similarity Viewer and Deduplicator\n" +
		"  L             Toggle language (English / עברית)\n\n" +
		dim.Render("Similarity") + "\n" +
		"  enter, space  Select or deselect the highlighted article\n" +
		"  esc, c        Clear selection\n\n" +
		dim.Render("Threshold") + "\n" +
		"  ←/→, [/]      Adjust by 1%\n" +
		"  {/}           Adjust by 10%\n\n" +
		dim.Render("General") + "\n" +
		"  o             Open article in browser\n" +
		"  r             Fetch again\n" +
		"  ?             Toggle this help\n" +
		"  q, ctrl+c     Quit"

	card := helpCardStyle.Render(help)

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card)
}

// Run starts the TUI application.
func Run(opts RunOpts) error {
	app := NewApp(opts)
	p := tea.NewProgram(app, tea.WithAltScreen())
	_, err := p.Run()
	app.view.core().load.stop()
	return err
}
