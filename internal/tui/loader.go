package tui

import (
	"context"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/avivsbt/NewsSim/internal/newsapi"
)

// fetchFailedText is the only failure text a view shows; details go to the log.
const fetchFailedText = "Failed to fetch news items. Please try again later."

// loader owns a view's article list and its single in-flight fetch.
type loader struct {
	fetcher newsapi.Fetcher
	logger  *slog.Logger

	articles []newsapi.Article
	loading  bool
	err      error

	seq      int
	requests int
	cancel   context.CancelFunc
}

func newLoader(fetcher newsapi.Fetcher, logger *slog.Logger) *loader {
	return &loader{fetcher: fetcher, logger: logger}
}

// fetch cancels any in-flight request and returns a command issuing a new one.
func (l *loader) fetch(lang newsapi.Language) tea.Cmd {
	l.stop()

	l.seq++
	l.requests++
	l.loading = true
	l.err = nil

	ctx, cancel := context.WithCancel(context.Background())
	l.cancel = cancel

	owner, seq, f := l, l.seq, l.fetcher
	return func() tea.Msg {
		articles, err := f.FetchArticles(ctx, lang)
		return articlesLoadedMsg{owner: owner, seq: seq, lang: lang, articles: articles, err: err}
	}
}

// stop abandons the in-flight request, if any.
func (l *loader) stop() {
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
}

// apply folds a fetch result into the loader. It reports false and changes
// nothing when msg belongs to another loader, a superseded request, or a
// cancelled one.
func (l *loader) apply(msg articlesLoadedMsg) bool {
	if msg.owner != l || msg.seq != l.seq {
		return false
	}
	if newsapi.IsCanceled(msg.err) {
		return false
	}

	l.stop()
	l.loading = false
	if msg.err != nil {
		l.err = msg.err
		l.logger.Error("fetch failed", "language", string(msg.lang), "error", msg.err)
		return true
	}

	l.articles = msg.articles
	l.err = nil
	l.logger.Debug("articles loaded", "language", string(msg.lang), "count", len(msg.articles))
	return true
}
