package tui

import "github.com/avivsbt/NewsSim/internal/newsapi"

// articlesLoadedMsg carries the outcome of one fetch. owner and seq identify
// the request so results of superseded fetches can be dropped.
type articlesLoadedMsg struct {
	owner    *loader
	seq      int
	lang     newsapi.Language
	articles []newsapi.Article
	err      error
}

type openErrMsg struct {
	err error
}
