// Package similarity filters, ranks and clusters articles using the
// precomputed scores carried in each article's similarity map.
package similarity

import (
	"math"
	"sort"

	"github.com/avivsbt/NewsSim/internal/newsapi"
)

// Table indexes an article list for score lookups. The first occurrence of an
// id wins when ids repeat.
type Table struct {
	articles []newsapi.Article
	index    map[string]int
}

func NewTable(articles []newsapi.Article) *Table {
	index := make(map[string]int, len(articles))
	for i, a := range articles {
		if _, ok := index[a.ID]; !ok {
			index[a.ID] = i
		}
	}
	return &Table{articles: articles, index: index}
}

func (t *Table) Len() int {
	return len(t.articles)
}

func (t *Table) Articles() []newsapi.Article {
	return t.articles
}

// Article returns the article with the given id.
func (t *Table) Article(id string) (newsapi.Article, bool) {
	i, ok := t.index[id]
	if !ok {
		return newsapi.Article{}, false
	}
	return t.articles[i], true
}

// Score is the similarity fromID assigns to toID. Unknown ids, missing entries
// and non-finite values all score 0.
func (t *Table) Score(fromID, toID string) float64 {
	from, ok := t.Article(fromID)
	if !ok {
		return 0
	}
	return bounded(from.SimilarityMap[toID])
}

// Score looks up a single pair without building a reusable Table.
func Score(articles []newsapi.Article, fromID, toID string) float64 {
	for _, a := range articles {
		if a.ID == fromID {
			return bounded(a.SimilarityMap[toID])
		}
	}
	return 0
}

func bounded(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Match is one row of the Similarity Viewer. Score is meaningful only when
// Scored is true; the selected article itself is never scored.
type Match struct {
	Article  newsapi.Article
	Score    float64
	Scored   bool
	Selected bool
}

// Similar returns the selected article followed by every other article whose
// score from the selection is at least threshold, best first. Equal scores
// keep list order. With no selection every article is returned unscored; an
// unknown selection returns nothing.
func (t *Table) Similar(selectedID string, threshold float64) []Match {
	if selectedID == "" {
		out := make([]Match, len(t.articles))
		for i, a := range t.articles {
			out[i] = Match{Article: a}
		}
		return out
	}

	selected, ok := t.Article(selectedID)
	if !ok {
		return nil
	}

	var similar []Match
	for _, a := range t.articles {
		if a.ID == selectedID {
			continue
		}
		score := t.Score(selectedID, a.ID)
		if score >= threshold {
			similar = append(similar, Match{Article: a, Score: score, Scored: true})
		}
	}
	sort.SliceStable(similar, func(i, j int) bool {
		return similar[i].Score > similar[j].Score
	})

	return append([]Match{{Article: selected, Selected: true}}, similar...)
}

// CountSimilar is the number of articles other than the selection scoring at
// least threshold. It is 0 with no selection.
func (t *Table) CountSimilar(selectedID string, threshold float64) int {
	if selectedID == "" {
		return 0
	}
	if _, ok := t.Article(selectedID); !ok {
		return 0
	}
	n := 0
	for _, a := range t.articles {
		if a.ID != selectedID && t.Score(selectedID, a.ID) >= threshold {
			n++
		}
	}
	return n
}
