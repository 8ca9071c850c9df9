package similarity

import (
	"math"
	"testing"

	"github.com/avivsbt/NewsSim/internal/newsapi"
)

func article(id string, scores map[string]float64) newsapi.Article {
	if scores == nil {
		scores = map[string]float64{}
	}
	return newsapi.Article{ID: id, Title: "Article " + id, SimilarityMap: scores}
}

// threeArticles is the 1/2/3 set: 1 scores 2 at 0.8 and 3 at 0.3.
func threeArticles() []newsapi.Article {
	return []newsapi.Article{
		article("1", map[string]float64{"2": 0.8, "3": 0.3}),
		article("2", map[string]float64{"1": 0.8, "3": 0.2}),
		article("3", map[string]float64{"1": 0.3, "2": 0.2}),
	}
}

func ids(matches []Match) []string {
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.Article.ID
	}
	return out
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestScore(t *testing.T) {
	articles := []newsapi.Article{
		article("a", map[string]float64{"b": 0.4, "nan": math.NaN(), "inf": math.Inf(1), "neg": -0.5, "big": 3}),
		{ID: "nomap"},
	}
	table := NewTable(articles)

	tests := []struct {
		from, to string
		want     float64
	}{
		{"a", "b", 0.4},
		{"b", "a", 0},
		{"a", "missing", 0},
		{"missing", "a", 0},
		{"nomap", "a", 0},
		{"a", "nan", 0},
		{"a", "inf", 0},
		{"a", "neg", 0},
		{"a", "big", 1},
		{"", "", 0},
	}
	for _, tt := range tests {
		if got := table.Score(tt.from, tt.to); got != tt.want {
			t.Errorf("Table.Score(%q, %q) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
		if got := Score(articles, tt.from, tt.to); got != tt.want {
			t.Errorf("Score(%q, %q) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestScoreEmptyList(t *testing.T) {
	if got := Score(nil, "a", "b"); got != 0 {
		t.Errorf("Score on empty list = %v, want 0", got)
	}
}

func TestTableFirstIDWins(t *testing.T) {
	table := NewTable([]newsapi.Article{
		article("x", map[string]float64{"y": 0.9}),
		article("x", map[string]float64{"y": 0.1}),
		article("y", nil),
	})
	if got := table.Score("x", "y"); got != 0.9 {
		t.Errorf("expected first occurrence to win, got %v", got)
	}
}

func TestSimilarEndToEnd(t *testing.T) {
	table := NewTable(threeArticles())

	got := table.Similar("1", 0.5)
	if !equalIDs(ids(got), []string{"1", "2"}) {
		t.Fatalf("Similar(1, 0.5) = %v, want [1 2]", ids(got))
	}
	if !got[0].Selected || got[0].Scored {
		t.Errorf("first row should be the unscored selection: %+v", got[0])
	}
	if got[1].Score != 0.8 || !got[1].Scored {
		t.Errorf("expected 2 scored 0.8, got %+v", got[1])
	}
	if n := table.CountSimilar("1", 0.5); n != 1 {
		t.Errorf("CountSimilar(1, 0.5) = %d, want 1", n)
	}
}

func TestSimilarSortsDescendingStable(t *testing.T) {
	table := NewTable([]newsapi.Article{
		article("s", map[string]float64{"a": 0.2, "b": 0.7, "c": 0.2, "d": 0.9}),
		article("a", nil),
		article("b", nil),
		article("c", nil),
		article("d", nil),
	})

	got := ids(table.Similar("s", 0))
	want := []string{"s", "d", "b", "a", "c"}
	if !equalIDs(got, want) {
		t.Errorf("Similar(s, 0) = %v, want %v", got, want)
	}
}

func TestSimilarNoSelection(t *testing.T) {
	table := NewTable(threeArticles())

	got := table.Similar("", 0.9)
	if !equalIDs(ids(got), []string{"1", "2", "3"}) {
		t.Errorf("expected all articles in list order, got %v", ids(got))
	}
	for _, m := range got {
		if m.Scored || m.Selected {
			t.Errorf("unexpected scoring without selection: %+v", m)
		}
	}
	if n := table.CountSimilar("", 0); n != 0 {
		t.Errorf("CountSimilar with no selection = %d, want 0", n)
	}
}

func TestSimilarUnknownSelection(t *testing.T) {
	table := NewTable(threeArticles())
	if got := table.Similar("42", 0); len(got) != 0 {
		t.Errorf("expected empty result for unknown selection, got %v", ids(got))
	}
	if n := table.CountSimilar("42", 0); n != 0 {
		t.Errorf("CountSimilar(unknown) = %d, want 0", n)
	}
}

func TestCountMatchesFilteredList(t *testing.T) {
	articles := []newsapi.Article{
		article("a", map[string]float64{"b": 0.15, "c": 0.5, "d": 0.99, "e": 0.5}),
		article("b", nil),
		article("c", nil),
		article("d", nil),
		article("e", nil),
	}
	table := NewTable(articles)

	for step := 0; step <= 100; step++ {
		tau := float64(step) / 100
		rows := table.Similar("a", tau)
		if got, want := table.CountSimilar("a", tau), len(rows)-1; got != want {
			t.Errorf("threshold %.2f: count %d, filtered list has %d similar", tau, got, want)
		}
	}
}
