package tui

import (
	"strings"
	"testing"

	"github.com/avivsbt/NewsSim/internal/newsapi"
)

func TestTruncateStr(t *testing.T) {
	tests := []struct {
		input string
		n     int
		want  string
	}{
		{"hello", 10, "hello"},
		{"hello world", 8, "hello..."},
		{"hello", 3, "hel"},
		{"hello", 0, ""},
		{"שלום עולם", 6, "שלו..."},
	}
	for _, tt := range tests {
		if got := truncateStr(tt.input, tt.n); got != tt.want {
			t.Errorf("truncateStr(%q, %d) = %q, want %q", tt.input, tt.n, got, tt.want)
		}
	}
}

func TestBadges(t *testing.T) {
	if got := matchBadge(0.8234); !strings.Contains(got, "82.3% Match") {
		t.Errorf("unexpected match badge %q", got)
	}
	if got := duplicatesBadge(1, 0.8); !strings.Contains(got, "1 duplicate removed · Max 80.0%") {
		t.Errorf("unexpected singular badge %q", got)
	}
	if got := duplicatesBadge(3, 0.955); !strings.Contains(got, "3 duplicates removed") {
		t.Errorf("unexpected plural badge %q", got)
	}
}

func TestFormatDate(t *testing.T) {
	tests := []struct {
		date string
		want string
	}{
		{"2025-03-14T08:30:00Z", "Mar 14, 2025"},
		{"2025-03-15", "Mar 15, 2025"},
		{"yesterday", "yesterday"},
	}
	for _, tt := range tests {
		if got := formatDate(newsapi.Article{PublishDate: tt.date}); got != tt.want {
			t.Errorf("formatDate(%q) = %q, want %q", tt.date, got, tt.want)
		}
	}
}

func TestRenderCardsScrollsToCursor(t *testing.T) {
	var cards []card
	for _, title := range []string{"alpha", "bravo", "charlie", "delta", "echo"} {
		cards = append(cards, card{article: newsapi.Article{Title: title, PublisherName: "P"}})
	}

	// Room for two cards
	out := renderCards(cards, 4, 6, 40)
	if !strings.Contains(out, "> echo") || !strings.Contains(out, "delta") {
		t.Errorf("expected last two cards, got:\n%s", out)
	}
	if strings.Contains(out, "alpha") {
		t.Errorf("expected first card scrolled away, got:\n%s", out)
	}
}

func TestClampThreshold(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{-0.5, 0},
		{0.123, 0.12},
		{0.125, 0.13},
		{1.7, 1},
	}
	for _, tt := range tests {
		if got := clampThreshold(tt.in); got != tt.want {
			t.Errorf("clampThreshold(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSetLanguageResets(t *testing.T) {
	s := newViewState(newsapi.English, 0.5)
	s.selected = "1"
	s.nudgeThreshold(0.2)

	if s.setLanguage(newsapi.English) {
		t.Error("same language must not count as a change")
	}
	if s.selected != "1" {
		t.Error("same language must keep state")
	}
	if !s.setLanguage(newsapi.Hebrew) {
		t.Fatal("expected a change")
	}
	if s.selected != "" || s.threshold != 0.5 {
		t.Errorf("expected reset, got %+v", s)
	}
}

func TestParsePage(t *testing.T) {
	for in, want := range map[string]Page{"": PageSimilarity, "similarity": PageSimilarity, "dedup": PageDedup} {
		got, err := ParsePage(in)
		if err != nil || got != want {
			t.Errorf("ParsePage(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParsePage("graph"); err == nil {
		t.Error("expected error for unknown view")
	}
}
