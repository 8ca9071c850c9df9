package tui

import (
	"fmt"
	"math"

	"github.com/avivsbt/NewsSim/internal/newsapi"
)

// Page identifies one of the two views.
type Page int

const (
	PageSimilarity Page = iota
	PageDedup
)

func (p Page) String() string {
	switch p {
	case PageDedup:
		return "dedup"
	default:
		return "similarity"
	}
}

func (p Page) Title() string {
	switch p {
	case PageDedup:
		return "Deduplicator"
	default:
		return "Similarity Viewer"
	}
}

// ParsePage accepts the names used on the command line.
func ParsePage(s string) (Page, error) {
	switch s {
	case "", "similarity", "viewer":
		return PageSimilarity, nil
	case "dedup", "deduplicator":
		return PageDedup, nil
	}
	return PageSimilarity, fmt.Errorf("unknown view %q (valid: similarity, dedup)", s)
}

const (
	thresholdStep       = 0.01
	thresholdCoarseStep = 0.10
)

// viewState is the user-controlled state of one view. Language changes reset
// it as a whole.
type viewState struct {
	language         newsapi.Language
	selected         string
	threshold        float64
	defaultThreshold float64
}

func newViewState(lang newsapi.Language, defaultThreshold float64) viewState {
	return viewState{
		language:         lang,
		threshold:        clampThreshold(defaultThreshold),
		defaultThreshold: clampThreshold(defaultThreshold),
	}
}

// setLanguage switches language and clears selection and threshold.
// It reports whether the language actually changed.
func (s *viewState) setLanguage(lang newsapi.Language) bool {
	if lang == s.language {
		return false
	}
	s.language = lang
	s.selected = ""
	s.threshold = s.defaultThreshold
	return true
}

// toggleSelect selects id, or clears the selection when id is already selected.
func (s *viewState) toggleSelect(id string) {
	if s.selected == id {
		s.selected = ""
		return
	}
	s.selected = id
}

func (s *viewState) nudgeThreshold(delta float64) {
	s.threshold = clampThreshold(s.threshold + delta)
}

// clampThreshold snaps v to the slider grid of 0.01 within [0,1].
func clampThreshold(v float64) float64 {
	v = math.Round(v*100) / 100
	return math.Min(1, math.Max(0, v))
}

// toPercentage renders a 0-1 score as a percentage with the given decimals.
func toPercentage(score float64, decimals int) string {
	return fmt.Sprintf("%.*f%%", decimals, score*100)
}
