package newsapi

import (
	"fmt"
	"time"
)

// Article is a normalized upstream news item. Fields are always populated;
// missing upstream values are replaced with defaults at the fetch boundary.
type Article struct {
	ID            string
	Title         string
	PublisherName string
	PublishDate   string
	ThumbnailURL  string
	URL           string
	SimilarityMap map[string]float64
}

// Published parses PublishDate. ok is false when the upstream value is not ISO-8601.
func (a Article) Published() (t time.Time, ok bool) {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, a.PublishDate); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// HasLink reports whether the article points somewhere other than the "#" placeholder.
func (a Article) HasLink() bool {
	return a.URL != "" && a.URL != DefaultURL
}

type Language string

const (
	English Language = "en"
	Hebrew  Language = "he"
)

func Languages() []Language {
	return []Language{English, Hebrew}
}

// ParseLanguage validates a language code.
func ParseLanguage(s string) (Language, error) {
	for _, l := range Languages() {
		if string(l) == s {
			return l, nil
		}
	}
	return "", fmt.Errorf("%w: %q (valid: en, he)", ErrUnknownLanguage, s)
}

func (l Language) Valid() bool {
	_, err := ParseLanguage(string(l))
	return err == nil
}

// Label is the language's name in its own script.
func (l Language) Label() string {
	switch l {
	case English:
		return "English"
	case Hebrew:
		return "עברית"
	default:
		return string(l)
	}
}

// Next cycles through Languages.
func (l Language) Next() Language {
	langs := Languages()
	for i, x := range langs {
		if x == l {
			return langs[(i+1)%len(langs)]
		}
	}
	return langs[0]
}
