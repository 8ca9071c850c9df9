package newsapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Defaults applied to missing upstream fields.
const (
	DefaultTitle     = "Untitled"
	DefaultPublisher = "Unknown"
	DefaultURL       = "#"
)

const maxBodyBytes = 32 << 20

var (
	ErrInvalidFormat   = errors.New("invalid response format: expected array")
	ErrUnknownLanguage = errors.New("unknown language")
)

// HTTPError is returned when the upstream answers with a non-2xx status.
type HTTPError struct {
	StatusCode int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("upstream returned HTTP %d", e.StatusCode)
}

// IsCanceled reports whether err comes from an abandoned request.
func IsCanceled(err error) bool {
	return errors.Is(err, context.Canceled)
}

// Fetcher is satisfied by *Client; views depend on it so tests can substitute fakes.
type Fetcher interface {
	FetchArticles(ctx context.Context, lang Language) ([]Article, error)
}

type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
	now     func() time.Time
}

// NewClient builds a client for the similarity API rooted at baseURL.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
		now:     time.Now,
	}
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// FetchArticles issues one GET for the top news items of lang. A cancelled ctx
// yields an error for which IsCanceled is true.
func (c *Client) FetchArticles(ctx context.Context, lang Language) ([]Article, error) {
	if !lang.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLanguage, lang)
	}

	u, err := url.Parse(c.baseURL + "/getTopNewsItems")
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	q := u.Query()
	q.Set("language", string(lang))
	u.RawQuery = q.Encode()

	reqID := uuid.NewString()
	log := c.logger.With("request_id", reqID, "language", string(lang))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", reqID)

	start := time.Now()
	log.Debug("fetching articles", "url", u.String())

	resp, err := c.http.Do(req)
	if err != nil {
		if IsCanceled(err) {
			log.Debug("fetch abandoned")
		} else {
			log.Warn("fetch failed", "error", err)
		}
		return nil, fmt.Errorf("fetching %s articles: %w", lang, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Warn("upstream error", "status", resp.StatusCode)
		return nil, &HTTPError{StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("reading %s articles: %w", lang, err)
	}

	articles, err := c.decode(body)
	if err != nil {
		log.Warn("bad payload", "error", err)
		return nil, err
	}

	log.Info("articles fetched", "count", len(articles), "elapsed", time.Since(start))
	return articles, nil
}

func (c *Client) decode(body []byte) ([]Article, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, ErrInvalidFormat
	}

	var items []json.RawMessage
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}

	now := c.now()
	articles := make([]Article, 0, len(items))
	for _, item := range items {
		articles = append(articles, normalize(item, now))
	}
	return articles, nil
}

// normalize turns one raw upstream record into an Article. It never fails:
// a record that is not an object becomes an all-defaults Article.
func normalize(item json.RawMessage, now time.Time) Article {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(item, &fields); err != nil {
		fields = nil
	}

	return Article{
		ID:            orDefault(text(fields["id"]), ""),
		Title:         orDefault(text(fields["title"]), DefaultTitle),
		PublisherName: orDefault(text(fields["publisher_name"]), DefaultPublisher),
		PublishDate:   orDefault(text(fields["publish_date"]), now.UTC().Format(time.RFC3339)),
		ThumbnailURL:  orDefault(text(fields["thumbnail_url"]), ""),
		URL:           orDefault(text(fields["url"]), DefaultURL),
		SimilarityMap: scores(fields["similarity_map"]),
	}
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// text renders a scalar JSON value as a string. Null, objects, arrays, false
// and zero render as "" so the caller's default applies.
func text(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return ""
	}
	switch x := v.(type) {
	case string:
		return x
	case json.Number:
		if f, err := x.Float64(); err == nil && f == 0 {
			return ""
		}
		return x.String()
	case bool:
		if x {
			return "true"
		}
	}
	return ""
}

// scores keeps the numeric entries of a raw similarity map, clamped into [0,1].
func scores(raw json.RawMessage) map[string]float64 {
	out := make(map[string]float64)
	if len(raw) == 0 {
		return out
	}
	var entries map[string]json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return out
	}
	for id, v := range entries {
		if string(bytes.TrimSpace(v)) == "null" {
			continue
		}
		var f float64
		if err := json.Unmarshal(v, &f); err != nil {
			continue
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			continue
		}
		out[id] = math.Min(1, math.Max(0, f))
	}
	return out
}
