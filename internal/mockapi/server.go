// Package mockapi serves a stand-in for the upstream similarity API so the
// viewer can be exercised without the real service.
package mockapi

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
)

//go:embed sample_fixtures.json
var sampleFS embed.FS

// DefaultPrefix mirrors the path of the production endpoint.
const DefaultPrefix = "/api/topNewsItemsSimilarity"

// Fixtures maps a language code to the raw JSON body served for it.
type Fixtures map[string]json.RawMessage

// SampleFixtures returns the embedded English and Hebrew sample sets.
func SampleFixtures() (Fixtures, error) {
	data, err := sampleFS.ReadFile("sample_fixtures.json")
	if err != nil {
		return nil, fmt.Errorf("reading embedded fixtures: %w", err)
	}
	return parseFixtures(data)
}

// LoadFixtures reads a JSON object of language -> article array from path.
func LoadFixtures(path string) (Fixtures, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading fixtures: %w", err)
	}
	f, err := parseFixtures(data)
	if err != nil {
		return nil, fmt.Errorf("parsing fixtures %s: %w", path, err)
	}
	return f, nil
}

func parseFixtures(data []byte) (Fixtures, error) {
	var f Fixtures
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	return f, nil
}

type Options struct {
	Prefix     string
	FailStatus int
	Delay      time.Duration
	Logger     *slog.Logger
}

type Server struct {
	fixtures   Fixtures
	prefix     string
	delay      time.Duration
	logger     *slog.Logger
	failStatus atomic.Int64
	hits       atomic.Int64
}

func New(fixtures Fixtures, opts Options) *Server {
	prefix := opts.Prefix
	if prefix == "" {
		prefix = DefaultPrefix
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := &Server{
		fixtures: fixtures,
		prefix:   prefix,
		delay:    opts.Delay,
		logger:   logger,
	}
	s.failStatus.Store(int64(opts.FailStatus))
	return s
}

// Hits counts requests to the articles endpoint.
func (s *Server) Hits() int {
	return int(s.hits.Load())
}

// SetFailStatus forces every articles request to answer with code. Zero restores normal answers.
func (s *Server) SetFailStatus(code int) {
	s.failStatus.Store(int64(code))
}

// Router constructs the gin engine with the articles and health routes.
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(s.logger))

	g := r.Group(s.prefix)
	g.GET("/getTopNewsItems", s.handleTopNewsItems)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
	return r
}

func (s *Server) handleTopNewsItems(c *gin.Context) {
	s.hits.Add(1)

	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-c.Request.Context().Done():
			return
		}
	}

	if code := int(s.failStatus.Load()); code != 0 {
		c.JSON(code, gin.H{"error": http.StatusText(code)})
		return
	}

	lang := c.DefaultQuery("language", "en")
	body, ok := s.fixtures[lang]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no articles for language " + lang})
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", bytes.TrimSpace(body))
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"query", c.Request.URL.RawQuery,
			"status", c.Writer.Status(),
			"request_id", c.GetHeader("X-Request-Id"),
			"latency", time.Since(start),
		)
	}
}
