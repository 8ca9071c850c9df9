package config

import (
	"embed"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/avivsbt/NewsSim/internal/newsapi"
	"gopkg.in/yaml.v3"
)

//go:embed default_config.yaml
var defaultConfigFS embed.FS

const (
	envBaseURL  = "NEWSSIM_BASE_URL"
	envLogLevel = "NEWSSIM_LOG_LEVEL"
)

type Config struct {
	BaseURL             string  `yaml:"base_url"`
	Language            string  `yaml:"language"`
	RequestTimeout      string  `yaml:"request_timeout"`
	SimilarityThreshold float64 `yaml:"similarity_threshold"`
	DedupThreshold      float64 `yaml:"dedup_threshold"`
	LogLevel            string  `yaml:"log_level"`
}

// Timeout returns the per-request timeout, defaulting to 30s.
func (c *Config) Timeout() time.Duration {
	d, err := time.ParseDuration(c.RequestTimeout)
	if err != nil || d <= 0 {
		return 30 * time.Second
	}
	return d
}

// DefaultLanguage returns the configured start language, falling back to English.
func (c *Config) DefaultLanguage() newsapi.Language {
	l, err := newsapi.ParseLanguage(c.Language)
	if err != nil {
		return newsapi.English
	}
	return l
}

func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "newssim", "config.yaml")
}

// LogPath is where interactive sessions write their log, since the terminal belongs to the UI.
func LogPath() string {
	return filepath.Join(xdg.StateHome, "newssim", "newssim.log")
}

func loadDefaults() (*Config, error) {
	data, err := defaultConfigFS.ReadFile("default_config.yaml")
	if err != nil {
		return nil, fmt.Errorf("reading embedded config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded config: %w", err)
	}
	return &cfg, nil
}

// Load reads the config at path (or the default location) on top of the
// embedded defaults, then applies environment overrides. A missing file is
// created from the defaults.
func Load(path string) (*Config, error) {
	cfg, err := loadDefaults()
	if err != nil {
		return nil, err
	}

	if path == "" {
		path = DefaultConfigPath()
	}

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// Non-fatal: embedded defaults still apply
		_ = writeDefaults(path)
	case err != nil:
		return nil, fmt.Errorf("reading config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	applyEnv(cfg)

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv(envBaseURL)); v != "" {
		cfg.BaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv(envLogLevel)); v != "" {
		cfg.LogLevel = v
	}
}

func writeDefaults(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, _ := defaultConfigFS.ReadFile("default_config.yaml")
	return os.WriteFile(path, data, 0o644)
}

// Validate checks URL, language, timeout, thresholds and log level.
func Validate(cfg *Config) error {
	if cfg.BaseURL == "" {
		return fmt.Errorf("base_url is required")
	}
	u, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return fmt.Errorf("base_url: invalid url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("base_url: scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("base_url: missing host")
	}

	if _, err := newsapi.ParseLanguage(cfg.Language); err != nil {
		return fmt.Errorf("language: %w", err)
	}

	if cfg.RequestTimeout != "" {
		d, err := time.ParseDuration(cfg.RequestTimeout)
		if err != nil {
			return fmt.Errorf("request_timeout: %w", err)
		}
		if d <= 0 {
			return fmt.Errorf("request_timeout must be positive, got %s", cfg.RequestTimeout)
		}
	}

	for name, v := range map[string]float64{
		"similarity_threshold": cfg.SimilarityThreshold,
		"dedup_threshold":      cfg.DedupThreshold,
	} {
		if v < 0 || v > 1 {
			return fmt.Errorf("%s must be between 0 and 1, got %v", name, v)
		}
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "warning": true, "error": true}
	if !validLevels[strings.ToLower(cfg.LogLevel)] {
		return fmt.Errorf("log_level: unknown level %q (valid: debug, info, warn, error)", cfg.LogLevel)
	}
	return nil
}
