package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/avivsbt/NewsSim/internal/newsapi"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := loadDefaults()
	if err != nil {
		t.Fatalf("loadDefaults: %v", err)
	}
	if !strings.HasSuffix(cfg.BaseURL, "/api/topNewsItemsSimilarity") {
		t.Errorf("unexpected default base url %q", cfg.BaseURL)
	}
	if cfg.SimilarityThreshold != 0 {
		t.Errorf("expected similarity threshold 0, got %v", cfg.SimilarityThreshold)
	}
	if cfg.DedupThreshold != 0.5 {
		t.Errorf("expected dedup threshold 0.5, got %v", cfg.DedupThreshold)
	}
	if err := Validate(cfg); err != nil {
		t.Errorf("embedded defaults do not validate: %v", err)
	}
}

func TestTimeout(t *testing.T) {
	cfg := &Config{RequestTimeout: "5s"}
	if d := cfg.Timeout(); d != 5*time.Second {
		t.Errorf("expected 5s, got %v", d)
	}

	cfg.RequestTimeout = "invalid"
	if d := cfg.Timeout(); d != 30*time.Second {
		t.Errorf("expected 30s default for invalid timeout, got %v", d)
	}
}

func TestDefaultLanguage(t *testing.T) {
	tests := []struct {
		input string
		want  newsapi.Language
	}{
		{"en", newsapi.English},
		{"he", newsapi.Hebrew},
		{"", newsapi.English},
		{"fr", newsapi.English},
	}
	for _, tt := range tests {
		cfg := &Config{Language: tt.input}
		if got := cfg.DefaultLanguage(); got != tt.want {
			t.Errorf("DefaultLanguage(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestLoadFromFileMergesDefaults(t *testing.T) {
	t.Setenv(envBaseURL, "")
	t.Setenv(envLogLevel, "")
	path := writeConfig(t, `base_url: http://localhost:3001/api/topNewsItemsSimilarity
language: he
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.BaseURL != "http://localhost:3001/api/topNewsItemsSimilarity" {
		t.Errorf("unexpected base url %q", cfg.BaseURL)
	}
	if cfg.DefaultLanguage() != newsapi.Hebrew {
		t.Errorf("expected he, got %q", cfg.Language)
	}
	// Keys absent from the file keep their embedded values
	if cfg.DedupThreshold != 0.5 {
		t.Errorf("expected dedup threshold from defaults, got %v", cfg.DedupThreshold)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("expected log level from defaults, got %q", cfg.LogLevel)
	}
}

func TestLoadMissingFileWritesDefaults(t *testing.T) {
	t.Setenv(envBaseURL, "")
	t.Setenv(envLogLevel, "")
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DedupThreshold != 0.5 {
		t.Errorf("expected defaults, got %+v", cfg)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected defaults written to %s: %v", path, err)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv(envBaseURL, "https://staging.example.com/api")
	t.Setenv(envLogLevel, "debug")
	path := writeConfig(t, "language: en\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.BaseURL != "https://staging.example.com/api" {
		t.Errorf("expected env base url, got %q", cfg.BaseURL)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("expected env log level, got %q", cfg.LogLevel)
	}
}

func TestLoadInvalid(t *testing.T) {
	t.Setenv(envBaseURL, "")
	t.Setenv(envLogLevel, "")
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"bad scheme", "base_url: ftp://example.com\n", "scheme"},
		{"no host", "base_url: http://\n", "host"},
		{"bad language", "language: fr\n", "language"},
		{"threshold too high", "dedup_threshold: 1.5\n", "dedup_threshold"},
		{"negative threshold", "similarity_threshold: -0.1\n", "similarity_threshold"},
		{"bad timeout", "request_timeout: soon\n", "request_timeout"},
		{"zero timeout", "request_timeout: 0s\n", "request_timeout"},
		{"bad log level", "log_level: loud\n", "log_level"},
		{"bad yaml", "base_url: [\n", "parsing config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error mentioning %q, got %v", tt.wantErr, err)
			}
		})
	}
}
