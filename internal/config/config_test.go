package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "d2stats.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("D2_API_KEY", "")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.API.Language != "en_us" {
		t.Errorf("API.Language = %q, want en_us", cfg.API.Language)
	}
	if cfg.API.Timeout != 30*time.Second {
		t.Errorf("API.Timeout = %v, want 30s", cfg.API.Timeout)
	}
	if cfg.Retry.MaxAttempts != 5 {
		t.Errorf("Retry.MaxAttempts = %d, want 5", cfg.Retry.MaxAttempts)
	}
	if cfg.Retry.MinBackoff != 5*time.Second || cfg.Retry.MaxBackoff != 60*time.Second {
		t.Errorf("Retry backoff = %v-%v, want 5s-60s", cfg.Retry.MinBackoff, cfg.Retry.MaxBackoff)
	}
	if cfg.Aggregation.Cap != 500 {
		t.Errorf("Aggregation.Cap = %d, want 500", cfg.Aggregation.Cap)
	}
	if cfg.Aggregation.PacingInterval != time.Second {
		t.Errorf("Aggregation.PacingInterval = %v, want 1s", cfg.Aggregation.PacingInterval)
	}
	if cfg.RefData.Backend != "file" {
		t.Errorf("RefData.Backend = %q, want file", cfg.RefData.Backend)
	}
}

func TestLoad_FileAndEnv(t *testing.T) {
	path := writeConfig(t, `
api:
  language: de_de
  log_urls: true
retry:
  max_attempts: 3
  min_backoff: 1s
  max_backoff: 2s
aggregation:
  pacing_interval: 250ms
refdata:
  backend: redis
logging:
  level: debug
  format: json
`)
	t.Setenv("D2_API_KEY", "env-key")
	t.Setenv("D2_AGGREGATION_CAP", "100")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.API.Key != "env-key" {
		t.Errorf("API.Key = %q, want env-key", cfg.API.Key)
	}
	if cfg.API.Language != "de_de" || !cfg.API.LogURLs {
		t.Errorf("API = %+v", cfg.API)
	}
	if cfg.Retry.MaxAttempts != 3 || cfg.Retry.MaxBackoff != 2*time.Second {
		t.Errorf("Retry = %+v", cfg.Retry)
	}
	if cfg.Aggregation.Cap != 100 {
		t.Errorf("Aggregation.Cap = %d, want 100 from env", cfg.Aggregation.Cap)
	}
	if cfg.Aggregation.PacingInterval != 250*time.Millisecond {
		t.Errorf("Aggregation.PacingInterval = %v, want 250ms", cfg.Aggregation.PacingInterval)
	}
	if cfg.RefData.Backend != "redis" {
		t.Errorf("RefData.Backend = %q, want redis", cfg.RefData.Backend)
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Expected error for missing explicit config file")
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Retry:       RetryConfig{MaxAttempts: 5, MinBackoff: time.Second, MaxBackoff: time.Minute},
			Aggregation: AggregationConfig{Cap: 500, PacingInterval: time.Second},
			RefData:     RefDataConfig{Backend: "file"},
			Logging:     LoggingConfig{Level: "info", Format: "console"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(*Config) {}, false},
		{"zero attempts", func(c *Config) { c.Retry.MaxAttempts = 0 }, true},
		{"inverted backoff", func(c *Config) { c.Retry.MaxBackoff = time.Millisecond }, true},
		{"zero cap", func(c *Config) { c.Aggregation.Cap = 0 }, true},
		{"negative pacing", func(c *Config) { c.Aggregation.PacingInterval = -time.Second }, true},
		{"unknown backend", func(c *Config) { c.RefData.Backend = "s3" }, true},
		{"invalid level", func(c *Config) { c.Logging.Level = "verbose" }, true},
		{"invalid format", func(c *Config) { c.Logging.Format = "xml" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := validate(cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_Mappings(t *testing.T) {
	cfg := &Config{
		API:         APIConfig{Key: "k", Language: "en_us", Timeout: time.Second},
		Retry:       RetryConfig{MaxAttempts: 2, MinBackoff: time.Second, MaxBackoff: 2 * time.Second},
		Aggregation: AggregationConfig{Cap: 500, PacingInterval: time.Second, MatchesRequested: 25},
		Logging:     LoggingConfig{Level: "debug", Format: "json"},
	}

	cc := cfg.ClientConfig()
	if cc.APIKey != "k" || cc.Timeout != time.Second {
		t.Errorf("ClientConfig() = %+v", cc)
	}

	ac := cfg.AggregatorConfig()
	if ac.PageRetry.Name != "match_history" || ac.DetailRetry.Name != "match_details" {
		t.Errorf("policy names = %q/%q", ac.PageRetry.Name, ac.DetailRetry.Name)
	}
	if ac.PageRetry.MaxAttempts != 2 || ac.PageRetry.Retryable == nil {
		t.Errorf("PageRetry = %+v", ac.PageRetry)
	}
	if ac.MatchesRequested != 25 {
		t.Errorf("MatchesRequested = %d, want 25", ac.MatchesRequested)
	}

	lc := cfg.LoggingConfig()
	if lc.Pretty {
		t.Error("json format should not be pretty")
	}
}
