// Package config loads d2stats configuration from defaults, an optional
// YAML file, a .env file and D2_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/Sternrassler/dota2-api-client/pkg/client"
	"github.com/Sternrassler/dota2-api-client/pkg/logging"
	"github.com/Sternrassler/dota2-api-client/pkg/pagination"
	"github.com/Sternrassler/dota2-api-client/pkg/retry"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override (api.key -> D2_API_KEY).
const EnvPrefix = "D2"

// Load loads the configuration. An empty configPath searches ./d2stats.yaml
// and ~/.config/d2stats/d2stats.yaml; finding none is not an error.
func Load(configPath string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error reading .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("api.key", client.APIKeyEnv); err != nil {
		return nil, fmt.Errorf("bind %s: %w", client.APIKeyEnv, err)
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("d2stats")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "d2stats"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("api.key", "")
	v.SetDefault("api.language", client.DefaultLanguage)
	v.SetDefault("api.base_url", client.DefaultBaseURL)
	v.SetDefault("api.user_agent", "d2stats/0.1.0")
	v.SetDefault("api.timeout", "30s")
	v.SetDefault("api.log_urls", false)

	v.SetDefault("retry.max_attempts", 5)
	v.SetDefault("retry.min_backoff", "5s")
	v.SetDefault("retry.max_backoff", "60s")

	v.SetDefault("aggregation.cap", pagination.DefaultCap)
	v.SetDefault("aggregation.pacing_interval", "1s")
	v.SetDefault("aggregation.matches_requested", 0)

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("refdata.backend", "file")
	v.SetDefault("refdata.dir", ".")
	v.SetDefault("refdata.ttl", "0s")
	v.SetDefault("refdata.max_age", "168h")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)

	v.SetDefault("metrics.addr", "")
}

// validate checks if the configuration is valid. A missing API key is
// reported by client.New, not here, so commands that need no key still run.
func validate(cfg *Config) error {
	if cfg.Retry.MaxAttempts < 1 {
		return fmt.Errorf("retry.max_attempts must be >= 1 (got %d)", cfg.Retry.MaxAttempts)
	}
	if cfg.Retry.MinBackoff < 0 {
		return fmt.Errorf("retry.min_backoff must be >= 0 (got %v)", cfg.Retry.MinBackoff)
	}
	if cfg.Retry.MaxBackoff < cfg.Retry.MinBackoff {
		return fmt.Errorf("retry.max_backoff %v is below retry.min_backoff %v", cfg.Retry.MaxBackoff, cfg.Retry.MinBackoff)
	}

	if cfg.Aggregation.Cap < 1 {
		return fmt.Errorf("aggregation.cap must be >= 1 (got %d)", cfg.Aggregation.Cap)
	}
	if cfg.Aggregation.PacingInterval < 0 {
		return fmt.Errorf("aggregation.pacing_interval must be >= 0 (got %v)", cfg.Aggregation.PacingInterval)
	}
	if cfg.Aggregation.MatchesRequested < 0 {
		return fmt.Errorf("aggregation.matches_requested must be >= 0 (got %d)", cfg.Aggregation.MatchesRequested)
	}

	switch cfg.RefData.Backend {
	case "file", "redis":
	default:
		return fmt.Errorf("invalid refdata.backend: %s (must be 'file' or 'redis')", cfg.RefData.Backend)
	}

	if !logging.ValidLevel(cfg.Logging.Level) {
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	return nil
}

// ClientConfig maps the api section to a client.Config.
func (c *Config) ClientConfig() client.Config {
	return client.Config{
		APIKey:    c.API.Key,
		Language:  c.API.Language,
		BaseURL:   c.API.BaseURL,
		UserAgent: c.API.UserAgent,
		Timeout:   c.API.Timeout,
		LogURLs:   c.API.LogURLs,
	}
}

// RetryPolicy builds a retry policy for one call site.
func (c *Config) RetryPolicy(name string) retry.Policy {
	return retry.Policy{
		Name:        name,
		MaxAttempts: c.Retry.MaxAttempts,
		MinBackoff:  c.Retry.MinBackoff,
		MaxBackoff:  c.Retry.MaxBackoff,
		Retryable:   client.IsTransient,
	}
}

// AggregatorConfig maps the aggregation and retry sections to a
// pagination.Config.
func (c *Config) AggregatorConfig() pagination.Config {
	return pagination.Config{
		Cap:              c.Aggregation.Cap,
		PacingInterval:   c.Aggregation.PacingInterval,
		MatchesRequested: c.Aggregation.MatchesRequested,
		PageRetry:        c.RetryPolicy("match_history"),
		DetailRetry:      c.RetryPolicy("match_details"),
	}
}

// LoggingConfig maps the logging section to a logging.Config.
func (c *Config) LoggingConfig() logging.Config {
	return logging.Config{
		Level:   logging.LogLevel(c.Logging.Level),
		Pretty:  c.Logging.Format == "console",
		NoColor: !c.Logging.Color,
		Output:  os.Stderr,
	}
}
