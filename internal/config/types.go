package config

import "time"

// Config represents the d2stats configuration.
type Config struct {
	API         APIConfig         `mapstructure:"api"`
	Retry       RetryConfig       `mapstructure:"retry"`
	Aggregation AggregationConfig `mapstructure:"aggregation"`
	Redis       RedisConfig       `mapstructure:"redis"`
	RefData     RefDataConfig     `mapstructure:"refdata"`
	Logging     LoggingConfig     `mapstructure:"logging"`
	Metrics     MetricsConfig     `mapstructure:"metrics"`
}

// APIConfig holds Web API client settings.
type APIConfig struct {
	Key       string        `mapstructure:"key"`
	Language  string        `mapstructure:"language"`
	BaseURL   string        `mapstructure:"base_url"`
	UserAgent string        `mapstructure:"user_agent"`
	Timeout   time.Duration `mapstructure:"timeout"`
	LogURLs   bool          `mapstructure:"log_urls"`
}

// RetryConfig holds the retry policy shared by page and detail fetches.
type RetryConfig struct {
	MaxAttempts int           `mapstructure:"max_attempts"`
	MinBackoff  time.Duration `mapstructure:"min_backoff"`
	MaxBackoff  time.Duration `mapstructure:"max_backoff"`
}

// AggregationConfig holds match aggregation settings.
type AggregationConfig struct {
	Cap              int           `mapstructure:"cap"`
	PacingInterval   time.Duration `mapstructure:"pacing_interval"`
	MatchesRequested int           `mapstructure:"matches_requested"`
}

// RedisConfig holds the optional Redis connection for reference data.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// RefDataConfig selects where heroes and items are persisted.
type RefDataConfig struct {
	// Backend is "file" or "redis".
	Backend string        `mapstructure:"backend"`
	Dir     string        `mapstructure:"dir"`
	TTL     time.Duration `mapstructure:"ttl"`
	MaxAge  time.Duration `mapstructure:"max_age"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}

// MetricsConfig holds the Prometheus endpoint settings.
type MetricsConfig struct {
	// Addr serves /metrics when non-empty (e.g. ":9090").
	Addr string `mapstructure:"addr"`
}
