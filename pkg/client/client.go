// Package client provides the Dota 2 Web API client: URL building with the
// API key, language and format parameters, request execution, status
// classification and JSON envelope parsing.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Sternrassler/dota2-api-client/pkg/logging"
	"github.com/Sternrassler/dota2-api-client/pkg/metrics"
	"github.com/rs/zerolog"
)

const (
	// APIKeyEnv is the environment variable read when Config.APIKey is empty.
	APIKeyEnv = "D2_API_KEY"

	// DefaultBaseURL is the Steam Web API root.
	DefaultBaseURL = "https://api.steampowered.com/"

	// DefaultLanguage is sent when no language is configured.
	DefaultLanguage = "en_us"

	responseFormat = "json"
	redactedKey    = "REDACTED"
)

// Client is the Dota 2 Web API client. A Client holds its own credential
// and settings, so independent clients can be used side by side.
type Client struct {
	executor Executor
	config   Config
	apiKey   string
	logger   zerolog.Logger
}

// Config holds the client configuration.
type Config struct {
	// APIKey is the Steam Web API key. Empty falls back to D2_API_KEY.
	APIKey string

	// Language selects localized names (default: en_us).
	Language string

	// BaseURL overrides the API root (default: DefaultBaseURL).
	BaseURL string

	// UserAgent is sent by the default executor.
	UserAgent string

	// Timeout per request for the default executor.
	Timeout time.Duration

	// Executor replaces the default net/http executor.
	Executor Executor

	// LogURLs logs every request URL at debug level with the key redacted.
	LogURLs bool
}

// DefaultConfig returns a safe default configuration.
func DefaultConfig(apiKey string) Config {
	return Config{
		APIKey:    apiKey,
		Language:  DefaultLanguage,
		BaseURL:   DefaultBaseURL,
		UserAgent: "dota2-api-client/0.1.0",
		Timeout:   30 * time.Second,
	}
}

// New creates a new Web API client. A missing API key is a configuration
// error reported here, never during a request.
func New(cfg Config) (*Client, error) {
	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = os.Getenv(APIKeyEnv)
	}
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	if cfg.Language == "" {
		cfg.Language = DefaultLanguage
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if _, err := url.ParseRequestURI(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("%w: base url %q: %v", ErrConfiguration, cfg.BaseURL, err)
	}
	if !strings.HasSuffix(cfg.BaseURL, "/") {
		cfg.BaseURL += "/"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	executor := cfg.Executor
	if executor == nil {
		executor = NewHTTPExecutor(cfg.Timeout, cfg.UserAgent)
	}

	return &Client{
		executor: executor,
		config:   cfg,
		apiKey:   apiKey,
		logger:   logging.NewLogger("d2api-client"),
	}, nil
}

// SetLogger replaces the client logger.
func (c *Client) SetLogger(logger zerolog.Logger) {
	c.logger = logger
}

// Language returns the language sent with every request.
func (c *Client) Language() string {
	return c.config.Language
}

// buildURL assembles BaseURL + endpoint + query, always carrying the key,
// the language and the response format.
func (c *Client) buildURL(endpoint string, params url.Values) string {
	query := url.Values{}
	for k, v := range params {
		query[k] = v
	}
	query.Set("key", c.apiKey)
	if query.Get("language") == "" {
		query.Set("language", c.config.Language)
	}
	if query.Get("format") == "" {
		query.Set("format", responseFormat)
	}
	return c.config.BaseURL + endpoint + "?" + query.Encode()
}

// redact hides the API key in a built URL.
func (c *Client) redact(rawURL string) string {
	return strings.Replace(rawURL, "key="+url.QueryEscape(c.apiKey), "key="+redactedKey, 1)
}

// envelope is the outer object of every Web API response.
type envelope struct {
	Result   json.RawMessage `json:"result"`
	Response json.RawMessage `json:"response"`
}

// resultStatus carries the in-body status fields some methods report.
type resultStatus struct {
	Status       *int   `json:"status"`
	StatusDetail string `json:"statusDetail"`
	Error        string `json:"error"`
}

// success reports whether an in-body status means success. Match methods
// use 1, econ methods use 200, others omit it.
func (s resultStatus) success() bool {
	return s.Status == nil || *s.Status == 1 || *s.Status == 200
}

// get performs one GET and decodes the result envelope into T.
func get[T any](ctx context.Context, c *Client, endpoint string, params url.Values) (*T, error) {
	fullURL := c.buildURL(endpoint, params)
	if c.config.LogURLs {
		c.logger.Debug().Str("url", c.redact(fullURL)).Msg("Executing Web API request")
	}

	startTime := time.Now()
	defer func() {
		metrics.RequestDuration.WithLabelValues(endpoint).Observe(time.Since(startTime).Seconds())
	}()

	resp, err := c.executor.Execute(ctx, fullURL)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("%s: %w", endpoint, ctxErr)
		}
		if !errors.Is(err, ErrTransport) {
			err = fmt.Errorf("%w: %w", ErrTransport, err)
		}
		metrics.ErrorsTotal.WithLabelValues(string(ErrorClassNetwork)).Inc()
		metrics.RequestsTotal.WithLabelValues(endpoint, "network_error").Inc()
		c.logger.Warn().Err(err).Str("endpoint", endpoint).Msg("Web API request failed")
		return nil, fmt.Errorf("%s: %w", endpoint, err)
	}

	metrics.RequestsTotal.WithLabelValues(endpoint, strconv.Itoa(resp.StatusCode)).Inc()

	if err := statusError(endpoint, resp.StatusCode); err != nil {
		class := classifyStatus(resp.StatusCode)
		metrics.ErrorsTotal.WithLabelValues(string(class)).Inc()

		event := c.logger.Warn()
		if class == ErrorClassAuth {
			event = c.logger.Error()
		}
		event.Str("endpoint", endpoint).
			Int("status", resp.StatusCode).
			Str("error_class", string(class)).
			Msg("Web API request error")
		return nil, err
	}

	return decode[T](endpoint, resp)
}

// decode unwraps the result/response envelope, checks the in-body status
// and unmarshals the payload.
func decode[T any](endpoint string, resp *Response) (*T, error) {
	var env envelope
	if err := json.Unmarshal(resp.Body, &env); err != nil {
		return nil, invalidResponse(endpoint, resp.StatusCode, err)
	}

	payload := env.Result
	if len(payload) == 0 {
		payload = env.Response
	}
	if len(payload) == 0 || bytes.Equal(payload, []byte("null")) {
		return nil, invalidResponse(endpoint, resp.StatusCode, errors.New("missing result envelope"))
	}

	var status resultStatus
	if err := json.Unmarshal(payload, &status); err != nil {
		return nil, invalidResponse(endpoint, resp.StatusCode, err)
	}
	if status.Error != "" || !status.success() {
		message := status.Error
		if message == "" {
			message = status.StatusDetail
		}
		code := 0
		if status.Status != nil {
			code = *status.Status
		}
		metrics.ErrorsTotal.WithLabelValues(string(ErrorClassClient)).Inc()
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Class:      ErrorClassClient,
			Endpoint:   endpoint,
			Message:    fmt.Sprintf("api status %d: %s", code, message),
		}
	}

	var result T
	if err := json.Unmarshal(payload, &result); err != nil {
		return nil, invalidResponse(endpoint, resp.StatusCode, err)
	}
	return &result, nil
}

func invalidResponse(endpoint string, status int, err error) error {
	metrics.ErrorsTotal.WithLabelValues(string(ErrorClassClient)).Inc()
	return &APIError{
		StatusCode: status,
		Class:      ErrorClassClient,
		Endpoint:   endpoint,
		Message:    err.Error(),
		Err:        ErrInvalidResponse,
	}
}

// Close releases resources held by the client.
func (c *Client) Close() error {
	return nil
}
