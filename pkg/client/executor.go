package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Response is the raw outcome of one Web API request.
type Response struct {
	StatusCode int
	Body       []byte
}

// Executor performs one GET against a fully built URL. It does not retry
// and does not interpret status codes. Network faults are returned wrapped
// in ErrTransport.
type Executor interface {
	Execute(ctx context.Context, url string) (*Response, error)
}

// ExecutorFunc adapts a function to the Executor interface.
type ExecutorFunc func(ctx context.Context, url string) (*Response, error)

// Execute calls f(ctx, url).
func (f ExecutorFunc) Execute(ctx context.Context, url string) (*Response, error) {
	return f(ctx, url)
}

// HTTPExecutor is the default Executor backed by net/http.
type HTTPExecutor struct {
	client    *http.Client
	userAgent string
}

// NewHTTPExecutor creates an executor with the given timeout and User-Agent.
func NewHTTPExecutor(timeout time.Duration, userAgent string) *HTTPExecutor {
	return &HTTPExecutor{
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
	}
}

// SetHTTPClient sets a custom HTTP client (for testing).
func (e *HTTPExecutor) SetHTTPClient(client *http.Client) {
	e.client = client
}

// Execute implements Executor.
func (e *HTTPExecutor) Execute(ctx context.Context, url string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if e.userAgent != "" {
		req.Header.Set("User-Agent", e.userAgent)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response body: %w", ErrTransport, err)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Body:       body,
	}, nil
}
