// Package retry provides a bounded retry combinator with uniformly
// randomized backoff for Dota 2 Web API calls.
package retry

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/Sternrassler/dota2-api-client/pkg/metrics"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// ErrCancelled is returned when the context is cancelled while waiting
// between attempts.
var ErrCancelled = errors.New("retry cancelled")

// Policy holds the configuration for one retrying call site.
type Policy struct {
	// Name labels metrics and log lines (e.g. "match_history").
	Name string

	// MaxAttempts is the maximum number of attempts, including the first.
	MaxAttempts int

	// MinBackoff and MaxBackoff bound the uniformly drawn delay between attempts.
	MinBackoff time.Duration
	MaxBackoff time.Duration

	// Retryable decides whether an error is transient. Nil retries nothing.
	Retryable func(error) bool

	// Logger receives retry events. Zero value uses the global logger.
	Logger *zerolog.Logger
}

// DefaultPolicy returns the Web API defaults: 5 attempts, 5s-60s backoff.
func DefaultPolicy(name string, retryable func(error) bool) Policy {
	return Policy{
		Name:        name,
		MaxAttempts: 5,
		MinBackoff:  5 * time.Second,
		MaxBackoff:  60 * time.Second,
		Retryable:   retryable,
	}
}

// Validate checks the policy bounds.
func (p Policy) Validate() error {
	if p.MaxAttempts < 1 {
		return fmt.Errorf("max attempts must be >= 1 (got %d)", p.MaxAttempts)
	}
	if p.MinBackoff < 0 {
		return fmt.Errorf("min backoff must be >= 0 (got %v)", p.MinBackoff)
	}
	if p.MaxBackoff < p.MinBackoff {
		return fmt.Errorf("max backoff %v is below min backoff %v", p.MaxBackoff, p.MinBackoff)
	}
	return nil
}

// Backoff draws a delay uniformly from [MinBackoff, MaxBackoff].
func (p Policy) Backoff() time.Duration {
	if p.MaxBackoff <= p.MinBackoff {
		return p.MinBackoff
	}
	return p.MinBackoff + time.Duration(rand.Int63n(int64(p.MaxBackoff-p.MinBackoff)+1))
}

func (p Policy) logger() *zerolog.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return &log.Logger
}

// Do runs op until it succeeds, fails with a non-retryable error, or
// MaxAttempts is reached. After exhaustion the last error is returned as is.
func Do[T any](ctx context.Context, p Policy, op func(ctx context.Context) (T, error)) (T, error) {
	var zero T

	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		result, err := op(ctx)
		if err == nil {
			if attempt > 1 {
				p.logger().Info().
					Str("operation", p.Name).
					Int("attempt", attempt).
					Msg("Request succeeded after retry")
			}
			return result, nil
		}
		lastErr = err

		if p.Retryable == nil || !p.Retryable(err) {
			return zero, err
		}

		if attempt == attempts {
			break
		}

		backoff := p.Backoff()
		metrics.RetriesTotal.WithLabelValues(p.Name).Inc()
		metrics.RetryBackoffSeconds.WithLabelValues(p.Name).Observe(backoff.Seconds())

		p.logger().Warn().
			Err(err).
			Str("operation", p.Name).
			Int("attempt", attempt).
			Dur("backoff", backoff).
			Msg("Transient failure, retrying after backoff")

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return zero, fmt.Errorf("%w: %w", ErrCancelled, ctx.Err())
		case <-timer.C:
		}
	}

	metrics.RetryExhaustedTotal.WithLabelValues(p.Name).Inc()
	p.logger().Error().
		Err(lastErr).
		Str("operation", p.Name).
		Int("max_attempts", attempts).
		Msg("Retry attempts exhausted")

	return zero, lastErr
}
