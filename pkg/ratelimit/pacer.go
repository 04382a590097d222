// Package ratelimit paces requests against the Dota 2 Web API.
//
// The Web API enforces one rate limit per API key across every query, so
// all requests issued on behalf of one key should go through one Pacer.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/Sternrassler/dota2-api-client/pkg/metrics"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// DefaultInterval is the minimum spacing between two paced requests.
const DefaultInterval = 1 * time.Second

// Pacer gates requests with a token bucket of burst 1, so no two paced
// requests are closer together than the configured interval.
type Pacer struct {
	limiter  *rate.Limiter
	interval time.Duration
	logger   zerolog.Logger
}

// NewPacer creates a pacer releasing one request per interval.
// An interval <= 0 disables pacing.
func NewPacer(interval time.Duration, logger zerolog.Logger) *Pacer {
	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}
	return &Pacer{
		limiter:  rate.NewLimiter(limit, 1),
		interval: interval,
		logger:   logger,
	}
}

// Interval returns the configured spacing.
func (p *Pacer) Interval() time.Duration {
	return p.interval
}

// Wait blocks until the next request may be issued or ctx is done.
func (p *Pacer) Wait(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	start := time.Now()
	if err := p.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("pacer wait: %w", err)
	}

	waited := time.Since(start)
	metrics.PacingWaitSeconds.Observe(waited.Seconds())
	if waited > p.interval/2 && p.interval > 0 {
		p.logger.Debug().Dur("waited", waited).Msg("Request paced")
	}
	return nil
}
