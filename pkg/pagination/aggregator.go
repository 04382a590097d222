package pagination

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Sternrassler/dota2-api-client/pkg/client"
	"github.com/Sternrassler/dota2-api-client/pkg/logging"
	"github.com/Sternrassler/dota2-api-client/pkg/metrics"
	"github.com/Sternrassler/dota2-api-client/pkg/ratelimit"
	"github.com/Sternrassler/dota2-api-client/pkg/retry"
	"github.com/rs/zerolog"
)

// DefaultCap is the number of results a single history query can reach.
const DefaultCap = 500

var (
	// ErrPaginationStalled is returned when the cursor cannot advance while
	// results remain.
	ErrPaginationStalled = errors.New("pagination stalled")

	// ErrNoCategories is returned when the fan-out path is needed but no
	// CategoryLister is configured or it returned nothing.
	ErrNoCategories = errors.New("no categories available for fan-out")
)

// HistoryFetcher fetches one page of match history. Category 0 means no
// hero restriction; cursor 0 means newest.
type HistoryFetcher interface {
	FetchPage(ctx context.Context, filter client.Filter, cursor int64, category int) (*client.HistoryPage, error)
}

// DetailFetcher fetches the full record of one match.
type DetailFetcher interface {
	GetMatchDetails(ctx context.Context, matchID int64) (*client.MatchDetail, error)
}

// Category is one fan-out partition (a hero).
type Category struct {
	ID   int
	Name string
}

// CategoryLister lists the fan-out partitions.
type CategoryLister interface {
	ListCategories(ctx context.Context) ([]Category, error)
}

// Config holds aggregator configuration.
type Config struct {
	// Cap is the total_results threshold that switches to per-hero fan-out.
	Cap int

	// PacingInterval spaces upstream requests. Ignored when Pacer is set.
	PacingInterval time.Duration

	// Pacer shares one limiter between aggregators using the same API key.
	Pacer *ratelimit.Pacer

	// PageRetry and DetailRetry govern the two call sites separately.
	PageRetry   retry.Policy
	DetailRetry retry.Policy

	// MatchesRequested is the page size sent when the filter has none.
	MatchesRequested int

	// Observer receives progress callbacks. Nil disables them.
	Observer Observer
}

// DefaultConfig returns the Web API defaults.
func DefaultConfig() Config {
	return Config{
		Cap:            DefaultCap,
		PacingInterval: ratelimit.DefaultInterval,
		PageRetry:      retry.DefaultPolicy("match_history", client.IsTransient),
		DetailRetry:    retry.DefaultPolicy("match_details", client.IsTransient),
	}
}

// Aggregator collects every match of an account. It is not safe for
// concurrent Collect calls sharing one Observer.
type Aggregator struct {
	history    HistoryFetcher
	details    DetailFetcher
	categories CategoryLister
	pacer      *ratelimit.Pacer
	config     Config
	logger     zerolog.Logger
}

// NewAggregator creates an aggregator. categories may be nil when fan-out
// is never expected; Collect then fails with ErrNoCategories above the cap.
func NewAggregator(history HistoryFetcher, details DetailFetcher, categories CategoryLister, cfg Config) (*Aggregator, error) {
	if history == nil {
		return nil, errors.New("history fetcher is required")
	}
	if details == nil {
		return nil, errors.New("detail fetcher is required")
	}
	if cfg.Cap <= 0 {
		return nil, fmt.Errorf("cap must be positive (got %d)", cfg.Cap)
	}
	if cfg.MatchesRequested < 0 {
		return nil, fmt.Errorf("matches requested must be >= 0 (got %d)", cfg.MatchesRequested)
	}
	if cfg.PageRetry.Retryable == nil {
		cfg.PageRetry.Retryable = client.IsTransient
	}
	if cfg.DetailRetry.Retryable == nil {
		cfg.DetailRetry.Retryable = client.IsTransient
	}
	if err := cfg.PageRetry.Validate(); err != nil {
		return nil, fmt.Errorf("page retry: %w", err)
	}
	if err := cfg.DetailRetry.Validate(); err != nil {
		return nil, fmt.Errorf("detail retry: %w", err)
	}

	logger := logging.NewLogger("aggregator")
	pacer := cfg.Pacer
	if pacer == nil {
		pacer = ratelimit.NewPacer(cfg.PacingInterval, logger)
	}
	if cfg.PageRetry.Logger == nil {
		cfg.PageRetry.Logger = &logger
	}
	if cfg.DetailRetry.Logger == nil {
		cfg.DetailRetry.Logger = &logger
	}

	return &Aggregator{
		history:    history,
		details:    details,
		categories: categories,
		pacer:      pacer,
		config:     cfg,
		logger:     logger,
	}, nil
}

// SetLogger replaces the aggregator logger.
func (a *Aggregator) SetLogger(logger zerolog.Logger) {
	a.logger = logger
	a.config.PageRetry.Logger = &a.logger
	a.config.DetailRetry.Logger = &a.logger
}

// AllMatches returns the details of every match played by accountID.
func (a *Aggregator) AllMatches(ctx context.Context, accountID int64) ([]client.MatchDetail, error) {
	return a.Collect(ctx, client.Filter{AccountID: accountID})
}

// Collect returns the details of every match reachable with filter, in
// walk order. Any unrecovered error discards the partial result.
func (a *Aggregator) Collect(ctx context.Context, filter client.Filter) ([]client.MatchDetail, error) {
	if filter.MatchesRequested == 0 {
		filter.MatchesRequested = a.config.MatchesRequested
	}

	start := time.Now()
	log := a.logger.With().Int64("account_id", filter.AccountID).Logger()

	results, err := a.collect(ctx, filter, log)
	if err != nil {
		metrics.AggregationsTotal.WithLabelValues("error").Inc()
		log.Error().Err(err).Dur("elapsed", time.Since(start)).Msg("Match aggregation aborted")
		return nil, err
	}

	metrics.AggregationsTotal.WithLabelValues("success").Inc()
	log.Info().
		Int("matches", len(results)).
		Dur("elapsed", time.Since(start)).
		Msg("Match aggregation complete")
	return results, nil
}

func (a *Aggregator) collect(ctx context.Context, filter client.Filter, log zerolog.Logger) ([]client.MatchDetail, error) {
	first, err := a.fetchPage(ctx, filter, 0, 0)
	if err != nil {
		return nil, err
	}

	var results []client.MatchDetail

	// A filter already bound to one hero cannot be partitioned further.
	if first.TotalResults < a.config.Cap || filter.HeroID != 0 {
		log.Info().
			Int("total_results", first.TotalResults).
			Msg("Walking match history")
		if err := a.walk(ctx, filter, Category{}, first, "walk", &results); err != nil {
			return nil, err
		}
		return results, nil
	}

	categories, err := a.listCategories(ctx)
	if err != nil {
		return nil, err
	}
	log.Info().
		Int("total_results", first.TotalResults).
		Int("categories", len(categories)).
		Msg("History above cap, fanning out per hero")

	for i, cat := range categories {
		if a.config.Observer != nil {
			a.config.Observer.CategoryStarted(CategoryProgress{
				Index:    i,
				Count:    len(categories),
				Category: cat,
				Fetched:  len(results),
			})
		}
		if err := a.walk(ctx, filter, cat, nil, "fanout", &results); err != nil {
			return nil, err
		}
	}
	return results, nil
}

// walk pages through one category, appending details to out. first, when
// non-nil, is used as the initial page instead of fetching it.
func (a *Aggregator) walk(ctx context.Context, filter client.Filter, cat Category, first *client.HistoryPage, mode string, out *[]client.MatchDetail) error {
	page := first
	var cursor int64
	pageNum := 0

	for {
		if page == nil {
			var err error
			page, err = a.fetchPage(ctx, filter, cursor, cat.ID)
			if err != nil {
				return err
			}
		}
		pageNum++
		metrics.PagesFetchedTotal.WithLabelValues(mode).Inc()

		for _, summary := range page.Matches {
			detail, err := a.fetchDetail(ctx, summary.MatchID)
			if err != nil {
				return err
			}
			*out = append(*out, *detail)
		}

		if a.config.Observer != nil {
			a.config.Observer.PageFetched(PageProgress{
				Category:  cat,
				Page:      pageNum,
				Cursor:    cursor,
				Matches:   len(page.Matches),
				Remaining: page.ResultsRemaining,
				Total:     page.TotalResults,
				Fetched:   len(*out),
			})
		}

		a.logger.Debug().
			Int("hero_id", cat.ID).
			Int64("cursor", cursor).
			Int("page", pageNum).
			Int("matches", len(page.Matches)).
			Int("results_remaining", page.ResultsRemaining).
			Msg("Page processed")

		if page.ResultsRemaining <= 0 {
			return nil
		}
		if len(page.Matches) == 0 {
			return fmt.Errorf("%w: empty page with %d results remaining (hero %d, cursor %d)",
				ErrPaginationStalled, page.ResultsRemaining, cat.ID, cursor)
		}

		next := minMatchID(page.Matches) - 1
		if next <= 0 || (cursor != 0 && next >= cursor) {
			return fmt.Errorf("%w: cursor %d does not advance past %d (hero %d)",
				ErrPaginationStalled, next, cursor, cat.ID)
		}
		cursor = next
		page = nil
	}
}

func (a *Aggregator) fetchPage(ctx context.Context, filter client.Filter, cursor int64, category int) (*client.HistoryPage, error) {
	page, err := retry.Do(ctx, a.config.PageRetry, func(ctx context.Context) (*client.HistoryPage, error) {
		if err := a.pacer.Wait(ctx); err != nil {
			return nil, err
		}
		return a.history.FetchPage(ctx, filter, cursor, category)
	})
	if err != nil {
		return nil, fmt.Errorf("fetch history page (hero %d, cursor %d): %w", category, cursor, err)
	}
	return page, nil
}

func (a *Aggregator) fetchDetail(ctx context.Context, matchID int64) (*client.MatchDetail, error) {
	detail, err := retry.Do(ctx, a.config.DetailRetry, func(ctx context.Context) (*client.MatchDetail, error) {
		if err := a.pacer.Wait(ctx); err != nil {
			return nil, err
		}
		return a.details.GetMatchDetails(ctx, matchID)
	})
	if err != nil {
		return nil, fmt.Errorf("fetch match %d: %w", matchID, err)
	}
	metrics.DetailsFetchedTotal.Inc()
	return detail, nil
}

func (a *Aggregator) listCategories(ctx context.Context) ([]Category, error) {
	if a.categories == nil {
		return nil, ErrNoCategories
	}

	policy := a.config.PageRetry
	policy.Name = "categories"
	categories, err := retry.Do(ctx, policy, func(ctx context.Context) ([]Category, error) {
		if err := a.pacer.Wait(ctx); err != nil {
			return nil, err
		}
		return a.categories.ListCategories(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	if len(categories) == 0 {
		return nil, ErrNoCategories
	}
	return categories, nil
}

func minMatchID(matches []client.MatchSummary) int64 {
	min := matches[0].MatchID
	for _, m := range matches[1:] {
		if m.MatchID < min {
			min = m.MatchID
		}
	}
	return min
}
