// Package pagination aggregates the complete match history of one account
// from the Dota 2 Web API.
//
// GetMatchHistory pages are capped: no query can reach more than 500
// matches. Below the cap the aggregator walks pages newest to oldest,
// moving the cursor to one below the smallest match id of each page. At or
// above the cap it lists the heroes and runs the same walk once per hero,
// collecting everything into one result.
//
// Example usage:
//
//	cfg := pagination.DefaultConfig()
//	agg, err := pagination.NewAggregator(apiClient, apiClient, heroLister, cfg)
//	matches, err := agg.AllMatches(ctx, 22202)
//
// The aggregator:
//   - Fetches the first page to learn total_results
//   - Fetches the detail of every summary it sees
//   - Paces every request through one token bucket (default 1 req/s)
//   - Retries transient failures per request (5 attempts, 5s-60s)
//   - Returns either the complete result or an error, never partial data
//
// A hero with 500 or more matches of its own still under-counts: the
// per-hero walk hits the same cap.
package pagination
