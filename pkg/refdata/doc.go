// Package refdata persists Dota 2 reference data (heroes, items) fetched
// from the Web API.
//
// Reference data changes with game patches only, so it is fetched once and
// stored, either as indented JSON files or in Redis.
//
// # Basic Usage
//
//	store := refdata.NewFileStore("./data")
//	updater := refdata.NewUpdater(apiClient, store)
//
//	// Fetch and persist the hero list
//	heroes, err := updater.UpdateHeroes(ctx)
//
//	// Use stored heroes as fan-out categories for the aggregator
//	lister := refdata.NewHeroLister(updater, 7*24*time.Hour)
//	agg, err := pagination.NewAggregator(apiClient, apiClient, lister, cfg)
//
// # Redis Backend
//
//	redisClient := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
//	store := refdata.NewRedisStore(redisClient, 0)
//
// A TTL of 0 keeps entries until they are overwritten.
//
// # Key Format
//
//	d2:refdata:<kind>:language=<lang>
//
// Example: d2:refdata:heroes:language=en_us
package refdata
