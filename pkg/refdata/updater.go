package refdata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Sternrassler/dota2-api-client/pkg/client"
	"github.com/Sternrassler/dota2-api-client/pkg/logging"
	"github.com/Sternrassler/dota2-api-client/pkg/pagination"
	"github.com/rs/zerolog"
)

// Source is the part of the Web API client the updater needs.
type Source interface {
	GetHeroes(ctx context.Context) (*client.Heroes, error)
	GetGameItems(ctx context.Context) (*client.GameItems, error)
	Language() string
}

// Updater fetches reference data and writes it to a Store.
type Updater struct {
	source Source
	store  Store
	logger zerolog.Logger
	now    func() time.Time
}

// NewUpdater creates an updater.
func NewUpdater(source Source, store Store) *Updater {
	return &Updater{
		source: source,
		store:  store,
		logger: logging.NewLogger("refdata"),
		now:    time.Now,
	}
}

func (u *Updater) key(kind Kind) Key {
	return Key{Kind: kind, Language: u.source.Language()}
}

func (u *Updater) save(ctx context.Context, kind Kind, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", kind, err)
	}
	key := u.key(kind)
	entry := &Entry{
		Kind:      kind,
		Language:  key.language(),
		FetchedAt: u.now().UTC(),
		Data:      data,
	}
	if err := u.store.Set(ctx, key, entry); err != nil {
		return fmt.Errorf("store %s: %w", kind, err)
	}
	return nil
}

// UpdateHeroes fetches the hero list and stores it.
func (u *Updater) UpdateHeroes(ctx context.Context) ([]client.Hero, error) {
	heroes, err := u.source.GetHeroes(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch heroes: %w", err)
	}
	if err := u.save(ctx, KindHeroes, heroes.Heroes); err != nil {
		return nil, err
	}
	u.logger.Info().Int("count", len(heroes.Heroes)).Msg("Hero list updated")
	return heroes.Heroes, nil
}

// UpdateGameItems fetches the item list and stores it.
func (u *Updater) UpdateGameItems(ctx context.Context) ([]client.GameItem, error) {
	items, err := u.source.GetGameItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch game items: %w", err)
	}
	if err := u.save(ctx, KindItems, items.Items); err != nil {
		return nil, err
	}
	u.logger.Info().Int("count", len(items.Items)).Msg("Item list updated")
	return items.Items, nil
}

// Heroes returns the stored hero list, fetching it when missing or older
// than maxAge.
func (u *Updater) Heroes(ctx context.Context, maxAge time.Duration) ([]client.Hero, error) {
	entry, err := u.store.Get(ctx, u.key(KindHeroes))
	switch {
	case errors.Is(err, ErrNotFound):
		return u.UpdateHeroes(ctx)
	case err != nil:
		u.logger.Warn().Err(err).Msg("Stored hero list unreadable, refetching")
		return u.UpdateHeroes(ctx)
	case entry.IsStale(maxAge):
		u.logger.Debug().Dur("age", entry.Age()).Msg("Stored hero list stale, refetching")
		return u.UpdateHeroes(ctx)
	}

	var heroes []client.Hero
	if err := entry.Decode(&heroes); err != nil {
		return nil, fmt.Errorf("%w: heroes: %v", ErrInvalidEntry, err)
	}
	return heroes, nil
}

// GameItems returns the stored item list, fetching it when missing or
// older than maxAge.
func (u *Updater) GameItems(ctx context.Context, maxAge time.Duration) ([]client.GameItem, error) {
	entry, err := u.store.Get(ctx, u.key(KindItems))
	if err != nil || entry.IsStale(maxAge) {
		return u.UpdateGameItems(ctx)
	}

	var items []client.GameItem
	if err := entry.Decode(&items); err != nil {
		return nil, fmt.Errorf("%w: items: %v", ErrInvalidEntry, err)
	}
	return items, nil
}

// HeroLister provides heroes as aggregation fan-out categories.
type HeroLister struct {
	updater *Updater
	maxAge  time.Duration
}

// NewHeroLister creates a lister that refreshes stored heroes older than
// maxAge. A maxAge <= 0 uses whatever is stored.
func NewHeroLister(updater *Updater, maxAge time.Duration) *HeroLister {
	return &HeroLister{updater: updater, maxAge: maxAge}
}

// ListCategories implements pagination.CategoryLister.
func (l *HeroLister) ListCategories(ctx context.Context) ([]pagination.Category, error) {
	heroes, err := l.updater.Heroes(ctx, l.maxAge)
	if err != nil {
		return nil, err
	}

	categories := make([]pagination.Category, 0, len(heroes))
	for _, h := range heroes {
		name := h.LocalizedName
		if name == "" {
			name = h.Name
		}
		categories = append(categories, pagination.Category{ID: h.ID, Name: name})
	}
	return categories, nil
}
