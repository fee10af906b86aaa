// Package app contains application services that orchestrate use cases.
package app

import (
	"context"
	"log/slog"
	"math/rand/v2"

	"github.com/dailydose/dailydose/internal/domain"
	"github.com/dailydose/dailydose/internal/ports"
)

// bulkFetchLimit bounds concurrent requests when importing several favorites.
const bulkFetchLimit = 4

// QuoteService fetches quotes network-first and falls back to the local
// cache when the quote API is unavailable.
type QuoteService struct {
	source    ports.QuoteSource
	cache     *QuoteCache
	favorites *FavoritesStore
	logger    *slog.Logger
	intN      func(n int) int
}

// QuoteServiceConfig contains the dependencies of the quote service.
type QuoteServiceConfig struct {
	Source    ports.QuoteSource
	Cache     *QuoteCache
	Favorites *FavoritesStore
	Logger    *slog.Logger

	// IntN picks an index in [0, n). Defaults to math/rand/v2.IntN.
	IntN func(n int) int
}

// NewQuoteService creates a quote service. It panics if Source, Cache or
// Favorites is nil.
func NewQuoteService(cfg QuoteServiceConfig) *QuoteService {
	if cfg.Source == nil {
		panic("app: quote service requires a quote source")
	}

	if cfg.Cache == nil || cfg.Favorites == nil {
		panic("app: quote service requires a quote cache and favorites store")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	intN := cfg.IntN
	if intN == nil {
		intN = rand.IntN
	}

	return &QuoteService{
		source:    cfg.Source,
		cache:     cfg.Cache,
		favorites: cfg.Favorites,
		logger:    logger,
		intN:      intN,
	}
}

// QuoteOfTheDay returns today's quote from the API and caches it. When the
// API fails, today's cached quote is returned instead.
func (s *QuoteService) QuoteOfTheDay(ctx context.Context) (*domain.Quote, error) {
	q, err := s.source.QuoteOfTheDay(ctx)
	if err == nil {
		s.cache.CacheQOTD(ctx, *q)
		s.cache.RememberQuote(ctx, *q)

		return q, nil
	}

	if cached, ok := s.cache.GetCachedQOTD(ctx); ok {
		s.logger.WarnContext(ctx, "quote of the day unavailable, serving cached copy",
			slog.Any("error", err),
			slog.String("uuid", cached.UUID),
		)

		return cached, nil
	}

	s.logger.ErrorContext(ctx, "failed to fetch quote of the day", slog.Any("error", err))

	return nil, err
}

// RandomQuote picks a uniformly random quote, optionally from one category.
// When the API fails, a random quote from the recent cache is returned.
func (s *QuoteService) RandomQuote(ctx context.Context, category string) (*domain.Quote, error) {
	q, err := s.fetchRandom(ctx, category)
	if err == nil {
		s.cache.RememberQuote(ctx, *q)

		return q, nil
	}

	if domain.IsNotFound(err) {
		return nil, err
	}

	if recent, ok := s.cache.GetCachedQuotes(ctx); ok && len(recent) > 0 {
		pick := recent[s.intN(len(recent))]

		s.logger.WarnContext(ctx, "random quote unavailable, serving cached quote",
			slog.Any("error", err),
			slog.String("uuid", pick.UUID),
		)

		return &pick, nil
	}

	s.logger.ErrorContext(ctx, "failed to fetch random quote",
		slog.String("category", category),
		slog.Any("error", err),
	)

	return nil, err
}

func (s *QuoteService) fetchRandom(ctx context.Context, category string) (*domain.Quote, error) {
	var (
		quotes []domain.Quote
		err    error
	)

	if category == "" {
		quotes, err = s.source.ListQuotes(ctx)
	} else {
		quotes, err = s.source.ListQuotesByCategory(ctx, category)
	}

	if err != nil {
		return nil, err
	}

	uuids := make([]string, 0, len(quotes))
	for i := range quotes {
		if key, ok := quotes[i].Key(); ok {
			uuids = append(uuids, key)
		}
	}

	if len(uuids) == 0 {
		if category == "" {
			return nil, domain.NewNotFoundError("quote", "")
		}

		return nil, domain.NewNotFoundError("quotes in category", category)
	}

	return s.source.QuoteByUUID(ctx, uuids[s.intN(len(uuids))])
}

// QuoteByUUID fetches a single quote.
func (s *QuoteService) QuoteByUUID(ctx context.Context, uuid string) (*domain.Quote, error) {
	s.logger.DebugContext(ctx, "fetching quote", slog.String("uuid", uuid))

	q, err := s.source.QuoteByUUID(ctx, uuid)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to fetch quote",
			slog.String("uuid", uuid),
			slog.Any("error", err),
		)

		return nil, err
	}

	s.cache.RememberQuote(ctx, *q)

	return q, nil
}

// QuoteByLegacyID fetches a quote by the numeric id older favorites were
// saved with, so they can be re-saved under their uuid.
func (s *QuoteService) QuoteByLegacyID(ctx context.Context, id int64) (*domain.Quote, error) {
	q, err := s.source.QuoteByID(ctx, id)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to fetch quote",
			slog.Int64("id", id),
			slog.Any("error", err),
		)

		return nil, err
	}

	s.cache.RememberQuote(ctx, *q)

	return q, nil
}

// Categories lists the quote categories.
func (s *QuoteService) Categories(ctx context.Context) ([]domain.Category, error) {
	categories, err := s.source.Categories(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to fetch categories", slog.Any("error", err))
		return nil, err
	}

	return categories, nil
}

// QuoteView pairs a quote with whether it is a favorite.
type QuoteView struct {
	Quote    *domain.Quote `json:"quote"`
	Favorite bool          `json:"favorite"`
}

// HomeFeed is what the home screen shows.
type HomeFeed struct {
	Today  *QuoteView `json:"today,omitempty"`
	Random *QuoteView `json:"random,omitempty"`
}

// Home fetches today's quote and a random quote concurrently. One failing
// does not hide the other; an error is returned only when both fail.
func (s *QuoteService) Home(ctx context.Context, category string) (*HomeFeed, error) {
	results := ParallelPartial(ctx,
		s.QuoteOfTheDay,
		func(ctx context.Context) (*domain.Quote, error) { return s.RandomQuote(ctx, category) },
	)

	if results[0].Err != nil && results[1].Err != nil {
		return nil, results[0].Err
	}

	favorites := s.favorites.GetFavorites(ctx)

	view := func(r PartialResult[*domain.Quote]) *QuoteView {
		if r.Err != nil {
			return nil
		}

		_, fav := favorites[r.Value.UUID]

		return &QuoteView{Quote: r.Value, Favorite: fav}
	}

	return &HomeFeed{Today: view(results[0]), Random: view(results[1])}, nil
}

// AddFavoritesByUUID fetches each quote and stores it as a favorite. Fetches
// run concurrently; the first failure aborts the import. Only quotes that
// were not favorites already are returned.
func (s *QuoteService) AddFavoritesByUUID(ctx context.Context, uuids []string) ([]domain.Quote, error) {
	fetches := make([]func(context.Context) (*domain.Quote, error), len(uuids))
	for i, uuid := range uuids {
		fetches[i] = func(ctx context.Context) (*domain.Quote, error) {
			return s.source.QuoteByUUID(ctx, uuid)
		}
	}

	quotes, err := ParallelLimit(ctx, bulkFetchLimit, fetches...)
	if err != nil {
		return nil, err
	}

	added := make([]domain.Quote, 0, len(quotes))
	for _, q := range quotes {
		inserted, err := s.favorites.InsertFavorite(ctx, *q)
		if err != nil {
			return added, err
		}

		if inserted {
			added = append(added, *q)
		}
	}

	return added, nil
}
