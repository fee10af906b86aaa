package app

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"

	"github.com/dailydose/dailydose/internal/domain"
	"github.com/dailydose/dailydose/internal/ports"
)

// Storage keys owned by the quote cache.
const (
	KeyCachedQuotes = "cachedQuotes"
	KeyCachedQOTD   = "cachedQOTD"
)

// DefaultRecentLimit caps the recent-quotes list.
const DefaultRecentLimit = 30

const dateLayout = "2006-01-02"

// cachedQOTD is the persisted quote-of-the-day slot.
type cachedQOTD struct {
	Date  string       `json:"date"`
	Quote domain.Quote `json:"quote"`
}

// QuoteCache keeps the recently fetched quotes and today's quote so the
// service can answer when the quote API is unreachable. Write failures are
// logged and swallowed; read failures look like an empty cache.
type QuoteCache struct {
	kv     ports.KeyValueStore
	clock  ports.Clock
	logger *slog.Logger
	limit  int

	mu sync.Mutex
}

// QuoteCacheConfig contains the dependencies of the quote cache.
type QuoteCacheConfig struct {
	Store  ports.KeyValueStore
	Clock  ports.Clock
	Logger *slog.Logger
	Limit  int
}

// NewQuoteCache creates a quote cache. It panics if Store is nil.
func NewQuoteCache(cfg QuoteCacheConfig) *QuoteCache {
	if cfg.Store == nil {
		panic("app: quote cache requires a key-value store")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	clock := cfg.Clock
	if clock == nil {
		clock = ports.SystemClock{}
	}

	limit := cfg.Limit
	if limit <= 0 {
		limit = DefaultRecentLimit
	}

	return &QuoteCache{
		kv:     cfg.Store,
		clock:  clock,
		logger: logger.With(slog.String("component", "quote_cache")),
		limit:  limit,
	}
}

// CacheQuotes replaces the recent list with quotes, deduplicated by uuid and
// truncated to the limit.
func (c *QuoteCache) CacheQuotes(ctx context.Context, quotes []domain.Quote) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.storeRecent(ctx, quotes)
}

// GetCachedQuotes returns the recent list, or false when nothing usable is stored.
func (c *QuoteCache) GetCachedQuotes(ctx context.Context) ([]domain.Quote, bool) {
	var quotes []domain.Quote
	if !c.read(ctx, KeyCachedQuotes, &quotes) || quotes == nil {
		return nil, false
	}

	return quotes, true
}

// RememberQuote moves q to the front of the recent list.
func (c *QuoteCache) RememberQuote(ctx context.Context, q domain.Quote) {
	if _, ok := q.Key(); !ok {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	existing, _ := c.GetCachedQuotes(ctx)

	recent := make([]domain.Quote, 0, len(existing)+1)
	recent = append(recent, q)

	for _, old := range existing {
		if old.UUID != q.UUID {
			recent = append(recent, old)
		}
	}

	c.storeRecent(ctx, recent)
}

// CacheQOTD stores q as today's quote, replacing any earlier entry.
func (c *QuoteCache) CacheQOTD(ctx context.Context, q domain.Quote) {
	c.write(ctx, KeyCachedQOTD, cachedQOTD{Date: c.today(), Quote: q})
}

// GetCachedQOTD returns the cached quote of the day if it was stored today.
// Entries from earlier days are ignored but left in place.
func (c *QuoteCache) GetCachedQOTD(ctx context.Context) (*domain.Quote, bool) {
	var entry cachedQOTD
	if !c.read(ctx, KeyCachedQOTD, &entry) {
		return nil, false
	}

	if entry.Date != c.today() {
		c.logger.DebugContext(ctx, "cached quote of the day is stale", slog.String("date", entry.Date))
		return nil, false
	}

	return &entry.Quote, true
}

func (c *QuoteCache) today() string {
	return c.clock.Now().Format(dateLayout)
}

func (c *QuoteCache) storeRecent(ctx context.Context, quotes []domain.Quote) {
	recent := domain.DedupeQuotes(quotes)
	if len(recent) > c.limit {
		recent = recent[:c.limit]
	}

	c.write(ctx, KeyCachedQuotes, recent)
}

func (c *QuoteCache) read(ctx context.Context, key string, dest any) bool {
	entry, err := c.kv.Get(ctx, key)
	if errors.Is(err, ports.ErrKeyNotFound) {
		return false
	}

	if err != nil {
		c.logger.WarnContext(ctx, "reading cache failed", slog.String("key", key), slog.Any("error", err))
		return false
	}

	if err := json.Unmarshal(entry.Value, dest); err != nil {
		c.logger.WarnContext(ctx, "decoding cache failed", slog.String("key", key), slog.Any("error", err))
		return false
	}

	return true
}

func (c *QuoteCache) write(ctx context.Context, key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		c.logger.WarnContext(ctx, "encoding cache failed", slog.String("key", key), slog.Any("error", err))
		return
	}

	if _, err := c.kv.Set(ctx, key, data); err != nil {
		c.logger.WarnContext(ctx, "writing cache failed", slog.String("key", key), slog.Any("error", err))
	}
}
