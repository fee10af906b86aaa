package acl

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"

	"github.com/dailydose/dailydose/internal/adapters/clients"
	"github.com/dailydose/dailydose/internal/domain"
	"github.com/dailydose/dailydose/internal/platform/logging"
)

// Quote API routes, relative to the configured base URL.
const (
	pathQuoteOfTheDay = "/quotes/random/of-the-day"
	pathQuotes        = "/quotes"
	pathQuoteByUUID   = "/quotes/uuid/"
	pathCategories    = "/categories"
)

// QuoteClientConfig configures a QuoteClient.
type QuoteClientConfig struct {
	// Client must have its BaseURL pointing at the API root (".../api").
	Client *clients.Client

	Logger *slog.Logger
}

// QuoteClient is the ports.QuoteSource backed by the DailyDose API.
type QuoteClient struct {
	BaseAdapter
	logger *slog.Logger
}

// NewQuoteClient returns a QuoteClient. It panics if cfg.Client is nil.
func NewQuoteClient(cfg QuoteClientConfig) *QuoteClient {
	if cfg.Client == nil {
		panic("QuoteClient: Client is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &QuoteClient{
		BaseAdapter: NewBaseAdapter(cfg.Client, cfg.Client.ServiceName()),
		logger:      logger.With(slog.String("component", "acl.QuoteClient")),
	}
}

// apiQuote is a quote as the API serializes it.
type apiQuote struct {
	ID       int64  `json:"id"`
	UUID     string `json:"uuid"`
	Quote    string `json:"quote"`
	Author   string `json:"author"`
	Category string `json:"category"`
	Type     string `json:"type"`
	Date     string `json:"date"`
}

type apiCategory struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// QuoteOfTheDay fetches today's quote.
func (c *QuoteClient) QuoteOfTheDay(ctx context.Context) (*domain.Quote, error) {
	return c.fetchQuote(ctx, pathQuoteOfTheDay, Target{Operation: "get quote of the day", Entity: "quote of the day"})
}

// QuoteByUUID fetches one quote by uuid.
func (c *QuoteClient) QuoteByUUID(ctx context.Context, uuid string) (*domain.Quote, error) {
	if err := ValidateRequired(uuid, "uuid"); err != nil {
		return nil, err
	}

	return c.fetchQuote(ctx, pathQuoteByUUID+url.PathEscape(uuid),
		Target{Operation: "get quote by uuid", Entity: "quote", ID: uuid})
}

// QuoteByID fetches one quote by its legacy numeric id.
func (c *QuoteClient) QuoteByID(ctx context.Context, id int64) (*domain.Quote, error) {
	if id <= 0 {
		return nil, domain.NewValidationErrorWithValue("id", "must be positive", id)
	}

	sid := strconv.FormatInt(id, 10)
	return c.fetchQuote(ctx, pathQuotes+"/"+sid, Target{Operation: "get quote by id", Entity: "quote", ID: sid})
}

// ListQuotes fetches every quote.
func (c *QuoteClient) ListQuotes(ctx context.Context) ([]domain.Quote, error) {
	return c.fetchQuotes(ctx, nil, Target{Operation: "list quotes", Entity: "quotes"})
}

// ListQuotesByCategory fetches the quotes in category.
func (c *QuoteClient) ListQuotesByCategory(ctx context.Context, category string) ([]domain.Quote, error) {
	if err := ValidateRequired(category, "category"); err != nil {
		return nil, err
	}

	return c.fetchQuotes(ctx, url.Values{"category": {category}},
		Target{Operation: "list quotes by category", Entity: "category", ID: category})
}

// Categories fetches the category list. Unnamed categories are dropped.
func (c *QuoteClient) Categories(ctx context.Context) ([]domain.Category, error) {
	target := Target{Operation: "list categories", Entity: "categories"}
	c.logger.Log(ctx, logging.LevelTrace, "starting request", slog.String("path", pathCategories))

	ext, err := Fetch[[]apiCategory](ctx, &c.BaseAdapter, pathCategories, nil, target)
	if err != nil {
		return nil, err
	}

	return TranslateLenient(*ext, translateCategory, c.skipped(ctx, target.Operation)), nil
}

func (c *QuoteClient) fetchQuote(ctx context.Context, path string, target Target) (*domain.Quote, error) {
	c.logger.Log(ctx, logging.LevelTrace, "starting request", slog.String("path", path))

	ext, err := Fetch[apiQuote](ctx, &c.BaseAdapter, path, nil, target)
	if err != nil {
		return nil, err
	}

	q, err := translateQuote(ext)
	if err != nil {
		return nil, domain.NewUnavailableError(c.ServiceName(), fmt.Errorf("%s: %w", target.Operation, err))
	}

	c.logger.Log(ctx, logging.LevelTrace, "translated quote",
		slog.String("uuid", q.UUID),
		slog.String("author", q.Author))

	return q, nil
}

func (c *QuoteClient) fetchQuotes(ctx context.Context, query url.Values, target Target) ([]domain.Quote, error) {
	c.logger.Log(ctx, logging.LevelTrace, "starting request",
		slog.String("path", pathQuotes),
		slog.String("query", query.Encode()))

	ext, err := Fetch[[]apiQuote](ctx, &c.BaseAdapter, pathQuotes, query, target)
	if err != nil {
		return nil, err
	}

	return TranslateLenient(*ext, translateQuote, c.skipped(ctx, target.Operation)), nil
}

func (c *QuoteClient) skipped(ctx context.Context, operation string) func(int, error) {
	return func(i int, err error) {
		c.logger.DebugContext(ctx, "skipping malformed item",
			slog.String("operation", operation),
			slog.Int("index", i),
			slog.Any("error", err))
	}
}

// translateQuote requires the quote text. A missing uuid is allowed; such
// quotes can be shown but never favorited or cached by key.
func translateQuote(ext *apiQuote) (*domain.Quote, error) {
	if err := ValidateRequired(ext.Quote, "quote"); err != nil {
		return nil, err
	}

	return &domain.Quote{
		ID:       ext.ID,
		UUID:     ext.UUID,
		Text:     ext.Quote,
		Author:   ext.Author,
		Category: ext.Category,
		Type:     ext.Type,
		Date:     ext.Date,
	}, nil
}

func translateCategory(ext *apiCategory) (*domain.Category, error) {
	if err := ValidateRequired(ext.Name, "name"); err != nil {
		return nil, err
	}

	return &domain.Category{ID: ext.ID, Name: ext.Name}, nil
}

// Name implements ports.HealthChecker.
func (c *QuoteClient) Name() string {
	return c.ServiceName()
}

// Check reports the API unhealthy while the circuit is open, and otherwise
// probes the category list, the cheapest route.
func (c *QuoteClient) Check(ctx context.Context) error {
	if stats := c.Client().CircuitStats(); stats.State == clients.StateOpen {
		return fmt.Errorf("circuit open since %s", stats.OpenedAt.Format("15:04:05"))
	}

	body, err := c.Get(ctx, pathCategories, nil, Target{Operation: "health check", Entity: "categories"})
	if err != nil {
		return err
	}

	return body.Close()
}
