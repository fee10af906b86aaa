package benchmark

import (
	"context"
	"errors"

	"github.com/dailydose/dailydose/internal/domain"
)

var errUnused = errors.New("quote source not used in benchmarks")

// unusedSource satisfies ports.QuoteSource for routes that never fetch.
type unusedSource struct{}

func (unusedSource) QuoteOfTheDay(context.Context) (*domain.Quote, error) { return nil, errUnused }

func (unusedSource) QuoteByUUID(context.Context, string) (*domain.Quote, error) {
	return nil, errUnused
}

func (unusedSource) QuoteByID(context.Context, int64) (*domain.Quote, error) { return nil, errUnused }

func (unusedSource) ListQuotes(context.Context) ([]domain.Quote, error) { return nil, errUnused }

func (unusedSource) ListQuotesByCategory(context.Context, string) ([]domain.Quote, error) {
	return nil, errUnused
}

func (unusedSource) Categories(context.Context) ([]domain.Category, error) { return nil, errUnused }
