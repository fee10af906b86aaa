// Package ports defines the contracts the application layer depends on.
// Adapters implement them; the app package never imports an adapter.
//
// Conventions:
//   - Context is the first parameter of anything that blocks
//   - Methods return domain types, never wire DTOs or driver rows
//   - Failures are reported with domain sentinels (ErrNotFound, ErrUnavailable, ...)
package ports

import (
	"context"
	"errors"
	"time"

	"github.com/dailydose/dailydose/internal/domain"
)

// QuoteSource is the remote quote API.
//
// Every method returns domain.ErrUnavailable (wrapped) when the API cannot
// be reached or answers with a server error, so callers can fall back to
// locally cached data.
type QuoteSource interface {
	// QuoteOfTheDay returns the quote the API selected for today.
	QuoteOfTheDay(ctx context.Context) (*domain.Quote, error)

	// ListQuotes returns every quote the API knows about.
	ListQuotes(ctx context.Context) ([]domain.Quote, error)

	// ListQuotesByCategory returns the quotes in one category.
	ListQuotesByCategory(ctx context.Context, category string) ([]domain.Quote, error)

	// QuoteByUUID fetches a single quote. Returns domain.ErrNotFound if absent.
	QuoteByUUID(ctx context.Context, uuid string) (*domain.Quote, error)

	// QuoteByID fetches a quote by its legacy numeric id.
	QuoteByID(ctx context.Context, id int64) (*domain.Quote, error)

	// Categories lists the categories quotes can be filtered by.
	Categories(ctx context.Context) ([]domain.Category, error)
}

// Storage errors. Adapters return these unwrapped so callers can use errors.Is.
var (
	// ErrKeyNotFound is returned by Get when the key has never been written or was deleted.
	ErrKeyNotFound = errors.New("key not found")

	// ErrVersionMismatch is returned by CompareAndSwap when the stored version
	// differs from the expected one.
	ErrVersionMismatch = errors.New("version mismatch")
)

// Entry is a stored value and the version it was written at.
// Version 0 never appears on a stored entry; it denotes "absent" in CompareAndSwap.
type Entry struct {
	Value   []byte
	Version uint64
}

// KeyValueStore is the durable on-device store. Values are opaque JSON
// documents; versions increase monotonically per key.
type KeyValueStore interface {
	HealthChecker

	// Get returns the entry for key or ErrKeyNotFound.
	Get(ctx context.Context, key string) (Entry, error)

	// Set writes value unconditionally and returns the new version.
	Set(ctx context.Context, key string, value []byte) (uint64, error)

	// CompareAndSwap writes value only if the stored version equals expected.
	// An expected version of 0 means the key must not exist yet.
	// Returns ErrVersionMismatch when the condition does not hold.
	CompareAndSwap(ctx context.Context, key string, expected uint64, value []byte) (uint64, error)

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the underlying handle.
	Close() error
}

// Clock supplies the current time. The quote-of-the-day cache is keyed by
// the local calendar date, so tests substitute a fixed clock.
type Clock interface {
	Now() time.Time
}

// SystemClock is the wall clock.
type SystemClock struct{}

// Now returns time.Now().
func (SystemClock) Now() time.Time { return time.Now() }
