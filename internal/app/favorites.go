package app

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"slices"
	"sync"

	"github.com/dailydose/dailydose/internal/domain"
	"github.com/dailydose/dailydose/internal/ports"
)

// KeyFavorites is the storage key of the favorites map.
const KeyFavorites = "favorite_quotes"

// DefaultMaxCASRetries bounds how often a favorites mutation is retried
// after losing a compare-and-swap race.
const DefaultMaxCASRetries = 5

// FavoritesStore persists liked quotes keyed by uuid.
//
// Mutations are serialized by a mutex within the process and applied with a
// versioned compare-and-swap so writers in other processes sharing the same
// backend cannot overwrite each other.
type FavoritesStore struct {
	kv         ports.KeyValueStore
	logger     *slog.Logger
	maxRetries int

	mu sync.Mutex
}

// FavoritesStoreConfig contains the dependencies of the favorites store.
type FavoritesStoreConfig struct {
	Store      ports.KeyValueStore
	Logger     *slog.Logger
	MaxRetries int
}

// NewFavoritesStore creates a favorites store. It panics if Store is nil.
func NewFavoritesStore(cfg FavoritesStoreConfig) *FavoritesStore {
	if cfg.Store == nil {
		panic("app: favorites store requires a key-value store")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	retries := cfg.MaxRetries
	if retries <= 0 {
		retries = DefaultMaxCASRetries
	}

	return &FavoritesStore{
		kv:         cfg.Store,
		logger:     logger.With(slog.String("component", "favorites")),
		maxRetries: retries,
	}
}

// GetFavorites returns every favorite keyed by uuid. It never fails: read or
// decode errors are logged and an empty map is returned. A legacy list value
// is converted and written back once.
func (s *FavoritesStore) GetFavorites(ctx context.Context) map[string]domain.Quote {
	favorites, version, migrated, err := s.load(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "reading favorites failed, treating as empty", slog.Any("error", err))
		return map[string]domain.Quote{}
	}

	if migrated {
		s.writeBack(ctx, favorites, version)
	}

	return favorites
}

// IsFavorite reports whether uuid is a favorite.
func (s *FavoritesStore) IsFavorite(ctx context.Context, uuid string) bool {
	_, ok := s.GetFavorites(ctx)[uuid]
	return ok
}

// Favorite returns a single favorite or a NotFoundError.
func (s *FavoritesStore) Favorite(ctx context.Context, uuid string) (*domain.Quote, error) {
	q, ok := s.GetFavorites(ctx)[uuid]
	if !ok {
		return nil, domain.NewNotFoundError("favorite", uuid)
	}

	return &q, nil
}

// AddFavorite stores q. Quotes without a uuid and quotes already present
// are ignored. The write is durable when AddFavorite returns nil.
func (s *FavoritesStore) AddFavorite(ctx context.Context, q domain.Quote) error {
	_, err := s.InsertFavorite(ctx, q)
	return err
}

// InsertFavorite is AddFavorite that also reports whether q was stored.
// It returns false for a quote without a uuid or one already present.
func (s *FavoritesStore) InsertFavorite(ctx context.Context, q domain.Quote) (bool, error) {
	key, ok := q.Key()
	if !ok {
		s.logger.DebugContext(ctx, "ignoring favorite without uuid")
		return false, nil
	}

	var inserted bool

	err := s.mutate(ctx, func(favorites map[string]domain.Quote) bool {
		if _, exists := favorites[key]; exists {
			inserted = false
			return false
		}

		favorites[key] = q
		inserted = true

		return true
	})
	if err != nil {
		return false, err
	}

	return inserted, nil
}

// RemoveFavorite deletes uuid. Removing an absent uuid is a no-op.
func (s *FavoritesStore) RemoveFavorite(ctx context.Context, uuid string) error {
	return s.mutate(ctx, func(favorites map[string]domain.Quote) bool {
		if _, exists := favorites[uuid]; !exists {
			return false
		}

		delete(favorites, uuid)

		return true
	})
}

// ToggleFavorite adds q when absent and removes it when present. It returns
// whether q is a favorite afterwards.
func (s *FavoritesStore) ToggleFavorite(ctx context.Context, q domain.Quote) (bool, error) {
	key, ok := q.Key()
	if !ok {
		return false, domain.NewValidationError("uuid", "quote has no uuid")
	}

	var now bool

	err := s.mutate(ctx, func(favorites map[string]domain.Quote) bool {
		if _, exists := favorites[key]; exists {
			delete(favorites, key)
			now = false
		} else {
			favorites[key] = q
			now = true
		}

		return true
	})
	if err != nil {
		return false, err
	}

	return now, nil
}

// ListFavorites returns up to limit favorites ordered by uuid, starting
// after the given uuid. An empty after starts from the beginning.
func (s *FavoritesStore) ListFavorites(ctx context.Context, after string, limit int) []domain.Quote {
	favorites := s.GetFavorites(ctx)

	keys := make([]string, 0, len(favorites))
	for k := range favorites {
		if k > after {
			keys = append(keys, k)
		}
	}

	slices.Sort(keys)

	if limit > 0 && len(keys) > limit {
		keys = keys[:limit]
	}

	out := make([]domain.Quote, 0, len(keys))
	for _, k := range keys {
		out = append(out, favorites[k])
	}

	return out
}

// load reads and decodes the favorites value. A missing key is an empty map
// at version 0. A value that cannot be decoded is reported as an error along
// with the version it was stored at, so a mutation can replace it.
func (s *FavoritesStore) load(ctx context.Context) (map[string]domain.Quote, uint64, bool, error) {
	entry, err := s.kv.Get(ctx, KeyFavorites)
	if errors.Is(err, ports.ErrKeyNotFound) {
		return map[string]domain.Quote{}, 0, false, nil
	}

	if err != nil {
		return nil, 0, false, err
	}

	favorites, applied, err := decodeFavorites(entry.Value)
	if err != nil {
		return nil, entry.Version, false, &corruptValueError{err: err}
	}

	if len(applied) > 0 {
		s.logger.InfoContext(ctx, "migrated favorites",
			slog.Any("steps", applied),
			slog.Int("count", len(favorites)),
		)
	}

	return favorites, entry.Version, len(applied) > 0, nil
}

func (s *FavoritesStore) writeBack(ctx context.Context, favorites map[string]domain.Quote, version uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(favorites)
	if err != nil {
		s.logger.WarnContext(ctx, "encoding migrated favorites failed", slog.Any("error", err))
		return
	}

	// Losing the race is fine: the winner wrote the current shape.
	if _, err := s.kv.CompareAndSwap(ctx, KeyFavorites, version, data); err != nil &&
		!errors.Is(err, ports.ErrVersionMismatch) {
		s.logger.WarnContext(ctx, "writing migrated favorites failed", slog.Any("error", err))
	}
}

// mutate applies fn to the current favorites and persists the result when fn
// reports a change. Lost races are retried up to maxRetries times.
func (s *FavoritesStore) mutate(ctx context.Context, fn func(map[string]domain.Quote) bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for attempt := 1; attempt <= s.maxRetries; attempt++ {
		favorites, version, _, err := s.load(ctx)

		var corrupt *corruptValueError
		switch {
		case errors.As(err, &corrupt):
			s.logger.WarnContext(ctx, "replacing unreadable favorites", slog.Any("error", err))
			favorites = map[string]domain.Quote{}
		case err != nil:
			return domain.NewUnavailableError("favorites", err)
		}

		if !fn(favorites) {
			return nil
		}

		data, err := json.Marshal(favorites)
		if err != nil {
			return domain.NewUnavailableError("favorites", err)
		}

		_, err = s.kv.CompareAndSwap(ctx, KeyFavorites, version, data)
		if err == nil {
			return nil
		}

		if !errors.Is(err, ports.ErrVersionMismatch) {
			return domain.NewUnavailableError("favorites", err)
		}

		s.logger.DebugContext(ctx, "favorites changed concurrently, retrying", slog.Int("attempt", attempt))
	}

	return domain.NewConflictError(KeyFavorites, s.maxRetries)
}

type corruptValueError struct {
	err error
}

func (e *corruptValueError) Error() string { return e.err.Error() }
func (e *corruptValueError) Unwrap() error { return e.err }
