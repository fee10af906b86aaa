package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dailydose/dailydose/internal/adapters/clients"
	"github.com/dailydose/dailydose/internal/adapters/clients/acl"
	"github.com/dailydose/dailydose/internal/adapters/kvstore"
	"github.com/dailydose/dailydose/internal/app"
	"github.com/dailydose/dailydose/internal/platform/config"
	"github.com/dailydose/dailydose/internal/platform/logging"
	"github.com/dailydose/dailydose/internal/platform/telemetry"
	"github.com/dailydose/dailydose/internal/ports"
)

// runtime is the fully wired application. Close releases it in reverse
// order of construction.
type runtime struct {
	cfg    *config.Config
	logger *slog.Logger

	telemetry *telemetry.Provider
	store     ports.KeyValueStore
	source    *acl.QuoteClient
	health    *ports.DefaultHealthRegistry

	favorites *app.FavoritesStore
	cache     *app.QuoteCache
	quotes    *app.QuoteService
	settings  *app.SettingsService
	profile   *app.ProfileService
	reminders *app.ReminderService
}

func bootstrap(ctx context.Context, opts *options) (*runtime, error) {
	// 1. Configuration, validated before anything is opened
	cfg, err := config.LoadDir(opts.configDir, opts.profile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	// 2. Logging
	logger := logging.New(&logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: cfg.App.Name,
		Version: Version,
		File: logging.FileConfig{
			Enabled:    cfg.Log.File.Enabled,
			Path:       cfg.Log.File.Path,
			MaxSizeMB:  cfg.Log.File.MaxSizeMB,
			MaxBackups: cfg.Log.File.MaxBackups,
			MaxAgeDays: cfg.Log.File.MaxAgeDays,
			Compress:   cfg.Log.File.Compress,
		},
	})
	logging.SetDefault(logger)

	rt := &runtime{cfg: cfg, logger: logger}

	// 3. Telemetry (noop if disabled)
	rt.telemetry, err = telemetry.New(ctx, &telemetry.Config{
		Enabled:      cfg.Telemetry.Enabled,
		Endpoint:     cfg.Telemetry.Endpoint,
		ServiceName:  cfg.Telemetry.ServiceName,
		Version:      Version,
		Environment:  cfg.App.Environment,
		SamplingRate: cfg.Telemetry.SamplingRate,
	})
	if err != nil {
		return nil, fmt.Errorf("initializing telemetry: %w", err)
	}

	// 4. Storage
	rt.store, err = kvstore.Open(ctx, kvstore.Config{
		Backend:    kvstore.Backend(cfg.Storage.Backend),
		Path:       cfg.Storage.Path,
		DSN:        cfg.Storage.DSN,
		Table:      cfg.Storage.Table,
		SyncWrites: cfg.Storage.SyncWrites,
	}, logger)
	if err != nil {
		return nil, errors.Join(fmt.Errorf("opening storage: %w", err), rt.Close(ctx))
	}

	// 5. Quote API client behind the anti-corruption layer
	httpClient, err := clients.New(&clients.Config{
		BaseURL:     cfg.Services.Quote.BaseURL,
		ServiceName: cfg.Services.Quote.Name,
		UserAgent:   "dailydose/" + Version,
		Timeout:     cfg.Client.Timeout,
		Retry:       cfg.Client.Retry,
		Circuit:     cfg.Client.CircuitBreaker,
		Pool:        cfg.Client.Transport,
		Logger:      logger,
	})
	if err != nil {
		return nil, errors.Join(fmt.Errorf("creating quote API client: %w", err), rt.Close(ctx))
	}

	rt.source = acl.NewQuoteClient(acl.QuoteClientConfig{Client: httpClient, Logger: logger})

	// 6. Application services
	rt.favorites = app.NewFavoritesStore(app.FavoritesStoreConfig{
		Store:      rt.store,
		Logger:     logger,
		MaxRetries: cfg.Favorites.MaxRetries,
	})
	rt.cache = app.NewQuoteCache(app.QuoteCacheConfig{
		Store:  rt.store,
		Clock:  ports.SystemClock{},
		Logger: logger,
		Limit:  cfg.Cache.RecentLimit,
	})
	rt.quotes = app.NewQuoteService(app.QuoteServiceConfig{
		Source:    rt.source,
		Cache:     rt.cache,
		Favorites: rt.favorites,
		Logger:    logger,
	})
	rt.settings = app.NewSettingsService(rt.store, logger)
	rt.profile = app.NewProfileService(rt.store, rt.settings, logger)
	rt.reminders = app.NewReminderService(app.ReminderServiceConfig{
		Quotes:   rt.quotes,
		Settings: rt.settings,
		Logger:   logger,
		Hour:     cfg.Reminder.Hour,
		Minute:   cfg.Reminder.Minute,
	})

	// 7. Health checks for readiness
	rt.health = ports.NewHealthRegistry()
	for _, checker := range []ports.HealthChecker{rt.store, rt.source} {
		if err := rt.health.Register(checker); err != nil {
			return nil, errors.Join(fmt.Errorf("registering health check: %w", err), rt.Close(ctx))
		}
	}

	return rt, nil
}

// Close closes the store and flushes telemetry.
func (rt *runtime) Close(ctx context.Context) error {
	var errs []error

	if rt.store != nil {
		if err := rt.store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing storage: %w", err))
		}
	}

	if rt.telemetry != nil {
		if err := rt.telemetry.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("telemetry shutdown: %w", err))
		}
	}

	return errors.Join(errs...)
}

// withRuntime runs fn against a freshly wired runtime and closes it after.
func withRuntime(ctx context.Context, opts *options, fn func(*runtime) error) (err error) {
	rt, err := bootstrap(ctx, opts)
	if err != nil {
		return err
	}

	defer func() {
		err = errors.Join(err, rt.Close(context.WithoutCancel(ctx)))
	}()

	return fn(rt)
}
