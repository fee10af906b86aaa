//go:build integration

package integration

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dailydose/dailydose/internal/adapters/clients"
	"github.com/dailydose/dailydose/internal/adapters/clients/acl"
	httpadapter "github.com/dailydose/dailydose/internal/adapters/http"
	"github.com/dailydose/dailydose/internal/adapters/http/handlers"
	"github.com/dailydose/dailydose/internal/adapters/kvstore"
	"github.com/dailydose/dailydose/internal/app"
	"github.com/dailydose/dailydose/internal/domain"
	"github.com/dailydose/dailydose/internal/platform/config"
	"github.com/dailydose/dailydose/internal/ports"
)

// fakeAPI is an in-memory stand-in for the remote quote API.
type fakeAPI struct {
	mu     sync.Mutex
	quotes map[string]domain.Quote
	qotd   string
	down   bool
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{quotes: make(map[string]domain.Quote)}
}

func (f *fakeAPI) put(q domain.Quote) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.quotes[q.UUID] = q
}

func (f *fakeAPI) setQOTD(uuid string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.qotd = uuid
}

func (f *fakeAPI) setDown(down bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.down = down
}

func (f *fakeAPI) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /quotes/random/of-the-day", func(w http.ResponseWriter, _ *http.Request) {
		f.mu.Lock()
		q, ok := f.quotes[f.qotd]
		f.mu.Unlock()

		f.reply(w, q, ok)
	})
	mux.HandleFunc("GET /quotes/uuid/{uuid}", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		q, ok := f.quotes[r.PathValue("uuid")]
		f.mu.Unlock()

		f.reply(w, q, ok)
	})
	mux.HandleFunc("GET /quotes", func(w http.ResponseWriter, r *http.Request) {
		category := r.URL.Query().Get("category")

		f.mu.Lock()
		list := make([]domain.Quote, 0, len(f.quotes))
		for _, q := range f.quotes {
			if category == "" || q.Category == category {
				list = append(list, q)
			}
		}
		f.mu.Unlock()

		f.reply(w, list, true)
	})
	mux.HandleFunc("GET /categories", func(w http.ResponseWriter, _ *http.Request) {
		f.reply(w, []domain.Category{{ID: 1, Name: "wisdom"}}, true)
	})

	return mux
}

func (f *fakeAPI) reply(w http.ResponseWriter, v any, found bool) {
	f.mu.Lock()
	down := f.down
	f.mu.Unlock()

	switch {
	case down:
		w.WriteHeader(http.StatusServiceUnavailable)
	case !found:
		w.WriteHeader(http.StatusNotFound)
	default:
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(v)
	}
}

// testClientConfig returns a quote API client config with fast retries.
func testClientConfig(baseURL string) *clients.Config {
	return &clients.Config{
		ServiceName: "quote-api",
		BaseURL:     baseURL,
		Timeout:     5 * time.Second,
		Retry: config.RetryConfig{
			MaxAttempts:     2,
			InitialInterval: 10 * time.Millisecond,
			MaxInterval:     50 * time.Millisecond,
			Multiplier:      2.0,
		},
		Circuit: config.CircuitBreakerConfig{
			MaxFailures:   100,
			Timeout:       time.Second,
			HalfOpenLimit: 1,
		},
		Logger: discardLogger(),
	}
}

// service is the dailydose API wired against a fake quote API and an
// in-memory store.
type service struct {
	api       *fakeAPI
	apiServer *httptest.Server
	server    *httptest.Server
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func startService() (*service, error) {
	logger := discardLogger()

	api := newFakeAPI()
	apiServer := httptest.NewServer(api.handler())

	client, err := clients.New(testClientConfig(apiServer.URL))
	if err != nil {
		apiServer.Close()
		return nil, fmt.Errorf("creating client: %w", err)
	}

	source := acl.NewQuoteClient(acl.QuoteClientConfig{Client: client, Logger: logger})
	kv := kvstore.NewMemory()

	favorites := app.NewFavoritesStore(app.FavoritesStoreConfig{Store: kv, Logger: logger})
	cache := app.NewQuoteCache(app.QuoteCacheConfig{Store: kv, Logger: logger})
	quotes := app.NewQuoteService(app.QuoteServiceConfig{
		Source:    source,
		Cache:     cache,
		Favorites: favorites,
		Logger:    logger,
	})
	settings := app.NewSettingsService(kv, logger)

	registry := ports.NewHealthRegistry()
	if err := registry.Register(kv); err != nil {
		apiServer.Close()
		return nil, err
	}

	reg := prometheus.NewRegistry()
	srv := httpadapter.New(&config.ServerConfig{MaxRequestSize: 1 << 20}, logger)
	httpadapter.SetupRouter(srv.Engine(), httpadapter.RouterConfig{
		Logger:      logger,
		ServiceName: "dailydose",
		Timeout:     5 * time.Second,
		Registerer:  reg,
		Health:      handlers.NewHealthHandler(registry, handlers.NewBuildInfo("integration", "none", ""), reg),
		Services: httpadapter.Services{
			Quotes:    quotes,
			Favorites: favorites,
			Cache:     cache,
			Profile:   app.NewProfileService(kv, settings, logger),
			Settings:  settings,
			Reminders: app.NewReminderService(app.ReminderServiceConfig{
				Quotes:   quotes,
				Settings: settings,
				Logger:   logger,
				Hour:     8,
			}),
		},
	})

	return &service{api: api, apiServer: apiServer, server: httptest.NewServer(srv.Engine())}, nil
}

func (s *service) close() {
	s.server.Close()
	s.apiServer.Close()
}
