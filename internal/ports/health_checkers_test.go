package ports_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dailydose/dailydose/internal/adapters/clients"
	"github.com/dailydose/dailydose/internal/adapters/clients/acl"
	"github.com/dailydose/dailydose/internal/adapters/kvstore"
	"github.com/dailydose/dailydose/internal/platform/config"
	"github.com/dailydose/dailydose/internal/ports"
)

func newQuoteAPIChecker(t *testing.T, status int) *acl.QuoteClient {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(`[]`))
	}))
	t.Cleanup(server.Close)

	client, err := clients.New(&clients.Config{
		ServiceName: "quote-api",
		BaseURL:     server.URL + "/api",
		Timeout:     2 * time.Second,
		Retry: config.RetryConfig{
			MaxAttempts:     1,
			InitialInterval: 10 * time.Millisecond,
			MaxInterval:     100 * time.Millisecond,
			Multiplier:      2.0,
		},
		Circuit: config.CircuitBreakerConfig{
			MaxFailures:   10,
			Timeout:       30 * time.Second,
			HalfOpenLimit: 1,
		},
	})
	require.NoError(t, err)

	return acl.NewQuoteClient(acl.QuoteClientConfig{
		Client: client,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
}

func TestHealthRegistry_ServiceCheckers(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemory()

	registry := ports.NewHealthRegistry()
	require.NoError(t, registry.Register(store))
	require.NoError(t, registry.Register(newQuoteAPIChecker(t, http.StatusOK)))

	result := registry.CheckAll(ctx)
	assert.Equal(t, ports.HealthStatusHealthy, result.Status)
	assert.Equal(t, ports.HealthStatusHealthy, result.Checks["kvstore"].Status)
	assert.Equal(t, ports.HealthStatusHealthy, result.Checks["quote-api"].Status)

	require.NoError(t, store.Close())

	result = registry.CheckAll(ctx)
	assert.Equal(t, ports.HealthStatusUnhealthy, result.Status)
	assert.Equal(t, ports.HealthStatusUnhealthy, result.Checks["kvstore"].Status)
	assert.Contains(t, result.Checks["kvstore"].Message, "closed")
}

func TestHealthRegistry_QuoteAPIDown(t *testing.T) {
	registry := ports.NewHealthRegistry()
	require.NoError(t, registry.Register(kvstore.NewMemory()))
	require.NoError(t, registry.Register(newQuoteAPIChecker(t, http.StatusServiceUnavailable)))

	result := registry.CheckAll(context.Background())

	assert.Equal(t, ports.HealthStatusUnhealthy, result.Status)
	assert.Equal(t, ports.HealthStatusHealthy, result.Checks["kvstore"].Status)
	assert.Equal(t, ports.HealthStatusUnhealthy, result.Checks["quote-api"].Status)
	assert.NotEmpty(t, result.Checks["quote-api"].Message)
}
