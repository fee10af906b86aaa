package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultValues(t *testing.T) {
	cfg, err := LoadDir(t.TempDir(), "")
	require.NoError(t, err)

	assert.Equal(t, "dailydose", cfg.App.Name)
	assert.Equal(t, "dev", cfg.App.Version)
	assert.Equal(t, "local", cfg.App.Environment)
	assert.Equal(t, DefaultServerPort, cfg.Server.Port)
	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, DefaultQuoteBaseURL, cfg.Services.Quote.BaseURL)
	assert.Equal(t, "quote-api", cfg.Services.Quote.Name)
	assert.Equal(t, "badger", cfg.Storage.Backend)
	assert.Equal(t, "./data", cfg.Storage.Path)
	assert.Equal(t, "dailydose_kv", cfg.Storage.Table)
	assert.True(t, cfg.Storage.SyncWrites)
	assert.Equal(t, 30, cfg.Cache.RecentLimit)
	assert.Equal(t, 8, cfg.Reminder.Hour)
	assert.Equal(t, 0, cfg.Reminder.Minute)
	assert.Equal(t, 5, cfg.Favorites.MaxRetries)

	require.NoError(t, cfg.Validate())
}

func TestLoad_DurationParsing(t *testing.T) {
	cfg, err := LoadDir(t.TempDir(), "")
	require.NoError(t, err)

	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 60*time.Second, cfg.Server.IdleTimeout)
	assert.Equal(t, 10*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, 100*time.Millisecond, cfg.Client.Retry.InitialInterval)
	assert.Equal(t, 2*time.Second, cfg.Client.Retry.MaxInterval)
	assert.Equal(t, 30*time.Second, cfg.Client.CircuitBreaker.Timeout)
	assert.Equal(t, 90*time.Second, cfg.Client.Transport.IdleConnTimeout)
}

func TestLoad_FilePrecedence(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "base.yaml"), `
app:
  environment: dev
storage:
  backend: sqlite
  path: /var/lib/dailydose
reminder:
  hour: 7
`)
	writeFile(t, filepath.Join(dir, "prod.yaml"), `
app:
  environment: prod
reminder:
  minute: 30
`)

	cfg, err := LoadDir(dir, "prod")
	require.NoError(t, err)

	assert.Equal(t, "prod", cfg.App.Environment)
	assert.Equal(t, "sqlite", cfg.Storage.Backend)
	assert.Equal(t, "/var/lib/dailydose", cfg.Storage.Path)
	assert.Equal(t, 7, cfg.Reminder.Hour)
	assert.Equal(t, 30, cfg.Reminder.Minute)
}

func TestLoad_NonExistentProfile(t *testing.T) {
	cfg, err := LoadDir(t.TempDir(), "nonexistent")
	require.NoError(t, err)

	assert.Equal(t, "dailydose", cfg.App.Name)
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "base.yaml"), "app: [unclosed")

	_, err := LoadDir(dir, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading base config")
}

func TestLoad_EnvVarOverrides(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "base.yaml"), "log:\n  level: debug\n")

	t.Setenv("APP_SERVER_PORT", "9090")
	t.Setenv("APP_LOG_LEVEL", "warn")
	t.Setenv("APP_TELEMETRY_ENABLED", "true")

	cfg, err := LoadDir(dir, "")
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.True(t, cfg.Telemetry.Enabled)
}

func TestLoad_EnvVarMultiWordKeys(t *testing.T) {
	t.Setenv("APP_STORAGE_SYNC_WRITES", "false")
	t.Setenv("APP_CACHE_RECENT_LIMIT", "12")
	t.Setenv("APP_FAVORITES_MAX_RETRIES", "9")
	t.Setenv("APP_SERVICES_QUOTE_BASE_URL", "http://localhost:3000/api")
	t.Setenv("APP_CLIENT_CIRCUIT_BREAKER_MAX_FAILURES", "2")

	cfg, err := LoadDir(t.TempDir(), "")
	require.NoError(t, err)

	assert.False(t, cfg.Storage.SyncWrites)
	assert.Equal(t, 12, cfg.Cache.RecentLimit)
	assert.Equal(t, 9, cfg.Favorites.MaxRetries)
	assert.Equal(t, "http://localhost:3000/api", cfg.Services.Quote.BaseURL)
	assert.Equal(t, 2, cfg.Client.CircuitBreaker.MaxFailures)
}

func TestEnvKeyMapper(t *testing.T) {
	mapKey := envKeyMapper()

	assert.Equal(t, "storage.sync_writes", mapKey("APP_STORAGE_SYNC_WRITES"))
	assert.Equal(t, "log.file.max_backups", mapKey("APP_LOG_FILE_MAX_BACKUPS"))
	assert.Equal(t, "server.port", mapKey("APP_SERVER_PORT"))
	assert.Equal(t, "custom.nested.key", mapKey("APP_CUSTOM_NESTED_KEY"))
}

func TestDefaults(t *testing.T) {
	d := defaults()

	assert.Equal(t, "dailydose", d["app.name"])
	assert.Equal(t, DefaultServerPort, d["server.port"])
	assert.Equal(t, DefaultStorageBackend, d["storage.backend"])
	assert.Equal(t, DefaultRecentLimit, d["cache.recent_limit"])
	assert.Equal(t, DefaultReminderHour, d["reminder.hour"])
	assert.Equal(t, DefaultFavoritesRetries, d["favorites.max_retries"])
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}
