//go:build database

package kvstore

import (
	"context"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/dailydose/dailydose/internal/ports"
)

func startContainer(t *testing.T, req testcontainers.ContainerRequest) (string, string) {
	t.Helper()

	ctx := context.Background()

	c, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Terminate(ctx) })

	host, err := c.Host(ctx)
	require.NoError(t, err)

	port, err := c.MappedPort(ctx, req.ExposedPorts[0])
	require.NoError(t, err)

	return host, port.Port()
}

func TestMySQLStore(t *testing.T) {
	host, port := startContainer(t, testcontainers.ContainerRequest{
		Image:        "mysql:8",
		ExposedPorts: []string{"3306/tcp"},
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": "secret123",
			"MYSQL_DATABASE":      "dailydose",
		},
		WaitingFor: wait.ForLog("port: 3306  MySQL Community Server").WithStartupTimeout(60 * time.Second),
	})

	dsn := fmt.Sprintf("root:secret123@tcp(%s:%s)/dailydose", host, port)

	n := 0
	runStoreContract(t, func(t *testing.T) ports.KeyValueStore {
		t.Helper()

		n++
		s, err := OpenSQL(context.Background(), BackendMySQL, dsn, fmt.Sprintf("kv_%d", n), slog.Default())
		require.NoError(t, err)
		t.Cleanup(func() { _ = s.Close() })

		return s
	})
}

func TestPostgresStore(t *testing.T) {
	host, port := startContainer(t, testcontainers.ContainerRequest{
		Image:        "postgres:18-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_PASSWORD": "secret123",
			"POSTGRES_DB":       "dailydose",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	})

	dsn := fmt.Sprintf("host=%s port=%s user=postgres password=secret123 dbname=dailydose sslmode=disable", host, port)

	n := 0
	runStoreContract(t, func(t *testing.T) ports.KeyValueStore {
		t.Helper()

		n++
		s, err := OpenSQL(context.Background(), BackendPostgreSQL, dsn, fmt.Sprintf("kv_%d", n), slog.Default())
		require.NoError(t, err)
		t.Cleanup(func() { _ = s.Close() })

		return s
	})
}
