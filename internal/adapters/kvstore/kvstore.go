// Package kvstore implements ports.KeyValueStore on top of an embedded
// badger database, a SQL table (sqlite, mysql or postgresql) or process memory.
package kvstore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/dailydose/dailydose/internal/ports"
)

// Backend selects the storage engine.
type Backend string

const (
	BackendBadger     Backend = "badger"
	BackendSQLite     Backend = "sqlite"
	BackendMySQL      Backend = "mysql"
	BackendPostgreSQL Backend = "postgresql"
	BackendMemory     Backend = "memory"
)

// DefaultTable is the SQL table holding the key-value rows.
const DefaultTable = "dailydose_kv"

// Config describes how to open a store.
type Config struct {
	Backend Backend

	// Path is the data directory for badger and the database file for sqlite.
	Path string

	// DSN is the connection string for mysql and postgresql.
	DSN string

	// Table overrides DefaultTable for SQL backends.
	Table string

	// SyncWrites makes badger fsync every commit.
	SyncWrites bool
}

// Open creates the store selected by cfg.Backend.
func Open(ctx context.Context, cfg Config, logger *slog.Logger) (ports.KeyValueStore, error) {
	if logger == nil {
		logger = slog.Default()
	}

	switch cfg.Backend {
	case BackendBadger, "":
		return OpenBadger(cfg.Path, cfg.SyncWrites, logger)
	case BackendSQLite:
		path := cfg.Path
		if filepath.Ext(path) == "" {
			path = filepath.Join(path, "dailydose.db")
		}

		return OpenSQL(ctx, BackendSQLite, path, cfg.Table, logger)
	case BackendMySQL, BackendPostgreSQL:
		return OpenSQL(ctx, cfg.Backend, cfg.DSN, cfg.Table, logger)
	case BackendMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unsupported storage backend %q: must be badger, sqlite, mysql, postgresql or memory", cfg.Backend)
	}
}

// casSet performs an unconditional write as a read-then-CAS loop so that
// every backend reports the version it wrote.
func casSet(ctx context.Context, s ports.KeyValueStore, key string, value []byte) (uint64, error) {
	for {
		if err := ctx.Err(); err != nil {
			return 0, err
		}

		var expected uint64

		entry, err := s.Get(ctx, key)
		switch {
		case err == nil:
			expected = entry.Version
		case !errors.Is(err, ports.ErrKeyNotFound):
			return 0, err
		}

		version, err := s.CompareAndSwap(ctx, key, expected, value)
		if errors.Is(err, ports.ErrVersionMismatch) {
			continue
		}

		return version, err
	}
}
