package kvstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	_ "modernc.org/sqlite"             // SQLite driver

	"github.com/dailydose/dailydose/internal/ports"
)

var tableNamePattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// SQL is a ports.KeyValueStore keeping one row per key in a single table.
type SQL struct {
	db      *sql.DB
	backend Backend
	table   string
	logger  *slog.Logger
}

var _ ports.KeyValueStore = (*SQL)(nil)

// OpenSQL connects to the database, verifies it is reachable and creates the
// key-value table if needed. For sqlite, dsn is the database file path.
func OpenSQL(ctx context.Context, backend Backend, dsn, table string, logger *slog.Logger) (*SQL, error) {
	if table == "" {
		table = DefaultTable
	}

	if !tableNamePattern.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q: must match %s", table, tableNamePattern)
	}

	var driver string

	switch backend {
	case BackendSQLite:
		driver = "sqlite"
	case BackendMySQL:
		cfg, err := mysql.ParseDSN(dsn)
		if err != nil {
			return nil, fmt.Errorf("invalid mysql dsn, expected user:password@tcp(host:port)/dbname: %w", err)
		}

		cfg.Passwd = ""
		logger = logger.With(slog.String("dsn", cfg.FormatDSN()))
		driver = "mysql"
	case BackendPostgreSQL:
		driver = "pgx"
	default:
		return nil, fmt.Errorf("unsupported sql backend %q", backend)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", backend, err)
	}

	if backend == BackendSQLite {
		// One connection avoids "database is locked" under concurrent writers.
		db.SetMaxOpenConns(1)

		if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout=5000"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("configure sqlite: %w", err)
		}
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connect to %s: %w", backend, err)
	}

	s := &SQL{db: db, backend: backend, table: table, logger: logger}

	if _, err := db.ExecContext(ctx, s.createTableQuery()); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create table %s: %w", table, err)
	}

	logger.Info("sql store opened", slog.String("backend", string(backend)), slog.String("table", table))

	return s, nil
}

func (s *SQL) Name() string { return "kvstore" }

// Check pings the database.
func (s *SQL) Check(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQL) Get(ctx context.Context, key string) (ports.Entry, error) {
	var (
		value   []byte
		version int64
	)

	query := s.rebind(fmt.Sprintf(`SELECT kv_value, kv_version FROM %s WHERE kv_key = ?`, s.quotedTable()))

	err := s.db.QueryRowContext(ctx, query, key).Scan(&value, &version)
	if errors.Is(err, sql.ErrNoRows) {
		return ports.Entry{}, ports.ErrKeyNotFound
	}

	if err != nil {
		return ports.Entry{}, fmt.Errorf("select %q: %w", key, err)
	}

	return ports.Entry{Value: value, Version: uint64(version)}, nil
}

func (s *SQL) Set(ctx context.Context, key string, value []byte) (uint64, error) {
	return casSet(ctx, s, key, value)
}

// CompareAndSwap inserts when expected is 0 and otherwise updates the row
// only if its version still matches. Zero affected rows means another writer won.
func (s *SQL) CompareAndSwap(ctx context.Context, key string, expected uint64, value []byte) (uint64, error) {
	next := expected + 1
	now := time.Now().Unix()

	var (
		res sql.Result
		err error
	)

	if expected == 0 {
		res, err = s.db.ExecContext(ctx, s.insertQuery(), key, value, int64(next), now)
	} else {
		query := s.rebind(fmt.Sprintf(
			`UPDATE %s SET kv_value = ?, kv_version = ?, kv_timestamp = ? WHERE kv_key = ? AND kv_version = ?`,
			s.quotedTable()))
		res, err = s.db.ExecContext(ctx, query, value, int64(next), now, key, int64(expected))
	}

	if err != nil {
		return 0, fmt.Errorf("write %q: %w", key, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("write %q: %w", key, err)
	}

	if n == 0 {
		return 0, ports.ErrVersionMismatch
	}

	return next, nil
}

func (s *SQL) Delete(ctx context.Context, key string) error {
	query := s.rebind(fmt.Sprintf(`DELETE FROM %s WHERE kv_key = ?`, s.quotedTable()))

	if _, err := s.db.ExecContext(ctx, query, key); err != nil {
		return fmt.Errorf("delete %q: %w", key, err)
	}

	return nil
}

func (s *SQL) Close() error {
	return s.db.Close()
}

func (s *SQL) quotedTable() string {
	if s.backend == BackendMySQL {
		return "`" + s.table + "`"
	}

	return `"` + s.table + `"`
}

func (s *SQL) createTableQuery() string {
	switch s.backend {
	case BackendMySQL:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				kv_key VARCHAR(255) PRIMARY KEY,
				kv_value LONGBLOB NOT NULL,
				kv_version BIGINT NOT NULL,
				kv_timestamp BIGINT NOT NULL
			)`, s.quotedTable())
	case BackendPostgreSQL:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				kv_key TEXT PRIMARY KEY,
				kv_value BYTEA NOT NULL,
				kv_version BIGINT NOT NULL,
				kv_timestamp BIGINT NOT NULL
			)`, s.quotedTable())
	default:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				kv_key TEXT PRIMARY KEY,
				kv_value BLOB NOT NULL,
				kv_version INTEGER NOT NULL,
				kv_timestamp INTEGER NOT NULL
			)`, s.quotedTable())
	}
}

// insertQuery inserts a new row and silently does nothing if the key exists.
func (s *SQL) insertQuery() string {
	switch s.backend {
	case BackendMySQL:
		return fmt.Sprintf(`INSERT IGNORE INTO %s (kv_key, kv_value, kv_version, kv_timestamp) VALUES (?, ?, ?, ?)`,
			s.quotedTable())
	default:
		return s.rebind(fmt.Sprintf(
			`INSERT INTO %s (kv_key, kv_value, kv_version, kv_timestamp) VALUES (?, ?, ?, ?) ON CONFLICT (kv_key) DO NOTHING`,
			s.quotedTable()))
	}
}

// rebind rewrites ? placeholders to $n for PostgreSQL.
func (s *SQL) rebind(query string) string {
	if s.backend != BackendPostgreSQL {
		return query
	}

	var (
		b strings.Builder
		n int
	)

	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))

			continue
		}

		b.WriteRune(r)
	}

	return b.String()
}
