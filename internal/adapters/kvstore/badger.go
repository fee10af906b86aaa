package kvstore

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"

	"github.com/dailydose/dailydose/internal/ports"
)

// versionHeader is the size of the big-endian version prefix stored in
// front of every badger value.
const versionHeader = 8

// Badger is a ports.KeyValueStore backed by an embedded badger database.
type Badger struct {
	db     *badger.DB
	logger *slog.Logger
}

var _ ports.KeyValueStore = (*Badger)(nil)

// OpenBadger opens (or creates) a badger database in dir. An empty dir opens
// an in-memory database.
func OpenBadger(dir string, syncWrites bool, logger *slog.Logger) (*Badger, error) {
	opts := badger.DefaultOptions(dir)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}

	opts.Logger = nil
	opts.SyncWrites = syncWrites
	opts.CompactL0OnClose = true

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger db: %w", err)
	}

	logger.Info("badger store opened", slog.String("path", dir), slog.Bool("sync_writes", syncWrites))

	return &Badger{db: db, logger: logger}, nil
}

func (b *Badger) Name() string { return "kvstore" }

// Check fails when the database has been closed.
func (b *Badger) Check(_ context.Context) error {
	if b.db.IsClosed() {
		return ErrClosed
	}

	return nil
}

func (b *Badger) Get(_ context.Context, key string) (ports.Entry, error) {
	var entry ports.Entry

	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			entry, err = decodeBadgerValue(val)
			return err
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return ports.Entry{}, ports.ErrKeyNotFound
	}

	if err != nil {
		return ports.Entry{}, fmt.Errorf("badger get %q: %w", key, err)
	}

	return entry, nil
}

func (b *Badger) Set(ctx context.Context, key string, value []byte) (uint64, error) {
	return casSet(ctx, b, key, value)
}

// CompareAndSwap reads and writes inside one transaction. Badger's optimistic
// concurrency rejects the commit if another writer touched the key first.
func (b *Badger) CompareAndSwap(_ context.Context, key string, expected uint64, value []byte) (uint64, error) {
	var next uint64

	err := b.db.Update(func(txn *badger.Txn) error {
		var current uint64

		item, err := txn.Get([]byte(key))
		switch {
		case errors.Is(err, badger.ErrKeyNotFound):
		case err != nil:
			return err
		default:
			if err := item.Value(func(val []byte) error {
				e, err := decodeBadgerValue(val)
				current = e.Version

				return err
			}); err != nil {
				return err
			}
		}

		if current != expected {
			return ports.ErrVersionMismatch
		}

		next = current + 1

		return txn.Set([]byte(key), encodeBadgerValue(next, value))
	})

	switch {
	case errors.Is(err, ports.ErrVersionMismatch), errors.Is(err, badger.ErrConflict):
		return 0, ports.ErrVersionMismatch
	case err != nil:
		return 0, fmt.Errorf("badger cas %q: %w", key, err)
	}

	return next, nil
}

func (b *Badger) Delete(_ context.Context, key string) error {
	err := b.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
	if err != nil {
		return fmt.Errorf("badger delete %q: %w", key, err)
	}

	return nil
}

// Close flushes and closes the database.
func (b *Badger) Close() error {
	b.logger.Info("closing badger store")

	return b.db.Close()
}

func encodeBadgerValue(version uint64, value []byte) []byte {
	buf := make([]byte, versionHeader+len(value))
	binary.BigEndian.PutUint64(buf, version)
	copy(buf[versionHeader:], value)

	return buf
}

func decodeBadgerValue(raw []byte) (ports.Entry, error) {
	if len(raw) < versionHeader {
		return ports.Entry{}, fmt.Errorf("corrupt value: %d bytes", len(raw))
	}

	value := make([]byte, len(raw)-versionHeader)
	copy(value, raw[versionHeader:])

	return ports.Entry{Value: value, Version: binary.BigEndian.Uint64(raw)}, nil
}
