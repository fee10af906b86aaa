package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/dailydose/dailydose/internal/adapters/kvstore"
	"github.com/dailydose/dailydose/internal/ports"
)

// discardLogger returns a logger that discards all output.
func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func ptr(s string) *string { return &s }

type fixedClock struct{ now time.Time }

func (c *fixedClock) Now() time.Time { return c.now }

var errDiskFull = errors.New("disk full")

// faultyStore wraps a memory store and injects failures.
type faultyStore struct {
	*kvstore.Memory

	failGet   bool
	failWrite bool

	// mismatches makes the next n CompareAndSwap calls lose the race.
	mismatches int
	casCalls   int
}

func newFaultyStore() *faultyStore {
	return &faultyStore{Memory: kvstore.NewMemory()}
}

func (f *faultyStore) Get(ctx context.Context, key string) (ports.Entry, error) {
	if f.failGet {
		return ports.Entry{}, errDiskFull
	}

	return f.Memory.Get(ctx, key)
}

func (f *faultyStore) Set(ctx context.Context, key string, value []byte) (uint64, error) {
	if f.failWrite {
		return 0, errDiskFull
	}

	return f.Memory.Set(ctx, key, value)
}

func (f *faultyStore) CompareAndSwap(ctx context.Context, key string, expected uint64, value []byte) (uint64, error) {
	f.casCalls++

	if f.failWrite {
		return 0, errDiskFull
	}

	if f.mismatches > 0 {
		f.mismatches--
		return 0, ports.ErrVersionMismatch
	}

	return f.Memory.CompareAndSwap(ctx, key, expected, value)
}
