package kvstore

import (
	"context"
	"slices"
	"sync"

	"github.com/dailydose/dailydose/internal/ports"
)

// Memory is a process-local store used by tests and the "memory" backend.
// State does not survive a restart.
type Memory struct {
	mu      sync.Mutex
	entries map[string]ports.Entry
	closed  bool
}

var _ ports.KeyValueStore = (*Memory)(nil)

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{entries: make(map[string]ports.Entry)}
}

func (m *Memory) Name() string { return "kvstore" }

// Check fails once the store has been closed.
func (m *Memory) Check(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}

	return nil
}

func (m *Memory) Get(_ context.Context, key string) (ports.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ports.Entry{}, ErrClosed
	}

	e, ok := m.entries[key]
	if !ok {
		return ports.Entry{}, ports.ErrKeyNotFound
	}

	return ports.Entry{Value: slices.Clone(e.Value), Version: e.Version}, nil
}

func (m *Memory) Set(ctx context.Context, key string, value []byte) (uint64, error) {
	return casSet(ctx, m, key, value)
}

func (m *Memory) CompareAndSwap(_ context.Context, key string, expected uint64, value []byte) (uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return 0, ErrClosed
	}

	current := m.entries[key].Version
	if current != expected {
		return 0, ports.ErrVersionMismatch
	}

	next := current + 1
	m.entries[key] = ports.Entry{Value: slices.Clone(value), Version: next}

	return next, nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}

	delete(m.entries, key)

	return nil
}

func (m *Memory) Close() error {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()

	return nil
}
