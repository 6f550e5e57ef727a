// Package kv provides the string-keyed persistent storage the conversation
// log lives in. It mirrors browser local storage: get, set and remove of
// whole values, nothing more.
//
// Backends: an in-memory map for tests, BadgerDB and bbolt for a local
// file, SQLite for a single-file database and Redis for a shared store.
package kv

import (
	"context"
	"strings"

	"github.com/pkg/errors"
)

// ErrNotFound is returned when a key does not exist in the store.
var ErrNotFound = errors.New("kv: not found")

// Store is a minimal key-value store.
type Store interface {
	// Get returns the value for key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the store.
	Close() error
}

// Backend names accepted by Open.
const (
	BackendMemory = "memory"
	BackendBadger = "badger"
	BackendBolt   = "bolt"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

// Open creates a Store for the named backend. dsn is the directory for
// badger, the file path for bolt and sqlite, and the address or redis://
// URL for redis. It is ignored for memory.
func Open(backend, dsn string) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case BackendMemory:
		return NewMemory(), nil
	case BackendBadger, "":
		return NewBadger(BadgerOptions{Dir: dsn})
	case BackendBolt:
		return NewBolt(dsn)
	case BackendSQLite:
		return NewSQLite(dsn)
	case BackendRedis:
		return NewRedis(dsn)
	default:
		return nil, errors.Errorf("kv: unknown backend %q", backend)
	}
}
