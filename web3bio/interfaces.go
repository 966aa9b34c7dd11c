package web3bio

import (
	"context"
	"time"
)

// Logger is the minimal logging abstraction used across modules.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	With(args ...any) Logger
}

// Config provides typed access to configuration values.
type Config interface {
	GetString(key string) string
	GetInt(key string) int
	GetFloat64(key string) float64
	GetBool(key string) bool
	GetDuration(key string) time.Duration
}

// Store caches raw API responses keyed by request key.
// Implementations must be safe for concurrent use.
type Store interface {
	// Get returns the cached payload and true on a fresh hit.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores payload under key for ttl. A non-positive ttl uses the store default.
	Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error
	// Delete evicts a single key.
	Delete(ctx context.Context, key string) error
	// Purge evicts every entry.
	Purge(ctx context.Context) error
}

// WorkerPool limits concurrency for background queries.
type WorkerPool interface {
	Submit(task func()) error
	Shutdown(ctx context.Context) error
	Size() int
}
