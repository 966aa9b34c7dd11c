package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/liuran001/Web3Bio-Go/web3bio"
	"gorm.io/gorm/logger"
)

// Backends accepted by Open.
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
	BackendNone   = "none"
)

// Options selects and sizes a store.
type Options struct {
	Backend    string
	Size       int
	TTL        time.Duration
	Database   string
	GormLogger logger.Interface

	// SQLite connection pool; zero values keep the single-connection default.
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// Open builds the store named by opts.Backend.
func Open(opts Options) (web3bio.Store, error) {
	switch opts.Backend {
	case "", BackendMemory:
		return NewMemory(opts.Size, opts.TTL)
	case BackendSQLite:
		store, err := NewSQLite(opts.Database, opts.TTL, opts.GormLogger)
		if err != nil {
			return nil, err
		}
		if err := store.ConfigurePool(positiveOr(opts.MaxOpenConns, -1), positiveOr(opts.MaxIdleConns, -1), durationOr(opts.ConnMaxLifetime, -1)); err != nil {
			_ = store.Close()
			return nil, err
		}
		return store, nil
	case BackendNone:
		return Nop{}, nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", opts.Backend)
	}
}

func positiveOr(v, fallback int) int {
	if v > 0 {
		return v
	}
	return fallback
}

func durationOr(v, fallback time.Duration) time.Duration {
	if v > 0 {
		return v
	}
	return fallback
}

var (
	_ web3bio.Store = (*Memory)(nil)
	_ web3bio.Store = (*SQLite)(nil)
	_ web3bio.Store = Nop{}
)

// Nop never stores anything.
type Nop struct{}

func (Nop) Get(context.Context, string) ([]byte, bool, error)        { return nil, false, nil }
func (Nop) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (Nop) Delete(context.Context, string) error                     { return nil }
func (Nop) Purge(context.Context) error                              { return nil }
