// Package kvstore is the device-local string store the session survives
// restarts with. Only get, set and remove are offered.
package kvstore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Skotchmaster/coffee_shop/pkg/db"
)

var ErrNotFound = errors.New("key not found")

type Store interface {
	// Get returns ErrNotFound when the key is absent.
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	// Remove does not fail for a missing key.
	Remove(ctx context.Context, key string) error
	Close() error
}

// Open picks a backend from the dsn scheme:
//
//	memory://                     process memory
//	redis://host:6379/0           redis, keys prefixed with "storefront:"
//	postgres://... | host=...     postgres table
//	sqlite://path | file:...      sqlite file
func Open(ctx context.Context, dsn string) (Store, error) {
	switch {
	case dsn == "" || strings.HasPrefix(dsn, "memory://"):
		return NewMemory(), nil
	case strings.HasPrefix(dsn, "redis://") || strings.HasPrefix(dsn, "rediss://"):
		return NewRedis(ctx, RedisOptions{URL: dsn})
	default:
		gdb, err := db.Open(ctx, dsn)
		if err != nil {
			return nil, fmt.Errorf("open kv store: %w", err)
		}
		return NewGorm(ctx, gdb)
	}
}
