// Package cache holds recently fetched remote responses for a bounded
// freshness window.
package cache

import (
	"context"
	"time"
)

// DefaultTTL is the freshness window applied when none is configured.
const DefaultTTL = 5 * time.Minute

// Store is a key-value store of raw response bodies. An entry is only
// returned while it is younger than the store's TTL.
type Store interface {
	// Get returns the stored value and true while the entry is fresh.
	// Stale entries are evicted and reported as absent.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores value under key, overwriting and re-stamping any previous entry.
	Set(ctx context.Context, key string, value []byte) error

	// Clear evicts every entry.
	Clear(ctx context.Context) error

	// Close releases resources held by the store.
	Close() error
}
