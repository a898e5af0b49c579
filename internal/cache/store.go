// Package cache holds search responses for a fixed time window.
//
// A Store only records values and when they were written; deciding whether
// an entry is still fresh is left to the caller (see Lookup). Entries are
// never evicted on expiry, they are overwritten by the next refresh or
// dropped by Clear.
package cache

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrInvalidEntry indicates a stored entry could not be decoded.
	ErrInvalidEntry = errors.New("invalid cache entry")
)

// Clock returns the current time. Stores take one so tests can move time.
type Clock func() time.Time

// Store is the Response Cache contract.
//
// Implementations must be safe for concurrent use. Get reports the age of
// the entry rather than enforcing a TTL.
type Store interface {
	// Get returns the stored value and its age. ok is false when absent.
	Get(ctx context.Context, key string) (value []byte, age time.Duration, ok bool, err error)

	// Put overwrites any existing entry and stamps it with the current time.
	Put(ctx context.Context, key string, value []byte) error

	// Clear removes every entry.
	Clear(ctx context.Context) error

	// Size returns the number of entries, stale ones included.
	Size(ctx context.Context) (int, error)

	// Keys returns every entry key in ascending order.
	Keys(ctx context.Context) ([]string, error)
}

// Key derives the cache key for a handler and the query parameter exactly
// as received. Other request parameters are deliberately not part of it.
func Key(handler, rawQuery string) string {
	return handler + ":" + rawQuery
}
