package cache

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// LoadFunc produces a fresh value on a cache miss. Returned errors are
// never cached.
type LoadFunc func(ctx context.Context) ([]byte, error)

// Lookup composes a Store with a TTL. Concurrent misses for the same key
// share one load; no lock is held while a load runs.
type Lookup struct {
	store  Store
	ttl    time.Duration
	group  singleflight.Group
	logger *zap.Logger
}

func NewLookup(store Store, ttl time.Duration, logger *zap.Logger) *Lookup {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Lookup{
		store:  store,
		ttl:    ttl,
		logger: logger,
	}
}

// TTL returns the freshness window.
func (l *Lookup) TTL() time.Duration {
	return l.ttl
}

// Fetch returns the cached value for key when it is younger than the TTL.
// Otherwise it runs load, stores a successful result and returns it with
// cached=false. Store failures degrade to a miss and never fail the call.
func (l *Lookup) Fetch(ctx context.Context, key string, load LoadFunc) ([]byte, bool, error) {
	value, age, ok, err := l.store.Get(ctx, key)
	switch {
	case err != nil:
		CacheErrors.WithLabelValues("get").Inc()
		l.logger.Warn("Cache error", zap.String("key", key), zap.Error(err))
	case ok && age < l.ttl:
		CacheHits.Inc()
		l.logger.Debug("Cache hit", zap.String("key", key), zap.Duration("age", age))
		return value, true, nil
	}

	CacheMisses.Inc()
	l.logger.Debug("Cache miss", zap.String("key", key))

	v, err, _ := l.group.Do(key, func() (any, error) {
		fresh, err := load(ctx)
		if err != nil {
			return nil, err
		}
		if err := l.store.Put(ctx, key, fresh); err != nil {
			CacheErrors.WithLabelValues("put").Inc()
			l.logger.Warn("Failed to cache result", zap.String("key", key), zap.Error(err))
		}
		return fresh, nil
	})
	if err != nil {
		return nil, false, err
	}
	return v.([]byte), false, nil
}
