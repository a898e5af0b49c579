package cache

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

const scanBatch = 100

// RedisStore keeps entries in Redis under "<prefix>:<key>" so several
// processes can share one cache. Keys are written without a Redis TTL to
// keep the same lifecycle as MemoryStore.
type RedisStore struct {
	redisClient *redis.Client
	prefix      string
	now         Clock
}

type redisEntry struct {
	Value    []byte    `json:"value"`
	StoredAt time.Time `json:"stored_at"`
}

// NewRedisStore wraps an already connected client. A nil clock means time.Now.
func NewRedisStore(client *redis.Client, prefix string, clock Clock) *RedisStore {
	if client == nil {
		panic("redis client cannot be nil")
	}
	if clock == nil {
		clock = time.Now
	}
	return &RedisStore{
		redisClient: client,
		prefix:      prefix,
		now:         clock,
	}
}

func (s *RedisStore) fullKey(key string) string {
	return fmt.Sprintf("%s:%s", s.prefix, key)
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, time.Duration, bool, error) {
	data, err := s.redisClient.Get(ctx, s.fullKey(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, 0, false, nil
		}
		return nil, 0, false, fmt.Errorf("redis get: %w", err)
	}

	var entry redisEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, 0, false, fmt.Errorf("%w: %v", ErrInvalidEntry, err)
	}
	return entry.Value, s.now().Sub(entry.StoredAt), true, nil
}

func (s *RedisStore) Put(ctx context.Context, key string, value []byte) error {
	data, err := json.Marshal(redisEntry{Value: value, StoredAt: s.now()})
	if err != nil {
		return fmt.Errorf("failed to marshal cache entry: %w", err)
	}
	if err := s.redisClient.Set(ctx, s.fullKey(key), data, 0).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Clear deletes only the keys under this store's prefix.
func (s *RedisStore) Clear(ctx context.Context) error {
	keys, err := s.scan(ctx)
	if err != nil {
		return err
	}
	for start := 0; start < len(keys); start += scanBatch {
		end := min(start+scanBatch, len(keys))
		if err := s.redisClient.Del(ctx, keys[start:end]...).Err(); err != nil {
			return fmt.Errorf("redis del: %w", err)
		}
	}
	return nil
}

func (s *RedisStore) Size(ctx context.Context) (int, error) {
	keys, err := s.scan(ctx)
	if err != nil {
		return 0, err
	}
	return len(keys), nil
}

func (s *RedisStore) Keys(ctx context.Context) ([]string, error) {
	keys, err := s.scan(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, strings.TrimPrefix(k, s.prefix+":"))
	}
	sort.Strings(out)
	return out, nil
}

func (s *RedisStore) scan(ctx context.Context) ([]string, error) {
	var keys []string
	seen := make(map[string]struct{})
	iter := s.redisClient.Scan(ctx, 0, s.prefix+":*", scanBatch).Iterator()
	for iter.Next(ctx) {
		// SCAN may return a key more than once while the keyspace rehashes.
		k := iter.Val()
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		keys = append(keys, k)
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("redis scan: %w", err)
	}
	return keys, nil
}

var _ Store = (*RedisStore)(nil)
