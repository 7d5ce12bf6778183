package ratelimit

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore implements a counter store backed by Redis, giving all service
// instances a shared view of rate limit windows.
type RedisStore struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisStore creates a store using the provided redis client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{
		client:    client,
		keyPrefix: "ratelimit:",
	}
}

// incrScript increments the counter and sets the window TTL only on first
// increment, atomically.
var incrScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
	redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
local ttl = redis.call("PTTL", KEYS[1])
return {current, ttl}
`)

// IncrementAndGet atomically increments the counter for the given key and
// returns the new value with the remaining window TTL.
func (s *RedisStore) IncrementAndGet(ctx context.Context, key string, ttl time.Duration) (int64, time.Duration, error) {
	res, err := incrScript.Run(ctx, s.client, []string{s.keyPrefix + key}, ttl.Milliseconds()).Slice()
	if err != nil {
		return 0, 0, err
	}

	current, _ := res[0].(int64)
	ttlMs, _ := res[1].(int64)

	return current, time.Duration(ttlMs) * time.Millisecond, nil
}

// Get returns the current counter value and TTL for the given key.
func (s *RedisStore) Get(ctx context.Context, key string) (int64, time.Duration, error) {
	pipe := s.client.Pipeline()
	getCmd := pipe.Get(ctx, s.keyPrefix+key)
	ttlCmd := pipe.PTTL(ctx, s.keyPrefix+key)
	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return 0, 0, err
	}

	current, err := getCmd.Int64()
	if err == redis.Nil {
		return 0, 0, nil
	} else if err != nil {
		return 0, 0, err
	}

	ttl, err := ttlCmd.Result()
	if err != nil || ttl < 0 {
		ttl = 0
	}

	return current, ttl, nil
}

// Delete removes the given key from the store.
func (s *RedisStore) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, s.keyPrefix+key).Err()
}
