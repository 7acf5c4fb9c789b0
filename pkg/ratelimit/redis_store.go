package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// fixedWindowScript increments KEYS[1] unless it already reached ARGV[1].
// The key expires ARGV[2] milliseconds after the first increment.
var fixedWindowScript = redis.NewScript(`
local current = tonumber(redis.call('GET', KEYS[1]) or '0')
if current >= tonumber(ARGV[1]) then
	return {0, current, redis.call('PTTL', KEYS[1])}
end
current = redis.call('INCR', KEYS[1])
if current == 1 then
	redis.call('PEXPIRE', KEYS[1], ARGV[2])
end
return {1, current, redis.call('PTTL', KEYS[1])}
`)

// slidingWindowScript keeps one sorted set member per accepted request, scored
// by its unix millisecond timestamp.
var slidingWindowScript = redis.NewScript(`
local now = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local limit = tonumber(ARGV[3])
redis.call('ZREMRANGEBYSCORE', KEYS[1], '-inf', now - window)
local count = redis.call('ZCARD', KEYS[1])
if count >= limit then
	return {0, count}
end
redis.call('ZADD', KEYS[1], now, ARGV[4])
redis.call('PEXPIRE', KEYS[1], window)
return {1, count + 1}
`)

// RedisStore implements Store and SlidingWindowStore on top of Redis so
// counters are shared by every process talking to the same server.
// Both check-and-record operations run as Lua scripts and are atomic.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
}

// RedisStoreOption configures a RedisStore.
type RedisStoreOption func(*RedisStore)

// WithKeyPrefix sets the prefix prepended to every key. Defaults to "ratelimit:".
func WithKeyPrefix(prefix string) RedisStoreOption {
	return func(s *RedisStore) {
		s.prefix = prefix
	}
}

// NewRedisStore creates a new Redis backed store.
func NewRedisStore(client redis.UniversalClient, opts ...RedisStoreOption) (*RedisStore, error) {
	if client == nil {
		return nil, ErrClientRequired
	}

	s := &RedisStore{
		client: client,
		prefix: "ratelimit:",
	}
	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// IncrementIfBelow implements the fixed window check-and-increment.
func (s *RedisStore) IncrementIfBelow(ctx context.Context, key string, limit int, window time.Duration) (bool, int64, time.Duration, error) {
	reply, err := fixedWindowScript.Run(ctx, s.client, []string{s.key(key)}, limit, window.Milliseconds()).Int64Slice()
	if err != nil {
		return false, 0, 0, fmt.Errorf("fixed window script: %w", err)
	}
	if len(reply) != 3 {
		return false, 0, 0, ErrUnexpectedReply
	}

	return reply[0] == 1, reply[1], ttlFromMillis(reply[2]), nil
}

// Get returns the current fixed window counter value.
func (s *RedisStore) Get(ctx context.Context, key string) (int64, time.Duration, error) {
	k := s.key(key)

	current, err := s.client.Get(ctx, k).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, 0, nil
	}
	if err != nil {
		return 0, 0, err
	}

	ttl, err := s.client.PTTL(ctx, k).Result()
	if err != nil {
		return 0, 0, err
	}

	return current, max(0, ttl), nil
}

// Delete removes the given key.
func (s *RedisStore) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, s.key(key)).Err()
}

// RecordTimestampIfAllowed implements the sliding window check-and-record.
func (s *RedisStore) RecordTimestampIfAllowed(ctx context.Context, key string, timestamp time.Time, window time.Duration, limit int) (bool, int64, error) {
	reply, err := slidingWindowScript.Run(ctx, s.client, []string{s.key(key)},
		timestamp.UnixMilli(), window.Milliseconds(), limit, uuid.NewString(),
	).Int64Slice()
	if err != nil {
		return false, 0, fmt.Errorf("sliding window script: %w", err)
	}
	if len(reply) != 2 {
		return false, 0, ErrUnexpectedReply
	}

	return reply[0] == 1, reply[1], nil
}

// CountInWindow returns the number of recorded requests inside the window.
func (s *RedisStore) CountInWindow(ctx context.Context, key string, window time.Duration) (int64, error) {
	cutoff := time.Now().Add(-window).UnixMilli()
	return s.client.ZCount(ctx, s.key(key), "("+strconv.FormatInt(cutoff, 10), "+inf").Result()
}

func (s *RedisStore) key(key string) string {
	return s.prefix + key
}

// ttlFromMillis converts a PTTL reply; negative values mean no expiry is set.
func ttlFromMillis(ms int64) time.Duration {
	if ms < 0 {
		return 0
	}
	return time.Duration(ms) * time.Millisecond
}
