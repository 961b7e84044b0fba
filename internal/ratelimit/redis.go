package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// takeScript increments the key and starts its window on the first hit.
// It returns the hit count and the window's remaining milliseconds.
var takeScript = redis.NewScript(`
local count = redis.call('INCR', KEYS[1])
if count == 1 then
	redis.call('PEXPIRE', KEYS[1], ARGV[1])
end
local ttl = redis.call('PTTL', KEYS[1])
if ttl < 0 then
	redis.call('PEXPIRE', KEYS[1], ARGV[1])
	ttl = tonumber(ARGV[1])
end
return { count, ttl }
`)

// RedisStore keeps window counters in Redis so limits hold across instances
type RedisStore struct {
	client redis.Scripter
	window time.Duration
	prefix string
}

func NewRedisStore(client redis.Scripter, window time.Duration) *RedisStore {
	return &RedisStore{client: client, window: window, prefix: "ratelimit"}
}

// getWindowKey generates the Redis key for a client's window counter
func (s *RedisStore) getWindowKey(key string) string {
	return fmt.Sprintf("%s:%s", s.prefix, key)
}

func (s *RedisStore) Take(ctx context.Context, key string) (Result, error) {
	vals, err := takeScript.Run(ctx, s.client, []string{s.getWindowKey(key)}, s.window.Milliseconds()).Int64Slice()
	if err != nil {
		return Result{}, fmt.Errorf("failed to count request: %w", err)
	}
	if len(vals) != 2 {
		return Result{}, fmt.Errorf("unexpected rate limit script result: %v", vals)
	}

	return Result{
		Count:      vals[0],
		ResetAfter: time.Duration(vals[1]) * time.Millisecond,
	}, nil
}
