package ratelimit

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Runs against a live server when REDIS_TEST_ADDR is set, e.g. localhost:6379
func TestRedisStore_Take(t *testing.T) {
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR not set")
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = client.Close() })

	ctx := context.Background()
	require.NoError(t, client.Ping(ctx).Err())

	store := NewRedisStore(client, time.Minute)
	key := "test:" + uuid.NewString()
	t.Cleanup(func() { client.Del(ctx, store.getWindowKey(key)) })

	first, err := store.Take(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.Count)
	assert.InDelta(t, time.Minute.Seconds(), first.ResetAfter.Seconds(), 1)

	second, err := store.Take(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, int64(2), second.Count)
	assert.LessOrEqual(t, second.ResetAfter, first.ResetAfter)
}

func TestRedisStore_Key(t *testing.T) {
	store := NewRedisStore(nil, time.Minute)
	assert.Equal(t, "ratelimit:ip:1.2.3.4", store.getWindowKey("ip:1.2.3.4"))
}
