package ratelimit

import (
	"context"
	"testing"
	"time"

	mr "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newTestLimiter(t *testing.T) (*RedisLimiter, *mr.Miniredis) {
	t.Helper()
	m, err := mr.Run()
	require.NoError(t, err)
	t.Cleanup(m.Close)

	client := redis.NewClient(&redis.Options{Addr: m.Addr()})
	return NewRedisLimiter(client, "test:rate:"), m
}

func TestRedisLimiter_Window(t *testing.T) {
	lim, m := newTestLimiter(t)
	ctx := context.Background()

	// fresh window grants
	ok, err := lim.TryAcquire(ctx, "post:client-a", 10*time.Second)
	require.NoError(t, err)
	require.True(t, ok)

	// immediate retry with the same key is denied
	ok, err = lim.TryAcquire(ctx, "post:client-a", 10*time.Second)
	require.NoError(t, err)
	require.False(t, ok)

	// after the window elapses it grants again
	m.FastForward(MinTTL + time.Second)
	ok, err = lim.TryAcquire(ctx, "post:client-a", 10*time.Second)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestRedisLimiter_TTLFloor(t *testing.T) {
	lim, m := newTestLimiter(t)
	ctx := context.Background()

	ok, err := lim.TryAcquire(ctx, "comment:client-a", 6*time.Second)
	require.NoError(t, err)
	require.True(t, ok)

	// the backing store refuses very short TTLs, so the effective window is
	// the floor, not the requested cooldown
	m.FastForward(7 * time.Second)
	ok, err = lim.TryAcquire(ctx, "comment:client-a", 6*time.Second)
	require.NoError(t, err)
	require.False(t, ok)

	m.FastForward(MinTTL)
	ok, err = lim.TryAcquire(ctx, "comment:client-a", 6*time.Second)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestRedisLimiter_IndependentKeys(t *testing.T) {
	lim, _ := newTestLimiter(t)
	ctx := context.Background()

	ok, err := lim.TryAcquire(ctx, "post:client-a", 10*time.Second)
	require.NoError(t, err)
	require.True(t, ok)

	// a different action for the same client has its own window
	ok, err = lim.TryAcquire(ctx, "comment:client-a", 6*time.Second)
	require.NoError(t, err)
	require.True(t, ok)

	// and so does another client
	ok, err = lim.TryAcquire(ctx, "post:client-b", 10*time.Second)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestNoop_AlwaysGrants(t *testing.T) {
	var lim Limiter = Noop{}
	for i := 0; i < 3; i++ {
		ok, err := lim.TryAcquire(context.Background(), "post:client-a", 10*time.Second)
		require.NoError(t, err)
		require.True(t, ok)
	}
}
