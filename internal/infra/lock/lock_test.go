package lock

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLock(t *testing.T, ttl time.Duration) (*RedisLock, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisLock(client, "test", ttl), mr
}

func TestRedisLock_Exclusive(t *testing.T) {
	l, mr := newLock(t, time.Minute)
	ctx := context.Background()

	release, ok, err := l.TryAcquire(ctx, "sweep")
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, mr.Exists("test:sweep"))

	_, ok, err = l.TryAcquire(ctx, "sweep")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, release(ctx))
	assert.False(t, mr.Exists("test:sweep"))

	_, ok, err = l.TryAcquire(ctx, "sweep")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRedisLock_Expires(t *testing.T) {
	l, mr := newLock(t, 10*time.Second)
	ctx := context.Background()

	release, ok, err := l.TryAcquire(ctx, "sweep")
	require.NoError(t, err)
	require.True(t, ok)

	mr.FastForward(11 * time.Second)

	// другая реплика забирает истёкшую блокировку
	_, ok, err = l.TryAcquire(ctx, "sweep")
	require.NoError(t, err)
	require.True(t, ok)

	// старый владелец не может снять чужую блокировку
	err = release(ctx)
	assert.ErrorIs(t, err, ErrNotHeld)
	assert.True(t, mr.Exists("test:sweep"))
}

func TestRedisLock_RedisDown(t *testing.T) {
	l, mr := newLock(t, time.Minute)
	mr.Close()

	_, ok, err := l.TryAcquire(context.Background(), "sweep")
	assert.ErrorIs(t, err, ErrLockFailed)
	assert.False(t, ok)
}

func TestNoop(t *testing.T) {
	release, ok, err := Noop{}.TryAcquire(context.Background(), "sweep")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, release(context.Background()))
}
