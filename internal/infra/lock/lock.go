package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var (
	// ErrLockFailed ошибка обращения к redis при захвате или освобождении
	ErrLockFailed = errors.New("lock: redis error")

	// ErrNotHeld блокировка истекла или захвачена другим владельцем
	ErrNotHeld = errors.New("lock: not held")
)

// Release освобождает захваченную блокировку
type Release func(ctx context.Context) error

// удаляем ключ, только если он всё ещё наш
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
  return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLock распределённая блокировка на SET NX с TTL.
// Используется, чтобы фоновую задачу выполняла только одна реплика.
type RedisLock struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisLock создает блокировку поверх redis клиента
func NewRedisLock(client *redis.Client, prefix string, ttl time.Duration) *RedisLock {
	if prefix == "" {
		prefix = "petspace:lock"
	}
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &RedisLock{client: client, prefix: prefix, ttl: ttl}
}

// TryAcquire пытается захватить блокировку name без ожидания.
// ok=false без ошибки означает, что блокировку держит кто-то другой.
func (l *RedisLock) TryAcquire(ctx context.Context, name string) (Release, bool, error) {
	key := l.prefix + ":" + name
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		return nil, false, fmt.Errorf("%w: TryAcquire %s: %v", ErrLockFailed, key, err)
	}
	if !ok {
		return nil, false, nil
	}

	release := func(ctx context.Context) error {
		deleted, err := releaseScript.Run(ctx, l.client, []string{key}, token).Int64()
		if err != nil {
			return fmt.Errorf("%w: Release %s: %v", ErrLockFailed, key, err)
		}
		if deleted == 0 {
			return fmt.Errorf("%w: %s", ErrNotHeld, key)
		}
		return nil
	}

	return release, true, nil
}

// Noop блокировка для одного экземпляра сервиса: всегда захватывается
type Noop struct{}

// TryAcquire всегда успешен
func (Noop) TryAcquire(ctx context.Context, name string) (Release, bool, error) {
	return func(context.Context) error { return nil }, true, nil
}
