package scheduling

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// SlotLocker serializes booking mutations per (shop, date) key so the
// capacity re-check and the write cannot interleave across requests.
type SlotLocker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, key string) error
}

// RedisSlotLocker implements SlotLocker with SET NX PX.
type RedisSlotLocker struct {
	Client *redis.Client
}

func (l *RedisSlotLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	ok, err := l.Client.SetNX(ctx, key, 1, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to acquire slot lock %s: %w", key, err)
	}
	return ok, nil
}

func (l *RedisSlotLocker) Release(ctx context.Context, key string) error {
	if err := l.Client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to release slot lock %s: %w", key, err)
	}
	return nil
}

func bookingLockKey(shopID, date string) string {
	return fmt.Sprintf("bookinglock:%s:%s", shopID, date)
}
