package checkout

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const defaultLockTTL = 30 * time.Second

// UserLock serializes concurrent checkouts for a single user.
type UserLock interface {
	Acquire(ctx context.Context, userID uuid.UUID) (bool, error)
	Release(ctx context.Context, userID uuid.UUID) error
}

// lockStore defines the Redis operations used by RedisUserLock.
type lockStore interface {
	SetNX(ctx context.Context, key string, value any, ttl time.Duration) (bool, error)
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
}

// lockKeyer builds the per-user lock key.
type lockKeyer interface {
	CheckoutLockKey(userID string) string
}

// RedisUserLock implements UserLock using Redis SETNX + TTL. The TTL is a
// safety net: an instance that dies mid-checkout frees its user after ttl.
type RedisUserLock struct {
	client lockStore
	keyer  lockKeyer
	ttl    time.Duration

	mu     sync.Mutex
	owners map[uuid.UUID]string
}

// NewRedisUserLock constructs a Redis-backed per-user checkout lock.
func NewRedisUserLock(client lockStore, keyer lockKeyer, ttl time.Duration) (*RedisUserLock, error) {
	if client == nil {
		return nil, errors.New("redis client required for checkout lock")
	}
	if keyer == nil {
		return nil, errors.New("lock keyer is required")
	}
	if ttl <= 0 {
		ttl = defaultLockTTL
	}
	return &RedisUserLock{
		client: client,
		keyer:  keyer,
		ttl:    ttl,
		owners: make(map[uuid.UUID]string),
	}, nil
}

// Acquire tries to own the user's checkout slot for the configured TTL.
func (l *RedisUserLock) Acquire(ctx context.Context, userID uuid.UUID) (bool, error) {
	owner := uuid.NewString()
	ok, err := l.client.SetNX(ctx, l.keyer.CheckoutLockKey(userID.String()), owner, l.ttl)
	if err != nil {
		return false, fmt.Errorf("setnx: %w", err)
	}
	if ok {
		l.mu.Lock()
		l.owners[userID] = owner
		l.mu.Unlock()
	}
	return ok, nil
}

// Release frees the user's slot only if the owner value still matches, so a
// lock that expired and was re-acquired elsewhere is never clobbered.
func (l *RedisUserLock) Release(ctx context.Context, userID uuid.UUID) error {
	l.mu.Lock()
	owner, held := l.owners[userID]
	delete(l.owners, userID)
	l.mu.Unlock()
	if !held {
		return nil
	}
	key := l.keyer.CheckoutLockKey(userID.String())
	value, err := l.client.Get(ctx, key)
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil
		}
		return fmt.Errorf("read lock owner: %w", err)
	}
	if value == owner {
		if err := l.client.Del(ctx, key); err != nil {
			return fmt.Errorf("delete lock: %w", err)
		}
	}
	return nil
}
