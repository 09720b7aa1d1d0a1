package service

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// CooldownStore grants a key at most once per ttl.
type CooldownStore interface {
	// Acquire reports true when key was free and is now held for ttl.
	Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error)
	// Release frees key before its ttl runs out.
	Release(ctx context.Context, key string) error
}

type RedisCooldown struct {
	Redis *redis.Client
}

func NewRedisCooldown(rdb *redis.Client) *RedisCooldown {
	return &RedisCooldown{Redis: rdb}
}

func (c *RedisCooldown) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	return c.Redis.SetNX(ctx, "cooldown:"+key, "1", ttl).Result()
}

func (c *RedisCooldown) Release(ctx context.Context, key string) error {
	return c.Redis.Del(ctx, "cooldown:"+key).Err()
}

// MemoryCooldown is used when redis is disabled. State is per process.
type MemoryCooldown struct {
	mu    sync.Mutex
	until map[string]time.Time
	now   func() time.Time
}

func NewMemoryCooldown(now func() time.Time) *MemoryCooldown {
	if now == nil {
		now = time.Now
	}
	return &MemoryCooldown{until: make(map[string]time.Time), now: now}
}

func (c *MemoryCooldown) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if until, ok := c.until[key]; ok && now.Before(until) {
		return false, nil
	}
	c.until[key] = now.Add(ttl)
	return true, nil
}

func (c *MemoryCooldown) Release(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.until, key)
	return nil
}
