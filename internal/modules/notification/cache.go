package notification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// MemoryCache keeps the latest badge in process. A zero ttl never expires it.
type MemoryCache struct {
	mu      sync.RWMutex
	badge   *Badge
	ttl     time.Duration
	expires time.Time
	now     func() time.Time
}

func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{ttl: ttl, now: time.Now}
}

func (m *MemoryCache) Get(_ context.Context) (*Badge, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.badge == nil || (m.ttl > 0 && !m.now().Before(m.expires)) {
		return nil, ErrCacheMiss
	}
	b := *m.badge
	return &b, nil
}

func (m *MemoryCache) Set(_ context.Context, b *Badge) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := *b
	m.badge = &c
	m.expires = m.now().Add(m.ttl)
	return nil
}

const badgeKey = "hoteldash:notifications:badge"

// RedisCache shares the polled badge between API replicas.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

func (r *RedisCache) Get(ctx context.Context) (*Badge, error) {
	data, err := r.client.Get(ctx, badgeKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("redis get badge: %w", err)
	}
	var b Badge
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("unmarshal badge: %w", err)
	}
	return &b, nil
}

func (r *RedisCache) Set(ctx context.Context, b *Badge) error {
	data, err := json.Marshal(b)
	if err != nil {
		return fmt.Errorf("marshal badge: %w", err)
	}
	if err := r.client.Set(ctx, badgeKey, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set badge: %w", err)
	}
	return nil
}
