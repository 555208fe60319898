package auth

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Revocations records token IDs that must be rejected before they expire.
type Revocations interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

const revokedKeyPrefix = "pantry:token:revoked:"

// RedisRevocations stores revoked token IDs as expiring Redis keys.
type RedisRevocations struct {
	client *redis.Client
}

// NewRedisRevocations wraps an existing client.
func NewRedisRevocations(client *redis.Client) *RedisRevocations {
	return &RedisRevocations{client: client}
}

// Revoke marks the token ID as revoked until ttl elapses.
func (r *RedisRevocations) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := r.client.Set(ctx, revokedKeyPrefix+tokenID, "1", ttl).Err(); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

// IsRevoked reports whether the token ID was revoked.
func (r *RedisRevocations) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := r.client.Exists(ctx, revokedKeyPrefix+tokenID).Result()
	if err != nil {
		return false, fmt.Errorf("check token revocation: %w", err)
	}
	return n > 0, nil
}

// MemoryRevocations keeps revoked token IDs in process. Suitable for a single instance.
type MemoryRevocations struct {
	mu      sync.Mutex
	now     func() time.Time
	revoked map[string]time.Time
}

// NewMemoryRevocations returns an empty in-process revocation list.
func NewMemoryRevocations() *MemoryRevocations {
	return &MemoryRevocations{now: time.Now, revoked: make(map[string]time.Time)}
}

// Revoke marks the token ID as revoked until ttl elapses.
func (m *MemoryRevocations) Revoke(_ context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.revoked[tokenID] = m.now().Add(ttl)
	return nil
}

// IsRevoked reports whether the token ID was revoked and the entry is still live.
func (m *MemoryRevocations) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	until, ok := m.revoked[tokenID]
	if !ok {
		return false, nil
	}
	if !m.now().Before(until) {
		delete(m.revoked, tokenID)
		return false, nil
	}
	return true, nil
}

var (
	_ Revocations = (*RedisRevocations)(nil)
	_ Revocations = (*MemoryRevocations)(nil)
)
