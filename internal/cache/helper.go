package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	GroupKeyPrefix     = "group:%s"
	BlacklistKeyPrefix = "blacklist:%s"
)

// GroupTTL bounds how long a group lookup by slug is served from Redis.
const GroupTTL = 10 * time.Minute

func GroupKey(slug string) string {
	return fmt.Sprintf(GroupKeyPrefix, slug)
}

func BlacklistKey(jti string) string {
	return fmt.Sprintf(BlacklistKeyPrefix, jti)
}

// GetJSON attempts to get the key from Redis and unmarshal into dest.
// Returns (true, nil) if found and unmarshaled, (false, nil) if not found.
func GetJSON(ctx context.Context, key string, dest any) (bool, error) {
	if client == nil {
		return false, nil
	}
	s, err := client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(s, dest); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON marshals v and sets the key with TTL.
func SetJSON(ctx context.Context, key string, v any, ttl time.Duration) error {
	if client == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return client.Set(ctx, key, b, ttl).Err()
}

// Aside tries Redis first and on a miss calls fetch, which must populate dest,
// then stores dest with ttl. Redis failures degrade to calling fetch.
func Aside(ctx context.Context, key string, dest any, ttl time.Duration, fetch func() error) error {
	found, err := GetJSON(ctx, key, dest)
	if err == nil && found {
		return nil
	}

	if err := fetch(); err != nil {
		return err
	}

	_ = SetJSON(ctx, key, dest, ttl)
	return nil
}

// Invalidate deletes key. It is a no-op without Redis.
func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateGroup(ctx context.Context, slug string) {
	Invalidate(ctx, GroupKey(slug))
}

// RevokeToken marks a token id as revoked until ttl elapses.
func RevokeToken(ctx context.Context, jti string, ttl time.Duration) error {
	if client == nil || jti == "" {
		return nil
	}
	if ttl <= 0 {
		return nil
	}
	return client.Set(ctx, BlacklistKey(jti), "1", ttl).Err()
}

// IsRevoked reports whether jti was revoked. Without Redis nothing is revoked.
func IsRevoked(ctx context.Context, jti string) (bool, error) {
	if client == nil || jti == "" {
		return false, nil
	}
	n, err := client.Exists(ctx, BlacklistKey(jti)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
