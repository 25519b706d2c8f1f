package redisx

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/redis/go-redis/v9"
)

func New(addr string) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         addr,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})
}

func Exists(ctx context.Context, rdb *redis.Client, key string) (bool, error) {
	n, err := rdb.Exists(ctx, key).Result()
	return n > 0, err
}

// Cache wraps a client with plain error-returning methods for callers that
// hold the cache behind an interface.
type Cache struct {
	R *redis.Client
}

func (c Cache) Exists(ctx context.Context, key string) (bool, error) {
	return Exists(ctx, c.R, key)
}

func (c Cache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return c.R.Set(ctx, key, value, ttl).Err()
}

func (c Cache) Del(ctx context.Context, key string) error {
	return c.R.Del(ctx, key).Err()
}

// TokenDigest hashes a bearer token for use in revocation keys, keeping raw
// tokens out of Redis.
func TokenDigest(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
