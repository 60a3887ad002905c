package redisstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const refreshTokenPrefix = "refresh:"

// RefreshTokenStore keeps the single valid refresh token per user, with the
// TTL doubling as the session lifetime.
type RefreshTokenStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRefreshTokenStore(rdb *redis.Client, ttl time.Duration) *RefreshTokenStore {
	return &RefreshTokenStore{
		rdb: rdb,
		ttl: ttl,
	}
}

func (s *RefreshTokenStore) Save(ctx context.Context, userId uint, token string) error {
	return s.rdb.Set(ctx, key(userId), token, s.ttl).Err()
}

// Get returns the stored token or "" when none exists.
func (s *RefreshTokenStore) Get(ctx context.Context, userId uint) (string, error) {
	val, err := s.rdb.Get(ctx, key(userId)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

func (s *RefreshTokenStore) Delete(ctx context.Context, userId uint) error {
	return s.rdb.Del(ctx, key(userId)).Err()
}

func key(userId uint) string {
	return fmt.Sprintf("%s%d", refreshTokenPrefix, userId)
}
