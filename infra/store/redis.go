package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/amirasaad/accountsystem/pkg/money"
	"github.com/redis/go-redis/v9"
)

// RedisStore keeps the balance as decimal text under one key. A missing key
// reads as the initial balance.
type RedisStore struct {
	client  redis.UniversalClient
	key     string
	initial money.Money
}

// NewRedisStore uses client for key.
func NewRedisStore(client redis.UniversalClient, key string, initial money.Money) *RedisStore {
	return &RedisStore{client: client, key: key, initial: initial}
}

// OpenRedis creates a client from a redis:// URL.
func OpenRedis(url string) (*redis.Client, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return redis.NewClient(opt), nil
}

func (s *RedisStore) Read(ctx context.Context) (money.Money, error) {
	val, err := s.client.Get(ctx, s.key).Result()
	if errors.Is(err, redis.Nil) {
		return s.initial, nil
	}
	if err != nil {
		return money.Zero, fmt.Errorf("redis get %s: %w", s.key, err)
	}
	balance, err := money.Parse(val)
	if err != nil {
		return money.Zero, fmt.Errorf("%w: key %s: %w", ErrCorruptBalance, s.key, err)
	}
	return balance, nil
}

func (s *RedisStore) Write(ctx context.Context, balance money.Money) error {
	if err := s.client.Set(ctx, s.key, balance.String(), 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", s.key, err)
	}
	return nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
