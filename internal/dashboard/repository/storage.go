package repository

import (
	"context"
	"errors"

	redisPkg "golang-stock-dashboard/pkg/redis"

	redis "github.com/redis/go-redis/v9"
)

// KeyValueStore is the persistence collaborator for locally entered notes.
// It holds opaque text under a fixed key; Get returns "" with no error when
// nothing has been stored yet.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

type redisKeyValueStore struct {
	client *redisPkg.Client
}

// NewRedisKeyValueStore wraps a Redis client as a KeyValueStore.
func NewRedisKeyValueStore(client *redisPkg.Client) KeyValueStore {
	return &redisKeyValueStore{client: client}
}

func (s *redisKeyValueStore) Get(ctx context.Context, key string) (string, error) {
	value, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

func (s *redisKeyValueStore) Set(ctx context.Context, key, value string) error {
	return s.client.Set(ctx, key, value, 0).Err()
}
