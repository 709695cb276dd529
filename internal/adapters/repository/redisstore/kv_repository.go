// Package redisstore keeps the widget collections in Redis strings.
package redisstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const DefaultPrefix = "tamaire:"

// KVRepository implements ports.KeyValueStore. Keys never expire.
type KVRepository struct {
	client *redis.Client
	prefix string
}

// NewKVRepository parses redisURL and checks the server answers.
func NewKVRepository(redisURL, prefix string) (*KVRepository, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return NewKVRepositoryWithClient(client, prefix), nil
}

func NewKVRepositoryWithClient(client *redis.Client, prefix string) *KVRepository {
	return &KVRepository{
		client: client,
		prefix: prefix,
	}
}

func (r *KVRepository) key(k string) string {
	return r.prefix + k
}

func (r *KVRepository) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := r.client.Get(ctx, r.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get %s: %w", key, err)
	}
	return data, true, nil
}

func (r *KVRepository) Set(ctx context.Context, key string, value []byte) error {
	if err := r.client.Set(ctx, r.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

func (r *KVRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *KVRepository) Close() error {
	return r.client.Close()
}
