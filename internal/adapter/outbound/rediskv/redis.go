// Package rediskv implements the key/value storage capability on top of a
// Redis server. The six capability operations map directly onto Redis
// primitives: GET/SET for scalars, RPUSH/LRANGE for lists, SCAN for key
// pattern resolution.
package rediskv

import (
	"context"
	"errors"
	"fmt"

	"github.com/anthanhphan/go-object-store/internal/config"
	"github.com/anthanhphan/go-object-store/internal/port"
	"github.com/redis/go-redis/v9"
)

// Adapter is a Redis-backed port.KeyValueStore.
type Adapter struct {
	client *redis.Client
}

var _ port.KeyValueStore = (*Adapter)(nil)

// New connects to Redis and verifies the connection with a ping.
func New(ctx context.Context, cfg config.RedisConfig) (*Adapter, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return &Adapter{client: client}, nil
}

// Close releases the underlying connection pool.
func (a *Adapter) Close() error {
	return a.client.Close()
}

func (a *Adapter) Get(ctx context.Context, key string) (string, error) {
	val, err := a.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", port.ErrKeyNotFound
		}
		return "", err
	}
	return val, nil
}

func (a *Adapter) GetBinary(ctx context.Context, key string) ([]byte, error) {
	val, err := a.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, port.ErrKeyNotFound
		}
		return nil, err
	}
	return val, nil
}

func (a *Adapter) Set(ctx context.Context, key string, value string) error {
	return a.client.Set(ctx, key, value, 0).Err()
}

func (a *Adapter) SetBinary(ctx context.Context, key string, value []byte) error {
	return a.client.Set(ctx, key, value, 0).Err()
}

func (a *Adapter) AppendToList(ctx context.Context, listKey string, value string) error {
	return a.client.RPush(ctx, listKey, value).Err()
}

func (a *Adapter) GetFullList(ctx context.Context, listKey string) ([]string, error) {
	return a.client.LRange(ctx, listKey, 0, -1).Result()
}

// ListKeys resolves keys matching a glob-style pattern. SCAN is used over
// KEYS so a large keyspace never blocks the server.
func (a *Adapter) ListKeys(ctx context.Context, pattern string) ([]string, error) {
	var keys []string
	iter := a.client.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	return keys, nil
}
