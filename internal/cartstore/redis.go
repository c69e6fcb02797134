package cartstore

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
)

// cartTTL bounds how long an untouched cart survives.
const cartTTL = 90 * 24 * time.Hour

// RedisStorage keeps carts in Redis so they survive process restarts
// and are shared across API instances.
type RedisStorage struct {
	client *redis.Client
}

// NewRedisStorage connects to the given address ("host:port" or a
// redis:// URL) and verifies connectivity with a ping.
func NewRedisStorage(ctx context.Context, addr string) (*RedisStorage, error) {
	opts, err := redis.ParseURL(addr)
	if err != nil {
		opts = &redis.Options{
			Addr:         addr,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		}
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return &RedisStorage{client: client}, nil
}

func (r *RedisStorage) Save(ctx context.Context, sessionID string, items []Item) error {
	payload, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, keyPrefix+sessionID, payload, cartTTL).Err()
}

func (r *RedisStorage) Load(ctx context.Context, sessionID string) ([]Item, error) {
	payload, err := r.client.Get(ctx, keyPrefix+sessionID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	var items []Item
	if err := json.Unmarshal(payload, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Close releases the underlying client.
func (r *RedisStorage) Close() error {
	return r.client.Close()
}
