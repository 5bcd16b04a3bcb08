package cache

import (
    "context"
    "errors"
    "fmt"
    "time"

    "github.com/redis/go-redis/v9"
)

// KeyPrefix namespaces every key written to Redis.
const KeyPrefix = "zoff:"

type RedisConfig struct {
    Addr     string
    Password string
    DB       int
}

// Redis is a Store backed by a Redis server.
type Redis struct {
    client *redis.Client
}

// NewRedis connects and pings the server.
func NewRedis(ctx context.Context, cfg RedisConfig) (*Redis, error) {
    client := redis.NewClient(&redis.Options{
        Addr:         cfg.Addr,
        Password:     cfg.Password,
        DB:           cfg.DB,
        DialTimeout:  3 * time.Second,
        ReadTimeout:  time.Second,
        WriteTimeout: time.Second,
    })

    ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
    defer cancel()
    if err := client.Ping(ctx).Err(); err != nil {
        _ = client.Close()
        return nil, fmt.Errorf("connect redis %s: %w", cfg.Addr, err)
    }
    return &Redis{client: client}, nil
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool, error) {
    b, err := r.client.Get(ctx, KeyPrefix+key).Bytes()
    if errors.Is(err, redis.Nil) {
        return nil, false, nil
    }
    if err != nil {
        return nil, false, err
    }
    return b, true, nil
}

func (r *Redis) Set(ctx context.Context, key string, val []byte, ttl time.Duration) error {
    if ttl <= 0 { return nil }
    return r.client.Set(ctx, KeyPrefix+key, val, ttl).Err()
}

func (r *Redis) Close() error { return r.client.Close() }
