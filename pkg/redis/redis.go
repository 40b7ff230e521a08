package redis

import (
	"context"
	"sync"
	"time"

	"tourneyhub/pkg/config"

	"github.com/redis/go-redis/v9"
)

// Type for the client.
type RedisClient struct {
	*redis.Client
}

var (
	once     sync.Once
	instance *RedisClient
)

// Return the only existing instance of the client.
func GetClient(cfg config.RedisConfiguration) *RedisClient {
	once.Do(func() {
		instance = NewClient(cfg)
	})
	return instance
}

// NewClient creates a client outside of the shared instance.
func NewClient(cfg config.RedisConfiguration) *RedisClient {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Host + ":" + cfg.Port,
		Password:     cfg.Password,
		DB:           0,
		MaxRetries:   3,
		PoolSize:     50,
		MinIdleConns: 5,
		PoolTimeout:  30 * time.Second,
	})

	return &RedisClient{Client: client}
}

// Ping checks the server is reachable.
func (r *RedisClient) Ping(ctx context.Context) error {
	return r.Client.Ping(ctx).Err()
}

// Close the client connection.
func (r *RedisClient) Close() error {
	return r.Client.Close()
}
