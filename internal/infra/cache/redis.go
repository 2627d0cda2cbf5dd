package cache

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

type RedisOptions struct {
	Addr     string
	Password string
	DB       int
}

// NewRedisClient connects and pings once so a bad address fails at startup.
func NewRedisClient(ctx context.Context, opts RedisOptions) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:        opts.Addr,
		Password:    opts.Password,
		DB:          opts.DB,
		DialTimeout: 3 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}
