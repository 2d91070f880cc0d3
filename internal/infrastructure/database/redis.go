package database

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// ConnectRedis returns a client for the request guard. An empty address means
// the guard runs in memory and nil is returned.
func ConnectRedis(ctx context.Context, addr, password string, logger *zap.Logger) (*redis.Client, error) {
	if addr == "" {
		return nil, nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	logger.Info("[database][redis] connected", zap.String("addr", addr))
	return client, nil
}
