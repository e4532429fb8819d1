package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cdn-service/infrastructure/logger"

	"github.com/redis/go-redis/v9"
)

// ErrNotConfigured is returned when no Redis address is set.
var ErrNotConfigured = errors.New("redis not configured")

// NewCache connects to Redis and verifies the connection with a PING.
func NewCache(ctx context.Context, addr, username, password string, db int) (*redis.Client, error) {
	if addr == "" {
		return nil, ErrNotConfigured
	}
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Username:     username,
		Password:     password,
		DB:           db,
		DialTimeout:  3 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	logger.GetLogger().WithField("addr", addr).Info("Redis client initialized")
	return client, nil
}
