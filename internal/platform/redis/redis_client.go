// Package redis constructs the shared Redis client.
package redis

import (
	"context"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient connects to the instance configured via REDIS_HOST,
// REDIS_PORT, REDIS_PASSWORD and REDIS_DB, and verifies the connection
// with a ping before returning.
func NewRedisClient() (*redis.Client, error) {
	addr := getenv("REDIS_HOST", "localhost") + ":" + getenv("REDIS_PORT", "6379")

	db := 0
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			db = n
		}
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       db,
	})

	// 接続確認
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		slog.Error("Redis ping failed", "address", addr, "error", err)
		return nil, err
	}

	slog.Info("Redis connected", "address", addr, "db", db)
	return rdb, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
