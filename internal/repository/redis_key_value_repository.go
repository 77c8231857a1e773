package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go_4_vocab_learn/internal/middleware"
	"go_4_vocab_learn/internal/model"

	"github.com/redis/go-redis/v9"
)

type redisKeyValueRepository struct {
	rdb *redis.Client
}

// NewRedisClient は接続確認まで行った redis クライアントを返します
func NewRedisClient(ctx context.Context, addr string, db int) (*redis.Client, error) {
	if addr == "" {
		return nil, fmt.Errorf("missing redis address")
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:        addr,
		DB:          db,
		DialTimeout: 5 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return rdb, nil
}

func NewRedisKeyValueRepository(rdb *redis.Client) KeyValueRepository {
	return &redisKeyValueRepository{rdb: rdb}
}

func (r *redisKeyValueRepository) Get(ctx context.Context, key string) (string, error) {
	val, err := r.rdb.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", model.ErrNotFound
		}
		middleware.GetLogger(ctx).Error("Error reading key from redis", "error", err, "key", key)
		return "", fmt.Errorf("redisKeyValueRepository.Get: %w", err)
	}
	return val, nil
}

func (r *redisKeyValueRepository) Set(ctx context.Context, key, value string) error {
	if err := r.rdb.Set(ctx, key, value, 0).Err(); err != nil {
		middleware.GetLogger(ctx).Error("Error writing key to redis", "error", err, "key", key)
		return fmt.Errorf("redisKeyValueRepository.Set: %w", err)
	}
	return nil
}

func (r *redisKeyValueRepository) Ping(ctx context.Context) error {
	return r.rdb.Ping(ctx).Err()
}
