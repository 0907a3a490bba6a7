package dataset

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"
)

const redisKeyPrefix = "bike-rental:dataset:"

// RedisCache Cache shared between processes. Datasets are stored as JSON
type RedisCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewRedisCache connects to addr and checks the connection with a PING
func NewRedisCache(ctx context.Context, addr string, password string, db int, ttl time.Duration) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", addr, err)
	}

	log.Infof("[component: redis-cache][status: OK] connected to %s", addr)
	return NewRedisCacheWithClient(client, ttl), nil
}

func NewRedisCacheWithClient(client redis.Cmdable, ttl time.Duration) *RedisCache {
	return &RedisCache{
		client: client,
		ttl:    ttl,
	}
}

func (rc *RedisCache) Get(ctx context.Context, key string) (*Dataset, bool, error) {
	data, err := rc.client.Get(ctx, redisKeyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get dataset from Redis: %w", err)
	}

	var cached Dataset
	if err := json.Unmarshal(data, &cached); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal cached dataset: %w", err)
	}
	return &cached, true, nil
}

func (rc *RedisCache) Set(ctx context.Context, key string, dataset *Dataset) error {
	data, err := json.Marshal(dataset)
	if err != nil {
		return fmt.Errorf("failed to marshal dataset: %w", err)
	}

	if err := rc.client.Set(ctx, redisKeyPrefix+key, data, rc.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save dataset in Redis: %w", err)
	}
	return nil
}
