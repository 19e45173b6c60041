package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"eatease-backend/internal/core/detection"
	"eatease-backend/internal/infrastructure/config"
	"eatease-backend/internal/pkg/common"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const keyPrefix = "eatease:"

// RedisCache 以 Redis 保存偵測結果，多個實例可共用
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisClient 建立並測試 Redis 連線
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// 測試連接
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

// NewRedisCache 建立 Redis 快取
func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

// Get 獲取緩存，連線錯誤視為未命中
func (s *RedisCache) Get(ctx context.Context, key string) ([]detection.RawDetection, bool) {
	data, err := s.client.Get(ctx, keyPrefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			common.LogWarn("讀取 Redis 快取失敗", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}

	dets, err := decodeDetections(data)
	if err != nil {
		common.LogWarn("快取內容無法解析", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return dets, true
}

// Set 設置緩存
func (s *RedisCache) Set(ctx context.Context, key string, detections []detection.RawDetection) error {
	data, err := json.Marshal(detections)
	if err != nil {
		return fmt.Errorf("failed to marshal detections: %w", err)
	}
	if err := s.client.Set(ctx, keyPrefix+key, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set cache: %w", err)
	}
	return nil
}

// Ping 檢查連線
func (s *RedisCache) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close 關閉連線
func (s *RedisCache) Close() error {
	return s.client.Close()
}

func decodeDetections(data []byte) ([]detection.RawDetection, error) {
	var dets []detection.RawDetection
	if err := common.ParseJSONBytes(data, &dets); err != nil {
		return nil, err
	}
	if dets == nil {
		dets = []detection.RawDetection{}
	}
	return dets, nil
}
