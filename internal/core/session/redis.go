package session

import (
	"context"
	"encoding/json"
	"fmt"

	"recipe-finder/internal/core/finder"
	"recipe-finder/internal/infrastructure/config"
	"recipe-finder/internal/pkg/common"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const keyPrefix = "recipe-finder:selection:"

// RedisStore Redis 會話儲存，多個服務實例可共用
type RedisStore struct {
	client *redis.Client
	config *config.SessionConfig
}

// NewRedisStore 創建 Redis 會話儲存
func NewRedisStore(cfg *config.SessionConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	// 測試連接
	if err := client.Ping(context.Background()).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	common.LogInfo("會話儲存已初始化",
		zap.String("store", config.SessionStoreRedis),
		zap.String("addr", cfg.RedisAddr),
		zap.Duration("存活時間", cfg.TTL),
	)

	return &RedisStore{
		client: client,
		config: cfg,
	}, nil
}

// Put 儲存會話
func (s *RedisStore) Put(ctx context.Context, sel *finder.Selection) error {
	data, err := json.Marshal(sel)
	if err != nil {
		return fmt.Errorf("failed to marshal selection: %w", err)
	}
	if err := s.client.Set(ctx, s.key(sel.ID), data, s.config.TTL).Err(); err != nil {
		return fmt.Errorf("failed to store selection: %w", err)
	}
	return nil
}

// Get 取得會話
func (s *RedisStore) Get(ctx context.Context, id string) (*finder.Selection, error) {
	data, err := s.client.Get(ctx, s.key(id)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get selection: %w", err)
	}

	var sel finder.Selection
	if err := common.ParseJSONBytes(data, &sel); err != nil {
		return nil, fmt.Errorf("failed to unmarshal selection: %w", err)
	}
	return &sel, nil
}

// Delete 刪除會話
func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, s.key(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete selection: %w", err)
	}
	return nil
}

// Close 關閉連線
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// key 生成 Redis 鍵
func (s *RedisStore) key(id string) string {
	return keyPrefix + id
}
