package session

import (
	"context"
	"errors"
	"fmt"

	"recipe-finder/internal/core/finder"
	"recipe-finder/internal/infrastructure/config"
)

// ErrNotFound 會話不存在或已過期
var ErrNotFound = errors.New("selection not found or expired")

// Store 儲存對話框上下文的會話儲存
type Store interface {
	Put(ctx context.Context, sel *finder.Selection) error
	Get(ctx context.Context, id string) (*finder.Selection, error)
	Delete(ctx context.Context, id string) error
	Close() error
}

// NewStore 依設定建立會話儲存
func NewStore(cfg *config.SessionConfig) (Store, error) {
	switch cfg.Store {
	case config.SessionStoreRedis:
		return NewRedisStore(cfg)
	case config.SessionStoreMemory, "":
		return NewMemoryStore(cfg), nil
	default:
		return nil, fmt.Errorf("unknown session store %q", cfg.Store)
	}
}
