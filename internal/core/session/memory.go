package session

import (
	"context"
	"sync"
	"time"

	"recipe-finder/internal/core/finder"
	"recipe-finder/internal/infrastructure/config"
	"recipe-finder/internal/pkg/common"

	"go.uber.org/zap"
)

// MemoryStore 記憶體會話儲存
type MemoryStore struct {
	config *config.SessionConfig
	mu     sync.RWMutex
	store  map[string]entry
	stats  stats
	done   chan struct{}
	once   sync.Once
	now    func() time.Time
}

// entry 會話條目
type entry struct {
	selection  *finder.Selection
	expiresAt  time.Time
	lastAccess time.Time
}

// stats 會話統計
type stats struct {
	hits      int64
	misses    int64
	evictions int64
}

// NewMemoryStore 創建記憶體會話儲存
func NewMemoryStore(cfg *config.SessionConfig) *MemoryStore {
	m := &MemoryStore{
		config: cfg,
		store:  make(map[string]entry),
		done:   make(chan struct{}),
		now:    time.Now,
	}

	// 啟動清理過期會話的協程
	if cfg.CleanupInterval > 0 {
		go m.startCleanup()
	}

	common.LogInfo("會話儲存已初始化",
		zap.String("store", config.SessionStoreMemory),
		zap.Int("最大容量", cfg.MaxSize),
		zap.Duration("存活時間", cfg.TTL),
	)
	return m
}

// Put 儲存會話
func (m *MemoryStore) Put(ctx context.Context, sel *finder.Selection) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	// 檢查容量
	if m.config.MaxSize > 0 && len(m.store) >= m.config.MaxSize {
		m.cleanup()
		if len(m.store) >= m.config.MaxSize {
			m.evictLRU()
		}
	}

	now := m.now()
	m.store[sel.ID] = entry{
		selection:  sel,
		expiresAt:  now.Add(m.config.TTL),
		lastAccess: now,
	}
	return nil
}

// Get 取得會話
func (m *MemoryStore) Get(ctx context.Context, id string) (*finder.Selection, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.store[id]
	if !ok {
		m.stats.misses++
		return nil, ErrNotFound
	}
	if m.now().After(e.expiresAt) {
		delete(m.store, id)
		m.stats.evictions++
		m.stats.misses++
		return nil, ErrNotFound
	}

	e.lastAccess = m.now()
	m.store[id] = e
	m.stats.hits++
	return e.selection, nil
}

// Delete 刪除會話
func (m *MemoryStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.store, id)
	return nil
}

// Len 目前會話數量
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.store)
}

// startCleanup 定期清理過期會話
func (m *MemoryStore) startCleanup() {
	ticker := time.NewTicker(m.config.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.mu.Lock()
			m.cleanup()
			m.mu.Unlock()
		case <-m.done:
			return
		}
	}
}

// cleanup 清理過期會話，呼叫端需持有寫鎖
func (m *MemoryStore) cleanup() int {
	now := m.now()
	count := 0
	for id, e := range m.store {
		if now.After(e.expiresAt) {
			delete(m.store, id)
			count++
			m.stats.evictions++
		}
	}
	if count > 0 {
		common.LogDebug("Cleaned up expired selections",
			zap.Int("count", count),
			zap.Int("remaining_size", len(m.store)),
		)
	}
	return count
}

// evictLRU 淘汰最久未使用的會話，呼叫端需持有寫鎖
func (m *MemoryStore) evictLRU() {
	var oldestID string
	var oldestAccess time.Time
	for id, e := range m.store {
		if oldestID == "" || e.lastAccess.Before(oldestAccess) {
			oldestID = id
			oldestAccess = e.lastAccess
		}
	}
	if oldestID != "" {
		delete(m.store, oldestID)
		m.stats.evictions++
		common.LogDebug("會話已淘汰(LRU)", zap.String("id", oldestID))
	}
}

// Close 關閉會話儲存
func (m *MemoryStore) Close() error {
	m.once.Do(func() { close(m.done) })

	m.mu.Lock()
	defer m.mu.Unlock()
	m.store = make(map[string]entry)
	common.LogInfo("會話儲存已關閉",
		zap.Int64("命中次數", m.stats.hits),
		zap.Int64("未命中次數", m.stats.misses),
		zap.Int64("淘汰次數", m.stats.evictions),
	)
	return nil
}
