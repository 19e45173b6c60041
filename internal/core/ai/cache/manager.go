package cache

import (
	"context"
	"sync"
	"time"

	"eatease-backend/internal/core/detection"
	"eatease-backend/internal/infrastructure/config"
	"eatease-backend/internal/pkg/common"

	"go.uber.org/zap"
)

// Manager 記憶體內的偵測結果快取，超過容量時淘汰最少使用的項目
type Manager struct {
	cfg   config.CacheConfig
	mu    sync.Mutex
	store map[string]cacheEntry
	stats cacheStats
	now   func() time.Time
	stop  chan struct{}
	once  sync.Once
}

// cacheEntry 緩存條目
type cacheEntry struct {
	detections  []detection.RawDetection
	expiresAt   time.Time
	createdAt   time.Time
	lastAccess  time.Time
	accessCount int
}

// cacheStats 緩存統計
type cacheStats struct {
	hits      int64
	misses    int64
	evictions int64
}

// Stats 快取統計快照
type Stats struct {
	Size      int     `json:"size"`
	MaxSize   int     `json:"max_size"`
	Hits      int64   `json:"hits"`
	Misses    int64   `json:"misses"`
	Evictions int64   `json:"evictions"`
	HitRatio  float64 `json:"hit_ratio"`
}

// NewManager 創建新的緩存管理器，CleanupInterval > 0 時啟動背景清理
func NewManager(cfg config.CacheConfig) *Manager {
	m := &Manager{
		cfg:   cfg,
		store: make(map[string]cacheEntry),
		now:   time.Now,
		stop:  make(chan struct{}),
	}

	if cfg.CleanupInterval > 0 {
		go m.startCleanup(cfg.CleanupInterval)
	}

	common.LogInfo("快取管理員已初始化",
		zap.Int("最大容量", cfg.MaxSize),
		zap.Duration("存活時間", cfg.TTL),
		zap.Duration("清理間隔", cfg.CleanupInterval),
	)
	return m
}

// Get 獲取緩存值，過期項目視為未命中並移除
func (m *Manager) Get(ctx context.Context, key string) ([]detection.RawDetection, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.store[key]
	if !exists {
		m.stats.misses++
		common.LogDebug("快取未命中", zap.String("鍵", key))
		return nil, false
	}

	now := m.now()
	if now.After(entry.expiresAt) {
		delete(m.store, key)
		m.stats.evictions++
		m.stats.misses++
		common.LogDebug("快取已過期", zap.String("鍵", key))
		return nil, false
	}

	entry.lastAccess = now
	entry.accessCount++
	m.store[key] = entry
	m.stats.hits++

	common.LogDebug("快取命中", zap.String("鍵", key))
	return cloneDetections(entry.detections), true
}

// Set 設置緩存值
func (m *Manager) Set(ctx context.Context, key string, detections []detection.RawDetection) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.store[key]; !exists && m.cfg.MaxSize > 0 && len(m.store) >= m.cfg.MaxSize {
		if evicted := m.cleanup(); evicted > 0 {
			common.LogDebug("快取清理執行", zap.Int("清理數量", evicted))
		}
		if len(m.store) >= m.cfg.MaxSize {
			m.evictLRU()
		}
	}

	now := m.now()
	m.store[key] = cacheEntry{
		detections: cloneDetections(detections),
		expiresAt:  now.Add(m.cfg.TTL),
		createdAt:  now,
		lastAccess: now,
	}
	return nil
}

// startCleanup 啟動清理過期緩存的協程
func (m *Manager) startCleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.mu.Lock()
			m.cleanup()
			m.mu.Unlock()
		case <-m.stop:
			return
		}
	}
}

// cleanup 清理過期的緩存，呼叫端需持有鎖
func (m *Manager) cleanup() int {
	now := m.now()
	count := 0

	for key, entry := range m.store {
		if now.After(entry.expiresAt) {
			delete(m.store, key)
			count++
			m.stats.evictions++
		}
	}

	if count > 0 {
		common.LogInfo("Cleaned up expired cache entries",
			zap.Int("count", count),
			zap.Int64("total_evictions", m.stats.evictions),
			zap.Int("remaining_size", len(m.store)),
		)
	}
	return count
}

// evictLRU 淘汰存取次數最少的項目，同次數時淘汰最久未使用者
func (m *Manager) evictLRU() {
	var oldestKey string
	var oldestAccess time.Time
	var lowestAccessCount int

	for key, entry := range m.store {
		if oldestKey == "" ||
			entry.accessCount < lowestAccessCount ||
			(entry.accessCount == lowestAccessCount && entry.lastAccess.Before(oldestAccess)) {
			oldestKey = key
			oldestAccess = entry.lastAccess
			lowestAccessCount = entry.accessCount
		}
	}

	if oldestKey != "" {
		delete(m.store, oldestKey)
		m.stats.evictions++
		common.LogDebug("快取已淘汰(LRU)", zap.String("鍵", oldestKey))
	}
}

// GetStats 獲取緩存統計信息
func (m *Manager) GetStats() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := Stats{
		Size:      len(m.store),
		MaxSize:   m.cfg.MaxSize,
		Hits:      m.stats.hits,
		Misses:    m.stats.misses,
		Evictions: m.stats.evictions,
	}
	if total := s.Hits + s.Misses; total > 0 {
		s.HitRatio = float64(s.Hits) / float64(total)
	}
	return s
}

// Close 停止背景清理並清空快取
func (m *Manager) Close() error {
	m.once.Do(func() { close(m.stop) })

	m.mu.Lock()
	defer m.mu.Unlock()

	m.store = make(map[string]cacheEntry)
	common.LogInfo("快取管理員已關閉",
		zap.Int64("命中次數", m.stats.hits),
		zap.Int64("未命中次數", m.stats.misses),
		zap.Int64("淘汰次數", m.stats.evictions),
	)
	return nil
}

func cloneDetections(in []detection.RawDetection) []detection.RawDetection {
	out := make([]detection.RawDetection, len(in))
	for i, d := range in {
		if d.Box != nil {
			box := *d.Box
			d.Box = &box
		}
		out[i] = d
	}
	return out
}
