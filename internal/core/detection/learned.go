package detection

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"eatease-backend/internal/pkg/common"

	"go.uber.org/zap"
)

const (
	DefaultLearnedRefresh = 5 * time.Minute
	DefaultMinCorrections = 1
)

// MappingSource 提供學習對應的儲存層
type MappingSource interface {
	LearnedMappings(ctx context.Context, minCorrections int) (map[string]LearnedMapping, error)
}

// RebuildObserver 接收快取重建結果，用於監控
type RebuildObserver interface {
	ObserveLearnedRebuild(size int, err error)
}

// LearnedSnapshot 某一時間點的學習對應，建立後不再修改
type LearnedSnapshot struct {
	mappings map[string]LearnedMapping
	// keys 依長度遞減、再依字母排序，部分比對時較長的標籤優先
	keys    []string
	builtAt time.Time
}

func newSnapshot(mappings map[string]LearnedMapping, builtAt time.Time) *LearnedSnapshot {
	if mappings == nil {
		mappings = map[string]LearnedMapping{}
	}
	keys := make([]string, 0, len(mappings))
	for k := range mappings {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	return &LearnedSnapshot{mappings: mappings, keys: keys, builtAt: builtAt}
}

// Lookup 精確查詢
func (s *LearnedSnapshot) Lookup(label string) (LearnedMapping, bool) {
	m, ok := s.mappings[label]
	return m, ok
}

// Each 依固定順序走訪，fn 回傳 false 時停止
func (s *LearnedSnapshot) Each(fn func(label string, m LearnedMapping) bool) {
	for _, k := range s.keys {
		if !fn(k, s.mappings[k]) {
			return
		}
	}
}

// Len 對應數量
func (s *LearnedSnapshot) Len() int {
	return len(s.mappings)
}

// LearnedCacheOption 快取選項
type LearnedCacheOption func(*LearnedCache)

// WithRefreshInterval 設定快取有效時間
func WithRefreshInterval(d time.Duration) LearnedCacheOption {
	return func(c *LearnedCache) {
		if d > 0 {
			c.refresh = d
		}
	}
}

// WithMinCorrections 設定對應生效所需的最少修正次數
func WithMinCorrections(n int) LearnedCacheOption {
	return func(c *LearnedCache) {
		if n > 0 {
			c.minCorrections = n
		}
	}
}

// WithClock 替換時間來源（測試用）
func WithClock(now func() time.Time) LearnedCacheOption {
	return func(c *LearnedCache) {
		c.now = now
	}
}

// WithRebuildObserver 設定重建監控
func WithRebuildObserver(o RebuildObserver) LearnedCacheOption {
	return func(c *LearnedCache) {
		c.observer = o
	}
}

// LearnedCache 學習對應的記憶體快取。
// 讀取端只做原子操作，重建時以新快照整個替換。
type LearnedCache struct {
	source         MappingSource
	refresh        time.Duration
	minCorrections int
	now            func() time.Time
	observer       RebuildObserver

	current   atomic.Pointer[LearnedSnapshot]
	rebuildMu sync.Mutex
}

// NewLearnedCache 建立學習對應快取，source 為 nil 時永遠回傳空對應
func NewLearnedCache(source MappingSource, opts ...LearnedCacheOption) *LearnedCache {
	c := &LearnedCache{
		source:         source,
		refresh:        DefaultLearnedRefresh,
		minCorrections: DefaultMinCorrections,
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get 取得目前的快照，過期或已失效時先重建
func (c *LearnedCache) Get(ctx context.Context) *LearnedSnapshot {
	if snap := c.current.Load(); c.fresh(snap) {
		return snap
	}

	c.rebuildMu.Lock()
	defer c.rebuildMu.Unlock()

	// 等待鎖期間可能已有其他請求完成重建
	if snap := c.current.Load(); c.fresh(snap) {
		return snap
	}

	_ = c.rebuildLocked(ctx)
	return c.current.Load()
}

// Rebuild 立即從儲存層重新載入
func (c *LearnedCache) Rebuild(ctx context.Context) error {
	c.rebuildMu.Lock()
	defer c.rebuildMu.Unlock()
	return c.rebuildLocked(ctx)
}

// Invalidate 讓下一次 Get 重新載入
func (c *LearnedCache) Invalidate() {
	if snap := c.current.Load(); snap != nil {
		c.current.Store(&LearnedSnapshot{mappings: snap.mappings, keys: snap.keys})
	}
}

func (c *LearnedCache) fresh(snap *LearnedSnapshot) bool {
	if snap == nil || snap.builtAt.IsZero() {
		return false
	}
	return c.now().Sub(snap.builtAt) < c.refresh
}

func (c *LearnedCache) rebuildLocked(ctx context.Context) error {
	if c.source == nil {
		c.current.Store(newSnapshot(nil, c.now()))
		return nil
	}

	mappings, err := c.source.LearnedMappings(ctx, c.minCorrections)
	if c.observer != nil {
		c.observer.ObserveLearnedRebuild(len(mappings), err)
	}
	if err != nil {
		common.LogError("載入學習對應失敗，改用空對應",
			zap.Error(err),
		)
		// 時間戳保持未設定，下次存取時重試
		c.current.Store(newSnapshot(nil, time.Time{}))
		return err
	}

	c.current.Store(newSnapshot(mappings, c.now()))
	common.LogDebug("學習對應已重新載入",
		zap.Int("count", len(mappings)),
	)
	return nil
}
