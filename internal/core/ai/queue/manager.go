package queue

import (
	"context"
	"sync/atomic"

	"eatease-backend/internal/core/detection"
	"eatease-backend/internal/pkg/common"

	"go.uber.org/zap"
)

// ErrQueueFull 等待中的偵測請求已達上限
var ErrQueueFull = common.ErrServiceUnavailable.WithMessage("Detection queue is full, please retry later")

// Status 隊列狀態
type Status struct {
	Running        int   `json:"running"`
	Waiting        int   `json:"waiting"`
	ProcessedCount int64 `json:"processed_count"`
	MaxQueueSize   int   `json:"max_queue_size"`
	Workers        int   `json:"workers"`
}

// Manager 限制同時呼叫外部偵測器的數量，超過的請求排隊等待
type Manager struct {
	detector  detection.Detector
	slots     chan struct{}
	maxQueue  int
	waiting   atomic.Int64
	processed atomic.Int64
}

// NewManager 包裝偵測器，workers 為同時執行上限，maxQueue 為排隊上限
func NewManager(detector detection.Detector, workers, maxQueue int) *Manager {
	if workers < 1 {
		workers = 1
	}
	if maxQueue < 0 {
		maxQueue = 0
	}
	return &Manager{
		detector: detector,
		slots:    make(chan struct{}, workers),
		maxQueue: maxQueue,
	}
}

// Name 回傳被包裝的偵測器名稱
func (m *Manager) Name() string {
	return m.detector.Name()
}

// Detect 取得執行名額後呼叫偵測器
func (m *Manager) Detect(ctx context.Context, image []byte) ([]detection.RawDetection, error) {
	if err := m.acquire(ctx); err != nil {
		return nil, err
	}
	defer func() { <-m.slots }()

	raw, err := m.detector.Detect(ctx, image)
	m.processed.Add(1)
	return raw, err
}

func (m *Manager) acquire(ctx context.Context) error {
	// 有空位時不排隊
	select {
	case m.slots <- struct{}{}:
		return nil
	default:
	}

	if int(m.waiting.Add(1)) > m.maxQueue {
		m.waiting.Add(-1)
		common.LogWarn("Detection queue is full",
			zap.Int("max_queue_size", m.maxQueue),
			zap.Int("workers", cap(m.slots)),
		)
		return ErrQueueFull
	}
	defer m.waiting.Add(-1)

	select {
	case m.slots <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// GetQueueStatus 獲取隊列狀態
func (m *Manager) GetQueueStatus() Status {
	return Status{
		Running:        len(m.slots),
		Waiting:        int(m.waiting.Load()),
		ProcessedCount: m.processed.Load(),
		MaxQueueSize:   m.maxQueue,
		Workers:        cap(m.slots),
	}
}
