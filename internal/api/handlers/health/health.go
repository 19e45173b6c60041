package health

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"eatease-backend/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// readyTimeout 就緒檢查的最長等待時間
const readyTimeout = 2 * time.Second

// Pinger 依賴服務的連線檢查
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc 讓函式滿足 Pinger
type PingFunc func(ctx context.Context) error

// Ping 呼叫函式本身
func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

// HealthResponse 健康檢查響應
type HealthResponse struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Detector  string                 `json:"detector"`
	Runtime   map[string]interface{} `json:"runtime"`
}

// Handler 健康檢查處理程序
type Handler struct {
	version  string
	detector string
	checks   map[string]Pinger
}

// NewHandler 創建健康檢查處理程序，checks 的每一項都會在 /ready 檢查
func NewHandler(version, detector string, checks map[string]Pinger) *Handler {
	return &Handler{version: version, detector: detector, checks: checks}
}

// HealthCheck 健康檢查處理器
func (h *Handler) HealthCheck(c *gin.Context) {
	// 獲取運行時信息
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	c.JSON(http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   h.version,
		Detector:  h.detector,
		Runtime: map[string]interface{}{
			"goroutines": runtime.NumGoroutine(),
			"memory": map[string]interface{}{
				"alloc":       m.Alloc,
				"total_alloc": m.TotalAlloc,
				"sys":         m.Sys,
				"num_gc":      m.NumGC,
			},
		},
	})
}

// ReadinessCheck 就緒檢查處理器，任一依賴失敗回傳 503
func (h *Handler) ReadinessCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), readyTimeout)
	defer cancel()

	results := make(map[string]string, len(h.checks))
	ready := true
	for name, check := range h.checks {
		if err := check.Ping(ctx); err != nil {
			common.LogWarn("Readiness check failed",
				zap.String("dependency", name),
				zap.Error(err),
			)
			results[name] = err.Error()
			ready = false
			continue
		}
		results[name] = "ok"
	}

	if !ready {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "not_ready",
			"checks": results,
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"checks": results,
	})
}

// LivenessCheck 存活檢查處理器
func (h *Handler) LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "alive",
	})
}
