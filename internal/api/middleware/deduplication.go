package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"eatease-backend/internal/pkg/common"
)

// DefaultDedupWindow 相同請求的最短間隔
const DefaultDedupWindow = time.Second

// Deduplicator 拒絕在時間窗內重複送出的相同 POST 請求
type Deduplicator struct {
	mu       sync.Mutex
	requests map[string]time.Time
	window   time.Duration
	now      func() time.Time
}

// NewDeduplicator 建立去重器
func NewDeduplicator(window time.Duration) *Deduplicator {
	if window <= 0 {
		window = DefaultDedupWindow
	}
	return &Deduplicator{
		requests: make(map[string]time.Time),
		window:   window,
		now:      time.Now,
	}
}

// seen 記錄指紋，時間窗內已出現過時回傳 true
func (d *Deduplicator) seen(fingerprint string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	now := d.now()
	if last, ok := d.requests[fingerprint]; ok && now.Sub(last) <= d.window {
		return true
	}
	d.requests[fingerprint] = now

	// 數量變多時順便清掉舊指紋
	if len(d.requests) > 1024 {
		for k, t := range d.requests {
			if now.Sub(t) > 10*d.window {
				delete(d.requests, k)
			}
		}
	}
	return false
}

// Middleware 請求去重中間件，指紋包含路徑、使用者與請求體雜湊
func (d *Deduplicator) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		// 計算請求體哈希
		bodyHash := ""
		if c.Request.Body != nil {
			body, err := io.ReadAll(c.Request.Body)
			if err != nil {
				if isBodyTooLarge(err) {
					common.RespondError(c, common.ErrPayloadTooLarge.Wrap(err))
					return
				}
				common.LogError("Failed to read request body", zap.Error(err))
				common.RespondError(c, common.ErrInvalidRequest.Wrap(err))
				return
			}

			hash := sha256.Sum256(body)
			bodyHash = hex.EncodeToString(hash[:])

			// 恢復請求體
			c.Request.Body = io.NopCloser(bytes.NewReader(body))
		}

		fingerprint := c.Request.Method + ":" + c.Request.URL.Path + ":" + c.ClientIP()
		if id, ok := UserID(c); ok {
			fingerprint += ":" + strconv.FormatUint(uint64(id), 10)
		}
		if bodyHash != "" {
			fingerprint += ":" + bodyHash
		}

		if d.seen(fingerprint) {
			common.LogInfo("Duplicate request rejected",
				zap.String("path", c.Request.URL.Path),
				zap.String("ip", c.ClientIP()),
			)
			common.RespondError(c, common.ErrConflict)
			return
		}

		c.Next()
	}
}
