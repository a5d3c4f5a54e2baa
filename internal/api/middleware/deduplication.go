package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"recipe-finder/internal/pkg/common"
)

// requestCache 請求指紋與最後出現時間
type requestCache struct {
	sync.Mutex
	requests  map[string]time.Time
	lastSweep time.Time
}

// sweep 清理過舊的指紋，呼叫端需持有鎖
func (rc *requestCache) sweep(now time.Time, window time.Duration) {
	if now.Sub(rc.lastSweep) < 10*window {
		return
	}
	for k, t := range rc.requests {
		if now.Sub(t) > window {
			delete(rc.requests, k)
		}
	}
	rc.lastSweep = now
}

// Deduplication 請求去重中間件：相同路徑與內容的 POST 在時間窗內只處理一次
func Deduplication(window time.Duration) gin.HandlerFunc {
	if window <= 0 {
		window = time.Second
	}
	cache := &requestCache{
		requests: make(map[string]time.Time),
	}

	return func(c *gin.Context) {
		// 只處理 POST 請求
		if c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		// 計算請求體哈希
		bodyHash := ""
		if c.Request.Body != nil {
			body, err := io.ReadAll(c.Request.Body)
			if err != nil {
				common.LogError("Failed to read request body", zap.Error(err))
				c.Next()
				return
			}

			hash := sha256.Sum256(body)
			bodyHash = hex.EncodeToString(hash[:])

			// 恢復請求體
			c.Request.Body = io.NopCloser(bytes.NewBuffer(body))
		}

		// 生成請求指紋
		fingerprint := c.ClientIP() + ":" + c.Request.URL.Path
		if bodyHash != "" {
			fingerprint += ":" + bodyHash
		}

		now := time.Now()
		cache.Lock()
		cache.sweep(now, window)
		if lastTime, exists := cache.requests[fingerprint]; exists && now.Sub(lastTime) <= window {
			cache.Unlock()
			common.LogWarn("Duplicate request rejected",
				zap.String("path", c.Request.URL.Path),
				zap.String("ip", c.ClientIP()),
			)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, common.ErrorResponse{
				Code:    common.ErrCodeTooManyRequests,
				Message: "Request too frequent",
			})
			return
		}
		cache.requests[fingerprint] = now
		cache.Unlock()

		c.Next()
	}
}
