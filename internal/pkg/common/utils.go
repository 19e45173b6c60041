package common

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// GenerateUUID 生成 UUID
func GenerateUUID() string {
	return uuid.New().String()
}

// RespondError 將錯誤寫成 {code, error} 的 JSON 響應並中止後續處理
func RespondError(c *gin.Context, err error) {
	status, body := ToErrorResponse(err)
	if status >= 500 {
		LogError("Request failed",
			zap.String("path", c.Request.URL.Path),
			zap.String("request_id", c.Writer.Header().Get("X-Request-ID")),
			zap.Error(err),
		)
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, body)
}
