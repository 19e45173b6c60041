package middleware

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"eatease-backend/internal/infrastructure/config"
	"eatease-backend/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

const userIDKey = "user_id"

// Authenticator 驗證 HS256 bearer token，subject 為使用者 ID
type Authenticator struct {
	secret []byte
	issuer string
}

// NewAuthenticator 建立驗證器，secret 為空時所有請求視為匿名
func NewAuthenticator(cfg config.AuthConfig) *Authenticator {
	return &Authenticator{secret: []byte(cfg.JWTSecret), issuer: cfg.Issuer}
}

// Enabled 是否啟用驗證
func (a *Authenticator) Enabled() bool {
	return len(a.secret) > 0
}

// Required 需要有效 token 的路由
func (a *Authenticator) Required() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !a.Enabled() {
			c.Next()
			return
		}

		userID, err := a.authenticate(c.GetHeader("Authorization"))
		if err != nil {
			common.LogWarn("Authentication failed",
				zap.String("path", c.Request.URL.Path),
				zap.String("ip", c.ClientIP()),
				zap.Error(err),
			)
			common.RespondError(c, common.ErrUnauthorized)
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

// Optional 有 token 時解析使用者，無效或缺少時以匿名繼續
func (a *Authenticator) Optional() gin.HandlerFunc {
	return func(c *gin.Context) {
		if a.Enabled() && c.GetHeader("Authorization") != "" {
			if userID, err := a.authenticate(c.GetHeader("Authorization")); err == nil {
				c.Set(userIDKey, userID)
			}
		}
		c.Next()
	}
}

func (a *Authenticator) authenticate(header string) (uint, error) {
	scheme, raw, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(raw) == "" {
		return 0, errors.New("missing bearer token")
	}

	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if a.issuer != "" {
		opts = append(opts, jwt.WithIssuer(a.issuer))
	}

	claims := &jwt.RegisteredClaims{}
	if _, err := jwt.ParseWithClaims(strings.TrimSpace(raw), claims, func(*jwt.Token) (interface{}, error) {
		return a.secret, nil
	}, opts...); err != nil {
		return 0, fmt.Errorf("failed to parse token: %w", err)
	}

	id, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid subject %q", claims.Subject)
	}
	return uint(id), nil
}

// UserID 取得已驗證的使用者 ID，匿名時回傳 0, false
func UserID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(userIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}
