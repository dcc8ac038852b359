package middleware

import (
	"social-feed-backend/internal/errors"
	"social-feed-backend/internal/util"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserIDKey 认证通过后用户ID在 gin.Context 中的键
const UserIDKey = "user_id"

// bearerToken 从 Authorization 头中取出令牌
func bearerToken(c *gin.Context) (string, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", errors.New(errors.ErrUnauthorized, "Authentication required")
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if !(len(parts) == 2 && parts[0] == "Bearer") {
		return "", errors.New(errors.ErrUnauthorized, "Invalid authorization format")
	}
	return parts[1], nil
}

// AuthMiddleware 要求请求携带有效令牌。客户端已断开或请求已超时时不再进入处理器
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := bearerToken(c)
		if err != nil {
			errors.HandleError(c, err)
			c.Abort()
			return
		}

		userID, err := util.ValidateToken(token)
		if err != nil {
			util.Logger.Debug("令牌校验失败", zap.Error(err), zap.String("path", c.Request.URL.Path))
			errors.HandleError(c, errors.Wrap(errors.ErrInvalidToken, "Invalid or expired token", err))
			c.Abort()
			return
		}

		if err := c.Request.Context().Err(); err != nil {
			errors.HandleError(c, errors.Wrap(errors.ErrTimeout, "Request timeout", err))
			c.Abort()
			return
		}

		c.Set(UserIDKey, userID)
		c.Next()
	}
}

// OptionalAuthMiddleware 有令牌且有效时设置用户ID，否则按匿名请求处理
func OptionalAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, err := bearerToken(c); err == nil {
			if userID, err := util.ValidateToken(token); err == nil {
				c.Set(UserIDKey, userID)
			} else {
				util.Logger.Debug("忽略无效令牌", zap.Error(err))
			}
		}
		c.Next()
	}
}

// CurrentUserID 返回当前用户ID，匿名请求返回空字符串
func CurrentUserID(c *gin.Context) string {
	return c.GetString(UserIDKey)
}
