package middleware

import (
	"runtime/debug"
	"social-feed-backend/internal/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RecoveryMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				// 记录堆栈信息
				zap.L().Error("发生panic",
					zap.Any("error", r),
					zap.String("path", c.Request.URL.Path),
					zap.String("stack", string(debug.Stack())))

				errors.HandleError(c, errors.New(errors.ErrInternal, "Internal Server Error"))
				c.Abort()
			}
		}()
		c.Next()
	}
}
