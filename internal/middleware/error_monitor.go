package middleware

import (
	"social-feed-backend/internal/errors"
	"sync"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorMonitor 按错误码统计请求错误
type ErrorMonitor struct {
	errorCounts map[errors.ErrorCode]int
	mu          sync.RWMutex
}

func NewErrorMonitor() *ErrorMonitor {
	return &ErrorMonitor{
		errorCounts: make(map[errors.ErrorCode]int),
	}
}

func (m *ErrorMonitor) RecordError(err error) {
	code := errors.CodeOf(err)
	m.mu.Lock()
	m.errorCounts[code]++
	m.mu.Unlock()
}

func (m *ErrorMonitor) GetErrorCounts() map[errors.ErrorCode]int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	counts := make(map[errors.ErrorCode]int, len(m.errorCounts))
	for code, count := range m.errorCounts {
		counts[code] = count
	}
	return counts
}

func ErrorMonitorMiddleware(monitor *ErrorMonitor) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		for _, e := range c.Errors {
			monitor.RecordError(e.Err)

			fields := []zap.Field{
				zap.Int("error_code", int(errors.CodeOf(e.Err))),
				zap.String("path", c.Request.URL.Path),
				zap.String("method", c.Request.Method),
				zap.Int("status", c.Writer.Status()),
			}
			if appErr, ok := errors.As(e.Err); ok {
				fields = append(fields, zap.String("error_message", appErr.Message), zap.Error(appErr.Err))
			} else {
				fields = append(fields, zap.Error(e.Err))
			}

			// 4xx 属于调用方错误，只记 warn
			if c.Writer.Status() >= 500 {
				zap.L().Error("请求处理错误", fields...)
			} else {
				zap.L().Warn("请求处理错误", fields...)
			}
		}
	}
}
