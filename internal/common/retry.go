package common

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"net"
	"time"
)

// IsTemporary 判断是否为临时性错误
func IsTemporary(err error) bool {
	var temp interface{ Temporary() bool }
	if errors.As(err, &temp) {
		return temp.Temporary()
	}
	return false
}

// IsRetryable 判断是否可重试：临时错误、连接失效以及网络错误
func IsRetryable(err error) bool {
	if IsTemporary(err) || errors.Is(err, sql.ErrConnDone) || errors.Is(err, driver.ErrBadConn) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

// backoff 第 attempt 次失败后的等待时间，线性增长
var backoff = func(attempt int) time.Duration {
	return time.Second * time.Duration(attempt+1)
}

// WithRetry 通用重试机制，ctx 取消时立即返回
func WithRetry(ctx context.Context, operation func(ctx context.Context) error, maxRetries int) error {
	var err error
	for i := 0; i < maxRetries; i++ {
		if err = operation(ctx); err == nil {
			return nil
		}
		if !IsRetryable(err) || i == maxRetries-1 {
			return err
		}

		timer := time.NewTimer(backoff(i))
		select {
		case <-ctx.Done():
			timer.Stop()
			return errors.Join(err, ctx.Err())
		case <-timer.C:
		}
	}
	return err
}
