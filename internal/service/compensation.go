package service

import (
	"context"
	"social-feed-backend/internal/util"

	"go.uber.org/zap"
)

type undoStep struct {
	name string
	fn   func(ctx context.Context) error
}

// compensator 记录已经完成的外部副作用，失败时按相反顺序撤销
type compensator struct {
	steps []undoStep
}

func (c *compensator) Add(name string, fn func(ctx context.Context) error) {
	c.steps = append(c.steps, undoStep{name: name, fn: fn})
}

func (c *compensator) Len() int {
	return len(c.steps)
}

// Run 撤销全部步骤。撤销失败只记录日志，不影响原始错误
func (c *compensator) Run(ctx context.Context) {
	// 请求可能已被取消，撤销仍要执行
	ctx = context.WithoutCancel(ctx)
	for i := len(c.steps) - 1; i >= 0; i-- {
		step := c.steps[i]
		if err := step.fn(ctx); err != nil {
			util.Logger.Warn("补偿操作失败", zap.String("step", step.name), zap.Error(err))
		}
	}
	c.steps = nil
}

// Discard 事务提交后丢弃撤销步骤
func (c *compensator) Discard() {
	c.steps = nil
}
