package util

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger 默认为 no-op，InitLogger 之前（例如单元测试中）也可以安全调用
var Logger = zap.NewNop()

func InitLogger(logLevel string) {
	config := zap.NewProductionConfig()
	level, err := zapcore.ParseLevel(logLevel)
	if err != nil {
		level = zapcore.InfoLevel
	}
	config.Level.SetLevel(level)
	logger, err := config.Build()
	if err != nil {
		return
	}
	Logger = logger
	zap.ReplaceGlobals(logger)
}
