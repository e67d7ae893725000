// Package log holds the process-wide zap logger.
package log

import (
	"os"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu     sync.RWMutex
	logger = newLogger()
)

func newLogger() *zap.Logger {
	encConfig := zap.NewDevelopmentEncoderConfig()
	encConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	encConfig.EncodeCaller = nil
	encConfig.EncodeTime = func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString(t.UTC().Format(time.StampMicro))
	}

	level := zap.NewAtomicLevelAt(zapcore.InfoLevel)
	if os.Getenv("DEBUG") != "" {
		level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encConfig), zapcore.Lock(os.Stdout), level)
	return zap.New(core, zap.ErrorOutput(zapcore.Lock(os.Stderr)))
}

// L returns the *[zap.Logger].
func L() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// S returns a *[zap.SugaredLogger].
func S() *zap.SugaredLogger {
	return L().Sugar()
}

// Named returns a sugared logger scoped to name.
func Named(name string) *zap.SugaredLogger {
	return S().Named(name)
}

// Replace swaps the global logger and returns a function restoring the
// previous one. Tests use it with zaptest or zap.NewNop.
func Replace(l *zap.Logger) func() {
	mu.Lock()
	prev := logger
	logger = l
	mu.Unlock()
	return func() {
		mu.Lock()
		logger = prev
		mu.Unlock()
	}
}
