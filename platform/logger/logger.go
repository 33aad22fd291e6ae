package logger

import (
	"context"
	"fmt"
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu     sync.RWMutex
	global = New(zap.NewNop())
)

// Logger is a thin context-aware wrapper around zap. The context parameter
// is accepted on every call so request-scoped fields can be attached later
// without touching call sites.
type Logger struct {
	l *zap.Logger
}

func New(l *zap.Logger) *Logger { return &Logger{l: l} }

// Init builds the process-wide logger. level is a zap level string
// ("debug", "info", ...); asJSON switches the console encoder for the
// production JSON one.
func Init(level string, asJSON bool) error {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("logger.Init: parse level %q: %w", level, err)
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var encoder zapcore.Encoder
	if asJSON {
		encoder = zapcore.NewJSONEncoder(encoderCfg)
	} else {
		encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encoderCfg)
	}

	core := zapcore.NewCore(encoder, zapcore.Lock(os.Stdout), lvl)

	mu.Lock()
	global = New(zap.New(core, zap.AddCaller()))
	mu.Unlock()

	return nil
}

// L returns the process-wide logger.
func L() *Logger {
	mu.RLock()
	defer mu.RUnlock()
	return global
}

// SetNopLogger silences the process-wide logger; used by test suites.
func SetNopLogger() {
	mu.Lock()
	global = New(zap.NewNop())
	mu.Unlock()
}

// With returns a child of the process-wide logger carrying extra fields.
func With(fields ...Field) *Logger {
	return L().With(fields...)
}

func (lg *Logger) With(fields ...Field) *Logger {
	return New(lg.l.With(fields...))
}

func (lg *Logger) Debug(_ context.Context, msg string, fields ...Field) {
	lg.l.Debug(msg, fields...)
}

func (lg *Logger) Info(_ context.Context, msg string, fields ...Field) {
	lg.l.Info(msg, fields...)
}

func (lg *Logger) Warn(_ context.Context, msg string, fields ...Field) {
	lg.l.Warn(msg, fields...)
}

func (lg *Logger) Error(_ context.Context, msg string, fields ...Field) {
	lg.l.Error(msg, fields...)
}

func (lg *Logger) Sync() error { return lg.l.Sync() }

// Package-level shortcuts over the process-wide logger.

func Debug(ctx context.Context, msg string, fields ...Field) { L().Debug(ctx, msg, fields...) }
func Info(ctx context.Context, msg string, fields ...Field)  { L().Info(ctx, msg, fields...) }
func Warn(ctx context.Context, msg string, fields ...Field)  { L().Warn(ctx, msg, fields...) }
func Error(ctx context.Context, msg string, fields ...Field) { L().Error(ctx, msg, fields...) }
