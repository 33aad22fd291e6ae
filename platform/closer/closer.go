package closer

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Logger is the subset of the platform logger the closer needs.
type Logger interface {
	Info(ctx context.Context, msg string, fields ...zap.Field)
	Error(ctx context.Context, msg string, fields ...zap.Field)
}

type namedCloser struct {
	name string
	fn   func(ctx context.Context) error
}

type closer struct {
	mu      sync.Mutex
	logger  Logger
	closers []namedCloser
	closed  bool
}

var global = &closer{}

func SetLogger(l Logger) {
	global.mu.Lock()
	defer global.mu.Unlock()
	global.logger = l
}

// AddNamed registers a shutdown hook. Hooks run once, in LIFO order, when
// CloseAll is called.
func AddNamed(name string, fn func(ctx context.Context) error) {
	global.mu.Lock()
	defer global.mu.Unlock()
	global.closers = append(global.closers, namedCloser{name: name, fn: fn})
}

// CloseAll runs every registered hook in reverse registration order and
// returns the first error encountered (all hooks still run).
func CloseAll(ctx context.Context) error {
	global.mu.Lock()
	if global.closed {
		global.mu.Unlock()
		return nil
	}
	global.closed = true
	closers := global.closers
	global.closers = nil
	logger := global.logger
	global.mu.Unlock()

	var firstErr error
	for i := len(closers) - 1; i >= 0; i-- {
		c := closers[i]
		if err := c.fn(ctx); err != nil {
			if logger != nil {
				logger.Error(ctx, "closer failed",
					zap.String("name", c.name),
					zap.Error(err),
				)
			}
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		if logger != nil {
			logger.Info(ctx, "closed", zap.String("name", c.name))
		}
	}

	return firstErr
}
