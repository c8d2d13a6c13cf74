package ownership

import (
	"sync"

	"go.uber.org/zap"
)

var (
	logger     *zap.Logger
	loggerOnce sync.Once
)

// Logger returns the ownership package's logger instance.
// It uses a no-op logger by default.
func Logger() *zap.Logger {
	loggerOnce.Do(func() {
		if logger == nil {
			logger = zap.NewNop()
		}
	})
	return logger
}

// SetLogger configures the ownership package's logger.
// This must be called before any handle is created.
// A nil logger restores the no-op default.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger = l
}

// trace writes a debug entry for a lifetime transition. A disabled debug
// level costs a single Check.
func trace[H comparable](msg string, h H, mode Mode) {
	if ce := Logger().Check(zap.DebugLevel, msg); ce != nil {
		ce.Write(zap.Any("handle", h), zap.Stringer("mode", mode))
	}
}
