package wrc

import (
	"os"
	"strings"
	"sync"

	"github.com/davecgh/go-spew/spew"
	"go.uber.org/zap"
)

var (
	WRC_DEBUG *bool

	logger     *zap.Logger
	loggerOnce sync.Once
)

// Logger returns the package trace logger. It is a no-op logger
// unless SetLogger() was called.
func Logger() *zap.Logger {
	loggerOnce.Do(func() {
		if logger == nil {
			logger = zap.NewNop()
		}
	})
	return logger
}

// SetLogger must be called before any stream is opened. A nil logger
// restores the no-op logger.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger = l
}

func debugEnabled() bool {
	if WRC_DEBUG == nil {
		// os.Environ() seems very expensive in Go so we cache
		// it.
		value := false
		for _, x := range os.Environ() {
			if strings.HasPrefix(x, "WRC_DEBUG=") {
				value = true
				break
			}
		}
		WRC_DEBUG = &value
	}

	return *WRC_DEBUG
}

// NewDebugLogger returns a development logger when WRC_DEBUG is set
// in the environment.
func NewDebugLogger() *zap.Logger {
	if !debugEnabled() {
		return zap.NewNop()
	}

	l, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return l
}

func DebugPrint(fmt_str string, v ...interface{}) {
	Logger().Sugar().Debugf(fmt_str, v...)
}

func Debug(arg interface{}) {
	spew.Dump(arg)
}

func traceOrNop(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}
