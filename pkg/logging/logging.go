// Package logging holds the process-wide structured logger. Logs go to
// stderr so that report content on stdout stays clean.
package logging

import (
	"sync"

	"go.uber.org/zap"
)

var (
	mu     sync.RWMutex
	logger = zap.NewNop().Sugar()
)

// Init builds the logger. debug selects zap's development config at debug
// level; otherwise the production config at warn level is used. Both write
// console-encoded lines to stderr.
func Init(debug bool) error {
	var cfg zap.Config
	if debug {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	cfg.Encoding = "console"
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	l, err := cfg.Build()
	if err != nil {
		return err
	}
	SetLogger(l.Sugar())
	return nil
}

// SetLogger replaces the process-wide logger.
func SetLogger(l *zap.SugaredLogger) {
	mu.Lock()
	defer mu.Unlock()
	logger = l
}

// L returns the current logger.
func L() *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// Sync flushes buffered log entries.
func Sync() {
	_ = L().Sync()
}

// Debugf logs only when debug logging is enabled
func Debugf(format string, args ...interface{}) {
	L().Debugf(format, args...)
}

// Infof logs an informational message
func Infof(format string, args ...interface{}) {
	L().Infof(format, args...)
}

// Warnf logs a recoverable problem
func Warnf(format string, args ...interface{}) {
	L().Warnf(format, args...)
}

// Errorf logs a failure
func Errorf(format string, args ...interface{}) {
	L().Errorf(format, args...)
}
