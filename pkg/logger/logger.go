// Package logger wraps logrus behind a small printf-style API used across
// skein. Call sites log with a bracketed module tag, e.g.
// logger.Info("[Threads] module initialized").
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

var std = newLogger()

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(logrus.InfoLevel)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05.000",
	})
	return l
}

// InitLog redirects log output to the given file path in addition to stderr.
// The parent directory is created if missing.
func InitLog(path string) error {
	if path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file %q: %w", path, err)
	}
	std.SetOutput(io.MultiWriter(os.Stderr, f))
	return nil
}

// FlushLog is a shutdown hook for symmetry with InitLog. Logrus writes
// synchronously, so there is nothing buffered to flush.
func FlushLog() {}

// SetLevel adjusts the minimum level ("debug", "info", "warn", "error").
func SetLevel(level string) error {
	lv, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("unknown log level %q: %w", level, err)
	}
	std.SetLevel(lv)
	return nil
}

// Debug logs a formatted message at debug level.
func Debug(format string, args ...interface{}) {
	std.Debugf(format, args...)
}

// Info logs a formatted message at info level.
func Info(format string, args ...interface{}) {
	std.Infof(format, args...)
}

// Warn logs a formatted message at warn level.
func Warn(format string, args ...interface{}) {
	std.Warnf(format, args...)
}

// Error logs a formatted message at error level.
func Error(format string, args ...interface{}) {
	std.Errorf(format, args...)
}

// Fatalf logs a formatted message and exits.
func Fatalf(format string, args ...interface{}) {
	std.Fatalf(format, args...)
}
