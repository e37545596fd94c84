package logger

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/exp/zapslog"
	"go.uber.org/zap/zapcore"
)

var (
	globalLogger *slog.Logger
	baseLogger   *zap.Logger
)

// Init builds the zap production logger for levelStr and routes the global
// slog logger through it. Unknown levels fall back to info.
func Init(levelStr string) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(strings.ToLower(strings.TrimSpace(levelStr)))
	if err != nil {
		level = zapcore.InfoLevel
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.DisableStacktrace = true
	zl, buildErr := cfg.Build()
	if buildErr != nil {
		return nil, fmt.Errorf("failed to build zap logger: %w", buildErr)
	}

	InitWithCore(zl)
	if err != nil {
		Warn("Invalid log level string, defaulting to INFO", "input", levelStr)
	}
	return zl, nil
}

// InitWithCore installs zl as the backing logger. Tests use it with an
// observer core.
func InitWithCore(zl *zap.Logger) {
	baseLogger = zl
	globalLogger = slog.New(zapslog.NewHandler(zl.Core()))
	slog.SetDefault(globalLogger)
}

// Named returns a child zap logger for components that log through zap directly.
func Named(name string) *zap.Logger {
	ensureInitialized()
	return baseLogger.Named(name)
}

// Sync flushes buffered log entries.
func Sync() {
	if baseLogger != nil {
		_ = baseLogger.Sync()
	}
}

func ensureInitialized() {
	if globalLogger == nil {
		if _, err := Init("info"); err != nil {
			InitWithCore(zap.NewNop())
		}
	}
}

// Debug logs a message at DebugLevel.
func Debug(msg string, args ...any) {
	ensureInitialized()
	if globalLogger.Enabled(context.Background(), slog.LevelDebug) {
		globalLogger.Debug(msg, args...)
	}
}

// Info logs a message at InfoLevel.
func Info(msg string, args ...any) {
	ensureInitialized()
	globalLogger.Info(msg, args...)
}

// Warn logs a message at WarnLevel.
func Warn(msg string, args ...any) {
	ensureInitialized()
	globalLogger.Warn(msg, args...)
}

// Error logs a message at ErrorLevel.
func Error(msg string, args ...any) {
	ensureInitialized()
	globalLogger.Error(msg, args...)
}

// Fatal logs a message at ErrorLevel then exits.
func Fatal(msg string, args ...any) {
	ensureInitialized()
	globalLogger.Error(msg, args...)
	Sync()
	os.Exit(1)
}
