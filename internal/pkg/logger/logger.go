package logger

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ParseLevel converts a config level string to a zap level. Unknown values
// fall back to info and are reported via ok=false.
func ParseLevel(levelStr string) (level zapcore.Level, ok bool) {
	switch strings.ToUpper(strings.TrimSpace(levelStr)) {
	case "DEBUG":
		return zapcore.DebugLevel, true
	case "INFO", "":
		return zapcore.InfoLevel, true
	case "WARN", "WARNING":
		return zapcore.WarnLevel, true
	case "ERROR":
		return zapcore.ErrorLevel, true
	default:
		return zapcore.InfoLevel, false
	}
}

// New builds the application zap logger: JSON production output, or the
// console development encoder when development is set.
func New(levelStr string, development bool) (*zap.Logger, error) {
	level, ok := ParseLevel(levelStr)

	cfg := zap.NewProductionConfig()
	if development {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(level)

	l, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build zap logger: %w", err)
	}
	if !ok {
		l.Warn("Invalid log level string, defaulting to INFO", zap.String("input", levelStr))
	}
	return l, nil
}
