package logger

import (
	"log/slog"

	"go.uber.org/zap"
	"go.uber.org/zap/exp/zapslog"
)

// InstallSlog routes the standard library slog default logger into z, so
// libraries that log through slog end up in the same sink.
func InstallSlog(z *zap.Logger) *slog.Logger {
	stdLogger := slog.New(zapslog.NewHandler(z.Core()))
	slog.SetDefault(stdLogger)
	return stdLogger
}
