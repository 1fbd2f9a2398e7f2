// Package bklog builds the structured logger shared by the CLI driver and
// the metrics-instrumented book wrapper. The core book package itself stays
// logger-free.
package bklog

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is an alias for zap.Logger for consistency with callers that
// don't want to import zap directly.
type Logger = *zap.Logger

// Level wraps a zap.AtomicLevel so a long-running host (cmd/bookctl, or the
// instrumented book wrapper it builds) can turn up verbosity at runtime —
// e.g. in response to a rising order-rejection rate — without restarting.
type Level struct {
	atom zap.AtomicLevel
}

// SetDebug flips the logger between info and debug verbosity.
func (l Level) SetDebug(on bool) {
	if on {
		l.atom.SetLevel(zapcore.DebugLevel)
		return
	}
	l.atom.SetLevel(zapcore.InfoLevel)
}

// New builds a JSON-encoded zap logger seeded at the given level ("debug",
// "info", "warn", "error"; anything else falls back to info), returning a
// Level handle that can adjust verbosity after construction.
func New(level string) (*zap.Logger, Level, error) {
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig = zap.NewProductionEncoderConfig()
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncoderConfig.EncodeLevel = zapcore.LowercaseLevelEncoder

	atom := zap.NewAtomicLevel()
	atom.SetLevel(parseLevel(level))
	cfg.Level = atom

	logger, err := cfg.Build()
	if err != nil {
		return nil, Level{}, err
	}
	return logger, Level{atom: atom}, nil
}

func parseLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
